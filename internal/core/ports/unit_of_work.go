package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per stored run, so runs started
// concurrently (HTTP and the scheduled job) never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction a finished run is written in.
// Begin must precede Commit or Rollback; a Rollback after Commit fails harmlessly.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// RunRepository is bound to the open transaction, or to the plain
	// connection when none was begun.
	RunRepository() RunRepository
}
