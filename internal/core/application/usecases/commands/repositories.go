// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work and store factories the command handlers depend on.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RunRepoFactory provides access to the run repository within a transaction.
	RunRepoFactory interface {
		RunRepository() ports.RunRepository
	}

	// RunUoW manages the transaction that stores a finished run.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.RunRepository().Add(ctx, report)
	//   err = uow.Commit(ctx)
	RunUoW interface {
		TxManager
		RunRepoFactory
	}

	// RunUoWFactory creates new run unit of work instances.
	RunUoWFactory interface {
		Create() RunUoW
	}

	// ParcelStoreFactory hands every run its own empty parcel store.
	ParcelStoreFactory interface {
		Create() ports.ParcelStore
	}
)
