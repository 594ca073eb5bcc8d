package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// RunRepository persists finished delivery-day reports.
type RunRepository interface {
	// Add stores the report with its parcels, vehicles and abort notices.
	Add(ctx context.Context, report *services.DayReport) error

	// Get returns a stored report. Route details are not persisted, so
	// Routes is always empty. Unknown ids yield an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*services.DayReport, error)

	// GetLatest returns the most recently started run.
	GetLatest(ctx context.Context) (*services.DayReport, error)
}
