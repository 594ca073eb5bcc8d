// Package queries contains read-only operations over stored runs.
// Handlers read the tables directly with SQL instead of rebuilding aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRunSummaryQueryIsNotConstructed = errors.New(
	"GetRunSummaryQuery must be created via NewGetRunSummaryQuery constructor",
)

// GetRunSummaryQuery retrieves the totals of one stored run.
//
// Example:
//
//	query, err := NewGetRunSummaryQuery(runID)
//	if err != nil {
//	    return err
//	}
//	summary, err := handler.Handle(ctx, query)
type GetRunSummaryQuery struct {
	runID kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetRunSummaryQuery(runID kernel.UUID) (GetRunSummaryQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetRunSummaryQuery{}, err
	}
	return GetRunSummaryQuery{runID: runID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRunSummaryQuery) RunID() kernel.UUID {
	return q.runID
}

func (q GetRunSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetRunSummaryQueryIsNotConstructed)
}

// GetRunSummaryQueryResponse holds the headline numbers of a run.
type GetRunSummaryQueryResponse struct {
	RunID        kernel.UUID
	StartedAt    time.Time
	Departure    time.Time
	TotalMileage float64
	Parcels      int
	Delivered    int
	Late         int
	Unassigned   []int
	Vehicles     []VehicleRow
	Aborts       int
}

// VehicleRow is one vehicle's final state within a run.
type VehicleRow struct {
	ID         int
	Trips      int
	Mileage    float64
	ReturnedAt time.Time
	Location   string
	AtHub      bool
}
