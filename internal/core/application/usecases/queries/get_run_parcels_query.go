package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRunParcelsQueryIsNotConstructed = errors.New(
	"GetRunParcelsQuery must be created via NewGetRunParcelsQuery or NewGetLatestRunParcelsQuery",
)

// GetRunParcelsQuery lists the parcels of a run, optionally filtered by status.
// Without a run id the most recently started run is used.
//
// Example:
//
//	query := NewGetLatestRunParcelsQuery(parcel.AtHub)
//	left, err := handler.Handle(ctx, query)
type GetRunParcelsQuery struct {
	runID  *kernel.UUID
	status parcel.Status
	guard  guard.ConstructorGuard
}

// NewGetRunParcelsQuery targets a given run. parcel.Unknown disables the status filter.
func NewGetRunParcelsQuery(runID kernel.UUID, status parcel.Status) (GetRunParcelsQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetRunParcelsQuery{}, err
	}
	return GetRunParcelsQuery{runID: &runID, status: status, guard: guard.NewConstructorGuard()}, nil
}

// NewGetLatestRunParcelsQuery targets the latest run. parcel.Unknown disables the status filter.
func NewGetLatestRunParcelsQuery(status parcel.Status) GetRunParcelsQuery {
	return GetRunParcelsQuery{status: status, guard: guard.NewConstructorGuard()}
}

func (q GetRunParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetRunParcelsQueryIsNotConstructed)
}

// ParcelRow is one parcel's final state within a run.
type ParcelRow struct {
	ID          int
	Address     string
	Deadline    string
	GroupWith   []int
	Status      parcel.Status
	VehicleID   int
	DeliveredAt *time.Time
	OnTime      bool
}

// GetRunParcelsQueryResponse carries the run the rows belong to.
type GetRunParcelsQueryResponse struct {
	RunID   kernel.UUID
	Parcels []ParcelRow
}
