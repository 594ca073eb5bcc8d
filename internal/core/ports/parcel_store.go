// Package ports defines the contracts between the dispatch core and its
// adapters: the parcel store, manifest ingestion and run persistence.
package ports

import (
	"time"

	"dispatch/internal/core/domain/model/parcel"
)

// ParcelStore is the single source of truth for parcel status during a run.
// Implementations must be safe for concurrent writers: vehicles are
// simulated in parallel, each writing only the parcels it carries.
type ParcelStore interface {
	// Add registers a parcel at ingestion. Duplicate ids are rejected.
	Add(p *parcel.Parcel) error

	// Get returns a snapshot of the parcel or an errs.ObjectNotFoundError.
	Get(id int) (*parcel.Parcel, error)

	// All returns snapshots of every parcel ordered by id.
	All() []*parcel.Parcel

	// MarkLoaded moves a parcel from AtHub to EnRoute on the given vehicle.
	MarkLoaded(id, vehicleID int) error

	// MarkDelivered moves a parcel from EnRoute to Delivered at the given clock.
	// A second call for the same id returns parcel.ErrAlreadyDelivered.
	MarkDelivered(id int, at time.Time) error
}
