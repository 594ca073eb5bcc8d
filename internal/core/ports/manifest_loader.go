package ports

import (
	"context"

	"dispatch/internal/core/domain/model/graph"
	"dispatch/internal/core/domain/model/parcel"
)

// Manifest is the ingested input of a delivery day.
type Manifest struct {
	Graph   *graph.Graph
	Parcels []*parcel.Parcel
}

// ManifestLoader reads the parcels and the distance table for a run.
// Parcel addresses and graph locations must share one canonical form;
// a mismatch surfaces later as a distance NotFound.
type ManifestLoader interface {
	Load(ctx context.Context) (*Manifest, error)
}
