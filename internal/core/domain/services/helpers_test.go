package services_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/graph"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
)

var (
	hub       = kernel.MustAddress("HUB")
	x         = kernel.MustAddress("X")
	y         = kernel.MustAddress("Y")
	z         = kernel.MustAddress("Z")
	departure = time.Date(2026, time.March, 19, 8, 0, 0, 0, time.UTC)
)

// memStore is a minimal status store: it applies the same transitions as the
// production store so that double writes surface as errors.
type memStore struct {
	mu      sync.Mutex
	parcels map[int]*parcel.Parcel
}

func newMemStore(parcels ...*parcel.Parcel) *memStore {
	s := &memStore{parcels: make(map[int]*parcel.Parcel)}
	for _, p := range parcels {
		s.parcels[p.ID()] = p
	}
	return s
}

func (s *memStore) MarkLoaded(id, vehicleID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return fmt.Errorf("parcel %d not found", id)
	}
	return p.Load(vehicleID)
}

func (s *memStore) MarkDelivered(id int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return fmt.Errorf("parcel %d not found", id)
	}
	return p.Deliver(at)
}

func (s *memStore) get(id int) *parcel.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parcels[id].Clone()
}

// snapshot returns clones ordered by id, as the production store does.
func (s *memStore) snapshot() []*parcel.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*parcel.Parcel, 0, len(s.parcels))
	for id := 1; len(out) < len(s.parcels); id++ {
		if p, ok := s.parcels[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out
}

func newParcel(t *testing.T, id int, to kernel.Address, deadline string, group ...int) *parcel.Parcel {
	t.Helper()
	d, err := kernel.ParseDeadline(deadline)
	require.NoError(t, err)
	p, err := parcel.NewParcel(id, to, d, 5, group, parcel.Details{})
	require.NoError(t, err)
	return p
}

func newVehicle(t *testing.T, id, capacity int) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(id, capacity, 18, hub, departure)
	require.NoError(t, err)
	return v
}

// triangle is the HUB, X, Y graph: HUB-X 3, HUB-Y 5, X-Y 4.
func triangle(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddEdge(hub, x, 3))
	require.NoError(t, g.AddEdge(hub, y, 5))
	require.NoError(t, g.AddEdge(x, y, 4))
	return g
}

func loadAll(t *testing.T, v *vehicle.Vehicle, store *memStore, parcels ...*parcel.Parcel) {
	t.Helper()
	for _, p := range parcels {
		require.NoError(t, v.Load(vehicle.Cargo{ParcelID: p.ID(), Address: p.Address()}))
		require.NoError(t, store.MarkLoaded(p.ID(), v.ID()))
	}
}
