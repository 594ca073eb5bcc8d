// Package memory provides the in-process ParcelStore used during a run.
package memory

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.ParcelStore = (*ParcelStore)(nil)

// ParcelStore keeps parcels in a map guarded by a RWMutex. Callers only ever
// see clones, so status reads never race with a vehicle's writes.
type ParcelStore struct {
	mu      sync.RWMutex
	parcels map[int]*parcel.Parcel
}

func NewParcelStore() *ParcelStore {
	return &ParcelStore{parcels: make(map[int]*parcel.Parcel)}
}

func (s *ParcelStore) Add(p *parcel.Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parcels[p.ID()]; ok {
		return errs.NewValueIsInvalidErrorWithCause("parcel", fmt.Errorf("duplicate id %d", p.ID()))
	}
	s.parcels[p.ID()] = p.Clone()
	return nil
}

func (s *ParcelStore) Get(id int) (*parcel.Parcel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcelID", id)
	}
	return p.Clone(), nil
}

func (s *ParcelStore) All() []*parcel.Parcel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*parcel.Parcel, 0, len(s.parcels))
	for _, p := range s.parcels {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *parcel.Parcel) int { return a.ID() - b.ID() })
	return out
}

func (s *ParcelStore) MarkLoaded(id, vehicleID int) error {
	return s.update(id, func(p *parcel.Parcel) error {
		return p.Load(vehicleID)
	})
}

func (s *ParcelStore) MarkDelivered(id int, at time.Time) error {
	return s.update(id, func(p *parcel.Parcel) error {
		return p.Deliver(at)
	})
}

// Len returns the number of stored parcels.
func (s *ParcelStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.parcels)
}

func (s *ParcelStore) update(id int, fn func(*parcel.Parcel) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parcels[id]
	if !ok {
		return errs.NewObjectNotFoundError("parcelID", id)
	}
	return fn(p)
}
