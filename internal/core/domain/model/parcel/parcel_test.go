package parcel_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addr      = kernel.MustAddress("4001 South 700 East")
	morning   = time.Date(2026, time.March, 19, 9, 15, 0, 0, time.UTC)
	afternoon = time.Date(2026, time.March, 19, 13, 0, 0, 0, time.UTC)
)

func newParcel(t *testing.T, id int, deadline kernel.Deadline, group ...int) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(id, addr, deadline, 21, group, parcel.Details{City: "Salt Lake City", Zip: "84107"})
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("should create a parcel at the hub", func(t *testing.T) {
		p := newParcel(t, 1, kernel.EOD())

		require.NoError(t, p.Validate())
		assert.Equal(t, 1, p.ID())
		assert.Equal(t, addr, p.Address())
		assert.True(t, p.Deadline().IsEOD())
		assert.Equal(t, 21.0, p.Weight())
		assert.Equal(t, parcel.AtHub, p.Status())
		assert.Zero(t, p.VehicleID())
		assert.Equal(t, "84107", p.Details().Zip)
		_, delivered := p.DeliveredAt()
		assert.False(t, delivered)
	})

	t.Run("should normalise groupWith", func(t *testing.T) {
		p := newParcel(t, 14, kernel.EOD(), 19, 15, 14, 15, 0, -3)

		assert.Equal(t, []int{15, 19}, p.GroupWith())
	})

	t.Run("should not expose internal group slice", func(t *testing.T) {
		p := newParcel(t, 14, kernel.EOD(), 15)

		p.GroupWith()[0] = 99

		assert.Equal(t, []int{15}, p.GroupWith())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := parcel.NewParcel(0, kernel.Address{}, kernel.EOD(), -1, nil, parcel.Details{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "weight")
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var p parcel.Parcel
		var nilParcel *parcel.Parcel

		assert.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
		assert.ErrorIs(t, nilParcel.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}

func TestParcel_Lifecycle(t *testing.T) {
	t.Run("should load and deliver once", func(t *testing.T) {
		p := newParcel(t, 1, kernel.EOD())

		require.NoError(t, p.Load(2))
		assert.Equal(t, parcel.EnRoute, p.Status())
		assert.Equal(t, 2, p.VehicleID())

		require.NoError(t, p.Deliver(morning))
		assert.Equal(t, parcel.Delivered, p.Status())
		at, ok := p.DeliveredAt()
		require.True(t, ok)
		assert.Equal(t, morning, at)
	})

	t.Run("should reject a second delivery and keep the first timestamp", func(t *testing.T) {
		p := newParcel(t, 1, kernel.EOD())
		require.NoError(t, p.Load(1))
		require.NoError(t, p.Deliver(morning))

		err := p.Deliver(afternoon)

		require.ErrorIs(t, err, parcel.ErrAlreadyDelivered)
		at, _ := p.DeliveredAt()
		assert.Equal(t, morning, at)
	})

	t.Run("should reject loading twice", func(t *testing.T) {
		p := newParcel(t, 1, kernel.EOD())
		require.NoError(t, p.Load(1))

		err := p.Load(2)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 1, p.VehicleID())
	})

	t.Run("should reject an invalid vehicle", func(t *testing.T) {
		p := newParcel(t, 1, kernel.EOD())

		require.ErrorIs(t, p.Load(0), errs.ErrValueIsInvalid)
		assert.Equal(t, parcel.AtHub, p.Status())
	})
}

func TestParcel_OnTime(t *testing.T) {
	tenThirty, err := kernel.DeadlineAt(10, 30)
	require.NoError(t, err)

	t.Run("should be on time before the deadline", func(t *testing.T) {
		p := newParcel(t, 1, tenThirty)
		require.NoError(t, p.Load(1))
		require.NoError(t, p.Deliver(morning))

		assert.True(t, p.OnTime())
	})

	t.Run("should be late after the deadline", func(t *testing.T) {
		p := newParcel(t, 1, tenThirty)
		require.NoError(t, p.Load(1))
		require.NoError(t, p.Deliver(afternoon))

		assert.False(t, p.OnTime())
	})

	t.Run("undelivered parcel is not on time", func(t *testing.T) {
		assert.False(t, newParcel(t, 1, kernel.EOD()).OnTime())
	})
}

func TestParcel_Clone(t *testing.T) {
	p := newParcel(t, 1, kernel.EOD(), 2)
	require.NoError(t, p.Load(1))

	c := p.Clone()
	require.NoError(t, p.Deliver(morning))

	assert.Equal(t, parcel.EnRoute, c.Status())
	assert.Equal(t, []int{2}, c.GroupWith())
	require.NoError(t, c.Validate())
}
