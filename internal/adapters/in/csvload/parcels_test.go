package csvload_test

import (
	"strings"
	"testing"

	"dispatch/internal/adapters/in/csvload"
	"dispatch/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParcels(t *testing.T) {
	t.Run("should skip non-data rows and parse every column", func(t *testing.T) {
		parcels, err := csvload.ReadParcels(strings.NewReader(packageFile))
		require.NoError(t, err)
		require.Len(t, parcels, 3)

		first := parcels[0]
		assert.Equal(t, 1, first.ID())
		assert.Equal(t, dalton, first.Address())
		assert.Equal(t, "10:30", first.Deadline().String())
		assert.Equal(t, 21.0, first.Weight())
		assert.Equal(t, parcel.Details{City: "Salt Lake City", State: "UT", Zip: "84104"}, first.Details())
		assert.Equal(t, parcel.AtHub, first.Status())
	})

	t.Run("should read groups from notes", func(t *testing.T) {
		parcels, err := csvload.ReadParcels(strings.NewReader(packageFile))
		require.NoError(t, err)

		assert.Equal(t, []int{3, 4}, parcels[1].GroupWith())
		assert.True(t, parcels[1].Deadline().IsEOD())
		assert.Empty(t, parcels[2].GroupWith())
		assert.Equal(t, "Can only be on truck 2", parcels[2].Details().Note)
	})

	t.Run("should clean addresses the same way as the distance table", func(t *testing.T) {
		parcels, err := csvload.ReadParcels(strings.NewReader(packageFile))
		require.NoError(t, err)

		assert.Equal(t, south, parcels[2].Address())
		assert.Equal(t, "09:00", parcels[2].Deadline().String())
	})

	t.Run("should report the failing line", func(t *testing.T) {
		data := "1,A,City,UT,1,EOD,3,\n2,B,City,UT,1,EOD,heavy,\n"

		_, err := csvload.ReadParcels(strings.NewReader(data))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		assert.Contains(t, err.Error(), "weight")
	})

	t.Run("should reject short rows", func(t *testing.T) {
		_, err := csvload.ReadParcels(strings.NewReader("1,A,City,UT\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "want at least 7")
	})
}

func TestGroupFromNote(t *testing.T) {
	t.Run("should list the referenced ids", func(t *testing.T) {
		assert.Equal(t, []int{15, 19}, csvload.GroupFromNote("Must be delivered with 15, 19"))
		assert.Equal(t, []int{13, 15, 19}, csvload.GroupFromNote("must be delivered with 13,15 and 19"))
	})

	t.Run("should ignore other notes", func(t *testing.T) {
		assert.Nil(t, csvload.GroupFromNote("Delayed on flight---will not arrive to depot until 9:05 am"))
		assert.Nil(t, csvload.GroupFromNote(""))
	})
}
