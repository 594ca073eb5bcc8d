package kernel_test

import (
	"slices"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EOD", "EOD"},
		{"eod", "EOD"},
		{" EOD ", "EOD"},
		{"09:00", "09:00"},
		{"9:00", "09:00"},
		{"10:30 AM", "10:30"},
		{"10:30:00 AM", "10:30"},
		{"12:00 AM", "00:00"},
		{"12:15 PM", "12:15"},
		{"1:05 pm", "13:05"},
		{"17:45", "17:45"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := kernel.ParseDeadline(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := kernel.ParseDeadline("  ")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		for _, in := range []string{"noon", "10.30", "25:00", "10:30 XM"} {
			_, err := kernel.ParseDeadline(in)

			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestDeadlineAt(t *testing.T) {
	t.Run("should reject out of range parts", func(t *testing.T) {
		_, err := kernel.DeadlineAt(24, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.DeadlineAt(10, 60)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should expose minutes since midnight", func(t *testing.T) {
		d, err := kernel.DeadlineAt(10, 30)

		require.NoError(t, err)
		assert.Equal(t, 630, d.Minutes())
		assert.False(t, d.IsEOD())
	})
}

func TestDeadline_ZeroValueIsEOD(t *testing.T) {
	var d kernel.Deadline

	assert.True(t, d.IsEOD())
	assert.Equal(t, kernel.EOD(), d)
	assert.Greater(t, d.Minutes(), 23*60+59)
}

func TestDeadline_Met(t *testing.T) {
	d, err := kernel.DeadlineAt(10, 30)
	require.NoError(t, err)

	assert.True(t, d.Met(testDay.Add(10*time.Hour+30*time.Minute+59*time.Second)))
	assert.False(t, d.Met(testDay.Add(10*time.Hour+31*time.Minute)))
	assert.True(t, kernel.EOD().Met(testDay.Add(23*time.Hour)))
}

func TestCompareDeadlines(t *testing.T) {
	nine, _ := kernel.DeadlineAt(9, 0)
	tenThirty, _ := kernel.DeadlineAt(10, 30)

	t.Run("should order concrete times before EOD", func(t *testing.T) {
		assert.Negative(t, kernel.CompareDeadlines(nine, tenThirty))
		assert.Positive(t, kernel.CompareDeadlines(tenThirty, nine))
		assert.Negative(t, kernel.CompareDeadlines(tenThirty, kernel.EOD()))
		assert.Positive(t, kernel.CompareDeadlines(kernel.EOD(), nine))
		assert.Zero(t, kernel.CompareDeadlines(kernel.EOD(), kernel.EOD()))
	})

	t.Run("should keep input order for equal deadlines in a stable sort", func(t *testing.T) {
		type item struct {
			id       int
			deadline kernel.Deadline
		}
		items := []item{
			{1, kernel.EOD()}, {2, tenThirty}, {3, nine}, {4, kernel.EOD()}, {5, tenThirty},
		}

		slices.SortStableFunc(items, func(a, b item) int {
			return kernel.CompareDeadlines(a.deadline, b.deadline)
		})

		ids := make([]int, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.id)
		}
		assert.Equal(t, []int{3, 2, 5, 1, 4}, ids)
	})
}
