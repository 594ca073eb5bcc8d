package kernel_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, time.March, 19, 0, 0, 0, 0, time.UTC)

func TestParseClock(t *testing.T) {
	t.Run("should place the reading on the given day", func(t *testing.T) {
		got, err := kernel.ParseClock("08:00", testDay)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 19, 8, 0, 0, 0, time.UTC), got)
	})

	t.Run("should reject malformed readings", func(t *testing.T) {
		for _, in := range []string{"", "8am", "25:00", "08:61"} {
			_, err := kernel.ParseClock(in, testDay)

			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestFormatClock(t *testing.T) {
	t.Run("should truncate seconds", func(t *testing.T) {
		at := time.Date(2026, time.March, 19, 8, 23, 20, 0, time.UTC)

		assert.Equal(t, "08:23", kernel.FormatClock(at))
	})

	t.Run("should not round up at 59 seconds", func(t *testing.T) {
		at := time.Date(2026, time.March, 19, 10, 29, 59, 0, time.UTC)

		assert.Equal(t, "10:29", kernel.FormatClock(at))
	})
}

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 0, kernel.MinuteOfDay(testDay))
	assert.Equal(t, 10*60+30, kernel.MinuteOfDay(testDay.Add(10*time.Hour+30*time.Minute+45*time.Second)))
}

func TestTravelTime(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		speed    float64
		want     time.Duration
	}{
		{"three units at 18 per hour", 3, 18, 10 * time.Minute},
		{"four units at 18 per hour", 4, 18, 13*time.Minute + 20*time.Second},
		{"five units at 18 per hour", 5, 18, 16*time.Minute + 40*time.Second},
		{"rounded to the second", 1, 7, 514 * time.Second},
		{"zero distance", 0, 18, 0},
		{"non-positive speed", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kernel.TravelTime(tt.distance, tt.speed))
		})
	}
}
