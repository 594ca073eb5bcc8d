package kernel

import (
	"fmt"
	"math"
	"time"

	"dispatch/internal/pkg/errs"
)

const clockLayout = "15:04"

// FormatClock renders t as HH:MM. Seconds are truncated, never rounded,
// so 08:23:20 displays as "08:23".
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// ParseClock places an HH:MM wall-clock reading on the calendar day of day.
func ParseClock(s string, day time.Time) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("clock", fmt.Errorf("%q: %w", s, err))
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// MinuteOfDay returns the number of whole minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// TravelTime converts a distance driven at speed (distance units per hour)
// into a duration rounded to the nearest second.
func TravelTime(distance, speed float64) time.Duration {
	if speed <= 0 || distance <= 0 {
		return 0
	}
	return time.Duration(math.Round(distance/speed*3600)) * time.Second
}
