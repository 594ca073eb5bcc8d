package kernel

import (
	"fmt"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	eodLabel     = "EOD"
	minutesInDay = 24 * 60
)

var deadlineLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04:05 PM", "3:04PM"}

// Deadline is either a concrete minute of the day or end of day (EOD).
// The zero value is EOD, which places no constraint on delivery time.
type Deadline struct {
	minutes int
	set     bool
}

// EOD returns the end-of-day deadline.
func EOD() Deadline {
	return Deadline{}
}

// DeadlineAt returns a concrete deadline at hour:minute.
func DeadlineAt(hour, minute int) (Deadline, error) {
	if hour < 0 || hour > 23 {
		return Deadline{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return Deadline{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return Deadline{minutes: hour*60 + minute, set: true}, nil
}

// ParseDeadline accepts "EOD" (any case), 24-hour "HH:MM" and 12-hour
// "H:MM AM"/"H:MM PM" readings, with optional seconds.
func ParseDeadline(s string) (Deadline, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Deadline{}, errs.NewValueIsRequiredError("deadline")
	}
	if s == eodLabel {
		return EOD(), nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DeadlineAt(t.Hour(), t.Minute())
		}
	}
	return Deadline{}, errs.NewValueIsInvalidErrorWithCause("deadline", fmt.Errorf("unrecognised time %q", s))
}

func (d Deadline) IsEOD() bool {
	return !d.set
}

// Minutes returns minutes since midnight, or a value past the end of the day for EOD.
func (d Deadline) Minutes() int {
	if !d.set {
		return minutesInDay
	}
	return d.minutes
}

// Met reports whether a delivery at the given clock satisfies the deadline.
// Seconds are ignored, matching the HH:MM display rule.
func (d Deadline) Met(at time.Time) bool {
	return !d.set || MinuteOfDay(at) <= d.minutes
}

func (d Deadline) String() string {
	if !d.set {
		return eodLabel
	}
	return fmt.Sprintf("%02d:%02d", d.minutes/60, d.minutes%60)
}

func (d Deadline) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// CompareDeadlines orders deadlines earliest first with EOD after every
// concrete time. It returns a negative number, zero or a positive number
// and is suitable for slices.SortStableFunc.
func CompareDeadlines(a, b Deadline) int {
	return a.Minutes() - b.Minutes()
}
