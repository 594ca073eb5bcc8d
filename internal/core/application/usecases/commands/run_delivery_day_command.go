package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRunDeliveryDayCommandIsNotConstructed = errors.New(
	"RunDeliveryDayCommand must be created via NewRunDeliveryDayCommand constructor",
)

// RunDeliveryDayCommand plans and simulates one delivery day.
//
// Example:
//
//	cmd, err := NewRunDeliveryDayCommand(time.Now())
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, cmd)
type RunDeliveryDayCommand struct {
	day   time.Time
	guard guard.ConstructorGuard
}

// NewRunDeliveryDayCommand creates a command for the calendar day of day.
// The time of day is dropped; the departure clock comes from the fleet config.
func NewRunDeliveryDayCommand(day time.Time) (RunDeliveryDayCommand, error) {
	if day.IsZero() {
		return RunDeliveryDayCommand{}, errs.NewValueIsRequiredError("day")
	}

	y, m, d := day.Date()
	return RunDeliveryDayCommand{
		day:   time.Date(y, m, d, 0, 0, 0, 0, day.Location()),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Day returns midnight of the delivery day.
func (c RunDeliveryDayCommand) Day() time.Time {
	return c.day
}

// Validate ensures the command was created through the constructor.
func (c *RunDeliveryDayCommand) Validate() error {
	return c.guard.Validate(ErrRunDeliveryDayCommandIsNotConstructed)
}
