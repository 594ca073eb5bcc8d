package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// FleetConfig describes the vehicles and drivers available for a day.
type FleetConfig struct {
	VehicleCount int
	// DriverCount bounds how many vehicles are on the road at once.
	DriverCount int
	Capacity    int
	// Speed is in miles per hour.
	Speed float64
	Hub   kernel.Address
	// DepartureClock is the "HH:MM" at which the first vehicles leave.
	DepartureClock string
	// MaxTrips caps how often one vehicle leaves the hub in a day.
	MaxTrips    int
	GroupPolicy services.GroupPolicy
}

// DefaultFleetConfig returns the three-vehicle, two-driver fleet.
func DefaultFleetConfig(hub kernel.Address) FleetConfig {
	return FleetConfig{
		VehicleCount:   3,
		DriverCount:    2,
		Capacity:       16,
		Speed:          18,
		Hub:            hub,
		DepartureClock: "08:00",
		MaxTrips:       2,
		GroupPolicy:    services.GroupDefer,
	}
}

// Validate reports every invalid field at once.
func (c FleetConfig) Validate() error {
	var problems []error
	if c.VehicleCount < 1 {
		problems = append(problems, atLeastOne("vehicleCount", c.VehicleCount))
	}
	if c.DriverCount < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("driverCount", c.DriverCount, 1, c.VehicleCount))
	}
	if c.Capacity < 1 {
		problems = append(problems, atLeastOne("capacity", c.Capacity))
	}
	if c.Speed <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("speed must be positive"))
	}
	if c.Hub.IsEmpty() {
		problems = append(problems, errs.NewValueIsRequiredError("hub"))
	}
	if c.MaxTrips < 1 {
		problems = append(problems, atLeastOne("maxTrips", c.MaxTrips))
	}
	if _, err := kernel.ParseClock(c.DepartureClock, time.Time{}); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

func atLeastOne(name string, got int) error {
	return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("must be at least 1, got %d", got))
}
