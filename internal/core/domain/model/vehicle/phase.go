package vehicle

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Phase is the route state of a vehicle:
//
//	Idle ──> Routing ──> ReturningHome ──> Done
//	 ^                                      │
//	 └──────────── NextTrip ────────────────┘
type Phase int

const (
	// Idle vehicles wait at the hub and accept cargo.
	Idle Phase = iota
	// Routing vehicles are delivering their load-set.
	Routing
	// ReturningHome vehicles are driving back to the hub.
	ReturningHome
	// Done vehicles finished the trip.
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Routing:
		return "Routing"
	case ReturningHome:
		return "ReturningHome"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

func (p Phase) expect(want Phase, op string) error {
	if p != want {
		return errs.NewValueIsInvalidErrorWithCause(
			"phase",
			fmt.Errorf("cannot %s while %s, vehicle must be %s", op, p, want),
		)
	}
	return nil
}
