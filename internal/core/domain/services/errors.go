package services

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrPlanningShortfall marks parcels left unassigned after a planning pass.
	ErrPlanningShortfall = errors.New("planning shortfall")
	// ErrRouteAborted marks a route that ended with parcels still on board
	// or a vehicle that could not get back to the hub.
	ErrRouteAborted = errors.New("route aborted")
)

// PlanningShortfallError lists what a planning pass could not place.
// It is a report, not a failure: the run continues.
type PlanningShortfallError struct {
	Unassigned    []int
	SkippedGroups [][]int
	Halted        bool
}

func (e *PlanningShortfallError) Error() string {
	msg := fmt.Sprintf("%s: %d parcel(s) unassigned %v", ErrPlanningShortfall, len(e.Unassigned), e.Unassigned)
	if len(e.SkippedGroups) > 0 {
		msg += fmt.Sprintf(", skipped groups %v", e.SkippedGroups)
	}
	if e.Halted {
		msg += ", every vehicle full"
	}
	return msg
}

func (e *PlanningShortfallError) Unwrap() error {
	return ErrPlanningShortfall
}

// RouteAbortedError describes a vehicle that stopped routing early.
// Undelivered parcels stay EnRoute on the vehicle.
type RouteAbortedError struct {
	VehicleID    int
	Trip         int
	Undelivered  []int
	LastLocation kernel.Address
	Stranded     bool
	Cause        error
}

func (e *RouteAbortedError) Error() string {
	msg := fmt.Sprintf("%s: vehicle %d trip %d at %q", ErrRouteAborted, e.VehicleID, e.Trip, e.LastLocation.String())
	if len(e.Undelivered) > 0 {
		msg += fmt.Sprintf(", undelivered %v", e.Undelivered)
	}
	if e.Stranded {
		msg += ", no route to hub"
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes both ErrRouteAborted and the underlying lookup failures.
func (e *RouteAbortedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrRouteAborted}
	}
	return []error{ErrRouteAborted, e.Cause}
}
