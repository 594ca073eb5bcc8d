package parcel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrAlreadyDelivered is returned by a second delivery of the same parcel.
// It signals a broken ownership invariant and never occurs in a correct run.
var ErrAlreadyDelivered = errors.New("parcel already delivered")

// Status is the lifecycle state of a parcel. Transitions only move forward:
//
//	AtHub ──> EnRoute ──> Delivered
//
// The zero value Unknown catches uninitialised values read from storage.
type Status int

const (
	Unknown Status = iota
	// AtHub parcels wait at the hub for a planning pass.
	AtHub
	// EnRoute parcels are loaded on exactly one vehicle.
	EnRoute
	// Delivered is final.
	Delivered
)

var statusNames = map[Status]string{
	AtHub:     "AtHub",
	EnRoute:   "EnRoute",
	Delivered: "Delivered",
}

// ParseStatus is the inverse of String for persisted values.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a parcel status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Load transitions AtHub to EnRoute.
func (s Status) Load() (Status, error) {
	if s != AtHub {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to load", s),
		)
	}
	return EnRoute, nil
}

// Deliver transitions EnRoute to Delivered. Delivering twice returns ErrAlreadyDelivered.
func (s Status) Deliver() (Status, error) {
	switch s {
	case EnRoute:
		return Delivered, nil
	case Delivered:
		return Unknown, ErrAlreadyDelivered
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
}
