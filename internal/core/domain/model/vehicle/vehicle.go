package vehicle

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for vehicle operations.
var (
	// ErrCapacityExceeded is returned when loading a vehicle whose load-set is full.
	ErrCapacityExceeded = errors.New("vehicle capacity exceeded")
	// ErrCargoNotFound is returned when delivering a parcel the vehicle does not carry.
	ErrCargoNotFound = errors.New("parcel is not on this vehicle")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle is a delivery vehicle and its mutable route state.
//
// Key responsibilities:
//   - Holding an ordered load-set of at most capacity parcels
//   - Tracking location, clock and cumulative mileage while delivering
//   - Enforcing the Idle, Routing, ReturningHome, Done phase order
//
// The load-set keeps load order. Nearest-neighbour ties are broken by it,
// so callers that need reproducible routes must load in a deterministic order.
//
// Example usage:
//
//	v, err := vehicle.NewVehicle(1, 16, 18, hub, departure)
//	if err != nil {
//	    return err
//	}
//	_ = v.Load(vehicle.Cargo{ParcelID: 7, Address: addr})
//	_ = v.Depart()
type Vehicle struct {
	id       int
	capacity int
	speed    float64
	hub      kernel.Address

	location   kernel.Address
	clock      time.Time
	departedAt time.Time
	mileage    float64
	load       []Cargo
	phase      Phase
	trips      int

	guard guard.ConstructorGuard
}

// NewVehicle creates an Idle vehicle parked at hub with the given departure clock.
//
// Parameters:
//   - id: positive vehicle number
//   - capacity: maximum parcels carried at once (must be positive)
//   - speed: distance units per hour (must be positive)
//   - hub: the base the vehicle starts from and returns to
//   - departure: initial clock
//
// Returns joined validation errors when any parameter is invalid.
func NewVehicle(id, capacity int, speed float64, hub kernel.Address, departure time.Time) (*Vehicle, error) {
	v := &Vehicle{
		clock: departure,
		phase: Idle,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setCapacity(capacity),
		v.setSpeed(speed),
		v.setHub(hub),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() int {
	return v.id
}

func (v *Vehicle) Capacity() int {
	return v.capacity
}

func (v *Vehicle) Speed() float64 {
	return v.speed
}

func (v *Vehicle) Hub() kernel.Address {
	return v.hub
}

func (v *Vehicle) Location() kernel.Address {
	return v.location
}

func (v *Vehicle) Clock() time.Time {
	return v.clock
}

// DepartedAt returns the clock at the latest Depart call.
func (v *Vehicle) DepartedAt() time.Time {
	return v.departedAt
}

// Mileage returns the cumulative distance driven over all trips.
func (v *Vehicle) Mileage() float64 {
	return v.mileage
}

func (v *Vehicle) Phase() Phase {
	return v.phase
}

// Trips returns the number of departures so far.
func (v *Vehicle) Trips() int {
	return v.trips
}

// Cargo returns a copy of the load-set in load order.
func (v *Vehicle) Cargo() []Cargo {
	return slices.Clone(v.load)
}

func (v *Vehicle) FreeCapacity() int {
	return v.capacity - len(v.load)
}

func (v *Vehicle) IsEmpty() bool {
	return len(v.load) == 0
}

func (v *Vehicle) IsAtHub() bool {
	return v.location.IsEqual(v.hub)
}

// Load appends c to the load-set.
//
// Returns:
//   - ErrCapacityExceeded when the load-set is full
//   - a validation error when the vehicle is not Idle or already carries the parcel
func (v *Vehicle) Load(c Cargo) error {
	if err := v.phase.expect(Idle, "load"); err != nil {
		return err
	}
	if c.ParcelID <= 0 || c.Address.IsEmpty() {
		return errs.NewValueIsInvalidError("cargo")
	}
	if v.carries(c.ParcelID) {
		return errs.NewValueIsInvalidErrorWithCause("cargo", fmt.Errorf("parcel %d is already loaded", c.ParcelID))
	}
	if len(v.load) >= v.capacity {
		return fmt.Errorf("vehicle %d, parcel %d: %w", v.id, c.ParcelID, ErrCapacityExceeded)
	}
	v.load = append(v.load, c)
	return nil
}

// DepartAt moves the clock of an Idle vehicle forward to at. A held-back
// vehicle uses it to wait for a returning driver. Earlier clocks are ignored.
func (v *Vehicle) DepartAt(at time.Time) error {
	if err := v.phase.expect(Idle, "reschedule"); err != nil {
		return err
	}
	if at.After(v.clock) {
		v.clock = at
	}
	return nil
}

// Depart starts a trip: Idle to Routing.
func (v *Vehicle) Depart() error {
	if err := v.phase.expect(Idle, "depart"); err != nil {
		return err
	}
	v.phase = Routing
	v.trips++
	v.departedAt = v.clock
	return nil
}

// Deliver drives distance to the parcel's address and drops it off.
// It returns the arrival clock, which is the parcel's delivery timestamp.
func (v *Vehicle) Deliver(parcelID int, distance float64) (time.Time, error) {
	if err := v.phase.expect(Routing, "deliver"); err != nil {
		return time.Time{}, err
	}
	idx := slices.IndexFunc(v.load, func(c Cargo) bool { return c.ParcelID == parcelID })
	if idx < 0 {
		return time.Time{}, fmt.Errorf("vehicle %d, parcel %d: %w", v.id, parcelID, ErrCargoNotFound)
	}
	if err := v.drive(distance); err != nil {
		return time.Time{}, err
	}

	v.location = v.load[idx].Address
	v.load = slices.Delete(v.load, idx, idx+1)
	return v.clock, nil
}

// StartReturn ends the delivery loop: Routing to ReturningHome.
// Undelivered cargo stays on board.
func (v *Vehicle) StartReturn() error {
	if err := v.phase.expect(Routing, "return"); err != nil {
		return err
	}
	v.phase = ReturningHome
	return nil
}

// ArriveHome drives distance back to the hub: ReturningHome to Done.
func (v *Vehicle) ArriveHome(distance float64) error {
	if err := v.phase.expect(ReturningHome, "arrive home"); err != nil {
		return err
	}
	if err := v.drive(distance); err != nil {
		return err
	}
	v.location = v.hub
	v.phase = Done
	return nil
}

// Strand finishes the trip where the vehicle is, used when no route to the
// hub is known. Mileage and clock are unchanged.
func (v *Vehicle) Strand() error {
	if err := v.phase.expect(ReturningHome, "strand"); err != nil {
		return err
	}
	v.phase = Done
	return nil
}

// NextTrip makes a Done vehicle available for reloading. The vehicle must be
// back at the hub with an empty load-set.
func (v *Vehicle) NextTrip() error {
	if err := v.phase.expect(Done, "start a new trip"); err != nil {
		return err
	}
	if !v.IsAtHub() || !v.IsEmpty() {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle",
			fmt.Errorf("vehicle %d must be empty at the hub to start a new trip", v.id),
		)
	}
	v.phase = Idle
	return nil
}

func (v *Vehicle) drive(distance float64) error {
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is not a finite non-negative number", distance))
	}
	v.mileage += distance
	v.clock = v.clock.Add(kernel.TravelTime(distance, v.speed))
	return nil
}

func (v *Vehicle) carries(parcelID int) bool {
	return slices.ContainsFunc(v.load, func(c Cargo) bool { return c.ParcelID == parcelID })
}

func (v *Vehicle) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	v.id = id
	return nil
}

func (v *Vehicle) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	v.capacity = capacity
	v.load = make([]Cargo, 0, capacity)
	return nil
}

func (v *Vehicle) setSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return errs.NewValueIsInvalidErrorWithCause("speed", fmt.Errorf("%v is not a finite positive number", speed))
	}
	v.speed = speed
	return nil
}

func (v *Vehicle) setHub(hub kernel.Address) error {
	if hub.IsEmpty() {
		return errs.NewValueIsRequiredError("hub")
	}
	v.hub = hub
	v.location = hub
	return nil
}
