package parcel

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not built by NewParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Details carries descriptive fields that play no part in planning or routing.
type Details struct {
	City  string
	State string
	Zip   string
	Note  string
}

// Parcel is a single delivery package.
//
// Identity, address, deadline, weight and co-delivery group are fixed at
// ingestion. Status and the delivery timestamp change exactly once each:
// to EnRoute when loaded and to Delivered when dropped off.
//
// Business rules:
//   - id and weight must be positive
//   - groupWith never contains the parcel's own id and is kept sorted
//   - a parcel is owned by at most one vehicle until delivered
//
// Example:
//
//	deadline, _ := kernel.ParseDeadline("10:30 AM")
//	p, err := parcel.NewParcel(14, addr, deadline, 88, []int{15, 19}, parcel.Details{})
//	if err != nil {
//	    return err
//	}
//	_ = p.Load(1)
type Parcel struct {
	id          int
	address     kernel.Address
	deadline    kernel.Deadline
	weight      float64
	groupWith   []int
	details     Details
	status      Status
	vehicleID   int
	deliveredAt *time.Time
	guard       guard.ConstructorGuard
}

// NewParcel builds a parcel in the AtHub status. Validation failures are
// joined so that ingestion can report every problem of a row at once.
func NewParcel(
	id int,
	address kernel.Address,
	deadline kernel.Deadline,
	weight float64,
	groupWith []int,
	details Details,
) (*Parcel, error) {
	p := &Parcel{
		deadline: deadline,
		details:  details,
		status:   AtHub,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setAddress(address),
		p.setWeight(weight),
	); err != nil {
		return nil, err
	}
	p.setGroupWith(groupWith)

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() int {
	return p.id
}

func (p *Parcel) Address() kernel.Address {
	return p.address
}

func (p *Parcel) Deadline() kernel.Deadline {
	return p.deadline
}

func (p *Parcel) Weight() float64 {
	return p.weight
}

// GroupWith returns the ids declared as co-delivery partners on this parcel.
// The relation may be one-sided; the planner treats it as symmetric.
func (p *Parcel) GroupWith() []int {
	return slices.Clone(p.groupWith)
}

func (p *Parcel) Details() Details {
	return p.details
}

func (p *Parcel) Status() Status {
	return p.status
}

// VehicleID returns the vehicle the parcel was loaded on, or 0.
func (p *Parcel) VehicleID() int {
	return p.vehicleID
}

// DeliveredAt returns the delivery clock and whether the parcel was delivered.
func (p *Parcel) DeliveredAt() (time.Time, bool) {
	if p.deliveredAt == nil {
		return time.Time{}, false
	}
	return *p.deliveredAt, true
}

// OnTime reports whether the parcel was delivered within its deadline.
// Undelivered parcels are never on time.
func (p *Parcel) OnTime() bool {
	at, ok := p.DeliveredAt()
	return ok && p.deadline.Met(at)
}

// Load marks the parcel EnRoute on the given vehicle.
func (p *Parcel) Load(vehicleID int) error {
	if vehicleID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("vehicleID", fmt.Errorf("%d is not greater than 0", vehicleID))
	}
	next, err := p.status.Load()
	if err != nil {
		return fmt.Errorf("parcel %d: %w", p.id, err)
	}
	p.status = next
	p.vehicleID = vehicleID
	return nil
}

// Deliver marks the parcel Delivered at the given clock.
func (p *Parcel) Deliver(at time.Time) error {
	next, err := p.status.Deliver()
	if err != nil {
		return fmt.Errorf("parcel %d: %w", p.id, err)
	}
	p.status = next
	p.deliveredAt = &at
	return nil
}

// Clone returns an independent snapshot safe to hand to other goroutines.
func (p *Parcel) Clone() *Parcel {
	c := *p
	c.groupWith = slices.Clone(p.groupWith)
	if p.deliveredAt != nil {
		at := *p.deliveredAt
		c.deliveredAt = &at
	}
	return &c
}

func (p *Parcel) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	p.id = id
	return nil
}

func (p *Parcel) setAddress(address kernel.Address) error {
	if address.IsEmpty() {
		return errs.NewValueIsRequiredError("address")
	}
	p.address = address
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	p.weight = weight
	return nil
}

func (p *Parcel) setGroupWith(ids []int) {
	group := make([]int, 0, len(ids))
	for _, id := range ids {
		if id > 0 && id != p.id && !slices.Contains(group, id) {
			group = append(group, id)
		}
	}
	slices.Sort(group)
	p.groupWith = group
}
