package services

import (
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/vehicle"
)

// ParcelOutcome is the final state of one parcel at the end of a run.
type ParcelOutcome struct {
	ID          int
	Address     kernel.Address
	City        string
	Zip         string
	Weight      float64
	Deadline    kernel.Deadline
	GroupWith   []int
	Status      parcel.Status
	VehicleID   int
	DeliveredAt *time.Time
	OnTime      bool
}

// VehicleSummary is the final state of one vehicle at the end of a run.
type VehicleSummary struct {
	ID         int
	Trips      int
	Mileage    float64
	ReturnedAt time.Time
	Location   kernel.Address
	AtHub      bool
}

// AbortNotice is the persisted form of a RouteAbortedError.
type AbortNotice struct {
	VehicleID    int
	Trip         int
	Undelivered  []int
	LastLocation kernel.Address
	Stranded     bool
	Reason       string
}

// DayReport is everything presentation and persistence need about a run.
type DayReport struct {
	RunID        kernel.UUID
	StartedAt    time.Time
	Departure    time.Time
	Parcels      []ParcelOutcome
	Vehicles     []VehicleSummary
	Routes       []RouteReport
	TotalMileage float64
	Unassigned   []int
	Aborts       []AbortNotice
}

// NewDayReport snapshots parcels and vehicles after the last route has
// finished. Parcels are ordered by id, vehicles by id.
func NewDayReport(
	runID kernel.UUID,
	startedAt, departure time.Time,
	parcels []*parcel.Parcel,
	vehicles []*vehicle.Vehicle,
	routes []RouteReport,
) *DayReport {
	r := &DayReport{
		RunID:     runID,
		StartedAt: startedAt,
		Departure: departure,
		Parcels:   make([]ParcelOutcome, 0, len(parcels)),
		Vehicles:  make([]VehicleSummary, 0, len(vehicles)),
		Routes:    routes,
	}

	for _, p := range parcels {
		outcome := ParcelOutcome{
			ID:        p.ID(),
			Address:   p.Address(),
			City:      p.Details().City,
			Zip:       p.Details().Zip,
			Weight:    p.Weight(),
			Deadline:  p.Deadline(),
			GroupWith: p.GroupWith(),
			Status:    p.Status(),
			VehicleID: p.VehicleID(),
			OnTime:    p.OnTime(),
		}
		if at, ok := p.DeliveredAt(); ok {
			outcome.DeliveredAt = &at
		}
		if p.Status() == parcel.AtHub {
			r.Unassigned = append(r.Unassigned, p.ID())
		}
		r.Parcels = append(r.Parcels, outcome)
	}
	slices.SortFunc(r.Parcels, func(a, b ParcelOutcome) int { return a.ID - b.ID })
	slices.Sort(r.Unassigned)

	for _, v := range vehicles {
		r.Vehicles = append(r.Vehicles, VehicleSummary{
			ID:         v.ID(),
			Trips:      v.Trips(),
			Mileage:    v.Mileage(),
			ReturnedAt: v.Clock(),
			Location:   v.Location(),
			AtHub:      v.IsAtHub(),
		})
		r.TotalMileage += v.Mileage()
	}
	slices.SortFunc(r.Vehicles, func(a, b VehicleSummary) int { return a.ID - b.ID })

	for _, route := range routes {
		if route.Aborted == nil {
			continue
		}
		r.Aborts = append(r.Aborts, AbortNotice{
			VehicleID:    route.Aborted.VehicleID,
			Trip:         route.Aborted.Trip,
			Undelivered:  slices.Clone(route.Aborted.Undelivered),
			LastLocation: route.Aborted.LastLocation,
			Stranded:     route.Aborted.Stranded,
			Reason:       route.Aborted.Error(),
		})
	}

	return r
}

// Delivered returns how many parcels reached the Delivered status.
func (r *DayReport) Delivered() int {
	n := 0
	for _, p := range r.Parcels {
		if p.Status == parcel.Delivered {
			n++
		}
	}
	return n
}

// Late returns the ids of delivered parcels that missed their deadline.
func (r *DayReport) Late() []int {
	var ids []int
	for _, p := range r.Parcels {
		if p.Status == parcel.Delivered && !p.OnTime {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
