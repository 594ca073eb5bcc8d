package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"
)

// DistanceFinder answers point-to-point distance queries. *graph.Graph satisfies it.
type DistanceFinder interface {
	Distance(a, b kernel.Address) (float64, error)
}

// DeliveryRecorder receives the EnRoute to Delivered transition of each parcel.
// ports.ParcelStore satisfies it.
type DeliveryRecorder interface {
	MarkDelivered(id int, at time.Time) error
}

// Stop is one delivery made on a route.
type Stop struct {
	ParcelID    int
	Address     kernel.Address
	Distance    float64
	DeliveredAt time.Time
}

// RouteReport summarises a single trip of one vehicle.
type RouteReport struct {
	VehicleID      int
	Trip           int
	DepartedAt     time.Time
	ReturnedAt     time.Time
	Stops          []Stop
	ReturnDistance float64
	// TripMileage is the distance driven on this trip, Mileage the vehicle total after it.
	TripMileage float64
	Mileage     float64
	// Aborted is set when the route ended early or the vehicle could not reach the hub.
	Aborted *RouteAbortedError
}

// Err returns Aborted as an error, or nil.
func (r *RouteReport) Err() error {
	if r.Aborted == nil {
		return nil
	}
	return r.Aborted
}

// RouteSimulator drives one vehicle through its load-set with the
// nearest-neighbour heuristic and brings it back to the hub.
//
// From the current location every parcel still on board is measured; the
// closest one is delivered next, and ties go to the parcel loaded first.
// A failed distance lookup only disqualifies that candidate. When every
// candidate fails the route is aborted and the vehicle heads home with the
// rest of its cargo.
//
// The graph is read-only and may be shared by simulations running in
// parallel; each simulation owns its vehicle.
type RouteSimulator struct {
	distances DistanceFinder
	sink      EventSink
}

func NewRouteSimulator(distances DistanceFinder, sink EventSink) *RouteSimulator {
	return &RouteSimulator{distances: distances, sink: sinkOrNop(sink)}
}

// Simulate runs a full trip: Idle, Routing, ReturningHome, Done.
//
// Returns:
//   - *RouteReport: stops, times and mileage; Aborted is set for a degraded route
//   - error: only for broken invariants (vehicle not Idle, double delivery) or a
//     cancelled context, checked between deliveries
func (s *RouteSimulator) Simulate(ctx context.Context, v *vehicle.Vehicle, recorder DeliveryRecorder) (*RouteReport, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	startMileage := v.Mileage()
	if err := v.Depart(); err != nil {
		return nil, err
	}

	report := &RouteReport{VehicleID: v.ID(), Trip: v.Trips(), DepartedAt: v.DepartedAt()}
	s.sink.Emit(Event{
		Kind:      EventVehicleDeparted,
		VehicleID: v.ID(),
		ParcelIDs: cargoIDs(v.Cargo()),
		From:      v.Location(),
		Clock:     v.Clock(),
		Mileage:   v.Mileage(),
	})

	for !v.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", v.ID(), err)
		}

		next, distance, failures := s.nearest(v)
		if next == nil {
			report.Aborted = &RouteAbortedError{
				VehicleID:    v.ID(),
				Trip:         v.Trips(),
				Undelivered:  cargoIDs(v.Cargo()),
				LastLocation: v.Location(),
				Cause:        errors.Join(failures...),
			}
			s.sink.Emit(Event{
				Kind:      EventRouteAborted,
				VehicleID: v.ID(),
				ParcelIDs: report.Aborted.Undelivered,
				From:      v.Location(),
				Clock:     v.Clock(),
				Err:       report.Aborted.Cause,
			})
			break
		}
		for _, f := range failures {
			s.sink.Emit(Event{Kind: EventCandidateUnreachable, VehicleID: v.ID(), From: v.Location(), Err: f})
		}

		from := v.Location()
		at, err := v.Deliver(next.ParcelID, distance)
		if err != nil {
			return nil, err
		}
		if err = recorder.MarkDelivered(next.ParcelID, at); err != nil {
			return nil, fmt.Errorf("record delivery of parcel %d: %w", next.ParcelID, err)
		}

		report.Stops = append(report.Stops, Stop{
			ParcelID:    next.ParcelID,
			Address:     next.Address,
			Distance:    distance,
			DeliveredAt: at,
		})
		s.sink.Emit(Event{
			Kind:      EventParcelDelivered,
			VehicleID: v.ID(),
			ParcelIDs: []int{next.ParcelID},
			From:      from,
			To:        next.Address,
			Distance:  distance,
			Clock:     at,
			Mileage:   v.Mileage(),
		})
	}

	if err := s.returnHome(v, report); err != nil {
		return nil, err
	}

	report.ReturnedAt = v.Clock()
	report.Mileage = v.Mileage()
	report.TripMileage = v.Mileage() - startMileage
	return report, nil
}

// nearest picks the closest cargo from the vehicle's location. It returns nil
// when no candidate is reachable, along with every lookup failure seen.
func (s *RouteSimulator) nearest(v *vehicle.Vehicle) (*vehicle.Cargo, float64, []error) {
	var (
		best     *vehicle.Cargo
		bestDist float64
		failures []error
	)

	cargo := v.Cargo()
	for i := range cargo {
		d, err := s.distances.Distance(v.Location(), cargo[i].Address)
		if err != nil {
			failures = append(failures, fmt.Errorf("parcel %d: %w", cargo[i].ParcelID, err))
			continue
		}
		if best == nil || d < bestDist {
			best = &cargo[i]
			bestDist = d
		}
	}

	return best, bestDist, failures
}

func (s *RouteSimulator) returnHome(v *vehicle.Vehicle, report *RouteReport) error {
	if err := v.StartReturn(); err != nil {
		return err
	}

	from := v.Location()
	distance := 0.0
	if !v.IsAtHub() {
		d, err := s.distances.Distance(from, v.Hub())
		if err != nil {
			return s.strand(v, report, err)
		}
		distance = d
	}

	if err := v.ArriveHome(distance); err != nil {
		return err
	}
	report.ReturnDistance = distance
	s.sink.Emit(Event{
		Kind:      EventVehicleReturned,
		VehicleID: v.ID(),
		From:      from,
		To:        v.Hub(),
		Distance:  distance,
		Clock:     v.Clock(),
		Mileage:   v.Mileage(),
	})
	return nil
}

func (s *RouteSimulator) strand(v *vehicle.Vehicle, report *RouteReport, cause error) error {
	if err := v.Strand(); err != nil {
		return err
	}

	cause = fmt.Errorf("return to hub: %w", cause)
	if report.Aborted == nil {
		report.Aborted = &RouteAbortedError{
			VehicleID:    v.ID(),
			Trip:         v.Trips(),
			Undelivered:  cargoIDs(v.Cargo()),
			LastLocation: v.Location(),
			Cause:        cause,
		}
	} else {
		report.Aborted.Cause = errors.Join(report.Aborted.Cause, cause)
	}
	report.Aborted.Stranded = true

	s.sink.Emit(Event{
		Kind:      EventVehicleStranded,
		VehicleID: v.ID(),
		From:      v.Location(),
		To:        v.Hub(),
		Clock:     v.Clock(),
		Mileage:   v.Mileage(),
		Err:       cause,
	})
	return nil
}

func cargoIDs(cargo []vehicle.Cargo) []int {
	ids := make([]int, 0, len(cargo))
	for _, c := range cargo {
		ids = append(ids, c.ParcelID)
	}
	return ids
}
