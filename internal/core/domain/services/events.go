package services

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// EventKind names a planning or routing step.
type EventKind string

const (
	EventParcelAssigned       EventKind = "parcel_assigned"
	EventGroupAssigned        EventKind = "group_assigned"
	EventGroupSkipped         EventKind = "group_skipped"
	EventCapacityExceeded     EventKind = "capacity_exceeded"
	EventPlanningHalted       EventKind = "planning_halted"
	EventVehicleDeparted      EventKind = "vehicle_departed"
	EventCandidateUnreachable EventKind = "candidate_unreachable"
	EventParcelDelivered      EventKind = "parcel_delivered"
	EventRouteAborted         EventKind = "route_aborted"
	EventVehicleReturned      EventKind = "vehicle_returned"
	EventVehicleStranded      EventKind = "vehicle_stranded"
)

// Event is one entry of the trace stream. Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	VehicleID int
	ParcelIDs []int
	From      kernel.Address
	To        kernel.Address
	Distance  float64
	Clock     time.Time
	Mileage   float64
	Err       error
}

// EventSink consumes trace events. Implementations must be safe for
// concurrent use: vehicles are simulated in parallel.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) {
	f(e)
}

// NopSink discards every event.
var NopSink EventSink = EventSinkFunc(func(Event) {})

// Recorder keeps every emitted event in order of arrival.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfKind returns the recorded events of the given kind.
func (r *Recorder) OfKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Fanout forwards each event to every sink in order.
type Fanout []EventSink

func (f Fanout) Emit(e Event) {
	for _, s := range f {
		s.Emit(e)
	}
}

func sinkOrNop(s EventSink) EventSink {
	if s == nil {
		return NopSink
	}
	return s
}
