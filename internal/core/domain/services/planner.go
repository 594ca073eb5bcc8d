package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// GroupPolicy decides where a co-delivery group goes when the first vehicle
// with room cannot take all of it.
type GroupPolicy int

const (
	// GroupDefer skips the group for the current pass; a later pass may place it.
	GroupDefer GroupPolicy = iota
	// GroupNextFit tries the following vehicles, in order, before skipping.
	GroupNextFit
)

// ParseGroupPolicy accepts "defer" and "next-fit". An empty string is GroupDefer.
func ParseGroupPolicy(s string) (GroupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "defer":
		return GroupDefer, nil
	case "next-fit", "nextfit":
		return GroupNextFit, nil
	default:
		return GroupDefer, errs.NewValueIsInvalidErrorWithCause("group policy", fmt.Errorf("%q is not defer or next-fit", s))
	}
}

func (p GroupPolicy) String() string {
	if p == GroupNextFit {
		return "next-fit"
	}
	return "defer"
}

// LoadRecorder receives the AtHub to EnRoute transition of every parcel the
// planner places. ports.ParcelStore satisfies it.
type LoadRecorder interface {
	MarkLoaded(id, vehicleID int) error
}

// Assignment is the outcome of one planning pass.
type Assignment struct {
	// Loads maps vehicle id to the parcel ids loaded in this pass, in load order.
	Loads map[int][]int
	// Unassigned lists AtHub parcels left at the hub, ascending by id.
	Unassigned []int
	// SkippedGroups lists co-delivery groups that found no vehicle with room.
	SkippedGroups [][]int
	// Halted is set when every vehicle filled up before the candidates ran out.
	Halted bool
}

// Assigned returns how many parcels were loaded in this pass.
func (a *Assignment) Assigned() int {
	n := 0
	for _, ids := range a.Loads {
		n += len(ids)
	}
	return n
}

// Shortfall returns a *PlanningShortfallError when anything was left behind, nil otherwise.
func (a *Assignment) Shortfall() error {
	if len(a.Unassigned) == 0 {
		return nil
	}
	return &PlanningShortfallError{
		Unassigned:    slices.Clone(a.Unassigned),
		SkippedGroups: slices.Clone(a.SkippedGroups),
		Halted:        a.Halted,
	}
}

// Planner assigns parcels to vehicles: earliest deadline first, first vehicle
// with room, co-delivery groups all or nothing.
//
// Business rules:
//   - only AtHub parcels are candidates
//   - candidates are stable-sorted by kernel.CompareDeadlines, so EOD parcels
//     come last and equal deadlines keep input order
//   - the target vehicle is the first in list order with at least one free slot;
//     when none is left the pass halts
//   - a group is the transitive closure of the symmetric groupWith relation over
//     AtHub parcels; it is loaded onto a single vehicle or not at all
//
// Example usage:
//
//	planner := services.NewPlanner(services.GroupDefer, sink)
//	assignment, err := planner.Plan(store.All(), vehicles, store)
//	if err != nil {
//	    return err
//	}
//	if shortfall := assignment.Shortfall(); shortfall != nil {
//	    log.Warn("parcels left at hub", "err", shortfall)
//	}
type Planner struct {
	policy GroupPolicy
	sink   EventSink
}

func NewPlanner(policy GroupPolicy, sink EventSink) *Planner {
	return &Planner{policy: policy, sink: sinkOrNop(sink)}
}

// Plan runs one planning pass. Loaded parcels are appended to the vehicles'
// load-sets and recorded as EnRoute through recorder.
//
// Returns an error only for broken invariants (invalid vehicle, a store that
// rejects a transition). Parcels that do not fit are reported in the Assignment.
func (p *Planner) Plan(parcels []*parcel.Parcel, vehicles []*vehicle.Vehicle, recorder LoadRecorder) (*Assignment, error) {
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	candidates := make([]*parcel.Parcel, 0, len(parcels))
	for _, pc := range parcels {
		if err := pc.Validate(); err != nil {
			return nil, err
		}
		if pc.Status() == parcel.AtHub {
			candidates = append(candidates, pc)
		}
	}
	slices.SortStableFunc(candidates, func(a, b *parcel.Parcel) int {
		return kernel.CompareDeadlines(a.Deadline(), b.Deadline())
	})

	pass := &planningPass{
		planner:  p,
		recorder: recorder,
		groups:   newGroupIndex(candidates),
		settled:  make(map[int]bool, len(candidates)),
		loaded:   make(map[int]bool, len(candidates)),
		result:   &Assignment{Loads: make(map[int][]int)},
	}

	for _, pc := range candidates {
		if pass.settled[pc.ID()] {
			continue
		}

		target := firstWithRoom(vehicles, 1)
		if target == nil {
			pass.result.Halted = true
			p.sink.Emit(Event{Kind: EventPlanningHalted, ParcelIDs: []int{pc.ID()}})
			break
		}

		group := pass.groups.closure(pc, pass.settled)
		if len(group) == 1 {
			if err := pass.load(target, group); err != nil {
				return nil, err
			}
			continue
		}

		dest := target
		if dest.FreeCapacity() < len(group) {
			dest = nil
			if p.policy == GroupNextFit {
				dest = firstWithRoom(vehicles, len(group))
			}
		}
		if dest == nil {
			pass.skip(group, target)
			continue
		}
		if err := pass.load(dest, group); err != nil {
			return nil, err
		}
	}

	for _, pc := range candidates {
		if !pass.loaded[pc.ID()] {
			pass.result.Unassigned = append(pass.result.Unassigned, pc.ID())
		}
	}
	slices.Sort(pass.result.Unassigned)

	return pass.result, nil
}

type planningPass struct {
	planner  *Planner
	recorder LoadRecorder
	groups   groupIndex
	settled  map[int]bool
	loaded   map[int]bool
	result   *Assignment
}

func (s *planningPass) load(v *vehicle.Vehicle, group []*parcel.Parcel) error {
	ids := make([]int, 0, len(group))
	for _, pc := range group {
		s.settled[pc.ID()] = true

		err := v.Load(vehicle.Cargo{ParcelID: pc.ID(), Address: pc.Address()})
		if errors.Is(err, vehicle.ErrCapacityExceeded) {
			s.planner.sink.Emit(Event{Kind: EventCapacityExceeded, VehicleID: v.ID(), ParcelIDs: []int{pc.ID()}, Err: err})
			continue
		}
		if err != nil {
			return err
		}
		if err = s.recorder.MarkLoaded(pc.ID(), v.ID()); err != nil {
			return fmt.Errorf("record load of parcel %d on vehicle %d: %w", pc.ID(), v.ID(), err)
		}

		ids = append(ids, pc.ID())
		s.loaded[pc.ID()] = true
		s.result.Loads[v.ID()] = append(s.result.Loads[v.ID()], pc.ID())
	}

	kind := EventParcelAssigned
	if len(group) > 1 {
		kind = EventGroupAssigned
	}
	if len(ids) > 0 {
		s.planner.sink.Emit(Event{Kind: kind, VehicleID: v.ID(), ParcelIDs: ids, To: group[0].Address()})
	}
	return nil
}

func (s *planningPass) skip(group []*parcel.Parcel, target *vehicle.Vehicle) {
	ids := make([]int, 0, len(group))
	for _, pc := range group {
		s.settled[pc.ID()] = true
		ids = append(ids, pc.ID())
	}
	s.result.SkippedGroups = append(s.result.SkippedGroups, ids)
	s.planner.sink.Emit(Event{
		Kind:      EventGroupSkipped,
		VehicleID: target.ID(),
		ParcelIDs: ids,
		Err:       fmt.Errorf("group of %d does not fit %d free slot(s)", len(ids), target.FreeCapacity()),
	})
}

func firstWithRoom(vehicles []*vehicle.Vehicle, need int) *vehicle.Vehicle {
	for _, v := range vehicles {
		if v.Phase() == vehicle.Idle && v.FreeCapacity() >= need {
			return v
		}
	}
	return nil
}

// groupIndex holds the symmetric co-delivery relation between candidates.
// References to parcels outside the candidate set are dropped.
type groupIndex struct {
	byID      map[int]*parcel.Parcel
	order     map[int]int
	neighbors map[int][]int
}

func newGroupIndex(candidates []*parcel.Parcel) groupIndex {
	idx := groupIndex{
		byID:      make(map[int]*parcel.Parcel, len(candidates)),
		order:     make(map[int]int, len(candidates)),
		neighbors: make(map[int][]int),
	}
	for i, pc := range candidates {
		idx.byID[pc.ID()] = pc
		idx.order[pc.ID()] = i
	}
	for _, pc := range candidates {
		for _, other := range pc.GroupWith() {
			if _, ok := idx.byID[other]; !ok {
				continue
			}
			idx.link(pc.ID(), other)
			idx.link(other, pc.ID())
		}
	}
	return idx
}

func (g groupIndex) link(a, b int) {
	if !slices.Contains(g.neighbors[a], b) {
		g.neighbors[a] = append(g.neighbors[a], b)
	}
}

// closure returns start followed by every unsettled parcel reachable from it,
// the rest in candidate order.
func (g groupIndex) closure(start *parcel.Parcel, settled map[int]bool) []*parcel.Parcel {
	seen := map[int]bool{start.ID(): true}
	queue := []int{start.ID()}
	var members []int

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbors[id] {
			if seen[n] || settled[n] {
				continue
			}
			seen[n] = true
			members = append(members, n)
			queue = append(queue, n)
		}
	}

	slices.SortFunc(members, func(a, b int) int { return g.order[a] - g.order[b] })
	group := make([]*parcel.Parcel, 0, len(members)+1)
	group = append(group, start)
	for _, id := range members {
		group = append(group, g.byID[id])
	}
	return group
}
