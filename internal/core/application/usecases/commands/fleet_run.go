package commands

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// fleetRun sequences one day. The first wave of vehicles leaves together and
// held-back vehicles wait for a driver to return. Afterwards returned vehicles
// are reloaded while parcels remain and their trip budget allows.
type fleetRun struct {
	planner   *services.Planner
	simulator *services.RouteSimulator
	store     ports.ParcelStore
	vehicles  []*vehicle.Vehicle
	drivers   *driverPool
	maxTrips  int
	logger    *slog.Logger

	mu     sync.Mutex
	routes []services.RouteReport
}

func (r *fleetRun) execute(ctx context.Context) ([]services.RouteReport, error) {
	if _, err := r.plan(r.vehicles); err != nil {
		return nil, err
	}

	wave := min(r.drivers.size(), len(r.vehicles))
	if err := r.firstWave(ctx, r.vehicles[:wave]); err != nil {
		return nil, err
	}
	for _, v := range r.vehicles[wave:] {
		if err := r.heldBack(ctx, v); err != nil {
			return nil, err
		}
	}
	if err := r.reuse(ctx); err != nil {
		return nil, err
	}

	slices.SortFunc(r.routes, func(a, b services.RouteReport) int {
		if a.VehicleID != b.VehicleID {
			return a.VehicleID - b.VehicleID
		}
		return a.Trip - b.Trip
	})
	return r.routes, nil
}

// firstWave simulates the loaded vehicles of the first wave in parallel.
// Vehicle i is driven by driver i.
func (r *fleetRun) firstWave(ctx context.Context, wave []*vehicle.Vehicle) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, v := range wave {
		if v.IsEmpty() {
			continue
		}
		g.Go(func() error {
			return r.simulate(gctx, v)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, v := range wave {
		if v.Trips() > 0 {
			r.drivers.release(i, v)
		}
	}
	return nil
}

// heldBack waits for the earliest free driver, tops the vehicle up with what
// is still at the hub and sends it out.
func (r *fleetRun) heldBack(ctx context.Context, v *vehicle.Vehicle) error {
	driver, freeAt, ok := r.drivers.earliest()
	if !ok {
		r.logger.WarnContext(ctx, "no driver left for held-back vehicle",
			"vehicle", v.ID(), "cargo", len(v.Cargo()))
		return nil
	}
	if err := v.DepartAt(freeAt); err != nil {
		return err
	}
	if _, err := r.plan([]*vehicle.Vehicle{v}); err != nil {
		return err
	}
	if v.IsEmpty() {
		return nil
	}

	if err := r.simulate(ctx, v); err != nil {
		return err
	}
	r.drivers.release(driver, v)
	return nil
}

// reuse sends returned vehicles out again, earliest back first, while
// parcels wait at the hub and a vehicle can still take them.
func (r *fleetRun) reuse(ctx context.Context) error {
	for r.atHub() > 0 {
		v := r.nextReusable()
		if v == nil {
			return nil
		}
		driver, freeAt, ok := r.drivers.earliest()
		if !ok {
			return nil
		}

		if v.Phase() == vehicle.Done {
			if err := v.NextTrip(); err != nil {
				return err
			}
		}
		if err := v.DepartAt(freeAt); err != nil {
			return err
		}

		loaded, err := r.plan([]*vehicle.Vehicle{v})
		if err != nil {
			return err
		}
		if loaded == 0 {
			r.logger.InfoContext(ctx, "parcels left at hub cannot be loaded",
				"vehicle", v.ID(), "remaining", r.atHub())
			return nil
		}

		if err = r.simulate(ctx, v); err != nil {
			return err
		}
		r.drivers.release(driver, v)
	}
	return nil
}

func (r *fleetRun) nextReusable() *vehicle.Vehicle {
	var best *vehicle.Vehicle
	for _, v := range r.vehicles {
		if !v.IsAtHub() || !v.IsEmpty() || v.Trips() >= r.maxTrips {
			continue
		}
		if v.Phase() != vehicle.Done && v.Phase() != vehicle.Idle {
			continue
		}
		if best == nil || v.Clock().Before(best.Clock()) {
			best = v
		}
	}
	return best
}

// plan runs a planning pass over vehicles and returns how many parcels it loaded.
func (r *fleetRun) plan(vehicles []*vehicle.Vehicle) (int, error) {
	assignment, err := r.planner.Plan(r.store.All(), vehicles, r.store)
	if err != nil {
		return 0, err
	}
	if shortfall := assignment.Shortfall(); shortfall != nil {
		r.logger.Info("planning pass left parcels at hub", "vehicles", len(vehicles), "reason", shortfall.Error())
	}
	return assignment.Assigned(), nil
}

func (r *fleetRun) simulate(ctx context.Context, v *vehicle.Vehicle) error {
	report, err := r.simulator.Simulate(ctx, v, r.store)
	if err != nil {
		return err
	}
	if report.Aborted != nil {
		r.logger.WarnContext(ctx, "route aborted", "vehicle", v.ID(), "error", report.Aborted)
	}

	r.mu.Lock()
	r.routes = append(r.routes, *report)
	r.mu.Unlock()
	return nil
}

func (r *fleetRun) atHub() int {
	n := 0
	for _, p := range r.store.All() {
		if p.Status() == parcel.AtHub {
			n++
		}
	}
	return n
}

// driverPool tracks when each driver is back at the hub. A driver whose
// vehicle is stranded away from the hub is gone for the day.
type driverPool struct {
	freeAt []time.Time
	gone   []bool
}

func newDriverPool(count int, departure time.Time) *driverPool {
	p := &driverPool{freeAt: make([]time.Time, count), gone: make([]bool, count)}
	for i := range p.freeAt {
		p.freeAt[i] = departure
	}
	return p
}

func (p *driverPool) size() int {
	return len(p.freeAt)
}

// earliest returns the driver that is free first.
func (p *driverPool) earliest() (int, time.Time, bool) {
	best := -1
	for i, at := range p.freeAt {
		if p.gone[i] {
			continue
		}
		if best < 0 || at.Before(p.freeAt[best]) {
			best = i
		}
	}
	if best < 0 {
		return 0, time.Time{}, false
	}
	return best, p.freeAt[best], true
}

func (p *driverPool) release(driver int, v *vehicle.Vehicle) {
	if !v.IsAtHub() {
		p.gone[driver] = true
		return
	}
	p.freeAt[driver] = v.Clock()
}
