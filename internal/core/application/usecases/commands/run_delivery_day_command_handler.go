package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RunDeliveryDayCommandHandler loads the manifest, plans and simulates the day
// and stores the resulting report.
//
// Sequencing:
//   - one planning pass over the whole fleet
//   - the first DriverCount vehicles are simulated in parallel
//   - every other vehicle departs when the earliest driver is back, after a
//     planning pass restricted to it
//   - returned vehicles are reloaded while parcels remain, up to MaxTrips each
//
// Planning shortfalls and aborted routes do not fail the command; they end up
// in the report. Errors are returned for unreadable input, broken invariants
// and persistence failures.
//
// Example:
//
//	handler, err := NewRunDeliveryDayCommandHandler(fleet, loader, stores, uowFactory, sink, logger)
//	if err != nil {
//	    return err
//	}
//	cmd, _ := NewRunDeliveryDayCommand(time.Now())
//	report, err := handler.Handle(ctx, cmd)
type RunDeliveryDayCommandHandler struct {
	fleet      FleetConfig
	loader     ports.ManifestLoader
	stores     ParcelStoreFactory
	uowFactory RunUoWFactory
	sink       services.EventSink
	logger     *slog.Logger
	now        func() time.Time
}

// NewRunDeliveryDayCommandHandler validates the fleet and wires the handler.
// uowFactory may be nil, in which case reports are not persisted.
func NewRunDeliveryDayCommandHandler(
	fleet FleetConfig,
	loader ports.ManifestLoader,
	stores ParcelStoreFactory,
	uowFactory RunUoWFactory,
	sink services.EventSink,
	logger *slog.Logger,
) (*RunDeliveryDayCommandHandler, error) {
	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	if loader == nil {
		return nil, errs.NewValueIsRequiredError("loader")
	}
	if stores == nil {
		return nil, errs.NewValueIsRequiredError("stores")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RunDeliveryDayCommandHandler{
		fleet:      fleet,
		loader:     loader,
		stores:     stores,
		uowFactory: uowFactory,
		sink:       sink,
		logger:     logger.With("component", "run_delivery_day"),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (h *RunDeliveryDayCommandHandler) Handle(ctx context.Context, command RunDeliveryDayCommand) (*services.DayReport, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	runID := kernel.NewUUID()
	startedAt := h.now()
	logger := h.logger.With("run", runID.String())

	departure, err := kernel.ParseClock(h.fleet.DepartureClock, command.Day())
	if err != nil {
		return nil, err
	}

	manifest, err := h.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	store := h.stores.Create()
	for _, p := range manifest.Parcels {
		if err = store.Add(p); err != nil {
			return nil, fmt.Errorf("add parcel %d: %w", p.ID(), err)
		}
	}

	vehicles, err := h.buildFleet(departure)
	if err != nil {
		return nil, err
	}

	run := &fleetRun{
		planner:   services.NewPlanner(h.fleet.GroupPolicy, h.sink),
		simulator: services.NewRouteSimulator(manifest.Graph, h.sink),
		store:     store,
		vehicles:  vehicles,
		drivers:   newDriverPool(h.fleet.DriverCount, departure),
		maxTrips:  h.fleet.MaxTrips,
		logger:    logger,
	}
	routes, err := run.execute(ctx)
	if err != nil {
		return nil, err
	}

	report := services.NewDayReport(runID, startedAt, departure, store.All(), vehicles, routes)
	if err = h.persist(ctx, report); err != nil {
		return nil, fmt.Errorf("persist run %s: %w", runID, err)
	}

	logger.InfoContext(ctx, "delivery day finished",
		"delivered", report.Delivered(),
		"parcels", len(report.Parcels),
		"unassigned", len(report.Unassigned),
		"late", len(report.Late()),
		"aborts", len(report.Aborts),
		"mileage", report.TotalMileage,
	)
	return report, nil
}

func (h *RunDeliveryDayCommandHandler) buildFleet(departure time.Time) ([]*vehicle.Vehicle, error) {
	vehicles := make([]*vehicle.Vehicle, 0, h.fleet.VehicleCount)
	for id := 1; id <= h.fleet.VehicleCount; id++ {
		v, err := vehicle.NewVehicle(id, h.fleet.Capacity, h.fleet.Speed, h.fleet.Hub, departure)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (h *RunDeliveryDayCommandHandler) persist(ctx context.Context, report *services.DayReport) error {
	if h.uowFactory == nil {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RunRepository().Add(ctx, report); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
