package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/in/csvload"
	"dispatch/internal/adapters/out/eventlog"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	sinks      []services.EventSink
}

// NewCompositionRoot wires the adapters. gormDB may be nil; runs are then
// simulated without being stored and the query handlers are unavailable.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{configs: configs, gormDB: gormDB, logger: logger}
	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}
	return root
}

// AddEventSink registers a sink that receives every event next to the log.
func (c *CompositionRoot) AddEventSink(sink services.EventSink) {
	c.sinks = append(c.sinks, sink)
}

func (c *CompositionRoot) CreateRunDeliveryDayCommandHandler() (*commands.RunDeliveryDayCommandHandler, error) {
	fleet, err := c.configs.Fleet()
	if err != nil {
		return nil, err
	}
	loader, err := csvload.NewLoader(c.configs.PackagesCSV, c.configs.DistancesCSV, fleet.Hub, c.logger)
	if err != nil {
		return nil, err
	}

	var stores commands.ParcelStoreFactory = FuncParcelStoreFactory(func() ports.ParcelStore {
		return memory.NewParcelStore()
	})

	var uowFactory commands.RunUoWFactory
	if c.uowFactory != nil {
		uowFactory = FuncRunUoWFactory(func() commands.RunUoW {
			return c.uowFactory.Create()
		})
	}

	sink := append(services.Fanout{eventlog.NewSink(c.logger)}, c.sinks...)
	return commands.NewRunDeliveryDayCommandHandler(
		fleet,
		loader,
		stores,
		uowFactory,
		sink,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetRunSummaryQueryHandler() queries.GetRunSummaryQueryHandler {
	return queries.NewGetRunSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRunParcelsQueryHandler() queries.GetRunParcelsQueryHandler {
	return queries.NewGetRunParcelsQueryHandler(c.gormDB)
}

type FuncRunUoWFactory func() commands.RunUoW

func (f FuncRunUoWFactory) Create() commands.RunUoW {
	return f()
}

type FuncParcelStoreFactory func() ports.ParcelStore

func (f FuncParcelStoreFactory) Create() ports.ParcelStore {
	return f()
}
