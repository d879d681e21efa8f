package cmd

import (
	"log/slog"

	"freightquote/internal/adapters/out/postgres"
	"freightquote/internal/adapters/out/postgres/refrepo"
	"freightquote/internal/core/application/usecases/commands"
	"freightquote/internal/core/application/usecases/queries"
	"freightquote/internal/core/domain/services"
	"freightquote/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	jobManager *jobs.JobManager
	resolver   services.LocationResolver
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	referenceRepo := refrepo.NewGormReferenceRepository(gormDB)

	cronSpec := config.SnapshotRefreshCron
	if cronSpec == "" {
		cronSpec = "0 */5 * * * *"
	}

	resolverConfig := services.DefaultResolverConfig()
	if config.RedispatchHubCity != "" {
		resolverConfig.HubCity = config.RedispatchHubCity
		resolverConfig.HubState = config.RedispatchHubState
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		jobManager: jobs.NewJobManager(referenceRepo, cronSpec, logger),
		resolver:   services.NewLocationResolver(resolverConfig),
	}
}

// JobManager returns the manager owning the snapshot refresh schedule.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

func (c *CompositionRoot) CreatePersistDestinationCommandHandler() commands.PersistDestinationCommandHandler {
	var f commands.OrderLineUoWFactory = FuncOrderLineUoWFactory(func() commands.OrderLineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPersistDestinationCommandHandler(f, c.jobManager.SnapshotProvider(), c.resolver)
}

func (c *CompositionRoot) CreateQuoteOrdersQueryHandler(logger *slog.Logger) queries.QuoteOrdersQueryHandler {
	shopper := services.NewRateShopper(
		c.resolver,
		services.NewBindingIndex(),
		services.NewFeeCalculator(),
		services.NewVehicleCapacityFilter(nil),
		services.NewOrderGrouper(),
		logger,
	)
	return queries.NewQuoteOrdersQueryHandler(c.jobManager.SnapshotProvider(), shopper)
}

func (c *CompositionRoot) CreateDeliveryEstimateQueryHandler() queries.DeliveryEstimateQueryHandler {
	return queries.NewDeliveryEstimateQueryHandler(
		c.jobManager.SnapshotProvider(),
		c.resolver,
		services.NewBindingIndex(),
		services.NewLeadTimeCalculator(),
	)
}

type FuncOrderLineUoWFactory func() commands.OrderLineUoW

func (f FuncOrderLineUoWFactory) Create() commands.OrderLineUoW {
	return f()
}
