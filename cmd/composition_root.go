package cmd

import (
	"context"
	"log/slog"

	"quickdrop/internal/adapters/out/inmem"
	"quickdrop/internal/adapters/out/postgres"
	"quickdrop/internal/core/application/services"
	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/application/usecases/queries"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/principal"
	"quickdrop/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *inmem.TopicBus
	liveStatus *services.LiveStatusService
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        inmem.NewTopicBus(logger, inmem.DefaultSubscriberBuffer),
		logger:     logger,
	}
	root.liveStatus = services.NewLiveStatusService(root.orderAccessChecker())
	return root
}

func (c *CompositionRoot) EventBus() *inmem.TopicBus {
	return c.bus
}

func (c *CompositionRoot) LiveStatusService() *services.LiveStatusService {
	return c.liveStatus
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f, c.bus, c.liveStatus)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.bus, c.liveStatus)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f, c.bus, c.liveStatus)
}

func (c *CompositionRoot) CreateGetClaimableOrdersQueryHandler() queries.GetClaimableOrdersQueryHandler {
	return queries.NewGetClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerOrdersQueryHandler() queries.GetPartnerOrdersQueryHandler {
	return queries.NewGetPartnerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(statsSpec string) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetDashboardStatsQueryHandler(), c.bus, statsSpec, c.logger)
}

// orderAccessChecker resolves order-topic subscriptions against the store:
// the owning customer and the assigned partner may watch.
func (c *CompositionRoot) orderAccessChecker() services.OrderAccessCheckerFunc {
	return func(ctx context.Context, actor principal.Principal, orderID kernel.UUID) (bool, error) {
		repo := c.uowFactory.Create().OrderRepository()
		aggregate, err := repo.Get(ctx, orderID)
		if err != nil {
			return false, err
		}

		if actor.IsCustomer() && aggregate.CustomerID().IsEqual(actor.ID()) {
			return true, nil
		}
		if assigned := aggregate.AssignedPartner(); actor.IsPartner() && assigned != nil {
			return assigned.IsEqual(actor.ID()), nil
		}
		return false, nil
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
