package cmd

import (
	"log/slog"
	"time"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateCouriersCommandHandler() *commands.CreateCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateCouriersCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() *commands.CreateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrdersCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() *commands.UpdateCourierCommandHandler {
	h := commands.NewUpdateCourierCommandHandler(c.uowFactoryFunc())
	return &h
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() *commands.AssignOrdersCommandHandler {
	h := commands.NewAssignOrdersCommandHandler(c.uowFactoryFunc(), time.Now)
	return &h
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() *commands.CompleteOrderCommandHandler {
	h := commands.NewCompleteOrderCommandHandler(c.uowFactoryFunc())
	return &h
}

func (c *CompositionRoot) CreateGetCourierQueryHandler() queries.GetCourierQueryHandler {
	return queries.NewGetCourierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPoolStatsQueryHandler() queries.GetPoolStatsQueryHandler {
	return queries.NewGetPoolStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateCouriers: c.CreateCreateCouriersCommandHandler(),
		UpdateCourier:  c.CreateUpdateCourierCommandHandler(),
		GetCourier:     c.CreateGetCourierQueryHandler(),
		CreateOrders:   c.CreateCreateOrdersCommandHandler(),
		AssignOrders:   c.CreateAssignOrdersCommandHandler(),
		CompleteOrder:  c.CreateCompleteOrderCommandHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateRouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		RateLimit: c.config.RateLimitPerSecond,
		Logger:    c.logger,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetPoolStatsQueryHandler(), c.config.PoolReportSchedule, c.logger)
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
