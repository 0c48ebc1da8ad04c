package http

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type CreateCouriersHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]int64, error)
}

type UpdateCourierHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateCourierCommand) (commands.CourierProfile, error)
}

type GetCourierHandler interface {
	Handle(ctx context.Context, query queries.GetCourierQuery) (queries.GetCourierQueryResponse, error)
}

type CreateOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]int64, error)
}

type AssignOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.Assignment, error)
}

type CompleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (int64, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateCouriers CreateCouriersHandler
	UpdateCourier  UpdateCourierHandler
	GetCourier     GetCourierHandler
	CreateOrders   CreateOrdersHandler
	AssignOrders   AssignOrdersHandler
	CompleteOrder  CompleteOrderHandler
}

// Server translates HTTP requests into commands and queries and renders
// their results.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers/:courier_id", s.GetCourier)
	e.PATCH("/couriers/:courier_id", s.UpdateCourier)

	e.POST("/orders", s.CreateOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.POST("/orders/complete", s.CompleteOrder)
}
