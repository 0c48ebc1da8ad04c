package http_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateCouriersHandler struct{ mock.Mock }

func (m *MockCreateCouriersHandler) Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]int64, error) {
	args := m.Called(ctx, cmd)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockCreateOrdersHandler struct{ mock.Mock }

func (m *MockCreateOrdersHandler) Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]int64, error) {
	args := m.Called(ctx, cmd)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockUpdateCourierHandler struct{ mock.Mock }

func (m *MockUpdateCourierHandler) Handle(
	ctx context.Context,
	cmd commands.UpdateCourierCommand,
) (commands.CourierProfile, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CourierProfile), args.Error(1)
}

type MockGetCourierHandler struct{ mock.Mock }

func (m *MockGetCourierHandler) Handle(
	ctx context.Context,
	query queries.GetCourierQuery,
) (queries.GetCourierQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCourierQueryResponse), args.Error(1)
}

type MockAssignOrdersHandler struct{ mock.Mock }

func (m *MockAssignOrdersHandler) Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (commands.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.Assignment), args.Error(1)
}

type MockCompleteOrderHandler struct{ mock.Mock }

func (m *MockCompleteOrderHandler) Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}
