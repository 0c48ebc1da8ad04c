package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewUpdateCourierCommand(t *testing.T) {
	t.Run("parses_every_field", func(t *testing.T) {
		cmd, err := commands.NewUpdateCourierCommand(2, commands.CourierPatch{
			Type:         ptr("bike"),
			Regions:      ptr([]int{3, 4}),
			WorkingHours: ptr([]string{"10:00-12:00"}),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), cmd.CourierID())
		courierType, ok := cmd.CourierType()
		assert.True(t, ok)
		assert.Equal(t, courier.Bike, courierType)
		regions, ok := cmd.Regions()
		assert.True(t, ok)
		assert.Equal(t, []int{3, 4}, regions)
		hours, ok := cmd.WorkingHours()
		assert.True(t, ok)
		require.Len(t, hours, 1)
		assert.Equal(t, "10:00-12:00", hours[0].String())
	})

	t.Run("absent_fields_are_untouched", func(t *testing.T) {
		cmd, err := commands.NewUpdateCourierCommand(2, commands.CourierPatch{})

		require.NoError(t, err)
		_, ok := cmd.CourierType()
		assert.False(t, ok)
		_, ok = cmd.Regions()
		assert.False(t, ok)
		_, ok = cmd.WorkingHours()
		assert.False(t, ok)
	})

	t.Run("reports_all_invalid_fields", func(t *testing.T) {
		_, err := commands.NewUpdateCourierCommand(0, commands.CourierPatch{
			Type:         ptr("plane"),
			Regions:      ptr([]int{0}),
			WorkingHours: ptr([]string{"25:00-26:00"}),
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "courier_id")
		assert.Contains(t, err.Error(), "courier_type")
		assert.Contains(t, err.Error(), "regions")
		assert.Contains(t, err.Error(), "time range")
	})

	t.Run("null_list_is_rejected", func(t *testing.T) {
		_, err := commands.NewUpdateCourierCommand(1, commands.CourierPatch{Regions: new([]int)})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUpdateCourierCommandHandler_Handle_EvictsOrdersOverCapacity(t *testing.T) {
	ctx := t.Context()

	// Given a car courier carrying 14 kg
	c := newCourier(t, 2, courier.Car, []int{1, 12}, "09:00-18:00")
	light := batchedOrder(t, c, 10, "6", 1, "10:00-11:00")
	heavy := batchedOrder(t, c, 11, "8", 12, "10:00-11:00")

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("GetForUpdate", ctx, int64(2)).Return(c, nil).Once(),
		orderRepo.On("ListIncompleteInDelivery", ctx, int64(2)).Return([]*order.Order{light, heavy}, nil).Once(),
		orderRepo.On("Detach", ctx, []*order.Order{heavy}).Return(nil).Once(),
		courierRepo.On("Update", ctx, c).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewUpdateCourierCommand(2, commands.CourierPatch{Type: ptr("foot")})
	require.NoError(t, err)

	// When
	h := commands.NewUpdateCourierCommandHandler(factory)
	profile, err := h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, commands.CourierProfile{
		CourierID:    2,
		CourierType:  "foot",
		Regions:      []int{1, 12},
		WorkingHours: []string{"09:00-18:00"},
	}, profile)
	assert.True(t, decimal.NewFromInt(6).Equal(c.AssignedWeight()))
	assert.Equal(t, order.Unassigned, heavy.Status())
	assert.Equal(t, order.Assigned, light.Status())
	uow.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateCourierCommandHandler_Handle_RegionsAndHours(t *testing.T) {
	ctx := t.Context()

	// Given
	c := newCourier(t, 2, courier.Bike, []int{1, 12}, "09:00-18:00")
	inRegion1 := batchedOrder(t, c, 10, "1", 1, "10:00-11:00")
	inRegion12 := batchedOrder(t, c, 11, "2", 12, "10:00-11:00")

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("GetForUpdate", ctx, int64(2)).Return(c, nil).Once()
	orderRepo.On("ListIncompleteInDelivery", ctx, int64(2)).Return([]*order.Order{inRegion1, inRegion12}, nil).Once()
	orderRepo.On("Detach", ctx, []*order.Order{inRegion1}).Return(nil).Once()
	courierRepo.On("Update", ctx, c).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewUpdateCourierCommand(2, commands.CourierPatch{
		Regions:      ptr([]int{12, 5}),
		WorkingHours: ptr([]string{"10:30-12:00", "09:00-18:00"}),
	})
	require.NoError(t, err)

	// When
	h := commands.NewUpdateCourierCommandHandler(factory)
	profile, err := h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []int{12, 5}, profile.Regions)
	assert.Equal(t, []string{"09:00-18:00", "10:30-12:00"}, profile.WorkingHours)
	assert.True(t, decimal.NewFromInt(2).Equal(c.AssignedWeight()))
	orderRepo.AssertExpectations(t)
}

func TestUpdateCourierCommandHandler_Handle_Errors(t *testing.T) {
	t.Run("courier_not_found", func(t *testing.T) {
		ctx := t.Context()
		courierRepo := new(MockCourierRepository)
		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		courierRepo.On("GetForUpdate", ctx, int64(404)).Return(nil, errs.NewObjectNotFoundError("courier_id", 404)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, _ := commands.NewUpdateCourierCommand(404, commands.CourierPatch{Type: ptr("car")})
		h := commands.NewUpdateCourierCommandHandler(factory)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("detach_error", func(t *testing.T) {
		ctx := t.Context()
		c := newCourier(t, 2, courier.Bike, []int{1}, "09:00-18:00")
		o := batchedOrder(t, c, 10, "1", 1, "10:00-11:00")

		courierRepo := new(MockCourierRepository)
		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CourierRepository").Return(courierRepo).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		courierRepo.On("GetForUpdate", ctx, int64(2)).Return(c, nil).Once()
		orderRepo.On("ListIncompleteInDelivery", ctx, int64(2)).Return([]*order.Order{o}, nil).Once()
		orderRepo.On("Detach", ctx, []*order.Order{o}).Return(errors.New("detach error")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		cmd, _ := commands.NewUpdateCourierCommand(2, commands.CourierPatch{Regions: ptr([]int{2})})
		h := commands.NewUpdateCourierCommandHandler(factory)
		_, err := h.Handle(ctx, cmd)

		require.EqualError(t, err, "detach error")
		courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
