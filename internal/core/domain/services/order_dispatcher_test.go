package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDispatcher_Dispatch(t *testing.T) {
	t.Run("should batch lightest eligible orders first", func(t *testing.T) {
		// Given
		c := footCourier(t)
		pool := scenarioPool(t)
		dispatcher := services.NewOrderDispatcher()

		// When
		batch, err := dispatcher.Dispatch(c, nil, pool, now)

		// Then
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1}, ids(batch.Orders))
		assert.Equal(t, now, batch.AssignTime)
		assert.False(t, batch.Reused)
		assert.Equal(t, "0.24", c.AssignedWeight().String())
		assert.True(t, pool[0].IsInDelivery(1))
		assert.Equal(t, order.Unassigned, pool[1].Status())
		assert.True(t, pool[2].IsInDelivery(1))
	})

	t.Run("should keep walking after a rejected order", func(t *testing.T) {
		// Given
		c := footCourier(t)
		pool := []*order.Order{
			newOrder(t, 1, "6", 1, "09:00-10:00"),
			newOrder(t, 2, "5", 1, "09:00-10:00"),
			newOrder(t, 3, "4", 99, "09:00-10:00"),
			newOrder(t, 4, "4", 1, "09:00-10:00"),
		}

		// When
		batch, err := services.NewOrderDispatcher().Dispatch(c, nil, pool, now)

		// Then: order 3 is out of region, 4+5 fit, 6 more would exceed capacity 10
		require.NoError(t, err)
		assert.Equal(t, []int64{4, 2}, ids(batch.Orders))
	})

	t.Run("should break weight ties by pool order", func(t *testing.T) {
		c := footCourier(t)
		pool := []*order.Order{
			newOrder(t, 9, "1", 1, "09:00-10:00"),
			newOrder(t, 5, "1", 1, "09:00-10:00"),
			newOrder(t, 7, "1", 1, "09:00-10:00"),
		}

		batch, err := services.NewOrderDispatcher().Dispatch(c, nil, pool, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{9, 5, 7}, ids(batch.Orders))
	})

	t.Run("should return existing batch unchanged", func(t *testing.T) {
		// Given
		c := footCourier(t)
		first, err := services.NewOrderDispatcher().Dispatch(c, nil, scenarioPool(t), now)
		require.NoError(t, err)
		extra := []*order.Order{newOrder(t, 10, "0.5", 1, "09:00-10:00")}

		// When
		again, err := services.NewOrderDispatcher().Dispatch(c, first.Orders, extra, now.Add(time.Hour))

		// Then
		require.NoError(t, err)
		assert.True(t, again.Reused)
		assert.Equal(t, ids(first.Orders), ids(again.Orders))
		assert.Equal(t, now, again.AssignTime)
		assert.Equal(t, order.Unassigned, extra[0].Status())
	})

	t.Run("should return empty batch without timestamp", func(t *testing.T) {
		c := footCourier(t)
		pool := []*order.Order{newOrder(t, 1, "1", 77, "09:00-10:00")}

		batch, err := services.NewOrderDispatcher().Dispatch(c, nil, pool, now)

		require.NoError(t, err)
		assert.True(t, batch.IsEmpty())
		assert.True(t, batch.AssignTime.IsZero())
		assert.Nil(t, c.Delivery())
	})

	t.Run("should skip orders that are not in the pool", func(t *testing.T) {
		c := footCourier(t)
		taken := newOrder(t, 1, "1", 1, "09:00-10:00")
		require.NoError(t, taken.Assign(42))

		batch, err := services.NewOrderDispatcher().Dispatch(c, nil, []*order.Order{taken, nil}, now)

		require.NoError(t, err)
		assert.True(t, batch.IsEmpty())
	})

	t.Run("should reject unconstructed courier", func(t *testing.T) {
		_, err := services.NewOrderDispatcher().Dispatch(&courier.Courier{}, nil, scenarioPool(t), now)

		require.ErrorIs(t, err, courier.ErrCourierIsNotConstructed)
	})

	t.Run("should detect active orders without delivery", func(t *testing.T) {
		c := footCourier(t)
		stray := newOrder(t, 1, "1", 1, "09:00-10:00")
		require.NoError(t, stray.Assign(1))

		_, err := services.NewOrderDispatcher().Dispatch(c, []*order.Order{stray}, nil, now)

		require.ErrorIs(t, err, services.ErrInconsistentDelivery)
	})
}

func TestTotalWeight(t *testing.T) {
	assert.Equal(t, "12.24", services.TotalWeight(scenarioPool(t)).String())
	assert.True(t, services.TotalWeight(nil).IsZero())
}
