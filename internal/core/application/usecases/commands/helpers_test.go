package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var assignNow = time.Date(2023, 5, 1, 10, 0, 0, 123456789, time.UTC)

func fixedClock() time.Time {
	return assignNow
}

func newCourier(t *testing.T, id int64, courierType courier.Type, regions []int, hours ...string) *courier.Courier {
	t.Helper()
	windows, err := kernel.ParseTimeRanges(hours)
	require.NoError(t, err)
	c, err := courier.NewCourier(id, courierType, regions, windows)
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id int64, weight string, region int, hours ...string) *order.Order {
	t.Helper()
	windows, err := kernel.ParseTimeRanges(hours)
	require.NoError(t, err)
	o, err := order.NewOrder(id, decimal.RequireFromString(weight), region, windows)
	require.NoError(t, err)
	return o
}

// batchedOrder returns an order already attached to the courier's delivery.
func batchedOrder(t *testing.T, c *courier.Courier, id int64, weight string, region int, hours ...string) *order.Order {
	t.Helper()
	o := newOrder(t, id, weight, region, hours...)
	require.NoError(t, c.Assign(assignNow.Add(-time.Hour), o))
	return o
}
