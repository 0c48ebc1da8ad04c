package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2021, 1, 10, 9, 0, 0, 0, time.UTC)

func windows(t *testing.T, values ...string) []kernel.TimeRange {
	t.Helper()
	r, err := kernel.ParseTimeRanges(values)
	require.NoError(t, err)
	return r
}

func newOrder(t *testing.T, id int64, weight string, region int, hours ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, decimal.RequireFromString(weight), region, windows(t, hours...))
	require.NoError(t, err)
	return o
}

// footCourier is courier 1 from the reference scenario.
func footCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(1, courier.Foot, []int{1, 12, 22}, windows(t, "11:35-14:05", "09:00-11:00"))
	require.NoError(t, err)
	return c
}

func scenarioPool(t *testing.T) []*order.Order {
	t.Helper()
	return []*order.Order{
		newOrder(t, 1, "0.23", 12, "09:00-18:00"),
		newOrder(t, 2, "12", 1, "09:00-18:00"),
		newOrder(t, 3, "0.01", 22, "09:00-12:00", "16:00-21:30"),
	}
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}
