package services

import (
	"errors"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ErrInconsistentDelivery is returned when a courier has batched orders but no delivery slot.
var ErrInconsistentDelivery = errors.New("courier has active orders without a delivery")

// Batch is the result of a dispatch.
type Batch struct {
	// Orders are the batched orders, lightest first.
	Orders []*order.Order
	// AssignTime is zero when Orders is empty.
	AssignTime time.Time
	// Reused is true when an existing batch was returned unchanged.
	Reused bool
}

func (b Batch) IsEmpty() bool {
	return len(b.Orders) == 0
}

// OrderDispatcher is a domain service that forms a courier's next batch with a
// greedy, lightest-first policy.
//
// Business rules:
//   - a courier with incomplete batched orders gets the same batch back
//   - the pool is walked in ascending weight order, ties kept in pool order
//   - every order is evaluated; a rejected order does not stop the walk
//   - an empty result is not an error and carries no timestamp
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	batch, err := dispatcher.Dispatch(c, active, pool, time.Now())
//	if err != nil {
//	    return err
//	}
//	if batch.IsEmpty() {
//	    // Nothing fits this courier right now
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch returns the courier's batch.
//
// Parameters:
//   - c: the courier
//   - active: the courier's incomplete batched orders
//   - pool: unassigned, incomplete orders in insertion order
//   - now: the assignment time for a new batch
//
// When a new batch is formed the orders are attached to the courier, which
// opens or reuses its delivery slot. The caller persists the changes.
func (d OrderDispatcher) Dispatch(
	c *courier.Courier,
	active []*order.Order,
	pool []*order.Order,
	now time.Time,
) (Batch, error) {
	if err := c.Validate(); err != nil {
		return Batch{}, err
	}

	if len(active) > 0 {
		delivery := c.Delivery()
		if delivery == nil {
			return Batch{}, ErrInconsistentDelivery
		}
		return Batch{
			Orders:     active,
			AssignTime: delivery.AssignTime(),
			Reused:     true,
		}, nil
	}

	selected := d.selectOrders(c, pool)
	if len(selected) == 0 {
		return Batch{}, nil
	}

	if err := c.Assign(now, selected...); err != nil {
		return Batch{}, err
	}

	return Batch{
		Orders:     selected,
		AssignTime: c.Delivery().AssignTime(),
	}, nil
}

func (d OrderDispatcher) selectOrders(c *courier.Courier, pool []*order.Order) []*order.Order {
	candidates := make([]*order.Order, 0, len(pool))
	for _, o := range pool {
		if o.Validate() == nil && o.Status() == order.Unassigned {
			candidates = append(candidates, o)
		}
	}
	SortByWeight(candidates)

	var (
		regions  = c.RegionNumbers()
		windows  = c.WorkingHours()
		capacity = c.Capacity()
		load     = c.AssignedWeight()
		selected []*order.Order
	)
	for _, o := range candidates {
		if !IsEligible(o, regions, windows, load, capacity) {
			continue
		}
		selected = append(selected, o)
		load = load.Add(o.Weight())
	}

	return selected
}

// SortByWeight orders lightest first and keeps the incoming order for equal weights.
func SortByWeight(orders []*order.Order) {
	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		return a.Weight().Cmp(b.Weight())
	})
}

// TotalWeight sums the weights of orders.
func TotalWeight(orders []*order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Weight())
	}
	return total
}
