package services

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ProfileReconciler re-checks a courier's incomplete batched orders after a
// profile change and evicts the ones the courier can no longer carry.
type ProfileReconciler struct{}

func NewProfileReconciler() ProfileReconciler {
	return ProfileReconciler{}
}

// Reconcile walks batched lightest first, recomputing the load from zero
// against the courier's current capacity, regions and working hours. Orders
// that no longer fit are returned to the pool. The courier's assigned weight
// is set to the weight of the kept orders.
func (r ProfileReconciler) Reconcile(c *courier.Courier, batched []*order.Order) (kept, evicted []*order.Order, err error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	ordered := make([]*order.Order, 0, len(batched))
	for _, o := range batched {
		if o.Validate() == nil && !o.IsComplete() && o.IsInDelivery(c.ID()) {
			ordered = append(ordered, o)
		}
	}
	SortByWeight(ordered)

	var (
		regions  = c.RegionNumbers()
		windows  = c.WorkingHours()
		capacity = c.Capacity()
		load     = decimal.Zero
	)
	for _, o := range ordered {
		if IsEligible(o, regions, windows, load, capacity) {
			kept = append(kept, o)
			load = load.Add(o.Weight())
			continue
		}
		if err := o.Unassign(); err != nil {
			return nil, nil, err
		}
		evicted = append(evicted, o)
	}

	if err := c.RecalculateLoad(kept); err != nil {
		return nil, nil, err
	}

	return kept, evicted, nil
}
