package services

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// Completion describes the effect of a completion request.
type Completion struct {
	// AlreadyComplete is true for a replayed request; nothing changed.
	AlreadyComplete bool
	// Elapsed is the time since the previous completion or the batch start.
	Elapsed time.Duration
	// Drained is true when the order was the last incomplete one of the batch.
	Drained bool
	// Credited is the payout added to the courier's earnings.
	Credited int64
}

// DeliveryLifecycle completes batched orders and pays for drained batches.
type DeliveryLifecycle struct{}

func NewDeliveryLifecycle() DeliveryLifecycle {
	return DeliveryLifecycle{}
}

// Complete marks o delivered at completeTime. active must hold the courier's
// incomplete batched orders as loaded before the call (o among them).
// Completing an already completed order is a no-op.
func (l DeliveryLifecycle) Complete(
	c *courier.Courier,
	o *order.Order,
	active []*order.Order,
	completeTime time.Time,
) (Completion, error) {
	if err := c.Validate(); err != nil {
		return Completion{}, err
	}
	if err := o.Validate(); err != nil {
		return Completion{}, err
	}
	if o.IsComplete() {
		return Completion{AlreadyComplete: true}, nil
	}

	elapsed, err := c.CompleteOrder(o, completeTime)
	if err != nil {
		return Completion{}, err
	}

	result := Completion{Elapsed: elapsed, Drained: true}
	for _, other := range active {
		if !other.IsEqual(o) && !other.IsComplete() {
			result.Drained = false
			break
		}
	}

	if result.Drained {
		credited, err := c.SettleDelivery()
		if err != nil {
			return Completion{}, err
		}
		result.Credited = credited
	}

	return result, nil
}
