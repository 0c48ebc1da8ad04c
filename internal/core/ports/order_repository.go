package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Listing methods return orders lightest first, equal weights in insertion order.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and delivery reference of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// ExistingIDs returns the subset of ids that are already stored.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// GetInDelivery retrieves order id only if it is batched into deliveryID.
	// Returns errs.ErrObjectNotFound otherwise.
	GetInDelivery(ctx context.Context, deliveryID, id int64) (*order.Order, error)

	// ListIncompleteInDelivery returns the incomplete orders batched into deliveryID.
	ListIncompleteInDelivery(ctx context.Context, deliveryID int64) ([]*order.Order, error)

	// ListUnassigned returns the pool: incomplete orders without a delivery.
	ListUnassigned(ctx context.Context) ([]*order.Order, error)

	// AttachToDelivery batches orders into their delivery. Each order must
	// still be in the pool; if another transaction took any of them first the
	// call fails with errs.ErrConflict and nothing is attached.
	AttachToDelivery(ctx context.Context, orders []*order.Order) error

	// Detach returns orders to the pool.
	Detach(ctx context.Context, orders []*order.Order) error
}
