// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates,
// including regions with their statistics, working hours and the delivery slot.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate. Dropped regions
	// and working hours are deleted, kept regions are updated in place.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by id. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	// Requests for the same courier are serialized through it.
	GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error)

	// ExistingIDs returns the subset of ids that are already stored.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
