package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/postgres/dberrs"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const aggregateKind = "order"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(kind string, id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its delivery windows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Classify(err, aggregateKind)
	}

	r.tracker.TrackAggregate(aggregateKind, aggregate.ID(), aggregate)
	return nil
}

// Update saves the status and delivery reference of an existing order.
// Weight, region and windows are immutable after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"is_complete": dto.IsComplete,
		"delivery_id": dto.DeliveryID,
	})
	if result.Error != nil {
		return dberrs.Classify(result.Error, aggregateKind)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order_id", dto.ID)
	}

	r.tracker.TrackAggregate(aggregateKind, aggregate.ID(), aggregate)
	return nil
}

// ExistingIDs returns which of ids are already stored.
func (r *GormOrderRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := make([]int64, 0)
	if len(ids) == 0 {
		return found, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ANY(?)", pq.Int64Array(ids)).
		Order("id").
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	return found, nil
}

// GetInDelivery retrieves an order only when it belongs to deliveryID.
func (r *GormOrderRepository) GetInDelivery(ctx context.Context, deliveryID, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.withHours(ctx).
		Where("id = ? AND delivery_id = ?", id, deliveryID).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListIncompleteInDelivery returns the orders still to be delivered in deliveryID.
func (r *GormOrderRepository) ListIncompleteInDelivery(ctx context.Context, deliveryID int64) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withHours(ctx).
		Where("delivery_id = ? AND NOT is_complete", deliveryID).
		Order("weight, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListUnassigned returns the pool, lightest first.
func (r *GormOrderRepository) ListUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withHours(ctx).
		Where("delivery_id IS NULL AND NOT is_complete").
		Order("weight, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// AttachToDelivery writes the delivery reference of freshly batched orders.
// The update only matches pool rows, so an order taken by a concurrent
// transaction makes the affected row count fall short.
func (r *GormOrderRepository) AttachToDelivery(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	deliveryID, ok := orders[0].DeliveryID()
	if !ok {
		return errs.NewValueIsRequiredError("delivery_id")
	}

	ids := make(pq.Int64Array, 0, len(orders))
	for _, o := range orders {
		id, ok := o.DeliveryID()
		if !ok || id != deliveryID {
			return errs.NewValueIsInvalidErrorWithCause("delivery_id",
				fmt.Errorf("order %d is not batched into delivery %d", o.ID(), deliveryID))
		}
		ids = append(ids, o.ID())
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ANY(?) AND delivery_id IS NULL AND NOT is_complete", ids).
		Update("delivery_id", deliveryID)
	if result.Error != nil {
		return dberrs.Classify(result.Error, aggregateKind)
	}
	if result.RowsAffected != int64(len(ids)) {
		return errs.NewConflictErrorWithCause("orders",
			fmt.Errorf("attached %d of %d orders", result.RowsAffected, len(ids)))
	}

	for _, o := range orders {
		r.tracker.TrackAggregate(aggregateKind, o.ID(), o)
	}
	return nil
}

// Detach clears the delivery reference of incomplete orders.
func (r *GormOrderRepository) Detach(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make(pq.Int64Array, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ANY(?) AND NOT is_complete", ids).
		Update("delivery_id", gorm.Expr("NULL")).Error
	if err != nil {
		return dberrs.Classify(err, aggregateKind)
	}

	for _, o := range orders {
		r.tracker.TrackAggregate(aggregateKind, o.ID(), o)
	}
	return nil
}

func (r *GormOrderRepository) withHours(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("DeliveryHours", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
