package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/dberrs"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const aggregateKind = "courier"

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(kind string, id int64, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the courier with its regions and working hours.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return dberrs.Classify(err, aggregateKind)
	}
	if dto.Delivery != nil {
		if err := db.Create(dto.Delivery).Error; err != nil {
			return dberrs.Classify(err, aggregateKind)
		}
	}

	r.tracker.TrackAggregate(aggregateKind, aggregate.ID(), aggregate)
	return nil
}

// Update writes the courier row and synchronises the child rows against what
// is stored: dropped regions are deleted, kept regions are updated only when
// their statistics moved, new regions are appended, working hours are
// rewritten only when they differ and the delivery slot is upserted.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CourierDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"courier_type_id": dto.CourierTypeID,
		"assigned_weight": dto.AssignedWeight,
		"earnings":        dto.Earnings,
	})
	if result.Error != nil {
		return dberrs.Classify(result.Error, aggregateKind)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier_id", dto.ID)
	}

	if err := r.syncRegions(db, dto); err != nil {
		return dberrs.Classify(err, aggregateKind)
	}
	if err := r.syncWorkingHours(db, dto); err != nil {
		return dberrs.Classify(err, aggregateKind)
	}
	if dto.Delivery != nil {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"assign_time", "complete_time", "courier_type_id"}),
		}).Create(dto.Delivery).Error
		if err != nil {
			return dberrs.Classify(err, aggregateKind)
		}
	}

	r.tracker.TrackAggregate(aggregateKind, aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier with regions, working hours and delivery slot.
func (r *GormCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate is Get with SELECT ... FOR UPDATE on the courier row.
func (r *GormCourierRepository) GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error) {
	return r.load(ctx, id, true)
}

// ExistingIDs returns which of ids are already stored.
func (r *GormCourierRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := make([]int64, 0)
	if len(ids) == 0 {
		return found, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ANY(?)", pq.Int64Array(ids)).
		Order("id").
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	return found, nil
}

func (r *GormCourierRepository) load(ctx context.Context, id int64, lock bool) (*courier.Courier, error) {
	db := r.db.WithContext(ctx)

	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto CourierDTO
	if err := query.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier_id", id)
		}
		return nil, dberrs.Classify(err, aggregateKind)
	}

	if err := db.Where("courier_id = ?", id).Order("id").Find(&dto.Regions).Error; err != nil {
		return nil, err
	}
	if err := db.Where("courier_id = ?", id).Order("id").Find(&dto.WorkingHours).Error; err != nil {
		return nil, err
	}

	var deliveries []DeliveryDTO
	if err := db.Where("id = ?", id).Limit(1).Find(&deliveries).Error; err != nil {
		return nil, err
	}
	if len(deliveries) > 0 {
		dto.Delivery = &deliveries[0]
	}

	return toDomain(dto)
}

func (r *GormCourierRepository) syncRegions(db *gorm.DB, dto CourierDTO) error {
	var stored []RegionDTO
	if err := db.Where("courier_id = ?", dto.ID).Order("id").Find(&stored).Error; err != nil {
		return err
	}

	changes := diffRegions(stored, dto.Regions)
	if len(changes.removed) > 0 {
		if err := db.Where("id IN ?", changes.removed).Delete(&RegionDTO{}).Error; err != nil {
			return err
		}
	}
	for _, region := range changes.changed {
		err := db.Model(&RegionDTO{}).Where("id = ?", region.ID).Updates(map[string]any{
			"orders_count":         region.OrdersCount,
			"sum_delivery_seconds": region.SumDeliverySeconds,
		}).Error
		if err != nil {
			return err
		}
	}
	if len(changes.added) > 0 {
		return db.Create(&changes.added).Error
	}
	return nil
}

func (r *GormCourierRepository) syncWorkingHours(db *gorm.DB, dto CourierDTO) error {
	var stored []WorkingHoursDTO
	if err := db.Where("courier_id = ?", dto.ID).Order("id").Find(&stored).Error; err != nil {
		return err
	}
	if sameWorkingHours(stored, dto.WorkingHours) {
		return nil
	}

	if err := db.Where("courier_id = ?", dto.ID).Delete(&WorkingHoursDTO{}).Error; err != nil {
		return err
	}
	if len(dto.WorkingHours) == 0 {
		return nil
	}
	return db.Create(&dto.WorkingHours).Error
}
