// Package orderrepo maps the order aggregate to the orders and
// order_delivery_hours tables.
package orderrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents a row of the orders table. Seq is assigned by the
// database on insert and orders equal weights by arrival.
type OrderDTO struct {
	ID            int64              `gorm:"primaryKey;autoIncrement:false"`
	Seq           int64              `gorm:"->"`
	Weight        decimal.Decimal    `gorm:"type:numeric(4,2);not null"`
	Region        int                `gorm:"not null"`
	IsComplete    bool               `gorm:"not null"`
	DeliveryID    *int64             `gorm:"index"`
	DeliveryHours []DeliveryHoursDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryHoursDTO stores a delivery window as minutes of day.
type DeliveryHoursDTO struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64 `gorm:"not null;index"`
	TimeStart int   `gorm:"type:smallint;not null"`
	TimeEnd   int   `gorm:"type:smallint;not null"`
}

func (DeliveryHoursDTO) TableName() string {
	return "order_delivery_hours"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	hours := make([]DeliveryHoursDTO, 0, len(aggregate.DeliveryHours()))
	for _, h := range aggregate.DeliveryHours() {
		hours = append(hours, DeliveryHoursDTO{
			OrderID:   aggregate.ID(),
			TimeStart: h.Start(),
			TimeEnd:   h.End(),
		})
	}

	var deliveryID *int64
	if id, ok := aggregate.DeliveryID(); ok {
		deliveryID = &id
	}

	return OrderDTO{
		ID:            aggregate.ID(),
		Weight:        aggregate.Weight(),
		Region:        aggregate.Region(),
		IsComplete:    aggregate.IsComplete(),
		DeliveryID:    deliveryID,
		DeliveryHours: hours,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	hours := make([]kernel.TimeRange, 0, len(dto.DeliveryHours))
	for _, h := range dto.DeliveryHours {
		window, err := kernel.NewTimeRange(h.TimeStart, h.TimeEnd)
		if err != nil {
			return nil, err
		}
		hours = append(hours, window)
	}

	return order.RestoreOrder(dto.ID, dto.Weight, dto.Region, hours, dto.DeliveryID, dto.IsComplete)
}
