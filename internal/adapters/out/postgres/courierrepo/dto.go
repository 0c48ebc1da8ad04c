// Package courierrepo maps the courier aggregate to the couriers,
// courier_regions, courier_working_hours and deliveries tables.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CourierDTO is a row of the couriers table with its child rows.
type CourierDTO struct {
	ID             int64             `gorm:"primaryKey;autoIncrement:false"`
	CourierTypeID  int               `gorm:"column:courier_type_id;type:smallint;not null"`
	AssignedWeight decimal.Decimal   `gorm:"type:numeric(7,2);not null"`
	Earnings       int64             `gorm:"not null"`
	Regions        []RegionDTO       `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
	WorkingHours   []WorkingHoursDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
	Delivery       *DeliveryDTO      `gorm:"-"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// RegionDTO keeps per-region statistics. Rows are read in id order, which is
// the order regions were added in.
type RegionDTO struct {
	ID                 int64   `gorm:"primaryKey"`
	CourierID          int64   `gorm:"not null;uniqueIndex:courier_regions_courier_id_number_key"`
	Number             int     `gorm:"not null;uniqueIndex:courier_regions_courier_id_number_key"`
	OrdersCount        int64   `gorm:"not null"`
	SumDeliverySeconds float64 `gorm:"not null"`
}

func (RegionDTO) TableName() string {
	return "courier_regions"
}

// WorkingHoursDTO stores a window as minutes of day.
type WorkingHoursDTO struct {
	ID        int64 `gorm:"primaryKey"`
	CourierID int64 `gorm:"not null;index"`
	TimeStart int   `gorm:"type:smallint;not null"`
	TimeEnd   int   `gorm:"type:smallint;not null"`
}

func (WorkingHoursDTO) TableName() string {
	return "courier_working_hours"
}

// DeliveryDTO is the courier's batch slot; ID equals the courier id.
type DeliveryDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	AssignTime    time.Time `gorm:"not null"`
	CompleteTime  time.Time `gorm:"not null"`
	CourierTypeID int       `gorm:"column:courier_type_id;type:smallint;not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	regions := make([]RegionDTO, 0, len(aggregate.Regions()))
	for _, r := range aggregate.Regions() {
		regions = append(regions, RegionDTO{
			CourierID:          aggregate.ID(),
			Number:             r.Number(),
			OrdersCount:        r.OrdersCount(),
			SumDeliverySeconds: r.SumDeliverySeconds(),
		})
	}

	hours := make([]WorkingHoursDTO, 0, len(aggregate.WorkingHours()))
	for _, h := range aggregate.WorkingHours() {
		hours = append(hours, WorkingHoursDTO{
			CourierID: aggregate.ID(),
			TimeStart: h.Start(),
			TimeEnd:   h.End(),
		})
	}

	var delivery *DeliveryDTO
	if d := aggregate.Delivery(); d != nil {
		delivery = &DeliveryDTO{
			ID:            aggregate.ID(),
			AssignTime:    d.AssignTime(),
			CompleteTime:  d.CompleteTime(),
			CourierTypeID: int(d.CourierTypeAtAssignment()),
		}
	}

	return CourierDTO{
		ID:             aggregate.ID(),
		CourierTypeID:  int(aggregate.Type()),
		AssignedWeight: aggregate.AssignedWeight(),
		Earnings:       aggregate.Earnings(),
		Regions:        regions,
		WorkingHours:   hours,
		Delivery:       delivery,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	regions := make([]*courier.Region, 0, len(dto.Regions))
	for _, r := range dto.Regions {
		region, err := courier.RestoreRegion(r.Number, r.OrdersCount, r.SumDeliverySeconds)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	hours := make([]kernel.TimeRange, 0, len(dto.WorkingHours))
	for _, h := range dto.WorkingHours {
		window, err := kernel.NewTimeRange(h.TimeStart, h.TimeEnd)
		if err != nil {
			return nil, err
		}
		hours = append(hours, window)
	}

	var delivery *courier.Delivery
	if dto.Delivery != nil {
		d, err := courier.RestoreDelivery(
			dto.Delivery.AssignTime.UTC(),
			dto.Delivery.CompleteTime.UTC(),
			courier.Type(dto.Delivery.CourierTypeID),
		)
		if err != nil {
			return nil, err
		}
		delivery = d
	}

	return courier.RestoreCourier(
		dto.ID,
		courier.Type(dto.CourierTypeID),
		regions,
		hours,
		dto.AssignedWeight,
		dto.Earnings,
		delivery,
	)
}
