package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/georgysavva/scany/v2/sqlscan"
	"gorm.io/gorm"
)

type courierRow struct {
	ID          int64  `db:"id"`
	CourierType string `db:"courier_type"`
	Earnings    int64  `db:"earnings"`
}

type regionRow struct {
	Number             int     `db:"number"`
	OrdersCount        int64   `db:"orders_count"`
	SumDeliverySeconds float64 `db:"sum_delivery_seconds"`
}

type workingHoursRow struct {
	TimeStart int `db:"time_start"`
	TimeEnd   int `db:"time_end"`
}

// GetCourierQueryHandler builds the courier view with plain SQL. The rating is
// computed from the per-region statistics with the same rule the aggregate
// uses.
type GetCourierQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown courier.
func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var row courierRow
	rows, err := db.Raw(`
		SELECT
			c.id,
			t.title AS courier_type,
			c.earnings
		FROM couriers c
		JOIN courier_types t ON t.id = c.courier_type_id
		WHERE c.id = ?
	`, query.CourierID()).Rows()
	if err != nil {
		return GetCourierQueryResponse{}, err
	}
	if err = sqlscan.ScanOne(&row, rows); err != nil {
		if sqlscan.NotFound(err) {
			return GetCourierQueryResponse{}, errs.NewObjectNotFoundError("courier_id", query.CourierID())
		}
		return GetCourierQueryResponse{}, err
	}

	var regionRows []regionRow
	rows, err = db.Raw(`
		SELECT number, orders_count, sum_delivery_seconds
		FROM courier_regions
		WHERE courier_id = ?
		ORDER BY id
	`, row.ID).Rows()
	if err != nil {
		return GetCourierQueryResponse{}, err
	}
	if err = sqlscan.ScanAll(&regionRows, rows); err != nil {
		return GetCourierQueryResponse{}, err
	}

	var hoursRows []workingHoursRow
	rows, err = db.Raw(`
		SELECT time_start, time_end
		FROM courier_working_hours
		WHERE courier_id = ?
		ORDER BY id
	`, row.ID).Rows()
	if err != nil {
		return GetCourierQueryResponse{}, err
	}
	if err = sqlscan.ScanAll(&hoursRows, rows); err != nil {
		return GetCourierQueryResponse{}, err
	}

	return newGetCourierQueryResponse(row, regionRows, hoursRows)
}

func newGetCourierQueryResponse(
	row courierRow,
	regionRows []regionRow,
	hoursRows []workingHoursRow,
) (GetCourierQueryResponse, error) {
	response := GetCourierQueryResponse{
		CourierID:    row.ID,
		CourierType:  row.CourierType,
		Regions:      make([]int, 0, len(regionRows)),
		WorkingHours: make([]string, 0, len(hoursRows)),
		Earnings:     row.Earnings,
	}

	regions := make([]*courier.Region, 0, len(regionRows))
	for _, r := range regionRows {
		region, err := courier.RestoreRegion(r.Number, r.OrdersCount, r.SumDeliverySeconds)
		if err != nil {
			return GetCourierQueryResponse{}, err
		}
		regions = append(regions, region)
		response.Regions = append(response.Regions, r.Number)
	}

	for _, h := range hoursRows {
		window, err := kernel.NewTimeRange(h.TimeStart, h.TimeEnd)
		if err != nil {
			return GetCourierQueryResponse{}, err
		}
		response.WorkingHours = append(response.WorkingHours, window.String())
	}

	if rating, ok := courier.Rating(row.Earnings, regions); ok {
		response.Rating = &rating
	}

	return response, nil
}
