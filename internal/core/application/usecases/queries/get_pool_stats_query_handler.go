package queries

import (
	"context"

	"github.com/georgysavva/scany/v2/sqlscan"
	"gorm.io/gorm"
)

type GetPoolStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetPoolStatsQueryHandler(db *gorm.DB) GetPoolStatsQueryHandler {
	return GetPoolStatsQueryHandler{db: db}
}

func (h GetPoolStatsQueryHandler) Handle(ctx context.Context, query GetPoolStatsQuery) (GetPoolStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPoolStatsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			count(*) FILTER (WHERE delivery_id IS NULL AND NOT is_complete) AS unassigned_orders,
			COALESCE(sum(weight) FILTER (WHERE delivery_id IS NULL AND NOT is_complete), 0) AS unassigned_weight,
			count(DISTINCT delivery_id) FILTER (WHERE NOT is_complete) AS active_deliveries,
			count(*) FILTER (WHERE is_complete) AS completed_orders
		FROM orders
	`).Rows()
	if err != nil {
		return GetPoolStatsQueryResponse{}, err
	}

	var stats GetPoolStatsQueryResponse
	if err = sqlscan.ScanOne(&stats, rows); err != nil {
		return GetPoolStatsQueryResponse{}, err
	}

	return stats, nil
}
