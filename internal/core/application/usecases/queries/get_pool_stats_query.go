package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetPoolStatsQueryIsNotConstructed = errors.New(
		"GetPoolStatsQuery must be created via NewGetPoolStatsQuery constructor",
	)
)

// GetPoolStatsQuery summarizes the order pool and the open batches.
type GetPoolStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPoolStatsQuery() GetPoolStatsQuery {
	return GetPoolStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPoolStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetPoolStatsQueryIsNotConstructed)
}

type GetPoolStatsQueryResponse struct {
	// UnassignedOrders counts incomplete orders that are in no batch.
	UnassignedOrders int64 `db:"unassigned_orders"`
	// UnassignedWeight is the total weight of those orders.
	UnassignedWeight decimal.Decimal `db:"unassigned_weight"`
	// ActiveDeliveries counts couriers holding at least one incomplete order.
	ActiveDeliveries int64 `db:"active_deliveries"`
	CompletedOrders  int64 `db:"completed_orders"`
}
