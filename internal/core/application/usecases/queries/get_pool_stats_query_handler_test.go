package queries_test

import (
	"context"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"

	"github.com/shopspring/decimal"
)

func (suite *QueriesTestSuite) TestGetPoolStats_EmptyDatabase_ReturnsZeros() {
	handler := queries.NewGetPoolStatsQueryHandler(suite.db)

	stats, err := handler.Handle(context.Background(), queries.NewGetPoolStatsQuery())

	suite.Require().NoError(err)
	suite.Equal(int64(0), stats.UnassignedOrders)
	suite.True(stats.UnassignedWeight.IsZero())
	suite.Equal(int64(0), stats.ActiveDeliveries)
	suite.Equal(int64(0), stats.CompletedOrders)
}

func (suite *QueriesTestSuite) TestGetPoolStats_CountsPoolAndOpenBatches() {
	suite.addCourier(1, courier.Car, []int{1})
	suite.addCourier(2, courier.Car, []int{1})
	suite.exec("INSERT INTO deliveries (id, assign_time, complete_time, courier_type_id) VALUES (1, now(), now(), 3)")
	suite.exec("INSERT INTO deliveries (id, assign_time, complete_time, courier_type_id) VALUES (2, now(), now(), 3)")
	suite.exec(`INSERT INTO orders (id, weight, region, is_complete, delivery_id) VALUES
		(1, 2.50, 1, FALSE, NULL),
		(2, 1.25, 1, FALSE, NULL),
		(3, 4.00, 1, FALSE, 1),
		(4, 3.00, 1, FALSE, 1),
		(5, 1.00, 1, TRUE, 2)`)

	handler := queries.NewGetPoolStatsQueryHandler(suite.db)
	stats, err := handler.Handle(context.Background(), queries.NewGetPoolStatsQuery())

	suite.Require().NoError(err)
	suite.Equal(int64(2), stats.UnassignedOrders)
	suite.True(decimal.RequireFromString("3.75").Equal(stats.UnassignedWeight), stats.UnassignedWeight.String())
	suite.Equal(int64(1), stats.ActiveDeliveries)
	suite.Equal(int64(1), stats.CompletedOrders)
}

func (suite *QueriesTestSuite) TestGetPoolStats_InvalidQuery_ReturnsError() {
	handler := queries.NewGetPoolStatsQueryHandler(suite.db)

	_, err := handler.Handle(context.Background(), queries.GetPoolStatsQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetPoolStatsQueryIsNotConstructed)
}
