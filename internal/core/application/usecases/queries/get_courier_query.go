// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read flat views straight from storage.
package queries

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierQueryIsNotConstructed = errors.New(
		"GetCourierQuery must be created via NewGetCourierQuery constructor",
	)
)

// GetCourierQuery reads one courier's profile together with earnings and
// rating.
//
// Example:
//
//	query, err := NewGetCourierQuery(2)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read courier: %w", err)
//	}
//	if view.Rating != nil {
//	    fmt.Printf("courier %d rated %.2f\n", view.CourierID, *view.Rating)
//	}
type GetCourierQuery struct { //nolint:recvcheck //using for validation
	courierID int64

	guard guard.ConstructorGuard
}

func NewGetCourierQuery(courierID int64) (GetCourierQuery, error) {
	if courierID <= 0 {
		return GetCourierQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not positive", courierID))
	}
	return GetCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

func (q GetCourierQuery) CourierID() int64 {
	return q.courierID
}

// GetCourierQueryResponse is the courier read model. Regions and working
// hours keep their insertion order. Rating is nil until the courier has
// earned something.
type GetCourierQueryResponse struct {
	CourierID    int64
	CourierType  string
	Regions      []int
	WorkingHours []string
	Earnings     int64
	Rating       *float64
}
