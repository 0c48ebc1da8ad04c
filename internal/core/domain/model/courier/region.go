package courier

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// Region is a courier's membership in a delivery region together with the
// running totals used for rating.
type Region struct {
	number             int
	ordersCount        int64
	sumDeliverySeconds float64
}

func NewRegion(number int) (*Region, error) {
	if number <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not positive", number))
	}
	return &Region{number: number}, nil
}

func RestoreRegion(number int, ordersCount int64, sumDeliverySeconds float64) (*Region, error) {
	r, err := NewRegion(number)
	if err != nil {
		return nil, err
	}
	if ordersCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orders_count", fmt.Errorf("%d is negative", ordersCount))
	}
	r.ordersCount = ordersCount
	r.sumDeliverySeconds = sumDeliverySeconds
	return r, nil
}

func (r *Region) Number() int {
	return r.number
}

func (r *Region) OrdersCount() int64 {
	return r.ordersCount
}

func (r *Region) SumDeliverySeconds() float64 {
	return r.sumDeliverySeconds
}

// AverageDeliverySeconds returns false when no order was delivered in the region.
func (r *Region) AverageDeliverySeconds() (float64, bool) {
	if r.ordersCount == 0 {
		return 0, false
	}
	return r.sumDeliverySeconds / float64(r.ordersCount), true
}

func (r *Region) recordDelivery(d time.Duration) {
	r.ordersCount++
	r.sumDeliverySeconds += d.Seconds()
}
