package courier

import (
	"github.com/shopspring/decimal"
)

const (
	// ratingCeilingSeconds caps the average delivery time that still earns points.
	ratingCeilingSeconds = 3600
	ratingScale          = 5
)

// Rating returns the courier's rating, or false while the courier has not
// earned anything yet.
//
// The fastest regional average delivery time t (capped at one hour) gives
// (3600 - t) / 3600 * 5, rounded to two decimals.
func (c *Courier) Rating() (float64, bool) {
	return Rating(c.earnings, c.regions)
}

// Rating computes the rating from raw statistics. Read models use it without
// loading the aggregate.
func Rating(earnings int64, regions []*Region) (float64, bool) {
	if earnings == 0 {
		return 0, false
	}

	fastest := float64(ratingCeilingSeconds)
	for _, r := range regions {
		if avg, ok := r.AverageDeliverySeconds(); ok && avg < fastest {
			fastest = avg
		}
	}

	rating := (ratingCeilingSeconds - fastest) / ratingCeilingSeconds * ratingScale
	return decimal.NewFromFloat(rating).Round(2).InexactFloat64(), true
}
