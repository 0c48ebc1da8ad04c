package services

import (
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// IsEligible reports whether o may join a batch of a courier serving
// courierRegions during courierWindows with currentLoad already carried out of
// capacity. All three checks must pass:
//   - the order's region is one of the courier's regions
//   - currentLoad + weight does not exceed capacity
//   - some order window overlaps some courier window (see kernel.Overlaps)
//
// Malformed input is ineligible; the function never panics or mutates.
func IsEligible(
	o *order.Order,
	courierRegions []int,
	courierWindows []kernel.TimeRange,
	currentLoad decimal.Decimal,
	capacity decimal.Decimal,
) bool {
	if o.Validate() != nil {
		return false
	}

	if !slices.Contains(courierRegions, o.Region()) {
		return false
	}

	if currentLoad.Add(o.Weight()).GreaterThan(capacity) {
		return false
	}

	return kernel.Overlaps(courierWindows, o.DeliveryHours())
}
