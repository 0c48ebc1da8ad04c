package courier

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// BaseDeliveryPayment is credited, multiplied by the courier type coefficient,
// every time a batch is fully delivered.
const BaseDeliveryPayment int64 = 500

// Domain errors for courier operations.
var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrOrderNotInDelivery is returned when an order is not batched to this courier.
	ErrOrderNotInDelivery = errors.New("order is not in the courier's delivery")
	// ErrNoActiveDelivery is returned when an operation needs a delivery the courier never had.
	ErrNoActiveDelivery = errors.New("courier has no delivery")
)

// Courier is the aggregate root for a delivery worker. It owns the courier's
// profile (type, regions, working hours), the running load of its current
// batch, its earnings and the reusable delivery slot.
//
// Key responsibilities:
//   - Keeping assignedWeight equal to the total weight of incomplete batched orders
//   - Opening a batch and attaching orders to it
//   - Completing orders: region statistics, the delivery cursor, batch payout
//   - Applying profile changes while retaining statistics of kept regions
//
// Business rules:
//   - id is a positive, externally assigned integer
//   - region numbers are positive and unique per courier
//   - the delivery slot id equals the courier id
//
// Example usage:
//
//	hours, _ := kernel.ParseTimeRanges([]string{"11:35-14:05", "09:00-11:00"})
//	c, err := courier.NewCourier(1, courier.Foot, []int{1, 12, 22}, hours)
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	// id is the externally assigned identifier; it doubles as the delivery id
	id int64
	// courierType determines capacity and the earnings coefficient
	courierType Type
	// regions are kept in insertion order
	regions []*Region
	// workingHours are kept in insertion order
	workingHours []kernel.TimeRange
	// assignedWeight is the load of the current batch
	assignedWeight decimal.Decimal
	// earnings accumulate on every drained batch
	earnings int64
	// delivery is nil until the first assignment
	delivery *Delivery
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a courier with no load, no earnings and no delivery.
//
// Parameters:
//   - id: positive courier id
//   - courierType: one of Foot, Bike, Car
//   - regions: region numbers; duplicates are collapsed
//   - workingHours: working windows; may be empty
//
// Returns:
//   - *Courier: the new courier
//   - error: all validation failures joined together
func NewCourier(id int64, courierType Type, regions []int, workingHours []kernel.TimeRange) (*Courier, error) {
	c := &Courier{
		assignedWeight: decimal.Zero,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setType(courierType),
		c.ChangeRegions(regions),
		c.ChangeWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including region statistics and the delivery slot.
func RestoreCourier(
	id int64,
	courierType Type,
	regions []*Region,
	workingHours []kernel.TimeRange,
	assignedWeight decimal.Decimal,
	earnings int64,
	delivery *Delivery,
) (*Courier, error) {
	c := &Courier{
		delivery: delivery,
		guard:    guard.NewConstructorGuard(),
	}
	if workingHours == nil {
		workingHours = []kernel.TimeRange{}
	}

	if err := errors.Join(
		c.setID(id),
		c.setType(courierType),
		c.setRegions(regions),
		c.ChangeWorkingHours(workingHours),
		c.setAssignedWeight(assignedWeight),
		c.setEarnings(earnings),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that the courier was built by NewCourier or RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id == other.id
}

func (c *Courier) ID() int64 {
	return c.id
}

func (c *Courier) Type() Type {
	return c.courierType
}

// Capacity is the carrying capacity of the current type.
func (c *Courier) Capacity() decimal.Decimal {
	return c.courierType.Capacity()
}

func (c *Courier) Regions() []*Region {
	return c.regions
}

// RegionNumbers returns the region numbers in insertion order.
func (c *Courier) RegionNumbers() []int {
	numbers := make([]int, 0, len(c.regions))
	for _, r := range c.regions {
		numbers = append(numbers, r.number)
	}
	return numbers
}

func (c *Courier) WorkingHours() []kernel.TimeRange {
	return c.workingHours
}

func (c *Courier) AssignedWeight() decimal.Decimal {
	return c.assignedWeight
}

func (c *Courier) Earnings() int64 {
	return c.earnings
}

// Delivery returns the courier's delivery slot or nil before the first assignment.
func (c *Courier) Delivery() *Delivery {
	return c.delivery
}

// DeliveryID is the id orders reference while batched to this courier.
func (c *Courier) DeliveryID() (int64, bool) {
	if c.delivery == nil {
		return 0, false
	}
	return c.id, true
}

// ChangeType switches the means of transport. Capacity changes immediately;
// the current batch keeps the type it was formed with for earnings.
func (c *Courier) ChangeType(t Type) error {
	return c.setType(t)
}

// ChangeRegions replaces the region set. Regions present before and after keep
// their statistics and position, dropped regions are discarded and new ones are
// appended in the given order.
func (c *Courier) ChangeRegions(numbers []int) error {
	if numbers == nil {
		return errs.NewValueIsRequiredError("regions")
	}

	existing := make(map[int]*Region, len(c.regions))
	for _, r := range c.regions {
		existing[r.number] = r
	}

	wanted := make(map[int]struct{}, len(numbers))
	var errList []error
	for _, n := range numbers {
		if n <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not positive", n)))
			continue
		}
		wanted[n] = struct{}{}
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	regions := make([]*Region, 0, len(wanted))
	for _, r := range c.regions {
		if _, ok := wanted[r.number]; ok {
			regions = append(regions, r)
		}
	}
	for _, n := range numbers {
		if _, ok := existing[n]; ok {
			continue
		}
		if slices.ContainsFunc(regions, func(r *Region) bool { return r.number == n }) {
			continue
		}
		r, err := NewRegion(n)
		if err != nil {
			return err
		}
		regions = append(regions, r)
	}

	c.regions = regions
	return nil
}

// ChangeWorkingHours replaces the working windows. Windows present before and
// after keep their position; new ones are appended.
func (c *Courier) ChangeWorkingHours(hours []kernel.TimeRange) error {
	if hours == nil {
		return errs.NewValueIsRequiredError("working_hours")
	}
	for _, h := range hours {
		if err := h.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("working_hours", err)
		}
	}

	contains := func(list []kernel.TimeRange, h kernel.TimeRange) bool {
		return slices.ContainsFunc(list, h.IsEqual)
	}

	result := make([]kernel.TimeRange, 0, len(hours))
	for _, h := range c.workingHours {
		if contains(hours, h) && !contains(result, h) {
			result = append(result, h)
		}
	}
	for _, h := range hours {
		if !contains(result, h) {
			result = append(result, h)
		}
	}

	c.workingHours = result
	return nil
}

// Assign opens a new batch at now and attaches orders to it. The delivery
// slot is created on first use. The courier type is snapshotted for earnings,
// and the completion cursor is only initialised if it was never set.
func (c *Courier) Assign(now time.Time, orders ...*order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	if now.IsZero() {
		return errs.NewValueIsRequiredError("assign time")
	}
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if o.Status() != order.Unassigned {
			return errs.NewValueIsInvalidErrorWithCause(
				"orders", fmt.Errorf("order %d is %s", o.ID(), o.Status()))
		}
	}

	if c.delivery == nil {
		c.delivery = &Delivery{}
	}
	c.delivery.startBatch(now, c.courierType)

	load := c.assignedWeight
	for _, o := range orders {
		if err := o.Assign(c.id); err != nil {
			return err
		}
		load = load.Add(o.Weight())
	}
	c.assignedWeight = load

	return nil
}

// CompleteOrder records the delivery of o at completeTime. It releases the
// order's weight, adds the elapsed time since the previous completion (or the
// batch start) to the order's region, and advances the delivery cursor.
// The elapsed duration is returned.
func (c *Courier) CompleteOrder(o *order.Order, completeTime time.Time) (time.Duration, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	if c.delivery == nil {
		return 0, ErrNoActiveDelivery
	}
	if !o.IsInDelivery(c.id) {
		return 0, errs.NewObjectNotFoundErrorWithCause("order_id", o.ID(), ErrOrderNotInDelivery)
	}

	region := c.findRegion(o.Region())
	if region == nil {
		return 0, errs.NewObjectNotFoundError("region", o.Region())
	}

	if err := o.Complete(); err != nil {
		return 0, err
	}

	elapsed := c.delivery.advance(completeTime)
	region.recordDelivery(elapsed)
	c.assignedWeight = c.assignedWeight.Sub(o.Weight())

	return elapsed, nil
}

// SettleDelivery pays for a drained batch using the type the batch was
// formed with and returns the credited amount.
func (c *Courier) SettleDelivery() (int64, error) {
	if c.delivery == nil {
		return 0, ErrNoActiveDelivery
	}
	amount := BaseDeliveryPayment * c.delivery.typeAtAssignment.Coefficient()
	c.earnings += amount
	return amount, nil
}

// RecalculateLoad sets assignedWeight to the total weight of kept, which must
// be the courier's complete set of incomplete batched orders.
func (c *Courier) RecalculateLoad(kept []*order.Order) error {
	load := decimal.Zero
	for _, o := range kept {
		if !o.IsInDelivery(c.id) || o.IsComplete() {
			return errs.NewValueIsInvalidErrorWithCause("orders", fmt.Errorf("order %d is not an active order of courier %d", o.ID(), c.id))
		}
		load = load.Add(o.Weight())
	}
	c.assignedWeight = load
	return nil
}

func (c *Courier) findRegion(number int) *Region {
	for _, r := range c.regions {
		if r.number == number {
			return r
		}
	}
	return nil
}

func (c *Courier) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not positive", id))
	}
	c.id = id
	return nil
}

func (c *Courier) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.courierType = t
	return nil
}

func (c *Courier) setRegions(regions []*Region) error {
	seen := make(map[int]struct{}, len(regions))
	for _, r := range regions {
		if r == nil {
			return errs.NewValueIsRequiredError("region")
		}
		if _, dup := seen[r.number]; dup {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("region %d is duplicated", r.number))
		}
		seen[r.number] = struct{}{}
	}
	c.regions = regions
	return nil
}

func (c *Courier) setAssignedWeight(w decimal.Decimal) error {
	if w.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("assigned_weight", fmt.Errorf("%s is negative", w))
	}
	c.assignedWeight = w
	return nil
}

func (c *Courier) setEarnings(earnings int64) error {
	if earnings < 0 {
		return errs.NewValueIsInvalidErrorWithCause("earnings", fmt.Errorf("%d is negative", earnings))
	}
	c.earnings = earnings
	return nil
}
