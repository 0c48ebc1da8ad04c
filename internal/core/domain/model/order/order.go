package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a single parcel.
//
// Invariants:
//   - id is a positive, externally assigned integer
//   - weight lies in [0.01, 50.00] with two decimal digits at most
//   - region is a positive region number
//   - at least one delivery window
//   - deliveryID is set iff the status is Assigned or Completed
type Order struct {
	id            int64
	weight        decimal.Decimal
	region        int
	deliveryHours []kernel.TimeRange

	// deliveryID references the courier's delivery slot; it equals the courier id.
	deliveryID *int64

	status Status

	guard guard.ConstructorGuard
}

// NewOrder creates an unassigned order. All field errors are reported together.
//
// Example:
//
//	hours, _ := kernel.ParseTimeRanges([]string{"09:00-18:00"})
//	o, err := order.NewOrder(1, decimal.RequireFromString("0.23"), 12, hours)
func NewOrder(id int64, weight decimal.Decimal, region int, deliveryHours []kernel.TimeRange) (*Order, error) {
	o := &Order{
		status: Unassigned,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
		o.setRegion(region),
		o.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage.
func RestoreOrder(
	id int64,
	weight decimal.Decimal,
	region int,
	deliveryHours []kernel.TimeRange,
	deliveryID *int64,
	isComplete bool,
) (*Order, error) {
	o, err := NewOrder(id, weight, region, deliveryHours)
	if err != nil {
		return nil, err
	}

	switch {
	case isComplete:
		o.status = Completed
	case deliveryID != nil:
		o.status = Assigned
	}

	if err := o.status.ValidateCanHaveDelivery(deliveryID != nil); err != nil {
		return nil, err
	}
	o.deliveryID = deliveryID

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Weight() decimal.Decimal {
	return o.weight
}

func (o *Order) Region() int {
	return o.region
}

func (o *Order) DeliveryHours() []kernel.TimeRange {
	return o.deliveryHours
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsComplete() bool {
	return o.status == Completed
}

// DeliveryID returns the delivery the order is batched into, if any.
func (o *Order) DeliveryID() (int64, bool) {
	if o.deliveryID == nil {
		return 0, false
	}
	return *o.deliveryID, true
}

// IsInDelivery reports whether the order is batched into deliveryID.
func (o *Order) IsInDelivery(deliveryID int64) bool {
	return o.deliveryID != nil && *o.deliveryID == deliveryID
}

// Assign attaches the order to a delivery. Only pool orders can be assigned.
func (o *Order) Assign(deliveryID int64) error {
	if deliveryID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryID", fmt.Errorf("%d is not positive", deliveryID))
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryID = &deliveryID
	return nil
}

// Unassign returns the order to the pool.
func (o *Order) Unassign() error {
	newStatus, err := o.status.Unassign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryID = nil
	return nil
}

// Complete marks the order delivered. The delivery reference is kept so the
// completion can be replayed idempotently.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not positive", id))
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight decimal.Decimal) error {
	w, err := kernel.NewOrderWeight(weight)
	if err != nil {
		return err
	}
	o.weight = w
	return nil
}

func (o *Order) setRegion(region int) error {
	if region <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%d is not positive", region))
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(hours []kernel.TimeRange) error {
	if len(hours) == 0 {
		return errs.NewValueIsRequiredError("delivery_hours")
	}
	for _, h := range hours {
		if err := h.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("delivery_hours", err)
		}
	}
	o.deliveryHours = hours
	return nil
}
