package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand reports that a courier delivered one of its batched
// orders at completeTime.
//
// Example:
//
//	cmd, err := NewCompleteOrderCommand(2, 3, "2021-01-10T10:33:01.42Z")
//	if err != nil {
//	    return fmt.Errorf("invalid completion: %w", err)
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	courierID    int64
	orderID      int64
	completeTime time.Time

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand validates the ids and parses completeTime; a
// malformed timestamp is rejected before anything is looked up.
func NewCompleteOrderCommand(courierID, orderID int64, completeTime string) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setOrderID(orderID),
		cmd.setCompleteTime(completeTime),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) CourierID() int64 {
	return c.courierID
}

func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

// CompleteTime is in UTC with microsecond precision.
func (c CompleteOrderCommand) CompleteTime() time.Time {
	return c.completeTime
}

func (c *CompleteOrderCommand) setCourierID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not positive", id))
	}
	c.courierID = id
	return nil
}

func (c *CompleteOrderCommand) setOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("%d is not positive", id))
	}
	c.orderID = id
	return nil
}

func (c *CompleteOrderCommand) setCompleteTime(raw string) error {
	if raw == "" {
		return errs.NewValueIsRequiredError("complete_time")
	}
	t, err := kernel.ParseTimestamp(raw)
	if err != nil {
		return err
	}
	c.completeTime = t.Truncate(time.Microsecond)
	return nil
}
