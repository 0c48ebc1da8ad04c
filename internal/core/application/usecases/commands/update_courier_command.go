package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// CourierPatch holds the profile fields a client asked to change. A nil
// field is left as it is.
type CourierPatch struct {
	Type         *string
	Regions      *[]int
	WorkingHours *[]string
}

// UpdateCourierCommand changes a courier's profile and re-checks the orders
// already batched to the courier.
//
// Example:
//
//	courierType := "foot"
//	cmd, err := NewUpdateCourierCommand(2, CourierPatch{Type: &courierType})
//	if err != nil {
//	    return fmt.Errorf("invalid patch: %w", err)
//	}
//	profile, err := handler.Handle(ctx, cmd)
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    int64
	courierType  *courier.Type
	regions      []int
	workingHours []kernel.TimeRange

	hasRegions      bool
	hasWorkingHours bool

	guard guard.ConstructorGuard
}

// NewUpdateCourierCommand parses every patched field up front; all field
// errors are reported together.
func NewUpdateCourierCommand(courierID int64, patch CourierPatch) (UpdateCourierCommand, error) {
	cmd := UpdateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setType(patch.Type),
		cmd.setRegions(patch.Regions),
		cmd.setWorkingHours(patch.WorkingHours),
	); err != nil {
		return UpdateCourierCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

func (c UpdateCourierCommand) CourierID() int64 {
	return c.courierID
}

// CourierType returns the requested type, if any.
func (c UpdateCourierCommand) CourierType() (courier.Type, bool) {
	if c.courierType == nil {
		return courier.UnknownType, false
	}
	return *c.courierType, true
}

// Regions returns the requested region set, if any.
func (c UpdateCourierCommand) Regions() ([]int, bool) {
	return c.regions, c.hasRegions
}

// WorkingHours returns the requested working windows, if any.
func (c UpdateCourierCommand) WorkingHours() ([]kernel.TimeRange, bool) {
	return c.workingHours, c.hasWorkingHours
}

func (c *UpdateCourierCommand) setCourierID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", fmt.Errorf("%d is not positive", id))
	}
	c.courierID = id
	return nil
}

func (c *UpdateCourierCommand) setType(name *string) error {
	if name == nil {
		return nil
	}
	t, err := courier.ParseType(*name)
	if err != nil {
		return err
	}
	c.courierType = &t
	return nil
}

func (c *UpdateCourierCommand) setRegions(regions *[]int) error {
	if regions == nil {
		return nil
	}
	if *regions == nil {
		return errs.NewValueIsRequiredError("regions")
	}
	for _, r := range *regions {
		if r <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions", fmt.Errorf("%d is not positive", r))
		}
	}
	c.regions = *regions
	c.hasRegions = true
	return nil
}

func (c *UpdateCourierCommand) setWorkingHours(hours *[]string) error {
	if hours == nil {
		return nil
	}
	if *hours == nil {
		return errs.NewValueIsRequiredError("working_hours")
	}
	windows, err := kernel.ParseTimeRanges(*hours)
	if err != nil {
		return err
	}
	c.workingHours = windows
	c.hasWorkingHours = true
	return nil
}
