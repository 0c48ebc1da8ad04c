package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCouriersCommandIsNotConstructed = errors.New(
	"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
)

// CourierDraft is one entry of a courier batch as received from a client.
// Values are checked by the handler, not by the constructor, so that every
// failing entry of the batch can be reported at once.
type CourierDraft struct {
	ID           int64    `validate:"gt=0"`
	Type         string   `validate:"courier_type"`
	Regions      []int    `validate:"required,dive,gt=0"`
	WorkingHours []string `validate:"required,dive,time_range"`

	// Malformed is set by the transport when the entry could not be decoded:
	// missing or unknown keys, wrong JSON types.
	Malformed error `validate:"-"`
}

// CreateCouriersCommand registers a batch of couriers. Either every courier
// is created or none is.
//
// Example:
//
//	cmd, err := NewCreateCouriersCommand([]CourierDraft{
//	    {ID: 1, Type: "foot", Regions: []int{1, 12}, WorkingHours: []string{"11:35-14:05"}},
//	})
//	ids, err := handler.Handle(ctx, cmd)
type CreateCouriersCommand struct { //nolint:recvcheck //using for validation
	drafts []CourierDraft

	guard guard.ConstructorGuard
}

func NewCreateCouriersCommand(drafts []CourierDraft) (CreateCouriersCommand, error) {
	if drafts == nil {
		return CreateCouriersCommand{}, errs.NewValueIsRequiredError("data")
	}

	return CreateCouriersCommand{
		drafts: drafts,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

func (c CreateCouriersCommand) Drafts() []CourierDraft {
	return c.drafts
}
