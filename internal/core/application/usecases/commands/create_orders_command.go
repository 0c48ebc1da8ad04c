package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

// OrderDraft is one entry of an order batch as received from a client.
// Weight is the decimal literal exactly as sent, so precision is checked on
// the text and not on a float.
type OrderDraft struct {
	ID            int64    `validate:"gt=0"`
	Weight        string   `validate:"order_weight"`
	Region        int      `validate:"gt=0"`
	DeliveryHours []string `validate:"required,min=1,dive,time_range"`

	// Malformed is set by the transport when the entry could not be decoded.
	Malformed error `validate:"-"`
}

// CreateOrdersCommand registers a batch of orders in the unassigned pool.
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	drafts []OrderDraft

	guard guard.ConstructorGuard
}

func NewCreateOrdersCommand(drafts []OrderDraft) (CreateOrdersCommand, error) {
	if drafts == nil {
		return CreateOrdersCommand{}, errs.NewValueIsRequiredError("data")
	}

	return CreateOrdersCommand{
		drafts: drafts,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) Drafts() []OrderDraft {
	return c.drafts
}
