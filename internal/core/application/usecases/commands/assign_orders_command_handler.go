package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// Assignment is the courier's batch. AssignTime is zero when OrderIDs is empty.
type Assignment struct {
	OrderIDs   []int64
	AssignTime time.Time
}

// AssignOrdersCommandHandler runs the greedy dispatcher for one courier.
//
// The courier row is locked first, so concurrent requests for the same courier
// are serialized. Pool orders are claimed with a conditional update; when a
// concurrent assignment for another courier claimed one of them first the
// handler fails with errs.ErrConflict and nothing is written.
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	now        func() time.Time
}

// NewAssignOrdersCommandHandler creates the handler. now supplies the
// assignment time; pass time.Now outside of tests.
func NewAssignOrdersCommandHandler(uowFactory UoWFactory, now func() time.Time) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		now:        now,
	}
}

func (h *AssignOrdersCommandHandler) Handle(ctx context.Context, cmd AssignOrdersCommand) (Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return Assignment{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return Assignment{}, err
	}

	active, err := orderRepo.ListIncompleteInDelivery(ctx, c.ID())
	if err != nil {
		return Assignment{}, err
	}

	var pool []*order.Order
	if len(active) == 0 {
		if pool, err = orderRepo.ListUnassigned(ctx); err != nil {
			return Assignment{}, err
		}
	}

	now := h.now().UTC().Truncate(time.Microsecond)
	batch, err := h.dispatcher.Dispatch(c, active, pool, now)
	if err != nil {
		return Assignment{}, err
	}

	if !batch.Reused && !batch.IsEmpty() {
		// The delivery row must exist before orders reference it.
		if err = courierRepo.Update(ctx, c); err != nil {
			return Assignment{}, err
		}
		if err = orderRepo.AttachToDelivery(ctx, batch.Orders); err != nil {
			return Assignment{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return Assignment{}, err
	}

	return newAssignment(batch), nil
}

func newAssignment(batch services.Batch) Assignment {
	ids := make([]int64, 0, len(batch.Orders))
	for _, o := range batch.Orders {
		ids = append(ids, o.ID())
	}
	return Assignment{
		OrderIDs:   ids,
		AssignTime: batch.AssignTime,
	}
}
