package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CompleteOrderCommandHandler records a delivery. The order must belong to the
// courier's delivery; otherwise the result is errs.ErrObjectNotFound, the same
// as for unknown ids. Completing an already completed order succeeds without
// changing anything. When the last incomplete order of the batch is completed
// the courier is paid for the batch.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewDeliveryLifecycle(),
	}
}

// Handle returns the id of the completed order.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return 0, err
	}

	deliveryID, ok := c.DeliveryID()
	if !ok {
		return 0, errs.NewObjectNotFoundError("order_id", cmd.OrderID())
	}

	o, err := orderRepo.GetInDelivery(ctx, deliveryID, cmd.OrderID())
	if err != nil {
		return 0, err
	}
	if o.IsComplete() {
		return o.ID(), nil
	}

	active, err := orderRepo.ListIncompleteInDelivery(ctx, deliveryID)
	if err != nil {
		return 0, err
	}

	if _, err = h.lifecycle.Complete(c, o, active, cmd.CompleteTime()); err != nil {
		return 0, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return 0, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}
