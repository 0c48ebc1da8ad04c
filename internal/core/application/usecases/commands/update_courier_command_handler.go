package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// UpdateCourierCommandHandler applies a profile patch and reconciles the
// courier's batch in the same transaction: orders the courier can no longer
// carry go back to the pool and the assigned weight is recomputed.
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.ProfileReconciler
}

func NewUpdateCourierCommandHandler(uowFactory UoWFactory) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewProfileReconciler(),
	}
}

func (h *UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) (CourierProfile, error) {
	if err := cmd.Validate(); err != nil {
		return CourierProfile{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CourierProfile{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return CourierProfile{}, err
	}

	if t, ok := cmd.CourierType(); ok {
		if err = c.ChangeType(t); err != nil {
			return CourierProfile{}, err
		}
	}
	if regions, ok := cmd.Regions(); ok {
		if err = c.ChangeRegions(regions); err != nil {
			return CourierProfile{}, err
		}
	}
	if hours, ok := cmd.WorkingHours(); ok {
		if err = c.ChangeWorkingHours(hours); err != nil {
			return CourierProfile{}, err
		}
	}

	batched, err := orderRepo.ListIncompleteInDelivery(ctx, c.ID())
	if err != nil {
		return CourierProfile{}, err
	}

	_, evicted, err := h.reconciler.Reconcile(c, batched)
	if err != nil {
		return CourierProfile{}, err
	}

	if err = orderRepo.Detach(ctx, evicted); err != nil {
		return CourierProfile{}, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return CourierProfile{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CourierProfile{}, err
	}

	return newCourierProfile(c), nil
}
