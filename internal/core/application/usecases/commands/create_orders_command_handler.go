package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"gopkg.in/go-playground/validator.v9"
)

// CreateOrdersCommandHandler creates a batch of orders with the same
// all-or-nothing rules as CreateCouriersCommandHandler. Orders are inserted in
// request order, which fixes their tie-break position in the pool.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	validate   *validator.Validate
}

func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
		validate:   newDraftValidator(),
	}
}

// Handle returns the ids of the created orders in request order.
func (h *CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]int64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	drafts := cmd.Drafts()
	ids := make([]int64, len(drafts))
	orders := make([]*order.Order, len(drafts))
	rejections := newBatchRejections()

	for i, draft := range drafts {
		ids[i] = draft.ID
		o, err := h.build(draft)
		if err != nil {
			rejections.reject(i, draft.ID)
			continue
		}
		orders[i] = o
	}
	rejections.rejectDuplicates(ids)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if candidates := candidateIDs(ids, rejections); len(candidates) > 0 {
		existing, err := orderRepo.ExistingIDs(ctx, candidates)
		if err != nil {
			return nil, err
		}
		rejections.rejectExisting(ids, existing)
	}

	if err := rejections.err("orders"); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (h *CreateOrdersCommandHandler) build(draft OrderDraft) (*order.Order, error) {
	if draft.Malformed != nil {
		return nil, draft.Malformed
	}
	if err := h.validate.Struct(draft); err != nil {
		return nil, err
	}

	weight, err := kernel.ParseOrderWeight(draft.Weight)
	if err != nil {
		return nil, err
	}
	hours, err := kernel.ParseTimeRanges(draft.DeliveryHours)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(draft.ID, weight, draft.Region, hours)
}
