package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"gopkg.in/go-playground/validator.v9"
)

// CreateCouriersCommandHandler creates a batch of couriers in two phases:
// every draft is validated and built first, then the whole batch is inserted
// in one transaction. Any failing draft rejects the batch with
// errs.RejectedBatchError listing all failing entries.
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
	validate   *validator.Validate
}

func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
		validate:   newDraftValidator(),
	}
}

// Handle returns the ids of the created couriers in request order.
func (h *CreateCouriersCommandHandler) Handle(ctx context.Context, cmd CreateCouriersCommand) ([]int64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	drafts := cmd.Drafts()
	ids := make([]int64, len(drafts))
	couriers := make([]*courier.Courier, len(drafts))
	rejections := newBatchRejections()

	for i, draft := range drafts {
		ids[i] = draft.ID
		c, err := h.build(draft)
		if err != nil {
			rejections.reject(i, draft.ID)
			continue
		}
		couriers[i] = c
	}
	rejections.rejectDuplicates(ids)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	if candidates := candidateIDs(ids, rejections); len(candidates) > 0 {
		existing, err := courierRepo.ExistingIDs(ctx, candidates)
		if err != nil {
			return nil, err
		}
		rejections.rejectExisting(ids, existing)
	}

	if err := rejections.err("couriers"); err != nil {
		return nil, err
	}

	for _, c := range couriers {
		if err := courierRepo.Add(ctx, c); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (h *CreateCouriersCommandHandler) build(draft CourierDraft) (*courier.Courier, error) {
	if draft.Malformed != nil {
		return nil, draft.Malformed
	}
	if err := h.validate.Struct(draft); err != nil {
		return nil, err
	}

	courierType, err := courier.ParseType(draft.Type)
	if err != nil {
		return nil, err
	}
	hours, err := kernel.ParseTimeRanges(draft.WorkingHours)
	if err != nil {
		return nil, err
	}

	return courier.NewCourier(draft.ID, courierType, draft.Regions, hours)
}
