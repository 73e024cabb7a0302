package commands

import (
	"context"
	"fmt"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/metrics"
)

// CancelDraftCommandHandler removes a draft for good. Its number is not reused
// and nothing is written to the history.
type CancelDraftCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelDraftCommandHandler(uowFactory OrderUoWFactory) CancelDraftCommandHandler {
	return CancelDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the draft.
//
// Returns:
//   - *errs.ObjectNotFoundError if no set holds the order
//   - order.ErrNotDraft if the order was dispatched
//   - *errs.NotAuthorizedError if another operator created the draft
func (h *CancelDraftCommandHandler) Handle(ctx context.Context, cmd CancelDraftCommand) (err error) {
	defer func() { metrics.ObserveRejection("cancel_draft", err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	draft, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	if !draft.IsDraft() {
		return fmt.Errorf("%w: order %s is %s", order.ErrNotDraft, draft.Number(), draft.Status())
	}
	if err = draft.EnsureCreatedBy(cmd.Operator(), "cancel"); err != nil {
		return err
	}

	if err = orderRepo.RemoveDraft(ctx, draft.Number()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrdersCancelledTotal.Inc()
	return nil
}
