package commands

import (
	"context"
	"errors"
	"fmt"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/metrics"
)

// SubmitInputResult tells the caller which draft field the text went into.
type SubmitInputResult struct {
	OrderNumber kernel.OrderNumber
	Field       order.Field
}

// SubmitInputCommandHandler routes free text to the draft awaiting input.
//
// Example:
//
//	cmd, _ := NewSubmitInputCommand(operatorID, "12 Baker Street")
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoPendingInput) {
//	    // Nothing was asked for; ignore the message
//	}
//	fmt.Printf("Order %s: %s updated", result.OrderNumber, result.Field)
type SubmitInputCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSubmitInputCommandHandler(uowFactory OrderUoWFactory) SubmitInputCommandHandler {
	return SubmitInputCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle sets the pending field to the text and returns the draft back to idle.
// A rejected value keeps the draft awaiting input so the operator can retry.
func (h *SubmitInputCommandHandler) Handle(ctx context.Context, cmd SubmitInputCommand) (_ SubmitInputResult, err error) {
	defer func() { metrics.ObserveRejection("submit_input", err) }()

	if err = cmd.Validate(); err != nil {
		return SubmitInputResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return SubmitInputResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	draft, err := orderRepo.FindAwaitingInput(ctx, cmd.Operator())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return SubmitInputResult{}, fmt.Errorf("%w: operator %s", ErrNoPendingInput, cmd.Operator())
	}
	if err != nil {
		return SubmitInputResult{}, err
	}

	field, ok := draft.Input().Field()
	if !ok {
		return SubmitInputResult{}, fmt.Errorf("%w: operator %s", ErrNoPendingInput, cmd.Operator())
	}

	if err = draft.SetField(cmd.Operator(), field, cmd.Text()); err != nil {
		return SubmitInputResult{}, err
	}

	if err = orderRepo.Update(ctx, draft); err != nil {
		return SubmitInputResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitInputResult{}, err
	}

	return SubmitInputResult{OrderNumber: draft.Number(), Field: field}, nil
}
