package commands

import (
	"context"
	"errors"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/metrics"
)

// RequestInputCommandHandler puts a draft into AwaitingInput(field).
//
// An operator waits for input on at most one draft at a time: a pending request
// on another draft of the same operator is dropped.
type RequestInputCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRequestInputCommandHandler(uowFactory OrderUoWFactory) RequestInputCommandHandler {
	return RequestInputCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the draft as awaiting input for the requested field.
func (h *RequestInputCommandHandler) Handle(ctx context.Context, cmd RequestInputCommand) (err error) {
	defer func() { metrics.ObserveRejection("request_input", err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	return updateDraft(ctx, h.uowFactory, cmd.OrderNumber(),
		func(repo ports.OrderRepository, draft *order.Order) error {
			if err := draft.RequestInput(cmd.Operator(), cmd.Field()); err != nil {
				return err
			}

			previous, err := repo.FindAwaitingInput(ctx, cmd.Operator())
			switch {
			case errors.Is(err, errs.ErrObjectNotFound):
				return nil
			case err != nil:
				return err
			case previous.Number().IsEqual(draft.Number()):
				return nil
			}

			if err = previous.CancelInput(cmd.Operator()); err != nil {
				return err
			}
			return repo.Update(ctx, previous)
		})
}
