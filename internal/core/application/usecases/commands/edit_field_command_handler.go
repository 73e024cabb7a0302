package commands

import (
	"context"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"
)

// EditFieldCommandHandler sets a field of a draft and clears its pending input.
type EditFieldCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewEditFieldCommandHandler(uowFactory OrderUoWFactory) EditFieldCommandHandler {
	return EditFieldCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the edit. On error the draft keeps its previous content.
func (h *EditFieldCommandHandler) Handle(ctx context.Context, cmd EditFieldCommand) (err error) {
	defer func() { metrics.ObserveRejection("edit_field", err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	return updateDraft(ctx, h.uowFactory, cmd.OrderNumber(),
		func(_ ports.OrderRepository, draft *order.Order) error {
			return draft.SetField(cmd.Operator(), cmd.Field(), cmd.Value())
		})
}
