package commands

import (
	"context"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"
)

// SetPaymentCommandHandler updates the payment label of a draft.
type SetPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetPaymentCommandHandler(uowFactory OrderUoWFactory) SetPaymentCommandHandler {
	return SetPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetPaymentCommandHandler) Handle(ctx context.Context, cmd SetPaymentCommand) (err error) {
	defer func() { metrics.ObserveRejection("set_payment", err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	return updateDraft(ctx, h.uowFactory, cmd.OrderNumber(),
		func(_ ports.OrderRepository, draft *order.Order) error {
			return draft.SetPayment(cmd.Operator(), cmd.Method())
		})
}
