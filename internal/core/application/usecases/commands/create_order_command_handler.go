package commands

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/metrics"
)

// CreateOrderCommandHandler opens drafts. A draft starts idle, without customer,
// location or notes, with the configured default payment label.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, order.PaymentCash, time.Now)
//	cmd, _ := NewCreateOrderCommand(operatorID)
//
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	defaultPayment order.PaymentMethod
	clock          Clock
}

// NewCreateOrderCommandHandler creates a handler for draft creation.
// A nil clock falls back to time.Now.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	defaultPayment order.PaymentMethod,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:     uowFactory,
		defaultPayment: defaultPayment,
		clock:          clockOrDefault(clock),
	}
}

// Handle allocates the next order number and stores the new draft.
// The number is consumed even if the unit of work fails to commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ kernel.OrderNumber, err error) {
	defer func() { metrics.ObserveRejection("create_order", err) }()

	if err = cmd.Validate(); err != nil {
		return kernel.OrderNumber{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx)
	if err != nil {
		return kernel.OrderNumber{}, err
	}

	draft, err := order.NewDraft(number, cmd.Operator(), h.defaultPayment, h.clock())
	if err != nil {
		return kernel.OrderNumber{}, err
	}

	if err = orderRepo.AddDraft(ctx, draft); err != nil {
		return kernel.OrderNumber{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	metrics.OrdersCreatedTotal.Inc()
	return number, nil
}
