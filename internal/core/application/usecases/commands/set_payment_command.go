package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/guard"
)

var ErrSetPaymentCommandIsNotConstructed = errors.New(
	"SetPaymentCommand must be created via NewSetPaymentCommand constructor",
)

// SetPaymentCommand changes the payment label of a draft.
type SetPaymentCommand struct { //nolint:recvcheck //using for validation
	draftTarget
	method order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewSetPaymentCommand rejects payment methods outside of the closed set.
func NewSetPaymentCommand(
	operator kernel.ActorID,
	number kernel.OrderNumber,
	method order.PaymentMethod,
) (SetPaymentCommand, error) {
	target, err := newDraftTarget(operator, number)
	if err = errors.Join(err, method.Validate()); err != nil {
		return SetPaymentCommand{}, err
	}

	return SetPaymentCommand{
		draftTarget: target,
		method:      method,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentCommandIsNotConstructed)
}

func (c SetPaymentCommand) Method() order.PaymentMethod {
	return c.method
}
