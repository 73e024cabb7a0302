package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/guard"
)

var ErrRequestInputCommandIsNotConstructed = errors.New(
	"RequestInputCommand must be created via NewRequestInputCommand constructor",
)

// RequestInputCommand represents the operator choosing a draft field to fill
// with the next free-text message.
type RequestInputCommand struct { //nolint:recvcheck //using for validation
	draftTarget
	field order.Field

	guard guard.ConstructorGuard
}

// NewRequestInputCommand validates the operator, the order number and the field.
func NewRequestInputCommand(
	operator kernel.ActorID,
	number kernel.OrderNumber,
	field order.Field,
) (RequestInputCommand, error) {
	target, err := newDraftTarget(operator, number)
	if err = errors.Join(err, field.Validate()); err != nil {
		return RequestInputCommand{}, err
	}

	return RequestInputCommand{
		draftTarget: target,
		field:       field,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestInputCommand) Validate() error {
	return c.guard.Validate(ErrRequestInputCommandIsNotConstructed)
}

func (c RequestInputCommand) Field() order.Field {
	return c.field
}
