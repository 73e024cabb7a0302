package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/guard"
)

var ErrEditFieldCommandIsNotConstructed = errors.New(
	"EditFieldCommand must be created via NewEditFieldCommand constructor",
)

// EditFieldCommand sets one free-text field of a draft.
//
// Example:
//
//	cmd, err := NewEditFieldCommand(operatorID, number, order.FieldLocation, "12 Baker Street")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type EditFieldCommand struct { //nolint:recvcheck //using for validation
	draftTarget
	field order.Field
	value string

	guard guard.ConstructorGuard
}

// NewEditFieldCommand validates the addressing part of the command. Whether the
// value is acceptable for the field is decided by the draft.
func NewEditFieldCommand(
	operator kernel.ActorID,
	number kernel.OrderNumber,
	field order.Field,
	value string,
) (EditFieldCommand, error) {
	target, err := newDraftTarget(operator, number)
	if err = errors.Join(err, field.Validate()); err != nil {
		return EditFieldCommand{}, err
	}

	return EditFieldCommand{
		draftTarget: target,
		field:       field,
		value:       value,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EditFieldCommand) Validate() error {
	return c.guard.Validate(ErrEditFieldCommandIsNotConstructed)
}

func (c EditFieldCommand) Field() order.Field {
	return c.field
}

func (c EditFieldCommand) Value() string {
	return c.value
}
