package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

var ErrCancelDraftCommandIsNotConstructed = errors.New(
	"CancelDraftCommand must be created via NewCancelDraftCommand constructor",
)

// CancelDraftCommand discards a draft. Dispatched orders cannot be cancelled.
type CancelDraftCommand struct { //nolint:recvcheck //using for validation
	draftTarget

	guard guard.ConstructorGuard
}

func NewCancelDraftCommand(operator kernel.ActorID, number kernel.OrderNumber) (CancelDraftCommand, error) {
	target, err := newDraftTarget(operator, number)
	if err != nil {
		return CancelDraftCommand{}, err
	}

	return CancelDraftCommand{
		draftTarget: target,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDraftCommand) Validate() error {
	return c.guard.Validate(ErrCancelDraftCommandIsNotConstructed)
}
