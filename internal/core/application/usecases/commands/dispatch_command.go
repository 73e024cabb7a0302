package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

var ErrDispatchCommandIsNotConstructed = errors.New(
	"DispatchCommand must be created via NewDispatchCommand constructor",
)

// DispatchCommand asks which drivers a draft can be assigned to. It runs the
// dispatch guard but changes nothing; the choice is confirmed by AssignDriverCommand.
type DispatchCommand struct { //nolint:recvcheck //using for validation
	draftTarget

	guard guard.ConstructorGuard
}

func NewDispatchCommand(operator kernel.ActorID, number kernel.OrderNumber) (DispatchCommand, error) {
	target, err := newDraftTarget(operator, number)
	if err != nil {
		return DispatchCommand{}, err
	}

	return DispatchCommand{
		draftTarget: target,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCommandIsNotConstructed)
}
