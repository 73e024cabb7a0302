package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand confirms the dispatch of a draft to one of the candidates.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(operatorID, number, driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//
//	snapshot, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrDriverNotConnected) {
//	    // The driver went offline; pick another one
//	}
//	fmt.Printf("Order %s assigned to %s", snapshot.Number, snapshot.DriverID)
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	draftTarget
	driverID kernel.ActorID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand validates the operator, the order number and the driver id.
func NewAssignDriverCommand(
	operator kernel.ActorID,
	number kernel.OrderNumber,
	driverID kernel.ActorID,
) (AssignDriverCommand, error) {
	target, err := newDraftTarget(operator, number)
	if err = errors.Join(err, driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		draftTarget: target,
		driverID:    driverID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) DriverID() kernel.ActorID {
	return c.driverID
}
