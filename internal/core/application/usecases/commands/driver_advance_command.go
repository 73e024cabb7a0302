package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/guard"
)

var ErrDriverAdvanceCommandIsNotConstructed = errors.New(
	"DriverAdvanceCommand must be created via NewDriverAdvanceCommand constructor",
)

// DriverAdvanceCommand is a driver reporting progress on an active order:
// picked up, arrived or completed.
//
// Example:
//
//	transition, err := order.ParseTransition("pickedup")
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewDriverAdvanceCommand(driverID, number, transition)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type DriverAdvanceCommand struct { //nolint:recvcheck //using for validation
	driverID    kernel.ActorID
	orderNumber kernel.OrderNumber
	transition  order.Transition

	guard guard.ConstructorGuard
}

// NewDriverAdvanceCommand validates the driver, the order number and the transition.
func NewDriverAdvanceCommand(
	driverID kernel.ActorID,
	number kernel.OrderNumber,
	transition order.Transition,
) (DriverAdvanceCommand, error) {
	if err := errors.Join(
		driverID.Validate(),
		number.Validate(),
		transition.Validate(),
	); err != nil {
		return DriverAdvanceCommand{}, err
	}

	return DriverAdvanceCommand{
		driverID:    driverID,
		orderNumber: number,
		transition:  transition,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DriverAdvanceCommand) Validate() error {
	return c.guard.Validate(ErrDriverAdvanceCommandIsNotConstructed)
}

func (c DriverAdvanceCommand) DriverID() kernel.ActorID {
	return c.driverID
}

func (c DriverAdvanceCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}

func (c DriverAdvanceCommand) Transition() order.Transition {
	return c.transition
}
