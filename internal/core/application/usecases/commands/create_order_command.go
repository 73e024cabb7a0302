package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an operator opening a new draft order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(operatorID)
//	if err != nil {
//	    return fmt.Errorf("invalid operator: %w", err)
//	}
//
//	number, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Draft %s is ready for editing", number)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	operator kernel.ActorID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a draft on behalf of an operator.
func NewCreateOrderCommand(operator kernel.ActorID) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOperator(operator); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Operator() kernel.ActorID {
	return c.operator
}

func (c *CreateOrderCommand) setOperator(operator kernel.ActorID) error {
	if err := operator.Validate(); err != nil {
		return err
	}

	c.operator = operator
	return nil
}
