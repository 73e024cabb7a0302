package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/pkg/guard"
)

var ErrDriverConnectCommandIsNotConstructed = errors.New(
	"DriverConnectCommand must be created via NewDriverConnectCommand constructor",
)

// DriverConnectCommand is a driver announcing they are available for orders.
type DriverConnectCommand struct { //nolint:recvcheck //using for validation
	info driver.Info

	guard guard.ConstructorGuard
}

func NewDriverConnectCommand(info driver.Info) (DriverConnectCommand, error) {
	if err := info.Validate(); err != nil {
		return DriverConnectCommand{}, err
	}

	return DriverConnectCommand{
		info:  info,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DriverConnectCommand) Validate() error {
	return c.guard.Validate(ErrDriverConnectCommandIsNotConstructed)
}

func (c DriverConnectCommand) Info() driver.Info {
	return c.info
}
