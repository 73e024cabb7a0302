package commands

import (
	"errors"
	"strings"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var ErrDriverDisconnectCommandIsNotConstructed = errors.New(
	"DriverDisconnectCommand must be created via NewDriverDisconnectCommand constructor",
)

// DisconnectReason tells why a driver left the registry.
type DisconnectReason int

const (
	DisconnectUnknown DisconnectReason = iota

	// DisconnectRequested means the driver asked to go offline.
	DisconnectRequested

	// DisconnectLeftGroup means the driver left the drivers' group.
	DisconnectLeftGroup
)

// ParseDisconnectReason accepts "requested" and "left-group".
func ParseDisconnectReason(s string) (DisconnectReason, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "requested":
		return DisconnectRequested, nil
	case "left-group", "left_group", "leftgroup":
		return DisconnectLeftGroup, nil
	}
	return DisconnectUnknown, errs.NewValueIsInvalidErrorWithCause("reason", errors.New(s+" is not a disconnect reason"))
}

func (r DisconnectReason) String() string {
	switch r {
	case DisconnectRequested:
		return "requested"
	case DisconnectLeftGroup:
		return "left-group"
	default:
		return "unknown"
	}
}

func (r DisconnectReason) Validate() error {
	if r != DisconnectRequested && r != DisconnectLeftGroup {
		return errs.NewValueIsInvalidError("reason")
	}
	return nil
}

func (r DisconnectReason) notificationKind() ports.NotificationKind {
	if r == DisconnectLeftGroup {
		return ports.KindDriverLeftGroup
	}
	return ports.KindDriverDisconnected
}

// DriverDisconnectCommand removes a driver from the registry. Orders already
// assigned to them stay active.
type DriverDisconnectCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.ActorID
	reason   DisconnectReason

	guard guard.ConstructorGuard
}

func NewDriverDisconnectCommand(driverID kernel.ActorID, reason DisconnectReason) (DriverDisconnectCommand, error) {
	if err := errors.Join(
		driverID.Validate(),
		reason.Validate(),
	); err != nil {
		return DriverDisconnectCommand{}, err
	}

	return DriverDisconnectCommand{
		driverID: driverID,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DriverDisconnectCommand) Validate() error {
	return c.guard.Validate(ErrDriverDisconnectCommandIsNotConstructed)
}

func (c DriverDisconnectCommand) DriverID() kernel.ActorID {
	return c.driverID
}

func (c DriverDisconnectCommand) Reason() DisconnectReason {
	return c.reason
}
