package commands

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"
)

// DriverDisconnectCommandHandler removes drivers from the registry.
// Disconnecting an unknown driver is not an error.
type DriverDisconnectCommandHandler struct {
	uowFactory DriverUoWFactory
	notifier   ports.Notifier
	operators  []kernel.ActorID
	clock      Clock
}

func NewDriverDisconnectCommandHandler(
	uowFactory DriverUoWFactory,
	notifier ports.Notifier,
	operators []kernel.ActorID,
	clock Clock,
) DriverDisconnectCommandHandler {
	return DriverDisconnectCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		operators:  operators,
		clock:      clockOrDefault(clock),
	}
}

// Handle disconnects the driver and reports whether an entry was removed.
// Operators are told only when something was removed.
func (h *DriverDisconnectCommandHandler) Handle(ctx context.Context, cmd DriverDisconnectCommand) (removed bool, err error) {
	defer func() { metrics.ObserveRejection("driver_disconnect", err) }()

	if err = cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	registry := uow.DriverRegistry()
	info, _ := registry.Get(cmd.DriverID())
	before := registry.Count()
	connected := before
	removed = registry.Disconnect(cmd.DriverID())
	if removed {
		connected--
	}

	// The gauge moves while the registry is held so concurrent changes land in commit order.
	metrics.ConnectedDrivers.Set(float64(connected))
	if err = uow.Commit(ctx); err != nil {
		metrics.ConnectedDrivers.Set(float64(before))
		return false, err
	}

	if removed {
		payload := map[string]string{
			"driverId":   cmd.DriverID().String(),
			"driverName": info.DisplayName(),
			"reason":     cmd.Reason().String(),
		}
		h.notifier.Notify(ctx, toOperators(h.operators, cmd.Reason().notificationKind(), payload, h.clock())...)
	}

	return removed, nil
}
