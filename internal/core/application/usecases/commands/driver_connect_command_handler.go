package commands

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"
)

// DriverConnectCommandHandler adds drivers to the registry. Connecting twice
// only refreshes the display name; operators hear about new drivers only.
type DriverConnectCommandHandler struct {
	uowFactory DriverUoWFactory
	notifier   ports.Notifier
	operators  []kernel.ActorID
	clock      Clock
}

// NewDriverConnectCommandHandler creates a handler for driver connection.
// operators are the identities told about newly connected drivers.
func NewDriverConnectCommandHandler(
	uowFactory DriverUoWFactory,
	notifier ports.Notifier,
	operators []kernel.ActorID,
	clock Clock,
) DriverConnectCommandHandler {
	return DriverConnectCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		operators:  operators,
		clock:      clockOrDefault(clock),
	}
}

// Handle connects the driver and reports whether they were not connected before.
func (h *DriverConnectCommandHandler) Handle(ctx context.Context, cmd DriverConnectCommand) (isNew bool, err error) {
	defer func() { metrics.ObserveRejection("driver_connect", err) }()

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
	before := registry.Count()
	connected := before
	isNew = registry.Connect(cmd.Info())
	if isNew {
		connected++
	}

	// The gauge moves while the registry is held so concurrent changes land in commit order.
	metrics.ConnectedDrivers.Set(float64(connected))
	if err = uow.Commit(ctx); err != nil {
		metrics.ConnectedDrivers.Set(float64(before))
		return false, err
	}

	if isNew {
		h.notifier.Notify(ctx, toOperators(h.operators, ports.KindDriverConnected, driverPayload(cmd.Info()), h.clock())...)
	}

	return isNew, nil
}
