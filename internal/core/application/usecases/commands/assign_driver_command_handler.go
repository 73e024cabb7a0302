package commands

import (
	"context"
	"maps"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"
)

// AssignDriverCommandHandler runs the dispatch transition: the draft becomes an
// active order bound to the chosen driver.
//
// After the state is committed the driver receives the order details, the
// operator gets a confirmation and the customer learns the order number.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.AssignmentMatcher
	notifier   ports.Notifier
	clock      Clock
}

// NewAssignDriverCommandHandler creates a handler for dispatch confirmation.
// A nil clock falls back to time.Now.
func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	matcher services.AssignmentMatcher,
	notifier ports.Notifier,
	clock Clock,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		clock:      clockOrDefault(clock),
	}
}

// Handle assigns the driver and moves the order from the draft set to the active set.
// On any error the draft is left as it was.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (_ order.Snapshot, err error) {
	defer func() { metrics.ObserveRejection("assign_driver", err) }()

	if err = cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	snapshot, assignee, err := h.assign(ctx, cmd)
	if err != nil {
		return order.Snapshot{}, err
	}

	metrics.OrdersDispatchedTotal.Inc()
	h.notifier.Notify(ctx, h.notifications(snapshot, assignee)...)

	return snapshot, nil
}

func (h *AssignDriverCommandHandler) assign(ctx context.Context, cmd AssignDriverCommand) (order.Snapshot, driver.Info, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, driver.Info{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	draft, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return order.Snapshot{}, driver.Info{}, err
	}

	assignee, err := h.matcher.Assign(draft, cmd.Operator(), cmd.DriverID(), uow.DriverRegistry().List(), h.clock())
	if err != nil {
		return order.Snapshot{}, driver.Info{}, err
	}

	if err = orderRepo.Activate(ctx, draft); err != nil {
		return order.Snapshot{}, driver.Info{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, driver.Info{}, err
	}

	return draft.Snapshot(), assignee, nil
}

func (h *AssignDriverCommandHandler) notifications(s order.Snapshot, assignee driver.Info) []ports.Notification {
	now := h.clock()

	details := orderPayload(s)
	withDriver := maps.Clone(details)
	maps.Copy(withDriver, driverPayload(assignee))

	return []ports.Notification{
		newNotification(assignee.ID(), ports.KindOrderAssigned, s.Number, details, now),
		newNotification(s.CreatedBy, ports.KindOrderDispatched, s.Number, withDriver, now),
		newNotification(s.CustomerID, ports.KindCustomerOrderCreated, s.Number, withDriver, now),
	}
}
