package commands

import (
	"context"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultReminderDelay is how long after pickup the driver is reminded of an
// undelivered order.
const DefaultReminderDelay = 45 * time.Minute

// AdvanceResult is the outcome of an accepted driver transition. AlreadyInState
// is set for a repeated pickup, which changes nothing but re-arms the reminder.
type AdvanceResult struct {
	Snapshot       order.Snapshot
	AlreadyInState bool
}

// DriverAdvanceCommandHandler applies driver transitions to active orders.
//
// Reminders are armed and disarmed while the unit of work still holds the
// state, so a pickup and a later complete of the same order always reach the
// timers in the order they were committed.
//
// Side effects after the state change is committed:
//   - complete archives the order and asks the driver for a rating
//   - every accepted change is reported to the operator and the customer
type DriverAdvanceCommandHandler struct {
	uowFactory    UoWFactory
	notifier      ports.Notifier
	reminders     ports.ReminderTimers
	archive       ports.Archive
	reminderDelay time.Duration
	logger        *zap.Logger
	clock         Clock
}

// NewDriverAdvanceCommandHandler creates a handler for driver transitions.
// A non-positive reminderDelay falls back to DefaultReminderDelay and a nil
// clock to time.Now.
func NewDriverAdvanceCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	reminders ports.ReminderTimers,
	archive ports.Archive,
	reminderDelay time.Duration,
	logger *zap.Logger,
	clock Clock,
) *DriverAdvanceCommandHandler {
	if reminderDelay <= 0 {
		reminderDelay = DefaultReminderDelay
	}
	return &DriverAdvanceCommandHandler{
		uowFactory:    uowFactory,
		notifier:      notifier,
		reminders:     reminders,
		archive:       archive,
		reminderDelay: reminderDelay,
		logger:        logger.With(zap.String("component", "driver_advance")),
		clock:         clockOrDefault(clock),
	}
}

// Handle applies the transition.
//
// Guards run in this order:
//   - *errs.ObjectNotFoundError if no set holds the order
//   - order.ErrNotDispatched if the order is still a draft
//   - *errs.NotAuthorizedError if the order belongs to another driver
//   - *errs.PreconditionFailedError if the transition does not follow the status
func (h *DriverAdvanceCommandHandler) Handle(ctx context.Context, cmd DriverAdvanceCommand) (_ AdvanceResult, err error) {
	defer func() { metrics.ObserveRejection("driver_advance", err) }()

	if err = cmd.Validate(); err != nil {
		return AdvanceResult{}, err
	}

	result, err := h.advance(ctx, cmd)
	if err != nil {
		return AdvanceResult{}, err
	}

	if cmd.Transition() == order.TransitionComplete {
		metrics.OrdersCompletedTotal.Inc()
		if archiveErr := h.archive.ArchiveOrder(ctx, result.Snapshot); archiveErr != nil {
			h.logger.Warn("failed to archive completed order",
				zap.String("order", cmd.OrderNumber().String()),
				zap.Error(archiveErr),
			)
		}
	}

	if !result.AlreadyInState {
		h.notifier.Notify(ctx, h.notifications(result.Snapshot, cmd.Transition())...)
	}

	return result, nil
}

func (h *DriverAdvanceCommandHandler) advance(ctx context.Context, cmd DriverAdvanceCommand) (AdvanceResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	active, err := orderRepo.Get(ctx, cmd.OrderNumber())
	if err != nil {
		return AdvanceResult{}, err
	}

	alreadyInState, err := active.Advance(cmd.DriverID(), cmd.Transition(), h.clock())
	if err != nil {
		return AdvanceResult{}, err
	}
	if alreadyInState {
		h.armReminder(cmd)
		return AdvanceResult{Snapshot: active.Snapshot(), AlreadyInState: true}, nil
	}

	if active.Status().IsTerminal() {
		if err = orderRepo.Archive(ctx, active); err != nil {
			return AdvanceResult{}, err
		}
		uow.FeedbackRepository().OpenRating(cmd.DriverID(), active.Number())
	} else if err = orderRepo.Update(ctx, active); err != nil {
		return AdvanceResult{}, err
	}

	switch cmd.Transition() {
	case order.TransitionPickup:
		h.armReminder(cmd)
	case order.TransitionComplete:
		h.reminders.Disarm(cmd.OrderNumber())
	}

	if err = uow.Commit(ctx); err != nil {
		if cmd.Transition() == order.TransitionPickup {
			h.reminders.Disarm(cmd.OrderNumber())
		}
		return AdvanceResult{}, err
	}

	return AdvanceResult{Snapshot: active.Snapshot()}, nil
}

// armReminder replaces the reminder of the order. It only schedules; the
// callback runs later, outside of this unit of work.
func (h *DriverAdvanceCommandHandler) armReminder(cmd DriverAdvanceCommand) {
	h.reminders.Arm(cmd.OrderNumber(), h.reminderDelay, h.remind(cmd.OrderNumber(), cmd.DriverID()))
}

func (h *DriverAdvanceCommandHandler) notifications(s order.Snapshot, transition order.Transition) []ports.Notification {
	now := h.clock()
	payload := orderPayload(s)

	notifications := []ports.Notification{
		newNotification(s.CreatedBy, ports.KindOrderProgressed, s.Number, payload, now),
	}

	switch transition {
	case order.TransitionPickup:
		notifications = append(notifications,
			newNotification(s.CustomerID, ports.KindCustomerPickedUp, s.Number, payload, now))
	case order.TransitionArrive:
		notifications = append(notifications,
			newNotification(s.CustomerID, ports.KindCustomerArrived, s.Number, payload, now))
	case order.TransitionComplete:
		notifications = append(notifications,
			newNotification(s.CustomerID, ports.KindCustomerDelivered, s.Number, payload, now),
			newNotification(s.DriverID, ports.KindFeedbackRequested, s.Number, payload, now))
	}

	return notifications
}

// remind returns the reminder callback of an order. It fires outside of any unit
// of work and only notifies if the order is still picked up and not delivered.
func (h *DriverAdvanceCommandHandler) remind(number kernel.OrderNumber, driverID kernel.ActorID) func() {
	return func() {
		ctx := context.Background()

		snapshot, err := h.current(ctx, number)
		if err != nil {
			h.logger.Warn("failed to load order for reminder",
				zap.String("order", number.String()),
				zap.Error(err),
			)
			return
		}
		if snapshot.Status != order.PickedUp {
			h.logger.Debug("reminder skipped, order moved on",
				zap.String("order", number.String()),
				zap.String("status", snapshot.Status.String()),
			)
			return
		}

		metrics.RemindersFiredTotal.Inc()
		h.notifier.Notify(ctx,
			newNotification(driverID, ports.KindLateReminder, number, orderPayload(snapshot), h.clock()))
	}
}

func (h *DriverAdvanceCommandHandler) current(ctx context.Context, number kernel.OrderNumber) (order.Snapshot, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, number)
	if err != nil {
		return order.Snapshot{}, err
	}
	return o.Snapshot(), nil
}
