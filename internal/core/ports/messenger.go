package ports

import (
	"context"
	"time"

	"courierbot/internal/core/domain/model/kernel"
)

// NotificationKind tells the Messenger what happened. Rendering is its concern.
type NotificationKind string

const (
	// To the driver.
	KindOrderAssigned      NotificationKind = "order.assigned"
	KindLateReminder       NotificationKind = "order.late_reminder"
	KindFeedbackRequested  NotificationKind = "feedback.requested"
	KindFeedbackCommentAsk NotificationKind = "feedback.comment_requested"

	// To the operator.
	KindOrderDispatched    NotificationKind = "order.dispatched"
	KindOrderProgressed    NotificationKind = "order.progressed"
	KindDriverConnected    NotificationKind = "driver.connected"
	KindDriverDisconnected NotificationKind = "driver.disconnected"
	KindDriverLeftGroup    NotificationKind = "driver.left_group"
	KindFeedbackReceived   NotificationKind = "feedback.received"

	// To the customer.
	KindCustomerOrderCreated NotificationKind = "customer.order_created"
	KindCustomerPickedUp     NotificationKind = "customer.picked_up"
	KindCustomerArrived      NotificationKind = "customer.arrived"
	KindCustomerDelivered    NotificationKind = "customer.delivered"
)

// Notification is the content the core hands to the Messenger: who to reach and
// what happened. Payload carries flat, already stringified facts.
type Notification struct {
	ID          kernel.UUID
	Recipient   kernel.ActorID
	Kind        NotificationKind
	OrderNumber kernel.OrderNumber
	Payload     map[string]string
	CreatedAt   time.Time
}

// Messenger delivers notifications to actors. Implementations may block on the
// network and may fail.
type Messenger interface {
	Notify(ctx context.Context, n Notification) error
}

// Notifier is the best-effort front of a Messenger used by the core: it never
// fails and never blocks the state machine on delivery errors.
type Notifier interface {
	Notify(ctx context.Context, notifications ...Notification)
}
