package commands

import (
	"time"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// Clock returns the current instant. Handlers take one so tests can pin time.
type Clock func() time.Time

func clockOrDefault(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}
	return clock
}

func newNotification(
	recipient kernel.ActorID,
	kind ports.NotificationKind,
	number kernel.OrderNumber,
	payload map[string]string,
	now time.Time,
) ports.Notification {
	return ports.Notification{
		ID:          kernel.NewUUID(),
		Recipient:   recipient,
		Kind:        kind,
		OrderNumber: number,
		Payload:     payload,
		CreatedAt:   now,
	}
}

func orderPayload(s order.Snapshot) map[string]string {
	payload := map[string]string{
		"orderNumber": s.Number.String(),
		"status":      s.Status.String(),
		"location":    s.Location,
		"payment":     s.Payment.String(),
	}
	if s.Notes != "" {
		payload["notes"] = s.Notes
	}
	if !s.CustomerID.IsZero() {
		payload["customerId"] = s.CustomerID.String()
	}
	if !s.DriverID.IsZero() {
		payload["driverId"] = s.DriverID.String()
	}
	return payload
}

func driverPayload(info driver.Info) map[string]string {
	return map[string]string{
		"driverId":   info.ID().String(),
		"driverName": info.DisplayName(),
	}
}

// toOperators fans one event out to every configured operator.
func toOperators(
	operators []kernel.ActorID,
	kind ports.NotificationKind,
	payload map[string]string,
	now time.Time,
) []ports.Notification {
	notifications := make([]ports.Notification, 0, len(operators))
	for _, op := range operators {
		notifications = append(notifications, newNotification(op, kind, kernel.OrderNumber{}, payload, now))
	}
	return notifications
}
