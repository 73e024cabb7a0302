// Package messenger delivers core notifications to the outside world.
//
// Three Messenger implementations are provided: a log-only one for local runs,
// a Kafka producer and an AMQP topic-exchange publisher. The chat bridge that
// renders and sends the actual chat messages consumes what they publish.
// BestEffortNotifier wraps any of them so that delivery failures are logged
// and counted but never reach the state machine.
package messenger

import (
	"encoding/json"
	"fmt"
	"time"

	"courierbot/internal/core/ports"
)

// message is the wire form of a notification.
type message struct {
	ID          string            `json:"id"`
	Recipient   string            `json:"recipient"`
	Kind        string            `json:"kind"`
	OrderNumber string            `json:"orderNumber,omitempty"`
	Payload     map[string]string `json:"payload,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func encode(n ports.Notification) ([]byte, error) {
	m := message{
		ID:        n.ID.String(),
		Recipient: n.Recipient.String(),
		Kind:      string(n.Kind),
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt.UTC(),
	}
	if n.OrderNumber.Validate() == nil {
		m.OrderNumber = n.OrderNumber.String()
	}

	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification %s: %w", n.ID, err)
	}
	return body, nil
}
