package messenger

import (
	"context"
	"errors"
	"fmt"

	"courierbot/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPChannel is the part of *amqp.Channel the messenger uses.
type AMQPChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPMessenger publishes notifications to a durable topic exchange with the
// routing key "notify.<kind>", so consumers can bind per audience or event.
type AMQPMessenger struct {
	conn     *amqp.Connection
	ch       AMQPChannel
	exchange string
}

// DialAMQPMessenger connects to the broker and declares the exchange.
func DialAMQPMessenger(url, exchange string) (*AMQPMessenger, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	m, err := NewAMQPMessengerWithChannel(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	m.conn = conn
	return m, nil
}

// NewAMQPMessengerWithChannel declares the exchange on an open channel.
func NewAMQPMessengerWithChannel(ch AMQPChannel, exchange string) (*AMQPMessenger, error) {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // args
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPMessenger{ch: ch, exchange: exchange}, nil
}

// RoutingKey returns the routing key a notification kind is published with.
func RoutingKey(kind ports.NotificationKind) string {
	return "notify." + string(kind)
}

func (m *AMQPMessenger) Notify(ctx context.Context, n ports.Notification) error {
	body, err := encode(n)
	if err != nil {
		return err
	}

	err = m.ch.PublishWithContext(
		ctx,
		m.exchange,
		RoutingKey(n.Kind),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ID.String(),
			Timestamp:    n.CreatedAt,
			Type:         string(n.Kind),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", n.ID, err)
	}
	return nil
}

func (m *AMQPMessenger) Close() error {
	err := m.ch.Close()
	if m.conn != nil {
		err = errors.Join(err, m.conn.Close())
	}
	return err
}
