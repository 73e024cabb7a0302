package messenger

import (
	"context"
	"fmt"
	"time"

	"courierbot/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the part of *kafka.Writer the messenger uses.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaMessenger publishes notifications to a topic. Messages are keyed by
// recipient so that one actor's notifications stay ordered within a partition.
type KafkaMessenger struct {
	writer KafkaWriter
}

// NewKafkaMessenger creates a messenger producing to topic on the given brokers.
func NewKafkaMessenger(brokers []string, topic string) *KafkaMessenger {
	return NewKafkaMessengerWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func NewKafkaMessengerWithWriter(writer KafkaWriter) *KafkaMessenger {
	return &KafkaMessenger{writer: writer}
}

func (m *KafkaMessenger) Notify(ctx context.Context, n ports.Notification) error {
	body, err := encode(n)
	if err != nil {
		return err
	}

	err = m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.Recipient.String()),
		Value: body,
		Time:  n.CreatedAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
			{Key: "id", Value: []byte(n.ID.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write notification %s to kafka: %w", n.ID, err)
	}
	return nil
}

func (m *KafkaMessenger) Close() error {
	return m.writer.Close()
}
