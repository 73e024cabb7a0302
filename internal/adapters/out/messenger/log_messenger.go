package messenger

import (
	"context"

	"courierbot/internal/core/ports"

	"go.uber.org/zap"
)

// LogMessenger writes notifications to the log instead of delivering them.
type LogMessenger struct {
	logger *zap.Logger
}

func NewLogMessenger(logger *zap.Logger) *LogMessenger {
	return &LogMessenger{logger: logger.With(zap.String("component", "log-messenger"))}
}

func (m *LogMessenger) Notify(_ context.Context, n ports.Notification) error {
	fields := []zap.Field{
		zap.String("id", n.ID.String()),
		zap.String("recipient", n.Recipient.String()),
		zap.String("kind", string(n.Kind)),
	}
	if n.OrderNumber.Validate() == nil {
		fields = append(fields, zap.Stringer("order", n.OrderNumber))
	}
	if len(n.Payload) > 0 {
		fields = append(fields, zap.Any("payload", n.Payload))
	}

	m.logger.Info("notification", fields...)
	return nil
}
