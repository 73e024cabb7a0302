package messenger

import (
	"context"
	"time"

	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultNotifyTimeout bounds a single delivery attempt.
const DefaultNotifyTimeout = 5 * time.Second

// BestEffortNotifier hands notifications to a Messenger one by one. A failed
// delivery is logged at warn level and counted; it is never retried and never
// returned to the caller.
type BestEffortNotifier struct {
	messenger ports.Messenger
	logger    *zap.Logger
	timeout   time.Duration
}

func NewBestEffortNotifier(messenger ports.Messenger, logger *zap.Logger, timeout time.Duration) *BestEffortNotifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &BestEffortNotifier{
		messenger: messenger,
		logger:    logger.With(zap.String("component", "notifier")),
		timeout:   timeout,
	}
}

func (n *BestEffortNotifier) Notify(ctx context.Context, notifications ...ports.Notification) {
	for _, notification := range notifications {
		n.deliver(ctx, notification)
	}
}

func (n *BestEffortNotifier) deliver(ctx context.Context, notification ports.Notification) {
	kind := string(notification.Kind)

	if notification.Recipient.IsZero() {
		n.logger.Debug("notification has no recipient, dropped", zap.String("kind", kind))
		metrics.NotificationsTotal.WithLabelValues(kind, "dropped").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.messenger.Notify(ctx, notification); err != nil {
		n.logger.Warn("failed to deliver notification",
			zap.String("kind", kind),
			zap.String("recipient", notification.Recipient.String()),
			zap.Error(err),
		)
		metrics.NotificationsTotal.WithLabelValues(kind, "failed").Inc()
		return
	}

	metrics.NotificationsTotal.WithLabelValues(kind, "sent").Inc()
}
