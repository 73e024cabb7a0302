package ports

import (
	"context"

	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/order"
)

// Archive is an optional write-only sink for completed orders and their feedback.
// It is never read back; the authoritative state stays in memory.
type Archive interface {
	ArchiveOrder(ctx context.Context, snapshot order.Snapshot) error
	ArchiveFeedback(ctx context.Context, entry feedback.Feedback) error
}
