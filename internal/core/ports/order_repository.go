// Package ports defines the contracts between the dispatch core and its
// infrastructure: the order store, the driver registry, the feedback annex,
// reminder timers, the archive and the outbound Messenger.
package ports

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
)

// OrderRepository is the order store. Every order number lives in exactly one of
// three sets at a time: drafts, active orders, or the completed history.
//
// Orders handed out by the repository are copies. Changes become visible only
// through one of the write methods, and only once the unit of work commits.
type OrderRepository interface {
	// NextNumber allocates the next order number. Numbers are never reused,
	// even when the unit of work that allocated one rolls back.
	NextNumber(ctx context.Context) (kernel.OrderNumber, error)

	// AddDraft stores a new draft.
	AddDraft(ctx context.Context, draft *order.Order) error

	// Get returns the order with the given number from whichever set holds it.
	// Returns *errs.ObjectNotFoundError if no set holds it.
	Get(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// Update stores changes to a draft or an active order that stays in its set.
	Update(ctx context.Context, aggregate *order.Order) error

	// Activate moves a freshly assigned order from the draft set to the active set.
	// Removal and insertion happen together.
	Activate(ctx context.Context, aggregate *order.Order) error

	// Archive moves a completed order from the active set to the front of the
	// history. The history is trimmed to the configured retention.
	Archive(ctx context.Context, aggregate *order.Order) error

	// RemoveDraft deletes a draft permanently. Nothing is kept in the history.
	RemoveDraft(ctx context.Context, number kernel.OrderNumber) error

	// FindAwaitingInput returns the draft of the operator that waits for free-text
	// input. Returns *errs.ObjectNotFoundError if there is none.
	FindAwaitingInput(ctx context.Context, operator kernel.ActorID) (*order.Order, error)

	// ListActive returns the active orders sorted by number.
	ListActive(ctx context.Context) ([]*order.Order, error)

	// ListHistory returns up to limit completed orders, most recent first.
	ListHistory(ctx context.Context, limit int) ([]*order.Order, error)
}
