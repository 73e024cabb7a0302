package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the serialization point around the dispatch state.
// Between Begin and Commit or Rollback no other unit of work touches the state.
// Writes are applied on Commit; Rollback discards them.
//
// Nothing that may block on the network (the Messenger, the archive) is called
// while a unit of work is open.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit applies the writes and releases the state.
	Commit(ctx context.Context) error

	// Rollback discards the writes and releases the state.
	// It is a no-op after Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DriverRegistry() DriverRegistry
	FeedbackRepository() FeedbackRepository
}
