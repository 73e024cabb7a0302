// Package commands contains one handler per inbound event of the dispatch core.
// Every handler validates its command, runs the state change inside one unit of
// work, commits, and only then talks to the outside world (notifications,
// reminders, the archive).
package commands

import (
	"context"

	"courierbot/internal/core/ports"
)

// Unit of Work interfaces give each handler access to exactly the parts of the
// state it touches.
type (
	// TxManager handles the unit of work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order store within a unit of work.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRegistryFactory provides access to the driver registry within a unit of work.
	DriverRegistryFactory interface {
		DriverRegistry() ports.DriverRegistry
	}

	// FeedbackRepoFactory provides access to the feedback annex within a unit of work.
	FeedbackRepoFactory interface {
		FeedbackRepository() ports.FeedbackRepository
	}

	// OrderUoW is used by handlers that only edit drafts.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW is used by handlers that only change driver presence.
	DriverUoW interface {
		TxManager
		DriverRegistryFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// FeedbackUoW is used by the rating prompt handlers.
	FeedbackUoW interface {
		TxManager
		FeedbackRepoFactory
	}

	FeedbackUoWFactory interface {
		Create() FeedbackUoW
	}

	// UoW spans orders, drivers and feedback. Dispatch and driver transitions
	// need more than one of them at once.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   draft, err := uow.OrderRepository().Get(ctx, number)
	//   // ... assign a driver from uow.DriverRegistry().List()
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRegistryFactory
		FeedbackRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
