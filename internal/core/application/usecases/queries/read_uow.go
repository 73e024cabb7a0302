// Package queries contains the read operations of the dispatch core: operator
// views of active, recent and draft orders, the connected drivers, and customer
// tracking. Queries open a unit of work, copy what they need and roll back.
package queries

import (
	"context"

	"courierbot/internal/core/ports"
)

type (
	// ReadUoW is the read-only view of a unit of work.
	ReadUoW interface {
		Begin(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		DriverRegistry() ports.DriverRegistry
	}

	ReadUoWFactory interface {
		Create() ReadUoW
	}
)

// read runs fn inside a unit of work that is always rolled back.
func read(ctx context.Context, factory ReadUoWFactory, fn func(uow ReadUoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}
