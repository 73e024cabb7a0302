package memory

import (
	"context"
	"errors"

	"courierbot/internal/core/ports"
)

// ErrNoTransaction is returned when the state is accessed outside of Begin and Commit.
var ErrNoTransaction = errors.New("unit of work is not started")

// UnitOfWorkFactory creates units of work over one shared State.
type UnitOfWorkFactory struct {
	state *State
}

func NewUnitOfWorkFactory(state *State) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{state: state}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{state: f.state}
}

// UnitOfWork serializes access to the State and stages writes until Commit.
//
// Reads see the state as committed before Begin; they do not observe writes
// staged earlier in the same unit of work.
type UnitOfWork struct {
	state  *State
	staged []func(*State)
	open   bool
}

// Begin acquires the state. A second Begin on an open unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.open {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	uow.state.mu.Lock()
	uow.open = true
	return nil
}

// Commit applies the staged writes in order and releases the state.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.open {
		return ErrNoTransaction
	}

	for _, apply := range uow.staged {
		apply(uow.state)
	}
	uow.release()
	return nil
}

// Rollback discards the staged writes and releases the state.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.open {
		return ErrNoTransaction
	}

	uow.release()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) DriverRegistry() ports.DriverRegistry {
	return &DriverRegistry{uow: uow}
}

func (uow *UnitOfWork) FeedbackRepository() ports.FeedbackRepository {
	return &FeedbackRepository{uow: uow}
}

func (uow *UnitOfWork) stage(apply func(*State)) {
	uow.staged = append(uow.staged, apply)
}

func (uow *UnitOfWork) release() {
	uow.staged = nil
	uow.open = false
	uow.state.mu.Unlock()
}
