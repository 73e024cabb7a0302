package memory

import (
	"context"
	"fmt"
	"slices"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
)

// OrderRepository stores orders as snapshots and hands out restored copies.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) NextNumber(_ context.Context) (kernel.OrderNumber, error) {
	if !r.uow.open {
		return kernel.OrderNumber{}, ErrNoTransaction
	}
	return r.uow.state.sequence.Next(), nil
}

func (r *OrderRepository) AddDraft(_ context.Context, draft *order.Order) error {
	if err := r.check(draft); err != nil {
		return err
	}
	if !draft.IsDraft() {
		return fmt.Errorf("%w: order %s", order.ErrNotDraft, draft.Number())
	}
	if _, ok := r.uow.state.locate(draft.Number()); ok {
		return errs.NewPreconditionFailedError(fmt.Sprintf("order %s already exists", draft.Number()))
	}

	snap := draft.Snapshot()
	r.uow.stage(func(s *State) {
		s.drafts[snap.Number] = snap
	})
	return nil
}

func (r *OrderRepository) Get(_ context.Context, number kernel.OrderNumber) (*order.Order, error) {
	if !r.uow.open {
		return nil, ErrNoTransaction
	}

	snap, ok := r.uow.state.locate(number)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderNumber", number)
	}
	return order.Restore(snap)
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := r.check(aggregate); err != nil {
		return err
	}

	number := aggregate.Number()
	snap := aggregate.Snapshot()

	if _, ok := r.uow.state.drafts[number]; ok {
		if !aggregate.IsDraft() {
			return fmt.Errorf("draft %s must be activated, not updated", number)
		}
		r.uow.stage(func(s *State) { s.drafts[number] = snap })
		return nil
	}

	if _, ok := r.uow.state.active[number]; ok {
		if aggregate.IsDraft() || aggregate.Status().IsTerminal() {
			return fmt.Errorf("active order %s cannot be stored as %s", number, aggregate.Status())
		}
		r.uow.stage(func(s *State) { s.active[number] = snap })
		return nil
	}

	return errs.NewObjectNotFoundError("orderNumber", number)
}

func (r *OrderRepository) Activate(_ context.Context, aggregate *order.Order) error {
	if err := r.check(aggregate); err != nil {
		return err
	}

	number := aggregate.Number()
	if _, ok := r.uow.state.drafts[number]; !ok {
		return errs.NewObjectNotFoundError("orderNumber", number)
	}
	if aggregate.Status() != order.Assigned {
		return fmt.Errorf("order %s cannot be activated as %s", number, aggregate.Status())
	}

	snap := aggregate.Snapshot()
	r.uow.stage(func(s *State) {
		delete(s.drafts, number)
		s.active[number] = snap
	})
	return nil
}

func (r *OrderRepository) Archive(_ context.Context, aggregate *order.Order) error {
	if err := r.check(aggregate); err != nil {
		return err
	}

	number := aggregate.Number()
	if _, ok := r.uow.state.active[number]; !ok {
		return errs.NewObjectNotFoundError("orderNumber", number)
	}
	if !aggregate.Status().IsTerminal() {
		return fmt.Errorf("order %s cannot be archived as %s", number, aggregate.Status())
	}

	snap := aggregate.Snapshot()
	r.uow.stage(func(s *State) {
		delete(s.active, number)
		s.prependHistory(snap)
	})
	return nil
}

func (r *OrderRepository) RemoveDraft(_ context.Context, number kernel.OrderNumber) error {
	if !r.uow.open {
		return ErrNoTransaction
	}
	if _, ok := r.uow.state.drafts[number]; !ok {
		return errs.NewObjectNotFoundError("orderNumber", number)
	}

	r.uow.stage(func(s *State) {
		delete(s.drafts, number)
	})
	return nil
}

func (r *OrderRepository) FindAwaitingInput(_ context.Context, operator kernel.ActorID) (*order.Order, error) {
	if !r.uow.open {
		return nil, ErrNoTransaction
	}

	var (
		found order.Snapshot
		ok    bool
	)
	for _, snap := range r.uow.state.drafts {
		if snap.PendingField == order.FieldUnknown || !snap.CreatedBy.IsEqual(operator) {
			continue
		}
		if !ok || found.Number.Less(snap.Number) {
			found, ok = snap, true
		}
	}

	if !ok {
		return nil, errs.NewObjectNotFoundError("pendingInput", operator)
	}
	return order.Restore(found)
}

func (r *OrderRepository) ListActive(_ context.Context) ([]*order.Order, error) {
	if !r.uow.open {
		return nil, ErrNoTransaction
	}

	snaps := make([]order.Snapshot, 0, len(r.uow.state.active))
	for _, snap := range r.uow.state.active {
		snaps = append(snaps, snap)
	}
	slices.SortFunc(snaps, func(a, b order.Snapshot) int {
		return a.Number.Compare(b.Number)
	})

	return restoreAll(snaps)
}

func (r *OrderRepository) ListHistory(_ context.Context, limit int) ([]*order.Order, error) {
	if !r.uow.open {
		return nil, ErrNoTransaction
	}

	history := r.uow.state.history
	if limit >= 0 && limit < len(history) {
		history = history[:limit]
	}
	return restoreAll(history)
}

func (r *OrderRepository) check(aggregate *order.Order) error {
	if !r.uow.open {
		return ErrNoTransaction
	}
	return aggregate.Validate()
}

func restoreAll(snaps []order.Snapshot) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(snaps))
	for _, snap := range snaps {
		o, err := order.Restore(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
