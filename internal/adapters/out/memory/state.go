// Package memory keeps the whole dispatch state in process memory behind a
// single mutex. It implements the unit of work and the repositories of the core.
//
// The state is lost on restart; nothing here is persisted.
//
// Usage:
//
//	state := memory.NewState(50)
//	factory := memory.NewUnitOfWorkFactory(state)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	draft, err := uow.OrderRepository().Get(ctx, number)
//	// ... mutate the copy, store it back
//
//	return uow.Commit(ctx)
package memory

import (
	"sync"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
)

// DefaultHistoryRetention is the number of completed orders kept for display.
const DefaultHistoryRetention = 50

// State is the process-wide dispatch state. Every access goes through a unit
// of work, which holds mu from Begin to Commit or Rollback.
type State struct {
	mu sync.Mutex

	sequence  *kernel.Sequence
	retention int

	drafts  map[kernel.OrderNumber]order.Snapshot
	active  map[kernel.OrderNumber]order.Snapshot
	history []order.Snapshot

	drivers map[kernel.ActorID]driver.Info

	pendingRatings  map[kernel.ActorID]kernel.OrderNumber
	pendingComments map[kernel.ActorID]kernel.OrderNumber
	feedback        map[kernel.OrderNumber]feedback.Feedback
}

// NewState creates an empty state. A non-positive retention falls back to
// DefaultHistoryRetention.
func NewState(retention int) *State {
	if retention <= 0 {
		retention = DefaultHistoryRetention
	}

	return &State{
		sequence:        kernel.NewSequence(),
		retention:       retention,
		drafts:          make(map[kernel.OrderNumber]order.Snapshot),
		active:          make(map[kernel.OrderNumber]order.Snapshot),
		drivers:         make(map[kernel.ActorID]driver.Info),
		pendingRatings:  make(map[kernel.ActorID]kernel.OrderNumber),
		pendingComments: make(map[kernel.ActorID]kernel.OrderNumber),
		feedback:        make(map[kernel.OrderNumber]feedback.Feedback),
	}
}

func (s *State) locate(number kernel.OrderNumber) (order.Snapshot, bool) {
	if snap, ok := s.drafts[number]; ok {
		return snap, true
	}
	if snap, ok := s.active[number]; ok {
		return snap, true
	}
	for _, snap := range s.history {
		if snap.Number.IsEqual(number) {
			return snap, true
		}
	}
	return order.Snapshot{}, false
}

func (s *State) prependHistory(snap order.Snapshot) {
	s.history = append([]order.Snapshot{snap}, s.history...)
	if len(s.history) > s.retention {
		clear(s.history[s.retention:])
		s.history = s.history[:s.retention]
	}
}
