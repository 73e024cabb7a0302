// Package scheduler implements delayed callbacks as a deadline table polled by a
// ticker job, and the per-order reminder timers built on it.
package scheduler

import (
	"slices"
	"sync"
	"time"

	"courierbot/internal/core/ports"
)

// Clock returns the current instant.
type Clock func() time.Time

// DeadlineScheduler keeps pending callbacks with their deadlines. Callbacks run
// from RunDue, which the reminder ticker job calls periodically; they are never
// run while the scheduler's lock is held.
type DeadlineScheduler struct {
	mu      sync.Mutex
	now     Clock
	nextID  uint64
	pending map[uint64]*task
	onPanic func(recovered any)
}

type task struct {
	id       uint64
	deadline time.Time
	fn       func()
}

// NewDeadlineScheduler creates a scheduler. A nil clock falls back to time.Now.
func NewDeadlineScheduler(now Clock) *DeadlineScheduler {
	if now == nil {
		now = time.Now
	}
	return &DeadlineScheduler{
		now:     now,
		pending: make(map[uint64]*task),
	}
}

// Schedule registers fn to run once, at the first RunDue after now+delay.
func (s *DeadlineScheduler) Schedule(delay time.Duration, fn func()) ports.TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &task{
		id:       s.nextID,
		deadline: s.now().Add(delay),
		fn:       fn,
	}
	s.pending[t.id] = t

	return &handle{scheduler: s, id: t.id}
}

// SetPanicHandler installs fn to receive the value of a panicking callback.
func (s *DeadlineScheduler) SetPanicHandler(fn func(recovered any)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPanic = fn
}

// RunDue runs every callback whose deadline is not after now, earliest first,
// and returns how many ran. A panicking callback does not keep the callbacks
// behind it from running.
func (s *DeadlineScheduler) RunDue(now time.Time) int {
	s.mu.Lock()
	onPanic := s.onPanic
	var due []*task
	for id, t := range s.pending {
		if !t.deadline.After(now) {
			due = append(due, t)
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(due, func(a, b *task) int {
		return a.deadline.Compare(b.deadline)
	})
	for _, t := range due {
		run(t.fn, onPanic)
	}
	return len(due)
}

func run(fn func(), onPanic func(any)) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(r)
		}
	}()
	fn()
}

// Pending returns the number of callbacks waiting for their deadline.
func (s *DeadlineScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *DeadlineScheduler) cancel(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

type handle struct {
	scheduler *DeadlineScheduler
	id        uint64
}

func (h *handle) Cancel() bool {
	return h.scheduler.cancel(h.id)
}
