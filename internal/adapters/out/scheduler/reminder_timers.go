package scheduler

import (
	"sync"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
)

// ReminderTimers keeps at most one armed reminder per order number.
// Re-arming cancels the previous reminder before scheduling the new one.
type ReminderTimers struct {
	mu        sync.Mutex
	scheduler ports.Scheduler
	armed     map[kernel.OrderNumber]ports.TimerHandle
}

func NewReminderTimers(scheduler ports.Scheduler) *ReminderTimers {
	return &ReminderTimers{
		scheduler: scheduler,
		armed:     make(map[kernel.OrderNumber]ports.TimerHandle),
	}
}

func (r *ReminderTimers) Arm(number kernel.OrderNumber, delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.armed[number]; ok {
		prev.Cancel()
	}

	var h ports.TimerHandle
	h = r.scheduler.Schedule(delay, func() {
		r.mu.Lock()
		current, ok := r.armed[number]
		if ok && current == h {
			delete(r.armed, number)
		}
		r.mu.Unlock()

		fn()
	})
	r.armed[number] = h
}

func (r *ReminderTimers) Disarm(number kernel.OrderNumber) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.armed[number]
	if !ok {
		return false
	}
	delete(r.armed, number)
	return h.Cancel()
}

func (r *ReminderTimers) IsArmed(number kernel.OrderNumber) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.armed[number]
	return ok
}
