package ports

import (
	"time"

	"courierbot/internal/core/domain/model/kernel"
)

// TimerHandle cancels a scheduled callback.
type TimerHandle interface {
	// Cancel stops the callback and reports whether it was still pending.
	Cancel() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) TimerHandle
}

// ReminderTimers keeps at most one late-delivery reminder per order number.
type ReminderTimers interface {
	// Arm schedules the reminder of an order, cancelling the one armed before.
	Arm(number kernel.OrderNumber, delay time.Duration, fn func())

	// Disarm cancels the reminder of an order and reports whether one was armed.
	Disarm(number kernel.OrderNumber) bool

	IsArmed(number kernel.OrderNumber) bool
}
