package order

import (
	"time"

	"courierbot/internal/core/domain/model/kernel"
)

// Snapshot is a read-only copy of an order. Queries, notifications and the
// archive work on snapshots so that no reader holds a reference into the
// state guarded by the unit of work.
type Snapshot struct {
	Number       kernel.OrderNumber
	CreatedBy    kernel.ActorID
	CustomerID   kernel.ActorID
	Location     string
	Notes        string
	Payment      PaymentMethod
	Status       Status
	DriverID     kernel.ActorID
	Milestones   map[Milestone]time.Time
	PendingField Field
}

// MilestoneAt returns the instant of a milestone, if it was recorded.
func (s Snapshot) MilestoneAt(m Milestone) (time.Time, bool) {
	t, ok := s.Milestones[m]
	return t, ok
}
