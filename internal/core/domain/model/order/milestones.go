package order

import (
	"maps"
	"time"
)

// Milestone names a lifecycle instant recorded on an order.
type Milestone string

const (
	MilestoneCreated   Milestone = "created"
	MilestoneAssigned  Milestone = "assigned"
	MilestonePickedUp  Milestone = "picked_up"
	MilestoneArrived   Milestone = "arrived"
	MilestoneCompleted Milestone = "completed"
)

// AllMilestones lists the milestones in lifecycle order.
var AllMilestones = []Milestone{
	MilestoneCreated,
	MilestoneAssigned,
	MilestonePickedUp,
	MilestoneArrived,
	MilestoneCompleted,
}

// Milestones is an append-only record of lifecycle instants.
// Each milestone is written at most once; later writes are ignored.
type Milestones struct {
	at map[Milestone]time.Time
}

// Record stores the instant of a milestone unless it was recorded before.
// It reports whether the instant was stored.
func (m *Milestones) Record(milestone Milestone, at time.Time) bool {
	if m.at == nil {
		m.at = make(map[Milestone]time.Time, len(AllMilestones))
	}
	if _, ok := m.at[milestone]; ok {
		return false
	}
	m.at[milestone] = at
	return true
}

// At returns the instant of a milestone.
func (m Milestones) At(milestone Milestone) (time.Time, bool) {
	t, ok := m.at[milestone]
	return t, ok
}

func (m Milestones) Has(milestone Milestone) bool {
	_, ok := m.at[milestone]
	return ok
}

func (m Milestones) Len() int {
	return len(m.at)
}

// Map returns a copy of the recorded instants.
func (m Milestones) Map() map[Milestone]time.Time {
	out := make(map[Milestone]time.Time, len(m.at))
	maps.Copy(out, m.at)
	return out
}

func (m Milestones) clone() Milestones {
	return Milestones{at: m.Map()}
}
