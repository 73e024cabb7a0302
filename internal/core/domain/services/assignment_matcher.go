package services

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"
)

var (
	// ErrNoDriversAvailable is returned when a draft is dispatched while nobody is connected.
	ErrNoDriversAvailable = errs.NewPreconditionFailedError("no drivers available")

	// ErrDriverNotConnected is returned when the chosen driver disconnected between
	// listing the candidates and confirming the assignment.
	ErrDriverNotConnected = errs.NewPreconditionFailedError("driver not connected")
)

// AssignmentMatcher is a domain service presenting connected drivers as candidates
// for a draft and binding the draft to the chosen one.
//
// Business rules:
//   - The draft must pass its own dispatch guard first (creator, required fields)
//   - At least one driver must be connected
//   - The chosen driver must still be connected when the assignment is confirmed
//   - On any failure the draft is left untouched so the operator can retry
//
// Example usage:
//
//	matcher := services.NewAssignmentMatcher()
//	candidates, err := matcher.Candidates(draft, operatorID, registry.List())
//	if errors.Is(err, services.ErrNoDriversAvailable) {
//	    // Ask the operator to wait for a driver
//	}
//	chosen, err := matcher.Assign(draft, operatorID, candidates[0].ID(), registry.List(), time.Now())
type AssignmentMatcher struct{}

// NewAssignmentMatcher creates a new AssignmentMatcher instance.
func NewAssignmentMatcher() AssignmentMatcher {
	return AssignmentMatcher{}
}

// Candidates runs the dispatch guard and returns the connected drivers sorted by id.
// It does not change the order.
//
// Parameters:
//   - o: the draft to dispatch
//   - operator: the identity asking for candidates
//   - drivers: the registry snapshot
//
// Returns:
//   - []driver.Info: every connected driver
//   - error: the order's guard error, or ErrNoDriversAvailable
func (m AssignmentMatcher) Candidates(
	o *order.Order,
	operator kernel.ActorID,
	drivers iter.Seq[driver.Info],
) ([]driver.Info, error) {
	if err := m.guard(o, operator); err != nil {
		return nil, err
	}

	candidates := slices.SortedFunc(drivers, func(a, b driver.Info) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	if len(candidates) == 0 {
		return nil, ErrNoDriversAvailable
	}

	return candidates, nil
}

// Assign executes the dispatch transition for the chosen driver.
//
// Parameters:
//   - o: the draft to dispatch; mutated only on success
//   - operator: the identity confirming the dispatch
//   - chosen: the driver picked from the candidates
//   - drivers: the registry snapshot at confirmation time
//   - now: the instant recorded as the "assigned" milestone
//
// Returns:
//   - driver.Info: the registry entry of the chosen driver
//   - error: the order's guard error, ErrNoDriversAvailable or ErrDriverNotConnected
func (m AssignmentMatcher) Assign(
	o *order.Order,
	operator kernel.ActorID,
	chosen kernel.ActorID,
	drivers iter.Seq[driver.Info],
	now time.Time,
) (driver.Info, error) {
	if err := m.guard(o, operator); err != nil {
		return driver.Info{}, err
	}

	var (
		connected int
		found     *driver.Info
	)
	for info := range drivers {
		connected++
		if info.ID().IsEqual(chosen) {
			found = &info
		}
	}

	if connected == 0 {
		return driver.Info{}, ErrNoDriversAvailable
	}
	if found == nil {
		return driver.Info{}, fmt.Errorf("%w: %s", ErrDriverNotConnected, chosen)
	}

	if err := o.Assign(operator, found.ID(), now); err != nil {
		return driver.Info{}, err
	}

	return *found, nil
}

func (m AssignmentMatcher) guard(o *order.Order, operator kernel.ActorID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.EnsureDispatchableBy(operator)
}
