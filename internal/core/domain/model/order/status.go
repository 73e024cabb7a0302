package order

import (
	"fmt"

	"courierbot/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a strictly forward state machine: every transition targets the
// immediate successor of the current status, nothing moves backward and
// nothing is skipped.
//
// State transitions:
//
//	Created ──dispatch──> Assigned ──pickup──> PickedUp ──arrive──> Arrived ──complete──> Completed
//
// Created is the draft state. Every status beyond Created belongs to an order
// that has a driver and an "assigned" milestone.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of a draft. The operator who created it
	// may still edit its fields and payment.
	Created

	// Assigned indicates the order was dispatched to a driver.
	Assigned

	// PickedUp indicates the driver collected the parcel. A late-delivery
	// reminder runs while the order is in this status.
	PickedUp

	// Arrived indicates the driver reached the delivery location.
	Arrived

	// Completed indicates the order has been delivered.
	// This is a final state with no further transitions allowed.
	Completed
)

var statusStrings = map[Status]string{
	Created:   "created",
	Assigned:  "assigned",
	PickedUp:  "picked-up",
	Arrived:   "arrived",
	Completed: "completed",
}

// ParseStatus converts the textual form produced by String back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside of the five lifecycle states are invalid.
// This method is used to ensure Status values crossing a boundary
// (the archive, the API) are meaningful before use.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status as shown to actors.
//
// Returns "created", "assigned", "picked-up", "arrived" or "completed"
// for valid statuses and "unknown" otherwise. Safe to call on any value.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// IsDraft reports whether the order has not been dispatched yet.
func (s Status) IsDraft() bool {
	return s == Created
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// Assign transitions the status to Assigned (the dispatch transition).
//
// Valid transitions:
//   - Created -> Assigned
//
// There is no reassignment path: an Assigned order cannot be assigned again.
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, error) unwrapping to errs.ErrPreconditionFailed otherwise
func (s Status) Assign() (Status, error) {
	return s.advance(Created, Assigned, "assign")
}

// Pickup transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp
//
// A repeated pickup on an order that is already PickedUp is handled by the
// Order aggregate as an idempotent no-op; at the status level it is rejected
// like any other transition that does not move forward.
func (s Status) Pickup() (Status, error) {
	return s.advance(Assigned, PickedUp, "pick up")
}

// Arrive transitions the status to Arrived.
//
// Valid transitions:
//   - PickedUp -> Arrived
func (s Status) Arrive() (Status, error) {
	return s.advance(PickedUp, Arrived, "arrive")
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Arrived -> Completed
//
// Completion is strict: an order has to arrive before it can be completed.
func (s Status) Complete() (Status, error) {
	return s.advance(Arrived, Completed, "complete")
}

func (s Status) advance(from, to Status, action string) (Status, error) {
	if s != from {
		return 0, errs.NewPreconditionFailedErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to %s", s, action),
		)
	}
	return to, nil
}
