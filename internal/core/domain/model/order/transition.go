package order

import (
	"fmt"
	"strings"

	"courierbot/internal/pkg/errs"
)

// Transition is a driver-triggered step of an active order.
type Transition int

const (
	TransitionUnknown Transition = iota
	TransitionPickup
	TransitionArrive
	TransitionComplete
)

var transitionNames = map[string]Transition{
	"pickup":    TransitionPickup,
	"pickedup":  TransitionPickup,
	"picked-up": TransitionPickup,
	"arrive":    TransitionArrive,
	"arrived":   TransitionArrive,
	"complete":  TransitionComplete,
	"completed": TransitionComplete,
}

// ParseTransition accepts the canonical names and the status-style aliases
// drivers tend to type ("pickedup", "arrived", "completed"). Case is ignored.
func ParseTransition(s string) (Transition, error) {
	if t, ok := transitionNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return TransitionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transition",
		fmt.Errorf("%q is not a valid transition", s),
	)
}

func (t Transition) String() string {
	switch t {
	case TransitionPickup:
		return "pickup"
	case TransitionArrive:
		return "arrive"
	case TransitionComplete:
		return "complete"
	default:
		return "unknown"
	}
}

func (t Transition) Validate() error {
	if t < TransitionPickup || t > TransitionComplete {
		return errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%d is not a valid transition", t))
	}
	return nil
}

// Target returns the status the transition leads to.
func (t Transition) Target() Status {
	switch t {
	case TransitionPickup:
		return PickedUp
	case TransitionArrive:
		return Arrived
	case TransitionComplete:
		return Completed
	default:
		return Unknown
	}
}

// Milestone returns the milestone recorded when the transition is applied.
func (t Transition) Milestone() Milestone {
	switch t {
	case TransitionPickup:
		return MilestonePickedUp
	case TransitionArrive:
		return MilestoneArrived
	case TransitionComplete:
		return MilestoneCompleted
	default:
		return ""
	}
}

// Apply runs the transition against a status.
func (t Transition) Apply(s Status) (Status, error) {
	switch t {
	case TransitionPickup:
		return s.Pickup()
	case TransitionArrive:
		return s.Arrive()
	case TransitionComplete:
		return s.Complete()
	default:
		return 0, t.Validate()
	}
}
