package order

import (
	"errors"
	"fmt"

	"courierbot/internal/pkg/errs"
)

// Restore reconstructs an Order aggregate from a snapshot.
// Unlike NewDraft, which only creates fresh drafts, Restore rebuilds an order in
// any lifecycle state. Repositories use it to hand out copies of stored orders,
// so a caller mutating an order it loaded changes nothing until it stores it back.
//
// Parameters:
//   - s: a snapshot previously produced by Order.Snapshot
//
// Returns:
//   - *Order: the restored aggregate, behaving exactly like the original
//   - error: every broken invariant, joined
//
// Business Rules:
//   - Number, creator, payment label and status must be valid
//   - A draft has no driver and no "assigned" milestone
//   - Every later status has a driver and an "assigned" milestone
//   - The "created" milestone is always present
//   - Only a draft can be awaiting input
func Restore(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.Number.Validate(),
		s.CreatedBy.Validate(),
		s.Payment.Validate(),
		s.Status.Validate(),
		validateRestoredLifecycle(s),
	); err != nil {
		return nil, err
	}

	o := &Order{
		number:        s.Number,
		createdBy:     s.CreatedBy,
		customerID:    s.CustomerID,
		location:      s.Location,
		notes:         s.Notes,
		payment:       s.Payment,
		status:        s.Status,
		driverID:      s.DriverID,
		isConstructed: true,
	}
	for m, at := range s.Milestones {
		o.milestones.Record(m, at)
	}
	if s.PendingField != FieldUnknown {
		o.input = AwaitingInput(s.PendingField)
	}

	return o, nil
}

func validateRestoredLifecycle(s Snapshot) error {
	if _, ok := s.Milestones[MilestoneCreated]; !ok {
		return errs.NewValueIsRequiredError("milestones.created")
	}

	_, assigned := s.Milestones[MilestoneAssigned]
	if s.Status == Created {
		if !s.DriverID.IsZero() || assigned {
			return errs.NewValueIsInvalidErrorWithCause("driverId", fmt.Errorf("draft %s cannot have a driver", s.Number))
		}
		if s.PendingField != FieldUnknown {
			return s.PendingField.Validate()
		}
		return nil
	}

	if s.DriverID.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause("driverId", fmt.Errorf("order %s is %s", s.Number, s.Status))
	}
	if !assigned {
		return errs.NewValueIsRequiredErrorWithCause("milestones.assigned", fmt.Errorf("order %s is %s", s.Number, s.Status))
	}
	if s.PendingField != FieldUnknown {
		return errs.NewValueIsInvalidErrorWithCause("pendingField", fmt.Errorf("order %s is not a draft", s.Number))
	}
	return nil
}
