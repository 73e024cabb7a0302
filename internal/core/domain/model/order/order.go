package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewDraft factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewDraft constructor")

	// ErrNotDraft is returned when an operation reserved for drafts targets an
	// order that was already dispatched.
	ErrNotDraft = errs.NewPreconditionFailedError("order is not a draft")

	// ErrNotDispatched is returned when a driver transition targets a draft.
	ErrNotDispatched = errs.NewPreconditionFailedError("order is not dispatched")
)

// Order is the aggregate root of the dispatch domain. It owns the lifecycle from
// draft creation through dispatch and delivery to completion.
//
// Order follows these invariants:
//   - The order number is set at construction and never changes
//   - A draft (Created) has no driver; every later status has a driver and an
//     "assigned" milestone
//   - The driver is set exactly once, by dispatch; there is no reassignment
//   - Status moves strictly forward, one step at a time
//   - Milestones are append-only, one instant per milestone
//   - Only a draft can be awaiting free-text input
//   - Only the creating operator mutates a draft; only the assigned driver
//     advances an active order
//
// Order is not safe for concurrent use. The unit of work that hands it out
// serializes access.
type Order struct {
	number     kernel.OrderNumber
	createdBy  kernel.ActorID
	customerID kernel.ActorID
	location   string
	notes      string
	payment    PaymentMethod
	status     Status
	driverID   kernel.ActorID
	milestones Milestones
	input      InputState

	isConstructed bool
}

// NewDraft creates a draft order. This is the only way to create a valid Order.
//
// Parameters:
//   - number: the order number allocated by a kernel.Sequence
//   - createdBy: the operator creating the draft; only they may edit it
//   - payment: the initial payment label, usually the configured default
//   - now: the instant recorded as the "created" milestone
//
// Returns:
//   - *Order: a draft in status Created, idle, without customer, location or driver
//   - error: validation errors of all parameters, joined
//
// Example:
//
//	seq := kernel.NewSequence()
//	draft, err := order.NewDraft(seq.Next(), operatorID, order.PaymentCash, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewDraft(number kernel.OrderNumber, createdBy kernel.ActorID, payment PaymentMethod, now time.Time) (*Order, error) {
	if err := errors.Join(
		number.Validate(),
		createdBy.Validate(),
		payment.Validate(),
	); err != nil {
		return nil, err
	}

	o := &Order{
		number:        number,
		createdBy:     createdBy,
		payment:       payment,
		status:        Created,
		isConstructed: true,
	}
	o.milestones.Record(MilestoneCreated, now)

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewDraft.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

func (o *Order) CreatedBy() kernel.ActorID {
	return o.createdBy
}

// CustomerID returns the recipient identity. It is the zero ActorID until set.
func (o *Order) CustomerID() kernel.ActorID {
	return o.customerID
}

func (o *Order) Location() string {
	return o.location
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) Payment() PaymentMethod {
	return o.payment
}

func (o *Order) Status() Status {
	return o.status
}

// DriverID returns the assigned driver. It is the zero ActorID on a draft.
func (o *Order) DriverID() kernel.ActorID {
	return o.driverID
}

// Milestones returns a copy of the recorded lifecycle instants.
func (o *Order) Milestones() Milestones {
	return o.milestones.clone()
}

func (o *Order) Input() InputState {
	return o.input
}

func (o *Order) IsDraft() bool {
	return o.status.IsDraft()
}

// EnsureCreatedBy checks that the actor is the operator who created the order.
//
// Parameters:
//   - actor: the identity triggering the operation
//   - action: a short description of the operation, used in the error message
//
// Returns:
//   - nil if the actor created the order
//   - *errs.NotAuthorizedError otherwise
func (o *Order) EnsureCreatedBy(actor kernel.ActorID, action string) error {
	if !o.createdBy.IsEqual(actor) {
		return errs.NewNotAuthorizedError(actor.String(), fmt.Sprintf("%s order %s", action, o.number))
	}
	return nil
}

// RequestInput marks the draft as awaiting free-text input for a field.
// A previous pending request on the same draft is replaced.
//
// Returns:
//   - ErrNotDraft if the order was dispatched
//   - *errs.NotAuthorizedError if the actor is not the creator
//   - *errs.ValueIsInvalidError if the field is not editable
func (o *Order) RequestInput(actor kernel.ActorID, field Field) error {
	if err := o.ensureEditableBy(actor, "edit"); err != nil {
		return err
	}
	if err := field.Validate(); err != nil {
		return err
	}

	o.input = AwaitingInput(field)
	return nil
}

// CancelInput drops a pending input request, if any.
func (o *Order) CancelInput(actor kernel.ActorID) error {
	if err := o.ensureEditableBy(actor, "edit"); err != nil {
		return err
	}

	o.input = Idle()
	return nil
}

// SetField sets a free-text field of the draft and clears any pending input.
//
// The customer identity and the location cannot be blanked; notes can.
// On error the draft is left unmodified.
//
// Parameters:
//   - actor: must be the creating operator
//   - field: the field to set
//   - value: the new value; surrounding whitespace is trimmed
//
// Returns:
//   - ErrNotDraft if the order was dispatched
//   - *errs.NotAuthorizedError if the actor is not the creator
//   - *errs.ValueIsInvalidError if the field is not editable
//   - *errs.ValueIsRequiredError if a required field would become empty
func (o *Order) SetField(actor kernel.ActorID, field Field, value string) error {
	if err := o.ensureEditableBy(actor, "edit"); err != nil {
		return err
	}
	if err := field.Validate(); err != nil {
		return err
	}

	value = strings.TrimSpace(value)

	switch field {
	case FieldCustomerID:
		customerID, err := kernel.NewActorID(value)
		if err != nil {
			return errs.NewValueIsRequiredErrorWithCause(field.String(), err)
		}
		o.customerID = customerID
	case FieldLocation:
		if value == "" {
			return errs.NewValueIsRequiredError(field.String())
		}
		o.location = value
	case FieldNotes:
		o.notes = value
	}

	o.input = Idle()
	return nil
}

// SetPayment sets the payment label of the draft.
func (o *Order) SetPayment(actor kernel.ActorID, method PaymentMethod) error {
	if err := o.ensureEditableBy(actor, "edit"); err != nil {
		return err
	}
	if err := method.Validate(); err != nil {
		return err
	}

	o.payment = method
	return nil
}

// ValidateDispatchable reports every required field that is still missing.
// The returned error joins one *errs.ValueIsRequiredError per missing field.
func (o *Order) ValidateDispatchable() error {
	var missing []error
	if o.customerID.IsZero() {
		missing = append(missing, errs.NewValueIsRequiredError(FieldCustomerID.String()))
	}
	if o.location == "" {
		missing = append(missing, errs.NewValueIsRequiredError(FieldLocation.String()))
	}
	return errors.Join(missing...)
}

// EnsureDispatchableBy runs the part of the dispatch guard that depends on the
// order alone: the order is a draft, the operator created it and every required
// field is set. Driver availability is checked by the AssignmentMatcher.
func (o *Order) EnsureDispatchableBy(operator kernel.ActorID) error {
	if err := o.ensureEditableBy(operator, "dispatch"); err != nil {
		return err
	}
	return o.ValidateDispatchable()
}

// Assign dispatches the draft to a driver.
//
// This method enforces the following business rules:
//   - The order must be a draft created by the operator
//   - Customer and location must be set
//   - The driver identity must be valid
//
// After a successful assignment the status is Assigned, the driver is bound for
// good, the "assigned" milestone is recorded and pending input is dropped.
//
// Parameters:
//   - operator: the identity confirming the dispatch
//   - driverID: the chosen driver
//   - now: the instant recorded as the "assigned" milestone
func (o *Order) Assign(operator kernel.ActorID, driverID kernel.ActorID, now time.Time) error {
	if err := o.EnsureDispatchableBy(operator); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = driverID
	o.input = Idle()
	o.milestones.Record(MilestoneAssigned, now)
	return nil
}

// Advance applies a driver transition to an active order.
//
// Guards run in this order:
//   - the order is a draft: ErrNotDispatched
//   - the actor is not the assigned driver: *errs.NotAuthorizedError
//   - the transition is not the immediate successor of the status:
//     *errs.PreconditionFailedError
//
// A pickup on an order that is already PickedUp is accepted as a no-op and
// reported through alreadyInState; the milestone is not rewritten. On any
// error the order is left unmodified.
//
// Example:
//
//	already, err := o.Advance(driverID, order.TransitionPickup, time.Now())
//	if err != nil {
//	    // Handle rejected transition
//	}
//	if already {
//	    // The order was picked up before
//	}
func (o *Order) Advance(actor kernel.ActorID, transition Transition, now time.Time) (alreadyInState bool, err error) {
	if o.IsDraft() {
		return false, fmt.Errorf("%w: order %s", ErrNotDispatched, o.number)
	}
	if !o.driverID.IsEqual(actor) {
		return false, errs.NewNotAuthorizedError(actor.String(), fmt.Sprintf("%s order %s", transition, o.number))
	}
	if err = transition.Validate(); err != nil {
		return false, err
	}

	if transition == TransitionPickup && o.status == PickedUp {
		return true, nil
	}

	newStatus, err := transition.Apply(o.status)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.milestones.Record(transition.Milestone(), now)
	return false, nil
}

// Snapshot returns an immutable copy of the order for readers outside the
// unit of work.
func (o *Order) Snapshot() Snapshot {
	pending, _ := o.input.Field()
	return Snapshot{
		Number:       o.number,
		CreatedBy:    o.createdBy,
		CustomerID:   o.customerID,
		Location:     o.location,
		Notes:        o.notes,
		Payment:      o.payment,
		Status:       o.status,
		DriverID:     o.driverID,
		Milestones:   o.milestones.Map(),
		PendingField: pending,
	}
}

func (o *Order) ensureEditableBy(actor kernel.ActorID, action string) error {
	if !o.IsDraft() {
		return fmt.Errorf("%w: order %s is %s", ErrNotDraft, o.number, o.status)
	}
	return o.EnsureCreatedBy(actor, action)
}
