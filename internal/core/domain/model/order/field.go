package order

import (
	"fmt"
	"strings"

	"courierbot/internal/pkg/errs"
)

// Field names a free-text field of a draft the operator can edit.
type Field int

const (
	FieldUnknown Field = iota
	FieldCustomerID
	FieldLocation
	FieldNotes
)

var fieldNames = map[string]Field{
	"customerid": FieldCustomerID,
	"customer":   FieldCustomerID,
	"location":   FieldLocation,
	"notes":      FieldNotes,
}

// ParseField maps a field name to a Field. Case is ignored.
func ParseField(s string) (Field, error) {
	if f, ok := fieldNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FieldUnknown, errs.NewValueIsInvalidErrorWithCause("field", fmt.Errorf("%q is not an editable field", s))
}

func (f Field) String() string {
	switch f {
	case FieldCustomerID:
		return "customerId"
	case FieldLocation:
		return "location"
	case FieldNotes:
		return "notes"
	default:
		return "unknown"
	}
}

func (f Field) Validate() error {
	if f < FieldCustomerID || f > FieldNotes {
		return errs.NewValueIsInvalidErrorWithCause("field", fmt.Errorf("%d is not an editable field", f))
	}
	return nil
}

// InputState tells whether a draft is waiting for free-text input from its
// operator, and for which field. The zero value is Idle.
//
// Only a draft can be awaiting input: the Order aggregate refuses to request
// input once the order left the draft set and resets the state on dispatch.
type InputState struct {
	awaiting Field
}

// Idle is the state of a draft that expects no free-text input.
func Idle() InputState {
	return InputState{}
}

// AwaitingInput is the state of a draft whose next free-text input from its
// operator fills the given field.
func AwaitingInput(field Field) InputState {
	return InputState{awaiting: field}
}

// IsAwaiting reports whether input is pending.
func (s InputState) IsAwaiting() bool {
	return s.awaiting != FieldUnknown
}

// Field returns the awaited field, if any.
func (s InputState) Field() (Field, bool) {
	return s.awaiting, s.IsAwaiting()
}

func (s InputState) String() string {
	if !s.IsAwaiting() {
		return "idle"
	}
	return "awaiting " + s.awaiting.String()
}
