package kernel

import (
	"strings"

	"courierbot/internal/pkg/errs"
)

// ErrActorIDIsRequired is returned for an empty identity and by Validate on the zero value.
var ErrActorIDIsRequired = errs.NewValueIsRequiredError("actorId")

// ActorID is the opaque identity of whoever triggers an event: an operator, a driver
// or a customer. The core never interprets it beyond equality; the chat platform
// behind the Messenger decides what it means.
type ActorID struct {
	value string
}

// NewActorID builds an ActorID from its external representation.
// Surrounding whitespace is ignored; an empty identity is rejected.
func NewActorID(value string) (ActorID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ActorID{}, ErrActorIDIsRequired
	}
	return ActorID{value: value}, nil
}

// MustNewActorID is NewActorID for identities known to be valid, such as test fixtures
// and configured operator ids that were already validated. It panics on error.
func MustNewActorID(value string) ActorID {
	id, err := NewActorID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the external representation of the identity.
func (a ActorID) String() string {
	return a.value
}

// IsEqual reports whether both identities are the same.
func (a ActorID) IsEqual(other ActorID) bool {
	return a.value == other.value
}

// IsZero reports whether the identity is unset.
func (a ActorID) IsZero() bool {
	return a.value == ""
}

// Validate rejects the zero value.
func (a ActorID) Validate() error {
	if a.IsZero() {
		return ErrActorIDIsRequired
	}
	return nil
}
