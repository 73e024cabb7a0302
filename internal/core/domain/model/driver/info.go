// Package driver holds the identity value a courier is known by while connected.
package driver

import (
	"strings"

	"courierbot/internal/core/domain/model/kernel"
)

// Info is the single driver identity value shared by the registry, the
// assignment matcher and notifications.
type Info struct {
	id          kernel.ActorID
	displayName string
}

// NewInfo builds a driver identity. An empty display name falls back to the id.
func NewInfo(id kernel.ActorID, displayName string) (Info, error) {
	if err := id.Validate(); err != nil {
		return Info{}, err
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = id.String()
	}

	return Info{id: id, displayName: displayName}, nil
}

// MustNewInfo is NewInfo for identities known to be valid. It panics on error.
func MustNewInfo(id, displayName string) Info {
	info, err := NewInfo(kernel.MustNewActorID(id), displayName)
	if err != nil {
		panic(err)
	}
	return info
}

func (i Info) ID() kernel.ActorID {
	return i.id
}

func (i Info) DisplayName() string {
	return i.displayName
}

func (i Info) Validate() error {
	return i.id.Validate()
}
