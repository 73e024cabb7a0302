package queries

import (
	"errors"

	"courierbot/internal/pkg/guard"
)

var ErrGetConnectedDriversQueryIsNotConstructed = errors.New(
	"GetConnectedDriversQuery must be created via NewGetConnectedDriversQuery constructor",
)

// GetConnectedDriversQuery lists the drivers currently in the registry.
type GetConnectedDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetConnectedDriversQuery() GetConnectedDriversQuery {
	return GetConnectedDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetConnectedDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetConnectedDriversQueryIsNotConstructed)
}
