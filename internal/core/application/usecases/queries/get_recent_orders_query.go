package queries

import (
	"errors"
	"fmt"

	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

// DefaultRecentOrdersLimit is how many completed orders the operator sees by default.
const DefaultRecentOrdersLimit = 10

var ErrGetRecentOrdersQueryIsNotConstructed = errors.New(
	"GetRecentOrdersQuery must be created via NewGetRecentOrdersQuery constructor",
)

// GetRecentOrdersQuery lists completed orders, most recent first.
type GetRecentOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetRecentOrdersQuery creates the query. A zero limit means
// DefaultRecentOrdersLimit; a negative one is rejected.
func NewGetRecentOrdersQuery(limit int) (GetRecentOrdersQuery, error) {
	if limit < 0 {
		return GetRecentOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is negative", limit))
	}
	if limit == 0 {
		limit = DefaultRecentOrdersLimit
	}

	return GetRecentOrdersQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRecentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentOrdersQueryIsNotConstructed)
}

func (q GetRecentOrdersQuery) Limit() int {
	return q.limit
}
