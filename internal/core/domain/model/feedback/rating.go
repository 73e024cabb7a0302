package feedback

import (
	"strconv"
	"strings"

	"courierbot/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is the number of stars a driver gives a completed delivery.
type Rating struct {
	stars int
}

// NewRating accepts 1 to 5 stars.
func NewRating(stars int) (Rating, error) {
	if stars < MinRating || stars > MaxRating {
		return Rating{}, errs.NewValueIsOutOfRangeError("stars", stars, MinRating, MaxRating)
	}
	return Rating{stars: stars}, nil
}

// ParseRating accepts the textual form of a star count, as typed or sent by a button.
func ParseRating(s string) (Rating, error) {
	stars, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Rating{}, errs.NewValueIsInvalidErrorWithCause("stars", err)
	}
	return NewRating(stars)
}

func (r Rating) Stars() int {
	return r.stars
}

func (r Rating) String() string {
	return strings.Repeat("★", r.stars) + strings.Repeat("☆", MaxRating-r.stars)
}

func (r Rating) IsZero() bool {
	return r.stars == 0
}

func (r Rating) Validate() error {
	if r.IsZero() {
		return errs.NewValueIsRequiredError("stars")
	}
	return nil
}
