// Package feedback models the optional post-delivery rating a driver attaches
// to a completed order. Feedback is an annex keyed by order number; it never
// changes the order itself.
package feedback

import (
	"strings"

	"courierbot/internal/core/domain/model/kernel"
)

// Feedback is the annex entry for one completed order.
type Feedback struct {
	OrderNumber kernel.OrderNumber
	DriverID    kernel.ActorID
	Rating      Rating
	Comment     string
}

// New starts an annex entry with a rating and no comment.
func New(number kernel.OrderNumber, driverID kernel.ActorID, rating Rating) Feedback {
	return Feedback{
		OrderNumber: number,
		DriverID:    driverID,
		Rating:      rating,
	}
}

// WithComment returns a copy carrying the comment.
func (f Feedback) WithComment(comment string) Feedback {
	f.Comment = strings.TrimSpace(comment)
	return f
}

// HasComment reports whether the driver left a comment.
func (f Feedback) HasComment() bool {
	return f.Comment != ""
}
