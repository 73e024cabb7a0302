package ports

import (
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
)

// FeedbackRepository keeps the feedback annex and the per-driver session markers
// of the rating prompt.
//
// A pending-rating marker is opened on completion and cleared by the rating.
// The rating opens a pending-comment marker, cleared by the comment or a skip.
type FeedbackRepository interface {
	// OpenRating asks the driver to rate the given order, replacing an older prompt.
	OpenRating(driverID kernel.ActorID, number kernel.OrderNumber)

	PendingRating(driverID kernel.ActorID) (kernel.OrderNumber, bool)

	// RecordRating stores the annex entry, clears the rating marker of its driver
	// and opens the comment marker.
	RecordRating(entry feedback.Feedback)

	PendingComment(driverID kernel.ActorID) (kernel.OrderNumber, bool)

	// RecordComment attaches a comment to the annex entry and clears the comment marker.
	RecordComment(driverID kernel.ActorID, number kernel.OrderNumber, comment string)

	// SkipComment clears the comment marker and reports whether one was pending.
	SkipComment(driverID kernel.ActorID) bool

	Get(number kernel.OrderNumber) (feedback.Feedback, bool)
}
