package memory

import (
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
)

// FeedbackRepository keeps the rating annex and the per-driver prompt markers.
type FeedbackRepository struct {
	uow *UnitOfWork
}

func (r *FeedbackRepository) OpenRating(driverID kernel.ActorID, number kernel.OrderNumber) {
	r.uow.stage(func(s *State) {
		s.pendingRatings[driverID] = number
	})
}

func (r *FeedbackRepository) PendingRating(driverID kernel.ActorID) (kernel.OrderNumber, bool) {
	number, ok := r.uow.state.pendingRatings[driverID]
	return number, ok
}

func (r *FeedbackRepository) RecordRating(entry feedback.Feedback) {
	r.uow.stage(func(s *State) {
		s.feedback[entry.OrderNumber] = entry
		delete(s.pendingRatings, entry.DriverID)
		s.pendingComments[entry.DriverID] = entry.OrderNumber
	})
}

func (r *FeedbackRepository) PendingComment(driverID kernel.ActorID) (kernel.OrderNumber, bool) {
	number, ok := r.uow.state.pendingComments[driverID]
	return number, ok
}

func (r *FeedbackRepository) RecordComment(driverID kernel.ActorID, number kernel.OrderNumber, comment string) {
	r.uow.stage(func(s *State) {
		if entry, ok := s.feedback[number]; ok {
			s.feedback[number] = entry.WithComment(comment)
		}
		delete(s.pendingComments, driverID)
	})
}

func (r *FeedbackRepository) SkipComment(driverID kernel.ActorID) bool {
	if _, ok := r.uow.state.pendingComments[driverID]; !ok {
		return false
	}
	r.uow.stage(func(s *State) {
		delete(s.pendingComments, driverID)
	})
	return true
}

func (r *FeedbackRepository) Get(number kernel.OrderNumber) (feedback.Feedback, bool) {
	entry, ok := r.uow.state.feedback[number]
	return entry, ok
}
