package commands

import (
	"context"
	"fmt"
	"strconv"

	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/metrics"

	"go.uber.org/zap"
)

// FeedbackCommandHandler runs the post-delivery rating prompt of a driver:
// one rating, then an optional comment. Ratings are kept in an annex keyed by
// order number and copied to the archive.
//
// Example:
//
//	rating, _ := feedback.NewRating(5)
//	cmd, _ := NewSubmitRatingCommand(driverID, rating)
//	number, err := handler.SubmitRating(ctx, cmd)
//	if errors.Is(err, ErrNoPendingRating) {
//	    // The driver was not asked for a rating
//	}
//
//	skip, _ := NewSkipCommentCommand(driverID)
//	err = handler.SkipComment(ctx, skip)
type FeedbackCommandHandler struct {
	uowFactory FeedbackUoWFactory
	notifier   ports.Notifier
	archive    ports.Archive
	operators  []kernel.ActorID
	logger     *zap.Logger
	clock      Clock
}

func NewFeedbackCommandHandler(
	uowFactory FeedbackUoWFactory,
	notifier ports.Notifier,
	archive ports.Archive,
	operators []kernel.ActorID,
	logger *zap.Logger,
	clock Clock,
) FeedbackCommandHandler {
	return FeedbackCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		archive:    archive,
		operators:  operators,
		logger:     logger.With(zap.String("component", "feedback")),
		clock:      clockOrDefault(clock),
	}
}

// SubmitRating records the rating of the order the driver was asked about and
// asks for a comment. Returns ErrNoPendingRating if no rating was asked for.
func (h *FeedbackCommandHandler) SubmitRating(ctx context.Context, cmd SubmitRatingCommand) (_ kernel.OrderNumber, err error) {
	defer func() { metrics.ObserveRejection("submit_rating", err) }()

	if err = cmd.Validate(); err != nil {
		return kernel.OrderNumber{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	feedbackRepo := uow.FeedbackRepository()
	number, ok := feedbackRepo.PendingRating(cmd.DriverID())
	if !ok {
		return kernel.OrderNumber{}, fmt.Errorf("%w: driver %s", ErrNoPendingRating, cmd.DriverID())
	}

	entry := feedback.New(number, cmd.DriverID(), cmd.Rating())
	feedbackRepo.RecordRating(entry)

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	h.archiveFeedback(ctx, entry)

	now := h.clock()
	payload := map[string]string{
		"orderNumber": number.String(),
		"driverId":    cmd.DriverID().String(),
		"stars":       strconv.Itoa(cmd.Rating().Stars()),
	}
	h.notifier.Notify(ctx, newNotification(cmd.DriverID(), ports.KindFeedbackCommentAsk, number, payload, now))
	h.notifier.Notify(ctx, toOperators(h.operators, ports.KindFeedbackReceived, payload, now)...)

	return number, nil
}

// SubmitComment attaches the comment to the pending rating.
// Returns ErrNoPendingComment if no comment was asked for.
func (h *FeedbackCommandHandler) SubmitComment(ctx context.Context, cmd SubmitCommentCommand) (_ kernel.OrderNumber, err error) {
	defer func() { metrics.ObserveRejection("submit_comment", err) }()

	if err = cmd.Validate(); err != nil {
		return kernel.OrderNumber{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	feedbackRepo := uow.FeedbackRepository()
	number, ok := feedbackRepo.PendingComment(cmd.DriverID())
	if !ok {
		return kernel.OrderNumber{}, fmt.Errorf("%w: driver %s", ErrNoPendingComment, cmd.DriverID())
	}

	entry, rated := feedbackRepo.Get(number)
	feedbackRepo.RecordComment(cmd.DriverID(), number, cmd.Comment())

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderNumber{}, err
	}

	if rated {
		h.archiveFeedback(ctx, entry.WithComment(cmd.Comment()))
	}

	return number, nil
}

// SkipComment closes the comment prompt. Returns ErrNoPendingComment if no
// comment was asked for.
func (h *FeedbackCommandHandler) SkipComment(ctx context.Context, cmd SkipCommentCommand) (err error) {
	defer func() { metrics.ObserveRejection("skip_comment", err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if !uow.FeedbackRepository().SkipComment(cmd.DriverID()) {
		return fmt.Errorf("%w: driver %s", ErrNoPendingComment, cmd.DriverID())
	}

	return uow.Commit(ctx)
}

func (h *FeedbackCommandHandler) archiveFeedback(ctx context.Context, entry feedback.Feedback) {
	if err := h.archive.ArchiveFeedback(ctx, entry); err != nil {
		h.logger.Warn("failed to archive feedback",
			zap.String("order", entry.OrderNumber.String()),
			zap.Error(err),
		)
	}
}
