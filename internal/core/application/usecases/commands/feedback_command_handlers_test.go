package commands_test

import (
	"testing"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rate(t *testing.T, f *fixture, driverID kernel.ActorID, stars int) (kernel.OrderNumber, error) {
	t.Helper()

	rating, err := feedback.NewRating(stars)
	require.NoError(t, err)
	cmd, err := commands.NewSubmitRatingCommand(driverID, rating)
	require.NoError(t, err)
	return f.feedback.SubmitRating(f.ctx, cmd)
}

func TestFeedbackCommandHandler_RatingThenComment(t *testing.T) {
	f := newFixture(t)
	number := f.activeOrder()
	f.deliver(number)

	rated, err := rate(t, f, driver42, 5)
	require.NoError(t, err)
	assert.Equal(t, number, rated)
	assert.Contains(t, f.notifier.SentTo(driver42), ports.KindFeedbackCommentAsk)
	assert.Contains(t, f.notifier.SentTo(operator), ports.KindFeedbackReceived)

	_, err = rate(t, f, driver42, 4)
	require.ErrorIs(t, err, commands.ErrNoPendingRating)

	comment, err := commands.NewSubmitCommentCommand(driver42, "customer was lovely")
	require.NoError(t, err)
	commented, err := f.feedback.SubmitComment(f.ctx, comment)
	require.NoError(t, err)
	assert.Equal(t, number, commented)

	f.inspect(func(uow ports.UnitOfWork) {
		entry, ok := uow.FeedbackRepository().Get(number)
		require.True(t, ok)
		assert.Equal(t, 5, entry.Rating.Stars())
		assert.Equal(t, "customer was lovely", entry.Comment)

		_, pending := uow.FeedbackRepository().PendingComment(driver42)
		assert.False(t, pending)
	})

	f.archive.AssertCalled(t, "ArchiveFeedback", mock.Anything, mock.MatchedBy(func(e feedback.Feedback) bool {
		return e.OrderNumber.IsEqual(number) && e.Comment == "customer was lovely"
	}))
}

func TestFeedbackCommandHandler_SkipComment(t *testing.T) {
	f := newFixture(t)
	number := f.activeOrder()
	f.deliver(number)

	skip, err := commands.NewSkipCommentCommand(driver42)
	require.NoError(t, err)
	require.ErrorIs(t, f.feedback.SkipComment(f.ctx, skip), commands.ErrNoPendingComment)

	_, err = rate(t, f, driver42, 3)
	require.NoError(t, err)

	require.NoError(t, f.feedback.SkipComment(f.ctx, skip))
	require.ErrorIs(t, f.feedback.SkipComment(f.ctx, skip), commands.ErrNoPendingComment)

	f.inspect(func(uow ports.UnitOfWork) {
		entry, ok := uow.FeedbackRepository().Get(number)
		require.True(t, ok)
		assert.False(t, entry.HasComment())
	})
}

func TestFeedbackCommandHandler_NothingPending(t *testing.T) {
	f := newFixture(t)

	_, err := rate(t, f, driver42, 5)
	require.ErrorIs(t, err, commands.ErrNoPendingRating)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	comment, _ := commands.NewSubmitCommentCommand(driver42, "hello")
	_, err = f.feedback.SubmitComment(f.ctx, comment)
	require.ErrorIs(t, err, commands.ErrNoPendingComment)
}

func TestFeedbackCommandHandler_LatestCompletionWins(t *testing.T) {
	f := newFixture(t)
	first := f.activeOrder()
	f.deliver(first)

	second := f.readyDraft()
	_, err := f.assign(second, driver42)
	require.NoError(t, err)
	f.deliver(second)

	rated, err := rate(t, f, driver42, 4)
	require.NoError(t, err)
	assert.Equal(t, second, rated)
}
