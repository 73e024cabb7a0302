package commands

import (
	"errors"
	"strings"

	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var (
	ErrSubmitRatingCommandIsNotConstructed = errors.New(
		"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
	)
	ErrSubmitCommentCommandIsNotConstructed = errors.New(
		"SubmitCommentCommand must be created via NewSubmitCommentCommand constructor",
	)
	ErrSkipCommentCommandIsNotConstructed = errors.New(
		"SkipCommentCommand must be created via NewSkipCommentCommand constructor",
	)

	// ErrNoPendingRating is returned when a rating arrives from a driver who was
	// not asked for one.
	ErrNoPendingRating = errs.NewObjectNotFoundError("pendingRating", "no rating is pending")

	// ErrNoPendingComment is returned when a comment or a skip arrives from a
	// driver who was not asked for a comment.
	ErrNoPendingComment = errs.NewObjectNotFoundError("pendingComment", "no comment is pending")
)

// SubmitRatingCommand is a driver rating the order they completed last.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.ActorID
	rating   feedback.Rating

	guard guard.ConstructorGuard
}

func NewSubmitRatingCommand(driverID kernel.ActorID, rating feedback.Rating) (SubmitRatingCommand, error) {
	if err := errors.Join(
		driverID.Validate(),
		rating.Validate(),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	return SubmitRatingCommand{
		driverID: driverID,
		rating:   rating,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

func (c SubmitRatingCommand) DriverID() kernel.ActorID {
	return c.driverID
}

func (c SubmitRatingCommand) Rating() feedback.Rating {
	return c.rating
}

// SubmitCommentCommand attaches a free-text comment to the last rating.
type SubmitCommentCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.ActorID
	comment  string

	guard guard.ConstructorGuard
}

// NewSubmitCommentCommand requires a non-blank comment. A driver who has nothing
// to say sends SkipCommentCommand instead.
func NewSubmitCommentCommand(driverID kernel.ActorID, comment string) (SubmitCommentCommand, error) {
	comment = strings.TrimSpace(comment)

	var commentErr error
	if comment == "" {
		commentErr = errs.NewValueIsRequiredError("comment")
	}
	if err := errors.Join(driverID.Validate(), commentErr); err != nil {
		return SubmitCommentCommand{}, err
	}

	return SubmitCommentCommand{
		driverID: driverID,
		comment:  comment,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitCommentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCommentCommandIsNotConstructed)
}

func (c SubmitCommentCommand) DriverID() kernel.ActorID {
	return c.driverID
}

func (c SubmitCommentCommand) Comment() string {
	return c.comment
}

// SkipCommentCommand closes the comment prompt without a comment.
type SkipCommentCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.ActorID

	guard guard.ConstructorGuard
}

func NewSkipCommentCommand(driverID kernel.ActorID) (SkipCommentCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SkipCommentCommand{}, err
	}

	return SkipCommentCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SkipCommentCommand) Validate() error {
	return c.guard.Validate(ErrSkipCommentCommandIsNotConstructed)
}

func (c SkipCommentCommand) DriverID() kernel.ActorID {
	return c.driverID
}
