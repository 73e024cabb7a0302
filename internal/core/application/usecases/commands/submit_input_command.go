package commands

import (
	"errors"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var (
	ErrSubmitInputCommandIsNotConstructed = errors.New(
		"SubmitInputCommand must be created via NewSubmitInputCommand constructor",
	)

	// ErrNoPendingInput is returned when free text arrives while none of the
	// operator's drafts waits for input.
	ErrNoPendingInput = errs.NewObjectNotFoundError("pendingInput", "no draft is awaiting input")
)

// SubmitInputCommand carries a free-text message of an operator. The draft and
// the field it is meant for are found from the operator's pending input request.
type SubmitInputCommand struct { //nolint:recvcheck //using for validation
	operator kernel.ActorID
	text     string

	guard guard.ConstructorGuard
}

func NewSubmitInputCommand(operator kernel.ActorID, text string) (SubmitInputCommand, error) {
	if err := operator.Validate(); err != nil {
		return SubmitInputCommand{}, err
	}

	return SubmitInputCommand{
		operator: operator,
		text:     text,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitInputCommand) Validate() error {
	return c.guard.Validate(ErrSubmitInputCommandIsNotConstructed)
}

func (c SubmitInputCommand) Operator() kernel.ActorID {
	return c.operator
}

func (c SubmitInputCommand) Text() string {
	return c.text
}
