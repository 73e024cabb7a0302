package errs

import "errors"

// Kind classifies an error into one of the outcome categories the order lifecycle reports.
// It lets transports and metrics map any wrapped or joined error to a single label.
type Kind int

const (
	// KindUnknown is any error that does not unwrap to a sentinel of this package.
	KindUnknown Kind = iota
	// KindNotFound means the referenced object does not exist.
	KindNotFound
	// KindUnauthorized means the acting identity does not match the one the transition requires.
	KindUnauthorized
	// KindValidationFailed means a required value is missing or a value is not acceptable.
	KindValidationFailed
	// KindPreconditionFailed means a lifecycle guard is not satisfied.
	KindPreconditionFailed
)

// KindOf returns the Kind of err. A nil error has KindUnknown.
//
// When several sentinels are reachable (for example through errors.Join) the first
// match in the order NotFound, Unauthorized, ValidationFailed, PreconditionFailed wins.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrNotAuthorized):
		return KindUnauthorized
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidationFailed
	case errors.Is(err, ErrPreconditionFailed):
		return KindPreconditionFailed
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidationFailed:
		return "validation_failed"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}
