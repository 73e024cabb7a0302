// Package errs provides standardized error types for the courier dispatch service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the use cases and the transports.
//
// The package includes several error types for the outcomes of the order lifecycle:
//   - ObjectNotFoundError: an order number or session is unknown
//   - NotAuthorizedError: the acting identity is not the draft's creator or the order's driver
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - PreconditionFailedError: a lifecycle guard is not satisfied
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// KindOf folds any error, including joined ones, into a Kind so that the HTTP
// adapter and the metrics only need to know five categories.
package errs
