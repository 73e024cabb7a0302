// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - ActorID: the opaque identity of an operator, driver or customer
//   - OrderNumber: the zero-padded, immutable identifier of an order
//   - Sequence: the monotonic counter that allocates order numbers
//   - UUID: a unique identifier for messages leaving the core (notifications)
//
// All value objects are immutable and reject their zero value in Validate, so a
// value that skipped its constructor cannot slip into an aggregate.
package kernel
