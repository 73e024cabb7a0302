// Package services provides domain services that coordinate the Order aggregate
// with driver availability.
//
// The package includes:
//   - AssignmentMatcher: lists dispatch candidates for a draft and executes the
//     dispatch transition for the candidate the operator picked
//
// Domain services are stateless: driver availability is passed in as a sequence
// read from the registry, and the order is mutated in place only when every
// guard holds.
package services
