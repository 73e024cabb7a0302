// Package order contains the Order aggregate and the value objects of its lifecycle.
//
// An order is born as a draft (status Created) owned by the operator who
// created it. The operator fills in the customer, location, notes and payment
// label, then dispatches the draft to a connected driver. From then on only
// that driver advances it: pickup, arrive, complete. Every step records a
// milestone instant; milestones are never overwritten.
//
// The package includes:
//   - Order: the aggregate root
//   - Status: the five-state lifecycle
//   - Transition: driver steps (pickup, arrive, complete)
//   - PaymentMethod: the closed set of payment labels
//   - Field and InputState: editable fields and the "awaiting input" marker
//   - Milestones and Snapshot: lifecycle instants and read copies
package order
