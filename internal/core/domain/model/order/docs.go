// Package order provides domain entities and business logic for freight
// order management. It implements the Order aggregate root with lifecycle
// management, an append-only action history, and contact handling.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, driver linkage, and lifecycle
//   - State: A state machine that enforces valid order state transitions
//   - Action: An immutable audit record appended on every successful transition
//   - Contact: Named phone contacts attached to an order; receiver contacts gate delivery confirmation
//   - SignPurpose: The transition a remote electronic signature confirms
//
// Key business rules:
//   - Order state follows a defined workflow: Requested -> Allocated -> Shipping -> Completed
//   - Requested and Allocated orders can be canceled; a Shipping order overdue
//     for 48 hours can be failed by its sender
//   - A driver who deallocated from an order can never be re-allocated to it
//   - Onboard and outboard transitions are driven by verified electronic
//     signatures, not direct calls
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
