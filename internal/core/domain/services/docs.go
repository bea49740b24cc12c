// Package services contains domain services that implement business logic
// spanning multiple aggregates.
//
// AccessControl decides which actors may read or modify which orders and
// renders the same rules as a composable list filter, so single-order
// checks and list queries share one source of truth.
package services
