package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// State represents the lifecycle state of a freight order.
// It implements a state machine with defined transitions so orders can only
// move along legal edges.
//
// State transitions:
//
//	Requested ──> Allocated ──> Shipping ──> Completed
//	    ^  │          │  │           │
//	    │  │          │  └──> Canceled (terminal)
//	    │  └──────────│─────> Canceled
//	    └─(deallocate)┘          │
//	                  Shipping ──┴──> Failed (terminal)
//
// Requested and Allocated orders may be canceled; a Shipping order that has
// been overdue for 48 hours may be failed. Completed, Canceled and Failed
// are terminal.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Requested is the initial state when a sender posts an order.
	// Orders in this state are waiting for a driver to be allocated.
	Requested

	// Canceled indicates the sender withdrew the order before shipping.
	// Terminal.
	Canceled

	// Allocated indicates a driver has been assigned to the order.
	Allocated

	// Shipping indicates the allocated driver confirmed pickup (onboard)
	// with a completed electronic signature.
	Shipping

	// Completed indicates the receiver confirmed delivery (outboard)
	// with a completed electronic signature. Terminal.
	Completed

	// Failed indicates the sender marked an overdue shipment as failed.
	// Terminal.
	Failed
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Requested: "REQUESTED",
		Canceled:  "CANCELED",
		Allocated: "ALLOCATED",
		Shipping:  "SHIPPING",
		Completed: "COMPLETED",
		Failed:    "FAILED",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Requested: "REQUESTED",
		Canceled:  "CANCELED",
		Allocated: "ALLOCATED",
		Shipping:  "SHIPPING",
		Completed: "COMPLETED",
		Failed:    "FAILED",
	}
}

// Validate checks if the State value is one of the six defined states.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// orders from persistence so unknown stored values are rejected at the
// boundary instead of flowing through as silent zero values.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the persisted name of the state ("REQUESTED", "SHIPPING", ...).
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StateFromString parses a persisted state name. Unknown names are rejected.
func StateFromString(name string) (State, error) {
	for state, str := range getValidStateStrings() {
		if str == name {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"state is invalid",
		fmt.Errorf("%q is not a valid state name", name),
	)
}

// HasFinished reports whether the state is terminal
// (Completed, Canceled or Failed).
func (s State) HasFinished() bool {
	return s == Completed || s == Canceled || s == Failed
}

// Allocate transitions the state to Allocated.
//
// Valid transitions:
//   - Requested -> Allocated
func (s State) Allocate() (State, error) {
	if s != Requested {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to allocate", s.String()),
		)
	}
	return Allocated, nil
}

// Deallocate transitions the state back to Requested.
//
// Valid transitions:
//   - Allocated -> Requested
func (s State) Deallocate() (State, error) {
	if s != Allocated {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to deallocate", s.String()),
		)
	}
	return Requested, nil
}

// Onboard transitions the state to Shipping.
//
// Valid transitions:
//   - Allocated -> Shipping
func (s State) Onboard() (State, error) {
	if s != Allocated {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to onboard", s.String()),
		)
	}
	return Shipping, nil
}

// Outboard transitions the state to Completed.
//
// Valid transitions:
//   - Shipping -> Completed
func (s State) Outboard() (State, error) {
	if s != Shipping {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to outboard", s.String()),
		)
	}
	return Completed, nil
}

// Cancel transitions the state to Canceled.
//
// Valid transitions:
//   - Requested -> Canceled
//   - Allocated -> Canceled
func (s State) Cancel() (State, error) {
	if s != Requested && s != Allocated {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to cancel", s.String()),
		)
	}
	return Canceled, nil
}

// SetFailed transitions the state to Failed.
//
// Valid transitions:
//   - Shipping -> Failed
func (s State) SetFailed() (State, error) {
	if s != Shipping {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to set failed", s.String()),
		)
	}
	return Failed, nil
}

// ValidateCanHaveDriver validates the consistency between order state and
// driver assignment when reconstructing from persistence.
//
// Rules:
//   - Requested and Canceled orders must not have a driver
//   - Allocated and Shipping orders must have a driver
//   - Completed and Failed orders retain their historical driver linkage
func (s State) ValidateCanHaveDriver(driver bool) error {
	if driver && (s == Requested || s == Canceled) {
		return errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to have a driver", s.String()),
		)
	}

	if !driver && (s == Allocated || s == Shipping) {
		return errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a valid state to have no driver", s.String()),
		)
	}

	return nil
}
