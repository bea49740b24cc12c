package cert

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// State is the normalized state of one remote signing attempt. Vendor
// outcome codes are mapped onto this set at the adapter boundary so the
// rest of the application never sees raw vendor integers.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	StateUnknown State = iota

	// StateStandby means the vendor accepted the request and the signer
	// has not acted yet.
	StateStandby

	// StateCompleted means the signer completed the signature and the
	// vendor verified it.
	StateCompleted

	// StateExpired means the signing window lapsed before the signer
	// acted. Terminal.
	StateExpired

	// StateFailed means the signer declined, verification failed, or the
	// vendor reported an unrecognized outcome. Terminal.
	StateFailed
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateStandby:   "STANDBY",
		StateCompleted: "COMPLETED",
		StateExpired:   "EXPIRED",
		StateFailed:    "FAILED",
	}
}

// Validate checks if the State is one of the four defined states.
func (s State) Validate() error {
	if _, ok := getStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"signing state is invalid",
			fmt.Errorf("%d is not a valid signing state", s),
		)
	}
	return nil
}

// String returns the persisted name of the signing state.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StateFromString parses a persisted signing state name.
func StateFromString(name string) (State, error) {
	for state, str := range getStateStrings() {
		if str == name {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause(
		"signing state is invalid",
		fmt.Errorf("%q is not a valid signing state name", name),
	)
}

// HasFinished reports whether the state is terminal.
func (s State) HasFinished() bool {
	return s == StateCompleted || s == StateExpired || s == StateFailed
}

// StateFromOutcomeCode maps a vendor outcome code onto the normalized
// state set. Codes 3, 4 and 5 are distinct vendor failure modes that all
// collapse to StateFailed, and any code outside the documented range is
// treated as failed rather than left pending.
func StateFromOutcomeCode(code int) State {
	switch code {
	case 0:
		return StateStandby
	case 1:
		return StateCompleted
	case 2:
		return StateExpired
	default:
		return StateFailed
	}
}
