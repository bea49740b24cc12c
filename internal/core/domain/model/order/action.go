package order

import (
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ActionKind identifies the transition recorded by an Action.
type ActionKind int

const (
	// ActionUnknown represents an invalid or undefined action kind.
	ActionUnknown ActionKind = iota

	// ActionAllocate records a driver being assigned to the order.
	ActionAllocate

	// ActionDeallocate records the allocated driver releasing the order.
	ActionDeallocate

	// ActionOnboard records a signature-confirmed pickup.
	ActionOnboard

	// ActionOutboard records a signature-confirmed delivery.
	ActionOutboard

	// ActionCancel records the sender canceling the order.
	ActionCancel

	// ActionSetFailed records the sender failing an overdue shipment.
	ActionSetFailed
)

func getActionKindStrings() map[ActionKind]string {
	return map[ActionKind]string{
		ActionAllocate:   "ALLOCATE",
		ActionDeallocate: "DEALLOCATE",
		ActionOnboard:    "ONBOARD",
		ActionOutboard:   "OUTBOARD",
		ActionCancel:     "CANCEL",
		ActionSetFailed:  "SET_FAILED",
	}
}

// Validate checks if the ActionKind is one of the six defined kinds.
func (k ActionKind) Validate() error {
	if _, ok := getActionKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"action kind is invalid",
			fmt.Errorf("%d is not a valid action kind", k),
		)
	}
	return nil
}

// String returns the persisted name of the action kind.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (k ActionKind) String() string {
	if str, ok := getActionKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// ActionKindFromString parses a persisted action kind name.
func ActionKindFromString(name string) (ActionKind, error) {
	for kind, str := range getActionKindStrings() {
		if str == name {
			return kind, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"action kind is invalid",
		fmt.Errorf("%q is not a valid action kind name", name),
	)
}

// Action is one append-only audit record of a successful transition.
// Actions are never edited or deleted; they are the sole source of truth for
// "when did X happen" queries such as the shipped time.
//
// ActorID is nil for transitions performed by external receivers, who have
// no internal user identity.
type Action struct {
	kind        ActionKind
	actorID     *kernel.UUID
	description string
	timestamp   time.Time
}

// NewAction creates an audit record for a transition.
// actorID may be nil for external (receiver) actions.
func NewAction(kind ActionKind, actorID *kernel.UUID, description string, timestamp time.Time) (Action, error) {
	if err := kind.Validate(); err != nil {
		return Action{}, err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return Action{}, err
		}
	}
	if timestamp.IsZero() {
		return Action{}, errs.NewValueIsRequiredError("timestamp")
	}

	return Action{
		kind:        kind,
		actorID:     actorID,
		description: description,
		timestamp:   timestamp,
	}, nil
}

// Kind returns the recorded transition kind.
func (a Action) Kind() ActionKind {
	return a.kind
}

// ActorID returns the acting user's ID, or nil for external receiver actions.
func (a Action) ActorID() *kernel.UUID {
	return a.actorID
}

// Description returns the free-text note attached to the action.
func (a Action) Description() string {
	return a.description
}

// Timestamp returns when the transition happened.
func (a Action) Timestamp() time.Time {
	return a.timestamp
}
