package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// SignPurpose identifies which lifecycle transition a remote signature
// confirms. Each purpose pins the state the order must be in when the
// signature is requested and still be in when it finalizes.
type SignPurpose int

const (
	// PurposeUnknown is the zero value for SignPurpose.
	PurposeUnknown SignPurpose = iota

	// ConfirmOnboard confirms the pickup of freight, completing the
	// Allocated to Shipping transition.
	ConfirmOnboard

	// ConfirmOutboard confirms the delivery of freight, completing the
	// Shipping to Completed transition.
	ConfirmOutboard
)

func getPurposeStrings() map[SignPurpose]string {
	return map[SignPurpose]string{
		PurposeUnknown:  "UNKNOWN",
		ConfirmOnboard:  "CONFIRM_ONBOARD",
		ConfirmOutboard: "CONFIRM_OUTBOARD",
	}
}

// Validate checks that the purpose is one of the defined signing purposes.
func (p SignPurpose) Validate() error {
	if p != ConfirmOnboard && p != ConfirmOutboard {
		return errs.NewValueIsInvalidErrorWithCause(
			"signPurpose", fmt.Errorf("unknown purpose: %d", int(p)),
		)
	}
	return nil
}

// String returns the purpose's string representation.
func (p SignPurpose) String() string {
	if s, ok := getPurposeStrings()[p]; ok {
		return s
	}
	return getPurposeStrings()[PurposeUnknown]
}

// PurposeFromString parses a purpose from its string representation.
func PurposeFromString(name string) (SignPurpose, error) {
	for purpose, s := range getPurposeStrings() {
		if s == name && purpose != PurposeUnknown {
			return purpose, nil
		}
	}
	return PurposeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"signPurpose", fmt.Errorf("unknown purpose: %s", name),
	)
}

// RequiredState returns the state the order must hold for this purpose's
// signature to be requested or finalized.
func (p SignPurpose) RequiredState() State {
	switch p {
	case ConfirmOnboard:
		return Allocated
	case ConfirmOutboard:
		return Shipping
	default:
		return Unknown
	}
}
