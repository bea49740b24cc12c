package cert

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"
)

var (
	// ErrSignatureIsNotConstructed is returned when a Signature instance
	// was not created through NewSignature or RestoreSignature.
	ErrSignatureIsNotConstructed = errors.New("Signature must be created via NewSignature or RestoreSignature")

	// ErrSignatureAlreadyFinished is returned when a terminal signature
	// is asked to change state again.
	ErrSignatureAlreadyFinished = errors.New("signature has already reached a terminal state")

	// ErrSignatureNotStarted is returned when a poll or verify outcome is
	// applied before the vendor accepted the request.
	ErrSignatureNotStarted = errors.New("signature has no vendor receipt yet")
)

// Stage names the phase of the three-phase vendor flow in which a signing
// attempt failed. Recorded for diagnostics only.
type Stage int

const (
	// StageNone means no failure has been recorded.
	StageNone Stage = iota

	// StageRequest is the initial signing request to the vendor.
	StageRequest

	// StagePoll is the periodic status check while waiting for the signer.
	StagePoll

	// StageVerify is the final signature verification call.
	StageVerify
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageNone:    "NONE",
		StageRequest: "REQUEST",
		StagePoll:    "POLL",
		StageVerify:  "VERIFY",
	}
}

// String returns the persisted name of the stage.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StageFromString parses a persisted stage name.
func StageFromString(name string) (Stage, error) {
	for stage, str := range getStageStrings() {
		if str == name {
			return stage, nil
		}
	}
	return StageNone, errs.NewValueIsInvalidErrorWithCause(
		"stage is invalid",
		fmt.Errorf("%q is not a valid stage name", name),
	)
}

// Result carries the verified outcome of a completed signature. It is
// immutable once produced by the vendor adapter.
type Result struct {
	receiptID  string
	signedData string
	ci         string
	signedTime time.Time
}

// NewResult creates a verified signature outcome.
func NewResult(receiptID, signedData, ci string, signedTime time.Time) (Result, error) {
	if receiptID == "" {
		return Result{}, errs.NewValueIsRequiredError("receiptID")
	}
	if signedData == "" {
		return Result{}, errs.NewValueIsRequiredError("signedData")
	}
	if signedTime.IsZero() {
		return Result{}, errs.NewValueIsRequiredError("signedTime")
	}

	return Result{
		receiptID:  receiptID,
		signedData: signedData,
		ci:         ci,
		signedTime: signedTime,
	}, nil
}

// ReceiptID returns the vendor's receipt identifier.
func (r Result) ReceiptID() string {
	return r.receiptID
}

// SignedData returns the vendor-produced signature payload.
func (r Result) SignedData() string {
	return r.signedData
}

// CI returns the vendor's connecting information for the signer, when the
// vendor provides one.
func (r Result) CI() string {
	return r.ci
}

// SignedTime returns when the signer completed the signature.
func (r Result) SignedTime() time.Time {
	return r.signedTime
}

// Signature is the aggregate root for one remote signing attempt. Its
// identifier doubles as the attempt ID of the idempotency key
// (order, purpose, attempt), so finalizing the same attempt twice can be
// detected and rejected.
//
// Lifecycle: created before the vendor call with no receipt, started once
// the vendor accepts the request, then either completed with a verified
// Result or closed as expired or failed.
type Signature struct {
	id            kernel.UUID
	orderID       kernel.UUID
	purpose       order.SignPurpose
	vendor        Vendor
	signerName    string
	signerPhone   string
	signerBirth   string
	receiptID     string
	state         State
	failedStage   Stage
	failReason    string
	requestedTime time.Time
	finishedTime  *time.Time
	result        *Result

	isConstructed bool
}

// NewSignature creates a signing attempt in StateStandby, before the
// vendor request is sent. signerBirth is the signer's birthdate in
// YYYYMMDD form, required by all three vendors.
func NewSignature(
	id kernel.UUID,
	orderID kernel.UUID,
	purpose order.SignPurpose,
	vendor Vendor,
	signerName string,
	signerPhone string,
	signerBirth string,
	requestedTime time.Time,
) (*Signature, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := purpose.Validate(); err != nil {
		return nil, err
	}
	if err := vendor.Validate(); err != nil {
		return nil, err
	}
	if signerName == "" {
		return nil, errs.NewValueIsRequiredError("signerName")
	}
	if signerPhone == "" {
		return nil, errs.NewValueIsRequiredError("signerPhone")
	}
	if signerBirth == "" {
		return nil, errs.NewValueIsRequiredError("signerBirth")
	}
	if requestedTime.IsZero() {
		return nil, errs.NewValueIsRequiredError("requestedTime")
	}

	return &Signature{
		id:            id,
		orderID:       orderID,
		purpose:       purpose,
		vendor:        vendor,
		signerName:    signerName,
		signerPhone:   signerPhone,
		signerBirth:   signerBirth,
		state:         StateStandby,
		failedStage:   StageNone,
		requestedTime: requestedTime,
		isConstructed: true,
	}, nil
}

// RestoreSignature reconstructs a signing attempt from persistence.
func RestoreSignature(
	id kernel.UUID,
	orderID kernel.UUID,
	purpose order.SignPurpose,
	vendor Vendor,
	signerName string,
	signerPhone string,
	signerBirth string,
	receiptID string,
	state State,
	failedStage Stage,
	failReason string,
	requestedTime time.Time,
	finishedTime *time.Time,
	result *Result,
) (*Signature, error) {
	signature, err := NewSignature(
		id, orderID, purpose, vendor, signerName, signerPhone, signerBirth, requestedTime,
	)
	if err != nil {
		return nil, err
	}

	if err = state.Validate(); err != nil {
		return nil, err
	}
	if state == StateCompleted && result == nil {
		return nil, errs.NewValueIsRequiredError("result")
	}

	signature.receiptID = receiptID
	signature.state = state
	signature.failedStage = failedStage
	signature.failReason = failReason
	signature.finishedTime = finishedTime
	signature.result = result
	return signature, nil
}

// Validate ensures the Signature was created via its constructors.
func (s *Signature) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSignatureIsNotConstructed
	}
	return nil
}

// IsEqual compares two signatures by their unique identifiers.
func (s *Signature) IsEqual(other *Signature) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the attempt's unique identifier.
func (s *Signature) ID() kernel.UUID {
	return s.id
}

// OrderID returns the order the signature confirms a transition of.
func (s *Signature) OrderID() kernel.UUID {
	return s.orderID
}

// Purpose returns the transition this signature confirms.
func (s *Signature) Purpose() order.SignPurpose {
	return s.purpose
}

// Vendor returns the signing provider.
func (s *Signature) Vendor() Vendor {
	return s.vendor
}

// SignerName returns the signer's registered name.
func (s *Signature) SignerName() string {
	return s.signerName
}

// SignerPhone returns the signer's registered phone number.
func (s *Signature) SignerPhone() string {
	return s.signerPhone
}

// SignerBirth returns the signer's birthdate in YYYYMMDD form.
func (s *Signature) SignerBirth() string {
	return s.signerBirth
}

// ReceiptID returns the vendor's receipt, or "" before Start.
func (s *Signature) ReceiptID() string {
	return s.receiptID
}

// State returns the attempt's normalized state.
func (s *Signature) State() State {
	return s.state
}

// FailedStage returns the phase a failed attempt broke in, or StageNone.
func (s *Signature) FailedStage() Stage {
	return s.failedStage
}

// FailReason returns the recorded diagnostic message for a failed attempt.
func (s *Signature) FailReason() string {
	return s.failReason
}

// RequestedTime returns when the attempt was created.
func (s *Signature) RequestedTime() time.Time {
	return s.requestedTime
}

// FinishedTime returns when the attempt reached a terminal state, or nil.
func (s *Signature) FinishedTime() *time.Time {
	return s.finishedTime
}

// Result returns the verified outcome of a completed attempt, or nil.
func (s *Signature) Result() *Result {
	return s.result
}

// HasFinished reports whether the attempt is terminal.
func (s *Signature) HasFinished() bool {
	return s.state.HasFinished()
}

// Start records the vendor's receipt after a successful signing request.
func (s *Signature) Start(receiptID string) error {
	if s.HasFinished() {
		return ErrSignatureAlreadyFinished
	}
	if receiptID == "" {
		return errs.NewValueIsRequiredError("receiptID")
	}
	s.receiptID = receiptID
	return nil
}

// Complete records a verified outcome and moves the attempt to
// StateCompleted.
func (s *Signature) Complete(result Result, now time.Time) error {
	if s.HasFinished() {
		return ErrSignatureAlreadyFinished
	}
	if s.receiptID == "" {
		return ErrSignatureNotStarted
	}

	s.state = StateCompleted
	s.result = &result
	s.finishedTime = &now
	return nil
}

// Expire closes the attempt because the signing window lapsed.
func (s *Signature) Expire(now time.Time) error {
	if s.HasFinished() {
		return ErrSignatureAlreadyFinished
	}
	if s.receiptID == "" {
		return ErrSignatureNotStarted
	}

	s.state = StateExpired
	s.finishedTime = &now
	return nil
}

// Fail closes the attempt, recording the phase and reason of the failure.
// Unlike Complete and Expire, Fail is legal before Start: the initial
// vendor request itself can be the failing phase.
func (s *Signature) Fail(stage Stage, reason string, now time.Time) error {
	if s.HasFinished() {
		return ErrSignatureAlreadyFinished
	}

	s.state = StateFailed
	s.failedStage = stage
	s.failReason = reason
	s.finishedTime = &now
	return nil
}
