package ports

import (
	"context"

	"freight/internal/core/domain/model/cert"
)

// Signer is the person asked to sign: the registered identity the vendor
// verifies the signature against.
type Signer struct {
	Name     string
	Phone    string
	Birthday string // YYYYMMDD
}

// SignRequest carries everything a vendor needs for one signing attempt.
// Token is the payload to be signed, the url-safe base64 of the document's
// SHA-256 digest. OriginalURL is only set for vendors that show the signer
// the original document.
type SignRequest struct {
	Vendor      cert.Vendor
	Signer      Signer
	Token       string
	Title       string
	Message     string
	OriginalURL string
}

// SignOutcome is the normalized end result of one attempt's full
// request/poll/verify flow. Exactly one terminal state is reported;
// vendor errors are absorbed into StateFailed with the failing stage and
// a diagnostic reason rather than surfaced as Go errors.
type SignOutcome struct {
	State       cert.State
	ReceiptID   string
	Result      *cert.Result
	FailedStage cert.Stage
	FailReason  string
}

// CertClient drives a remote signing vendor through its three-phase flow.
type CertClient interface {
	// TrySign sends the signing request, polls until the signer acts or
	// the window expires, then verifies the signature. It blocks for up
	// to the vendor's signing window and must only be called from worker
	// goroutines, never a request path. The returned outcome is always
	// terminal; ctx cancellation aborts polling with a failed outcome.
	TrySign(ctx context.Context, req SignRequest) SignOutcome
}
