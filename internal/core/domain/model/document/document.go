package document

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrDocumentIsNotConstructed is returned when a Document instance was not
// created through NewDocument or RestoreDocument.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument or RestoreDocument")

// Kind identifies the payload format of a document.
type Kind int

const (
	// KindUnknown represents an invalid or undefined document kind.
	KindUnknown Kind = iota

	// KindJSON marks a structured freight description payload.
	KindJSON

	// KindPDF marks a binary freight document payload.
	KindPDF
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindJSON: "JSON",
		KindPDF:  "PDF",
	}
}

// Validate checks if the Kind is one of the defined document kinds.
func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"document kind is invalid",
			fmt.Errorf("%d is not a valid document kind", k),
		)
	}
	return nil
}

// String returns the persisted name of the document kind.
// Invalid values render as "Unknown". Implements fmt.Stringer.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// KindFromString parses a persisted document kind name.
func KindFromString(name string) (Kind, error) {
	for kind, str := range getKindStrings() {
		if str == name {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"document kind is invalid",
		fmt.Errorf("%q is not a valid document kind name", name),
	)
}

// Document is an immutable stored freight document. Its content and both
// digests are fixed at creation; there is no mutation API. The SHA-256
// digest travels to the signing vendor as the token to be signed, and the
// SHA-512 digest is kept for later integrity audits.
type Document struct {
	id          kernel.UUID
	kind        Kind
	name        string
	content     []byte
	sha256Hex   string
	sha512Hex   string
	createdTime time.Time

	isConstructed bool
}

// NewDocument stores a payload and computes both digests from it.
// The content slice is copied, so later changes by the caller do not leak
// into the document.
func NewDocument(
	id kernel.UUID,
	kind Kind,
	name string,
	content []byte,
	createdTime time.Time,
) (*Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, errs.NewValueIsRequiredError("content")
	}
	if createdTime.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdTime")
	}

	owned := make([]byte, len(content))
	copy(owned, content)

	digest256 := sha256.Sum256(owned)
	digest512 := sha512.Sum512(owned)

	return &Document{
		id:            id,
		kind:          kind,
		name:          name,
		content:       owned,
		sha256Hex:     hex.EncodeToString(digest256[:]),
		sha512Hex:     hex.EncodeToString(digest512[:]),
		createdTime:   createdTime,
		isConstructed: true,
	}, nil
}

// RestoreDocument reconstructs a document from persistence. The stored
// digests are authoritative: they were computed exactly once in NewDocument
// and are carried over as-is, never re-derived on the read path. Use
// VerifyIntegrity for an explicit tamper audit.
func RestoreDocument(
	id kernel.UUID,
	kind Kind,
	name string,
	content []byte,
	sha256Hex string,
	sha512Hex string,
	createdTime time.Time,
) (*Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, errs.NewValueIsRequiredError("content")
	}
	if sha256Hex == "" {
		return nil, errs.NewValueIsRequiredError("sha256")
	}
	if sha512Hex == "" {
		return nil, errs.NewValueIsRequiredError("sha512")
	}
	if createdTime.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdTime")
	}

	owned := make([]byte, len(content))
	copy(owned, content)

	return &Document{
		id:            id,
		kind:          kind,
		name:          name,
		content:       owned,
		sha256Hex:     sha256Hex,
		sha512Hex:     sha512Hex,
		createdTime:   createdTime,
		isConstructed: true,
	}, nil
}

// VerifyIntegrity re-derives both digests from the content and compares
// them to the stored ones. A mismatch means the stored payload was
// corrupted or tampered with since creation.
func (d *Document) VerifyIntegrity() error {
	if err := d.Validate(); err != nil {
		return err
	}

	digest256 := sha256.Sum256(d.content)
	if hex.EncodeToString(digest256[:]) != d.sha256Hex {
		return errs.NewValueIsInvalidErrorWithCause(
			"sha256", fmt.Errorf("stored digest does not match content"),
		)
	}
	digest512 := sha512.Sum512(d.content)
	if hex.EncodeToString(digest512[:]) != d.sha512Hex {
		return errs.NewValueIsInvalidErrorWithCause(
			"sha512", fmt.Errorf("stored digest does not match content"),
		)
	}
	return nil
}

// Validate ensures the Document was created via its constructors.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}
	return nil
}

// IsEqual compares two documents by their unique identifiers.
func (d *Document) IsEqual(other *Document) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the document's unique identifier.
func (d *Document) ID() kernel.UUID {
	return d.id
}

// Kind returns the document's payload format.
func (d *Document) Kind() Kind {
	return d.kind
}

// Name returns the document's display file name. May be empty.
func (d *Document) Name() string {
	return d.name
}

// Content returns a copy of the stored payload.
func (d *Document) Content() []byte {
	content := make([]byte, len(d.content))
	copy(content, d.content)
	return content
}

// Size returns the stored payload size in bytes.
func (d *Document) Size() int {
	return len(d.content)
}

// SHA256 returns the hex-encoded SHA-256 digest of the content.
func (d *Document) SHA256() string {
	return d.sha256Hex
}

// SHA512 returns the hex-encoded SHA-512 digest of the content.
func (d *Document) SHA512() string {
	return d.sha512Hex
}

// CreatedTime returns when the document was stored.
func (d *Document) CreatedTime() time.Time {
	return d.createdTime
}
