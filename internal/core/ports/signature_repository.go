package ports

import (
	"context"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// SignatureRepository defines the persistence contract for signing
// attempts. Every attempt outcome is stored, failed ones included, so the
// signing history of an order is fully auditable.
type SignatureRepository interface {
	// Add persists a new signing attempt.
	Add(ctx context.Context, aggregate *cert.Signature) error

	// Update persists changes to a signing attempt.
	Update(ctx context.Context, aggregate *cert.Signature) error

	// Get retrieves a signing attempt by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cert.Signature, error)

	// HasCompleted reports whether any attempt for the given order and
	// purpose has already completed. The finalizer consults this before
	// applying a transition so duplicate or late completions cannot move
	// the order twice.
	HasCompleted(ctx context.Context, orderID kernel.UUID, purpose order.SignPurpose) (bool, error)

	// GetAllByOrder retrieves every signing attempt recorded for an
	// order, oldest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*cert.Signature, error)
}
