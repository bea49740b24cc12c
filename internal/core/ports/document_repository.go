package ports

import (
	"context"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
)

// DocumentRepository defines the persistence contract for stored freight
// documents. Documents are immutable, so there is no update method.
type DocumentRepository interface {
	// Add persists a new document with its content and both digests.
	Add(ctx context.Context, aggregate *document.Document) error

	// Get retrieves a document by its unique identifier, including its
	// content.
	Get(ctx context.Context, id kernel.UUID) (*document.Document, error)
}
