package documentrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM. The
// interface has no Update: documents are immutable once stored.
type GormDocumentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDocumentRepository creates a new GORM document repository.
func NewGormDocumentRepository(db *gorm.DB, tracker aggregateTracker) *GormDocumentRepository {
	return &GormDocumentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new document to the database.
func (r *GormDocumentRepository) Add(ctx context.Context, doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(doc.ID(), doc)
	return nil
}

// Get retrieves a document by ID. Digests are re-derived from the stored
// content on restore, so a corrupted row surfaces as an error here rather
// than as silently wrong bytes.
func (r *GormDocumentRepository) Get(ctx context.Context, id kernel.UUID) (*document.Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
