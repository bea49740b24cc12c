// Package documentrepo persists immutable freight documents with their
// content digests.
package documentrepo

import (
	"time"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DocumentDTO is the database row for a document. Rows are insert-only:
// documents never change after creation.
type DocumentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind        int
	Name        string
	Content     []byte `gorm:"type:bytea"`
	SHA256      string `gorm:"column:sha256;index"`
	SHA512      string `gorm:"column:sha512"`
	CreatedTime time.Time
}

// TableName overrides GORM's default naming to use "documents".
func (DocumentDTO) TableName() string {
	return "documents"
}

func fromDomain(doc *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:          doc.ID().Bytes(),
		Kind:        int(doc.Kind()),
		Name:        doc.Name(),
		Content:     doc.Content(),
		SHA256:      doc.SHA256(),
		SHA512:      doc.SHA512(),
		CreatedTime: doc.CreatedTime(),
	}
}

func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return document.RestoreDocument(
		id, document.Kind(dto.Kind), dto.Name, dto.Content,
		dto.SHA256, dto.SHA512, dto.CreatedTime,
	)
}
