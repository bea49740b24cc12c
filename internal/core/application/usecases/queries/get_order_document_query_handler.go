package queries

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDocumentQueryHandler reads an order's document payload from the
// database for download.
type GetOrderDocumentQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDocumentQueryHandler creates a handler for document download
// queries. Requires a GORM database connection for query execution.
func NewGetOrderDocumentQueryHandler(db *gorm.DB) GetOrderDocumentQueryHandler {
	return GetOrderDocumentQueryHandler{db: db}
}

// Handle executes the download query. Orders outside the scope, like orders
// that do not exist, produce an error wrapping errs.ErrObjectNotFound.
func (h GetOrderDocumentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDocumentQuery,
) (GetOrderDocumentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDocumentQueryResponse{}, err
	}

	sql := `
		SELECT
			documents.id,
			documents.kind,
			documents.name,
			documents.content,
			documents.sha256,
			documents.sha512
		FROM orders
		JOIN documents ON documents.id = orders.document_id
		WHERE orders.id = ?
	`
	args := []any{query.OrderID().Bytes()}

	if !query.Preauthorized() {
		if query.Scope().IsEmpty() {
			return GetOrderDocumentQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
		}
		scopeSQL, scopeArgs := renderScope(query.Scope())
		sql = fmt.Sprintf("%s AND %s", sql, scopeSQL)
		args = append(args, scopeArgs...)
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return GetOrderDocumentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderDocumentQueryResponse{}, err
		}
		return GetOrderDocumentQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	var (
		id      uuid.UUID
		kind    int
		name    string
		content []byte
		sha256  string
		sha512  string
	)
	err = rows.Scan(&id, &kind, &name, &content, &sha256, &sha512)
	if err != nil {
		return GetOrderDocumentQueryResponse{}, err
	}

	documentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderDocumentQueryResponse{}, err
	}

	response := GetOrderDocumentQueryResponse{
		DocumentID: documentID,
		Kind:       document.Kind(kind),
		Name:       name,
		Content:    content,
		SHA256:     sha256,
		SHA512:     sha512,
	}
	if err = response.Kind.Validate(); err != nil {
		return GetOrderDocumentQueryResponse{}, err
	}

	return response, nil
}
