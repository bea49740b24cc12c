package queries

import (
	"errors"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOrderDocumentQueryIsNotConstructed = errors.New(
		"GetOrderDocumentQuery must be created via NewGetOrderDocumentQuery constructor",
	)
)

// GetOrderDocumentQuery retrieves the freight document attached to an order
// for download. Access is either scoped to the actor's roles or
// preauthorized when an order access token already proved the right to read
// this specific order.
type GetOrderDocumentQuery struct {
	guard guard.ConstructorGuard

	orderID       kernel.UUID
	scope         services.OrderAccessScope
	preauthorized bool
}

// NewGetOrderDocumentQuery creates a download query for the document of one
// order within the actor's access scope.
func NewGetOrderDocumentQuery(
	orderID kernel.UUID,
	scope services.OrderAccessScope,
) (GetOrderDocumentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDocumentQuery{}, err
	}

	return GetOrderDocumentQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
		scope:   scope,
	}, nil
}

// NewPreauthorizedGetOrderDocumentQuery creates a download query that skips
// scope filtering. Callers must only use this after a signed order access
// token named this exact order.
func NewPreauthorizedGetOrderDocumentQuery(
	orderID kernel.UUID,
) (GetOrderDocumentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDocumentQuery{}, err
	}

	return GetOrderDocumentQuery{
		guard:         guard.NewConstructorGuard(),
		orderID:       orderID,
		preauthorized: true,
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetOrderDocumentQueryIsNotConstructed if validation fails.
func (q GetOrderDocumentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDocumentQueryIsNotConstructed)
}

// OrderID returns the order whose document is requested.
func (q GetOrderDocumentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Scope returns the access scope the lookup is filtered by. Meaningless
// when the query is preauthorized.
func (q GetOrderDocumentQuery) Scope() services.OrderAccessScope {
	return q.scope
}

// Preauthorized reports whether scope filtering is skipped.
func (q GetOrderDocumentQuery) Preauthorized() bool {
	return q.preauthorized
}

// GetOrderDocumentQueryResponse carries the document payload and the
// metadata a download endpoint needs.
type GetOrderDocumentQueryResponse struct {
	DocumentID kernel.UUID
	Kind       document.Kind
	Name       string
	Content    []byte
	SHA256     string
	SHA512     string
}
