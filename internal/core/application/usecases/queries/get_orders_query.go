package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// maxPageSize caps how many orders one list page may return.
const maxPageSize = 100

// GetOrdersQuery retrieves one page of orders within the actor's access
// scope, narrowed to a lifecycle band. Orders come back newest first.
//
// Example:
//
//	scope := accessControl.Scope(actor)
//	query, err := NewGetOrdersQuery(scope, ports.BandRequested, 0, 20)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	fmt.Printf("Showing %d of %d orders\n", len(page.Orders), page.Total)
type GetOrdersQuery struct {
	guard guard.ConstructorGuard

	scope  services.OrderAccessScope
	band   ports.OrderBand
	offset int
	limit  int
}

// NewGetOrdersQuery creates a paged list query. The scope must come from
// AccessControl.Scope; an empty scope is allowed and matches nothing.
func NewGetOrdersQuery(
	scope services.OrderAccessScope,
	band ports.OrderBand,
	offset int,
	limit int,
) (GetOrdersQuery, error) {
	if offset < 0 {
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("offset")
	}
	if limit < 1 || limit > maxPageSize {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}

	return GetOrdersQuery{
		guard:  guard.NewConstructorGuard(),
		scope:  scope,
		band:   band,
		offset: offset,
		limit:  limit,
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Scope returns the access scope the list is filtered by.
func (q GetOrdersQuery) Scope() services.OrderAccessScope {
	return q.scope
}

// Band returns the lifecycle band the list is narrowed to.
func (q GetOrdersQuery) Band() ports.OrderBand {
	return q.band
}

// Offset returns the number of orders skipped before the page starts.
func (q GetOrdersQuery) Offset() int {
	return q.offset
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// OrderSummaryResponse is one row of a paged order list.
type OrderSummaryResponse struct {
	ID           kernel.UUID
	State        order.State
	OrderedTime  time.Time
	DocumentID   kernel.UUID
	SenderRoleID *kernel.UUID
	DriverRoleID *kernel.UUID
}

// GetOrdersQueryResponse is one page of order summaries together with the
// unpaged total for the same filter.
type GetOrdersQueryResponse struct {
	Orders []OrderSummaryResponse
	Total  int64
}
