package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order in full: its state, action history and
// contact list. The access scope is applied in the database, so an order the
// actor may not see is reported as not found, never as forbidden.
type GetOrderQuery struct {
	guard guard.ConstructorGuard

	orderID       kernel.UUID
	scope         services.OrderAccessScope
	preauthorized bool
}

// NewGetOrderQuery creates a detail query for one order within the actor's
// access scope.
func NewGetOrderQuery(
	orderID kernel.UUID,
	scope services.OrderAccessScope,
) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
		scope:   scope,
	}, nil
}

// NewPreauthorizedGetOrderQuery creates a detail query that skips scope
// filtering. Callers must only use this after a signed order access token
// named this exact order.
func NewPreauthorizedGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		guard:         guard.NewConstructorGuard(),
		orderID:       orderID,
		preauthorized: true,
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's ID.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Scope returns the access scope the lookup is filtered by. Meaningless
// when the query is preauthorized.
func (q GetOrderQuery) Scope() services.OrderAccessScope {
	return q.scope
}

// Preauthorized reports whether scope filtering is skipped.
func (q GetOrderQuery) Preauthorized() bool {
	return q.preauthorized
}

// OrderActionResponse is one audit record of a successful transition.
type OrderActionResponse struct {
	Kind        order.ActionKind
	ActorID     *kernel.UUID
	Description string
	Timestamp   time.Time
}

// OrderContactResponse is one named phone contact attached to the order.
type OrderContactResponse struct {
	ID    kernel.UUID
	Role  order.ContactRole
	Name  string
	Phone string
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	Summary  OrderSummaryResponse
	Actions  []OrderActionResponse
	Contacts []OrderContactResponse
}
