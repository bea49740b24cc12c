package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderBand selects which lifecycle slice of orders a list query returns.
type OrderBand int

const (
	// BandRequested lists orders waiting for a driver.
	BandRequested OrderBand = iota

	// BandOngoing lists orders that are Allocated or Shipping.
	BandOngoing

	// BandFinished lists orders in a terminal state.
	BandFinished
)

// OrderRepository defines the persistence contract for order aggregates,
// including their action history and contacts.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, appending
	// any new actions and reconciling its contact list.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the rest of
	// the transaction. Transition commands load through this so that
	// precondition checks and the write happen against the same row
	// version.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllShippingSince returns all Shipping orders whose onboard action
	// is at or before the given cutoff. Used by the overdue-shipment
	// monitor.
	GetAllShippingSince(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
