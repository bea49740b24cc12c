package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws a Requested or Allocated order. Issued by a
// sender with modification rights over the order.
type CancelOrderCommand struct {
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(actor services.Actor, orderID kernel.UUID) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *CancelOrderCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
