package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrSetOrderFailedCommandIsNotConstructed = errors.New(
	"SetOrderFailedCommand must be created via NewSetOrderFailedCommand constructor",
)

// SetOrderFailedCommand marks a shipment that has been overdue for 48
// hours as failed. Issued by a sender with modification rights over the
// order.
type SetOrderFailedCommand struct {
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetOrderFailedCommand creates a command to fail an overdue shipment.
func NewSetOrderFailedCommand(actor services.Actor, orderID kernel.UUID) (SetOrderFailedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SetOrderFailedCommand{}, err
	}

	return SetOrderFailedCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *SetOrderFailedCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *SetOrderFailedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *SetOrderFailedCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderFailedCommandIsNotConstructed)
}
