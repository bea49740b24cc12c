package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrDeallocateOrderCommandIsNotConstructed = errors.New(
	"DeallocateOrderCommand must be created via NewDeallocateOrderCommand constructor",
)

// DeallocateOrderCommand releases the actor from an allocated order.
// Issued by the allocated driver only; the recorded DEALLOCATE action
// permanently bars the driver from re-allocation to this order.
type DeallocateOrderCommand struct {
	actor   services.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeallocateOrderCommand creates a command to release a driver.
func NewDeallocateOrderCommand(actor services.Actor, orderID kernel.UUID) (DeallocateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeallocateOrderCommand{}, err
	}

	return DeallocateOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *DeallocateOrderCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *DeallocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *DeallocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeallocateOrderCommandIsNotConstructed)
}
