package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrRemoveOrderContactCommandIsNotConstructed = errors.New(
	"RemoveOrderContactCommand must be created via NewRemoveOrderContactCommand constructor",
)

// RemoveOrderContactCommand detaches a contact from an order.
type RemoveOrderContactCommand struct {
	actor     services.Actor
	orderID   kernel.UUID
	contactID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderContactCommand creates a command to detach a contact.
func NewRemoveOrderContactCommand(
	actor services.Actor,
	orderID kernel.UUID,
	contactID kernel.UUID,
) (RemoveOrderContactCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RemoveOrderContactCommand{}, err
	}
	if err := contactID.Validate(); err != nil {
		return RemoveOrderContactCommand{}, err
	}

	return RemoveOrderContactCommand{
		actor:     actor,
		orderID:   orderID,
		contactID: contactID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *RemoveOrderContactCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *RemoveOrderContactCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ContactID returns the contact to detach.
func (c *RemoveOrderContactCommand) ContactID() kernel.UUID {
	return c.contactID
}

// Validate ensures the command was created through the constructor.
func (c *RemoveOrderContactCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderContactCommandIsNotConstructed)
}
