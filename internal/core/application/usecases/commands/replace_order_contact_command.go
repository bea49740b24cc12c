package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrReplaceOrderContactCommandIsNotConstructed = errors.New(
	"ReplaceOrderContactCommand must be created via NewReplaceOrderContactCommand constructor",
)

// ReplaceOrderContactCommand updates the name and phone of an existing
// order contact.
type ReplaceOrderContactCommand struct {
	actor     services.Actor
	orderID   kernel.UUID
	contactID kernel.UUID
	name      string
	phone     string

	guard guard.ConstructorGuard
}

// NewReplaceOrderContactCommand creates a command to update a contact.
func NewReplaceOrderContactCommand(
	actor services.Actor,
	orderID kernel.UUID,
	contactID kernel.UUID,
	name string,
	phone string,
) (ReplaceOrderContactCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReplaceOrderContactCommand{}, err
	}
	if err := contactID.Validate(); err != nil {
		return ReplaceOrderContactCommand{}, err
	}
	if name == "" {
		return ReplaceOrderContactCommand{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return ReplaceOrderContactCommand{}, errs.NewValueIsRequiredError("phone")
	}

	return ReplaceOrderContactCommand{
		actor:     actor,
		orderID:   orderID,
		contactID: contactID,
		name:      name,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *ReplaceOrderContactCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *ReplaceOrderContactCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ContactID returns the contact to update.
func (c *ReplaceOrderContactCommand) ContactID() kernel.UUID {
	return c.contactID
}

// Name returns the new display name.
func (c *ReplaceOrderContactCommand) Name() string {
	return c.name
}

// Phone returns the new phone number.
func (c *ReplaceOrderContactCommand) Phone() string {
	return c.phone
}

// Validate ensures the command was created through the constructor.
func (c *ReplaceOrderContactCommand) Validate() error {
	return c.guard.Validate(ErrReplaceOrderContactCommandIsNotConstructed)
}
