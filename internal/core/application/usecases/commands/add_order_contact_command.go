package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAddOrderContactCommandIsNotConstructed = errors.New(
	"AddOrderContactCommand must be created via NewAddOrderContactCommand constructor",
)

// AddOrderContactCommand attaches a named phone contact to an order.
type AddOrderContactCommand struct {
	actor   services.Actor
	orderID kernel.UUID
	role    order.ContactRole
	name    string
	phone   string

	guard guard.ConstructorGuard
}

// NewAddOrderContactCommand creates a command to attach a contact.
func NewAddOrderContactCommand(
	actor services.Actor,
	orderID kernel.UUID,
	role order.ContactRole,
	name string,
	phone string,
) (AddOrderContactCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AddOrderContactCommand{}, err
	}
	if err := role.Validate(); err != nil {
		return AddOrderContactCommand{}, err
	}
	if name == "" {
		return AddOrderContactCommand{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return AddOrderContactCommand{}, errs.NewValueIsRequiredError("phone")
	}

	return AddOrderContactCommand{
		actor:   actor,
		orderID: orderID,
		role:    role,
		name:    name,
		phone:   phone,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *AddOrderContactCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *AddOrderContactCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Role returns whether the contact is sender- or receiver-side.
func (c *AddOrderContactCommand) Role() order.ContactRole {
	return c.role
}

// Name returns the contact's display name.
func (c *AddOrderContactCommand) Name() string {
	return c.name
}

// Phone returns the contact's phone number.
func (c *AddOrderContactCommand) Phone() string {
	return c.phone
}

// Validate ensures the command was created through the constructor.
func (c *AddOrderContactCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderContactCommandIsNotConstructed)
}
