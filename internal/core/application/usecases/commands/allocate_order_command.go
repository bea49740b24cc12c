package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAllocateOrderCommandIsNotConstructed = errors.New(
	"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
)

// AllocateOrderCommand assigns a driver, identified by vehicle ID, to a
// requested order. Issued by a sender with modification rights over the
// order.
type AllocateOrderCommand struct {
	actor     services.Actor
	orderID   kernel.UUID
	vehicleID string

	guard guard.ConstructorGuard
}

// NewAllocateOrderCommand creates a command to allocate a driver.
func NewAllocateOrderCommand(actor services.Actor, orderID kernel.UUID, vehicleID string) (AllocateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AllocateOrderCommand{}, err
	}
	if vehicleID == "" {
		return AllocateOrderCommand{}, errs.NewValueIsRequiredError("vehicleID")
	}

	return AllocateOrderCommand{
		actor:     actor,
		orderID:   orderID,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *AllocateOrderCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *AllocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VehicleID returns the vehicle registration number identifying the driver.
func (c *AllocateOrderCommand) VehicleID() string {
	return c.vehicleID
}

// Validate ensures the command was created through the constructor.
func (c *AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}
