package commands

import (
	"errors"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/guard"
)

var ErrRequestOnboardCommandIsNotConstructed = errors.New(
	"RequestOnboardCommand must be created via NewRequestOnboardCommand constructor",
)

// RequestOnboardCommand starts the signature-confirmed pickup of an order.
// Issued by the allocated driver, who is also the signer; the order state
// changes only later, when the signature completes.
type RequestOnboardCommand struct {
	actor   services.Actor
	orderID kernel.UUID
	vendor  cert.Vendor
	signer  ports.Signer

	guard guard.ConstructorGuard
}

// NewRequestOnboardCommand creates a command to request pickup confirmation.
// The signer identity comes from the authenticated driver's registered
// role, never from the request body.
func NewRequestOnboardCommand(
	actor services.Actor,
	orderID kernel.UUID,
	vendor cert.Vendor,
	signer ports.Signer,
) (RequestOnboardCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestOnboardCommand{}, err
	}
	if err := vendor.Validate(); err != nil {
		return RequestOnboardCommand{}, err
	}

	return RequestOnboardCommand{
		actor:   actor,
		orderID: orderID,
		vendor:  vendor,
		signer:  signer,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *RequestOnboardCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the target order's ID.
func (c *RequestOnboardCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Vendor returns the chosen signing provider.
func (c *RequestOnboardCommand) Vendor() cert.Vendor {
	return c.vendor
}

// Signer returns the driver's registered signing identity.
func (c *RequestOnboardCommand) Signer() ports.Signer {
	return c.signer
}

// Validate ensures the command was created through the constructor.
func (c *RequestOnboardCommand) Validate() error {
	return c.guard.Validate(ErrRequestOnboardCommandIsNotConstructed)
}
