package commands

import (
	"errors"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRequestOutboardCommandIsNotConstructed = errors.New(
	"RequestOutboardCommand must be created via NewRequestOutboardCommand constructor",
)

// RequestOutboardCommand starts the signature-confirmed delivery of an
// order. Issued by an external receiver holding a valid order-access
// token; there is no authenticated actor. The supplied identity must match
// a receiver contact on the order.
type RequestOutboardCommand struct {
	orderID kernel.UUID
	vendor  cert.Vendor
	signer  ports.Signer

	guard guard.ConstructorGuard
}

// NewRequestOutboardCommand creates a command to request delivery
// confirmation. The order ID comes from a verified order-access token.
func NewRequestOutboardCommand(
	orderID kernel.UUID,
	vendor cert.Vendor,
	signer ports.Signer,
) (RequestOutboardCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestOutboardCommand{}, err
	}
	if err := vendor.Validate(); err != nil {
		return RequestOutboardCommand{}, err
	}
	if signer.Name == "" {
		return RequestOutboardCommand{}, errs.NewValueIsRequiredError("signer name")
	}
	if signer.Phone == "" {
		return RequestOutboardCommand{}, errs.NewValueIsRequiredError("signer phone")
	}
	if signer.Birthday == "" {
		return RequestOutboardCommand{}, errs.NewValueIsRequiredError("signer birthday")
	}

	return RequestOutboardCommand{
		orderID: orderID,
		vendor:  vendor,
		signer:  signer,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order's ID.
func (c *RequestOutboardCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Vendor returns the chosen signing provider.
func (c *RequestOutboardCommand) Vendor() cert.Vendor {
	return c.vendor
}

// Signer returns the receiver's claimed signing identity.
func (c *RequestOutboardCommand) Signer() ports.Signer {
	return c.signer
}

// Validate ensures the command was created through the constructor.
func (c *RequestOutboardCommand) Validate() error {
	return c.guard.Validate(ErrRequestOutboardCommandIsNotConstructed)
}
