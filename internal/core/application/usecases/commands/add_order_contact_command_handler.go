package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
)

// AddOrderContactCommandHandler attaches a contact to an order. Contacts
// may only be changed by a sender with modification rights, and never on
// finished orders.
type AddOrderContactCommandHandler struct {
	uowFactory    OrderUoWFactory
	accessControl services.AccessControl
}

// NewAddOrderContactCommandHandler creates a handler for contact creation.
func NewAddOrderContactCommandHandler(uowFactory OrderUoWFactory) AddOrderContactCommandHandler {
	return AddOrderContactCommandHandler{
		uowFactory:    uowFactory,
		accessControl: services.NewAccessControl(),
	}
}

// Handle attaches the contact and returns its new ID.
func (h AddOrderContactCommandHandler) Handle(ctx context.Context, command AddOrderContactCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if !h.accessControl.CanModify(command.Actor(), target) {
		return kernel.UUID{}, ErrNotAuthorized
	}

	contact, err := order.NewContact(kernel.NewUUID(), command.Role(), command.Name(), command.Phone())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = target.AddContact(contact); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return contact.ID(), nil
}
