package commands

import (
	"context"

	"freight/internal/core/domain/services"
)

// ReplaceOrderContactCommandHandler updates an existing order contact in
// place.
type ReplaceOrderContactCommandHandler struct {
	uowFactory    OrderUoWFactory
	accessControl services.AccessControl
}

// NewReplaceOrderContactCommandHandler creates a handler for contact
// updates.
func NewReplaceOrderContactCommandHandler(uowFactory OrderUoWFactory) ReplaceOrderContactCommandHandler {
	return ReplaceOrderContactCommandHandler{
		uowFactory:    uowFactory,
		accessControl: services.NewAccessControl(),
	}
}

// Handle updates the contact's name and phone.
func (h ReplaceOrderContactCommandHandler) Handle(ctx context.Context, command ReplaceOrderContactCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if !h.accessControl.CanModify(command.Actor(), target) {
		return ErrNotAuthorized
	}

	if err = target.ReplaceContact(command.ContactID(), command.Name(), command.Phone()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
