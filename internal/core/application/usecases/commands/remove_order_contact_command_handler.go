package commands

import (
	"context"

	"freight/internal/core/domain/services"
)

// RemoveOrderContactCommandHandler detaches a contact from an order.
type RemoveOrderContactCommandHandler struct {
	uowFactory    OrderUoWFactory
	accessControl services.AccessControl
}

// NewRemoveOrderContactCommandHandler creates a handler for contact
// removal.
func NewRemoveOrderContactCommandHandler(uowFactory OrderUoWFactory) RemoveOrderContactCommandHandler {
	return RemoveOrderContactCommandHandler{
		uowFactory:    uowFactory,
		accessControl: services.NewAccessControl(),
	}
}

// Handle detaches the contact.
func (h RemoveOrderContactCommandHandler) Handle(ctx context.Context, command RemoveOrderContactCommand) error {
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

	if err = target.RemoveContact(command.ContactID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
