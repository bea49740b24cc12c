package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CancelOrderCommandHandler withdraws an order and clears any driver
// linkage.
type CancelOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	accessControl services.AccessControl
	clock         ports.Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:    uowFactory,
		accessControl: services.NewAccessControl(),
		clock:         clock,
	}
}

// Handle locks the order, verifies the actor is a sender with modification
// rights, and cancels it.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	actor := command.Actor()
	if !actor.IsSender() || !h.accessControl.CanModify(actor, target) {
		return ErrNotAuthorized
	}

	if err = target.Cancel(actor.UserID(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
