package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// SetOrderFailedCommandHandler marks an overdue shipment as Failed. The 48
// hour window is measured against the injected clock from the recorded
// onboard action.
type SetOrderFailedCommandHandler struct {
	uowFactory    OrderUoWFactory
	accessControl services.AccessControl
	clock         ports.Clock
}

// NewSetOrderFailedCommandHandler creates a handler for failing shipments.
func NewSetOrderFailedCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SetOrderFailedCommandHandler {
	return SetOrderFailedCommandHandler{
		uowFactory:    uowFactory,
		accessControl: services.NewAccessControl(),
		clock:         clock,
	}
}

// Handle locks the order, verifies the actor is a sender with modification
// rights and that the shipment has been overdue long enough, then fails it.
func (h SetOrderFailedCommandHandler) Handle(ctx context.Context, command SetOrderFailedCommand) error {
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

	err = target.SetFailed(actor.UserID(), h.clock.Now())
	if errors.Is(err, order.ErrOrderCannotBeFailed) {
		return ErrNotAuthorized
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
