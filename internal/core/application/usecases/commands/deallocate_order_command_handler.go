package commands

import (
	"context"

	"freight/internal/core/ports"
)

// DeallocateOrderCommandHandler releases the allocated driver from an
// order, returning it to Requested.
type DeallocateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewDeallocateOrderCommandHandler creates a handler for driver release.
func NewDeallocateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) DeallocateOrderCommandHandler {
	return DeallocateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle locks the order and releases the driver. Only the currently
// allocated driver may deallocate.
func (h DeallocateOrderCommandHandler) Handle(ctx context.Context, command DeallocateOrderCommand) error {
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
	if actor.DriverRoleID() == nil || target.DriverRoleID() == nil ||
		!actor.DriverRoleID().IsEqual(*target.DriverRoleID()) {
		return ErrNotAuthorized
	}

	if err = target.Deallocate(actor.UserID(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
