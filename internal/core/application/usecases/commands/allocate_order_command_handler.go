package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// AllocateOrderCommandHandler assigns a driver to an order. The order row
// is locked before preconditions are re-checked, so two concurrent
// allocations cannot both observe the order as free.
type AllocateOrderCommandHandler struct {
	uowFactory    AllocationUoWFactory
	accessControl services.AccessControl
	clock         ports.Clock
}

// NewAllocateOrderCommandHandler creates a handler for driver allocation.
func NewAllocateOrderCommandHandler(uowFactory AllocationUoWFactory, clock ports.Clock) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory:    uowFactory,
		accessControl: services.NewAccessControl(),
		clock:         clock,
	}
}

// Handle locks the order, verifies the actor's modification rights,
// resolves the driver by vehicle ID and applies the allocation.
// A vehicle ID matching no driver is an authorization failure, not a
// lookup failure: it must not reveal which vehicles exist.
func (h AllocateOrderCommandHandler) Handle(ctx context.Context, command AllocateOrderCommand) error {
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

	driver, err := uow.AccountRepository().GetUserByVehicleID(ctx, command.VehicleID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNotAuthorized
	}
	if err != nil {
		return err
	}
	if driver.DriverRole() == nil {
		return ErrNotAuthorized
	}

	err = target.Allocate(command.Actor().UserID(), driver.DriverRole().ID(), driver.ID(), h.clock.Now())
	if errors.Is(err, order.ErrDriverAlreadyAllocated) ||
		errors.Is(err, order.ErrDriverPreviouslyDeallocated) {
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
