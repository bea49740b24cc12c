package commands

import (
	"context"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// RequestOnboardCommandHandler validates an onboard request, records the
// signing attempt and hands it to the worker queue. The slow vendor flow
// happens entirely off the request path.
type RequestOnboardCommandHandler struct {
	uowFactory SigningUoWFactory
	queue      ports.SignTaskQueue
	clock      ports.Clock
}

// NewRequestOnboardCommandHandler creates a handler for onboard requests.
func NewRequestOnboardCommandHandler(
	uowFactory SigningUoWFactory,
	queue ports.SignTaskQueue,
	clock ports.Clock,
) RequestOnboardCommandHandler {
	return RequestOnboardCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		clock:      clock,
	}
}

// Handle verifies the actor is the allocated driver of an Allocated order,
// persists a standby signing attempt and enqueues the task. The attempt is
// committed before the enqueue so a queue outage cannot lose the audit
// record.
func (h RequestOnboardCommandHandler) Handle(ctx context.Context, command RequestOnboardCommand) error {
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

	target, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	actor := command.Actor()
	if target.State() != order.Allocated {
		return ErrNotAuthorized
	}
	if actor.DriverRoleID() == nil || target.DriverRoleID() == nil ||
		!actor.DriverRoleID().IsEqual(*target.DriverRoleID()) {
		return ErrNotAuthorized
	}

	signer := command.Signer()
	attempt, err := cert.NewSignature(
		kernel.NewUUID(), target.ID(), order.ConfirmOnboard, command.Vendor(),
		signer.Name, signer.Phone, signer.Birthday, h.clock.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.SignatureRepository().Add(ctx, attempt); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	actorID := actor.UserID()
	return h.queue.Enqueue(ctx, ports.SignTask{
		AttemptID: attempt.ID(),
		OrderID:   target.ID(),
		Purpose:   order.ConfirmOnboard,
		Vendor:    command.Vendor(),
		Signer:    signer,
		ActorID:   &actorID,
	})
}
