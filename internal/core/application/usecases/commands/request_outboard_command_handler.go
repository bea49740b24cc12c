package commands

import (
	"context"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// RequestOutboardCommandHandler validates a delivery confirmation request
// from an external receiver and hands the signing attempt to the worker
// queue.
type RequestOutboardCommandHandler struct {
	uowFactory SigningUoWFactory
	queue      ports.SignTaskQueue
	clock      ports.Clock
}

// NewRequestOutboardCommandHandler creates a handler for outboard requests.
func NewRequestOutboardCommandHandler(
	uowFactory SigningUoWFactory,
	queue ports.SignTaskQueue,
	clock ports.Clock,
) RequestOutboardCommandHandler {
	return RequestOutboardCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		clock:      clock,
	}
}

// Handle verifies the order is Shipping with both roles linked and that
// the claimed identity matches a receiver contact, then persists a standby
// attempt and enqueues the task. The resulting order action carries no
// actor: receivers have no internal user.
func (h RequestOutboardCommandHandler) Handle(ctx context.Context, command RequestOutboardCommand) error {
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

	if target.State() != order.Shipping {
		return ErrNotAuthorized
	}
	if target.SenderRoleID() == nil || target.DriverRoleID() == nil {
		return ErrNotAuthorized
	}

	signer := command.Signer()
	if target.FindContact(signer.Name, signer.Phone, order.ContactReceiver) == nil {
		return ErrNotAuthorized
	}

	attempt, err := cert.NewSignature(
		kernel.NewUUID(), target.ID(), order.ConfirmOutboard, command.Vendor(),
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

	return h.queue.Enqueue(ctx, ports.SignTask{
		AttemptID: attempt.ID(),
		OrderID:   target.ID(),
		Purpose:   order.ConfirmOutboard,
		Vendor:    command.Vendor(),
		Signer:    signer,
	})
}
