package commands

import (
	"context"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// PostOrderCommandHandler stores the freight document and its order in one
// transaction. Only senders may post; the owning sender role is the
// company's when the actor belongs to one.
type PostOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
	clock      ports.Clock
}

// NewPostOrderCommandHandler creates a handler for order intake.
func NewPostOrderCommandHandler(uowFactory IntakeUoWFactory, clock ports.Clock) PostOrderCommandHandler {
	return PostOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle stores the document, then the order referencing it, and returns
// the new order's ID.
func (h PostOrderCommandHandler) Handle(ctx context.Context, command PostOrderCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	actor := command.Actor()
	if !actor.IsSender() {
		return kernel.UUID{}, ErrNotAuthorized
	}

	senderRoleID := actor.CompanySenderRoleID()
	if senderRoleID == nil {
		senderRoleID = actor.SenderRoleID()
	}

	now := h.clock.Now()

	doc, err := document.NewDocument(
		kernel.NewUUID(), command.DocumentKind(), command.DocumentName(), command.Content(), now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), doc.ID(), senderRoleID, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DocumentRepository().Add(ctx, doc); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}
