package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// FinalizeSigningCommandHandler closes the race between the asynchronous
// vendor flow and synchronous transitions. In one transaction it locks the
// order row, records the attempt outcome, and applies the confirmed
// transition only if no earlier attempt already completed this purpose and
// the order is still in the state the purpose requires. A late completion
// arriving after the order moved on is recorded for audit but leaves the
// order untouched.
type FinalizeSigningCommandHandler struct {
	uowFactory SigningUoWFactory
	clock      ports.Clock
}

// NewFinalizeSigningCommandHandler creates a handler for attempt
// finalization.
func NewFinalizeSigningCommandHandler(uowFactory SigningUoWFactory, clock ports.Clock) FinalizeSigningCommandHandler {
	return FinalizeSigningCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle finalizes one signing attempt. Re-delivery of an already
// finalized attempt is a no-op.
func (h FinalizeSigningCommandHandler) Handle(ctx context.Context, command FinalizeSigningCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	task := command.Task()
	outcome := command.Outcome()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().GetForUpdate(ctx, task.OrderID)
	if err != nil {
		return err
	}

	attempt, err := uow.SignatureRepository().Get(ctx, task.AttemptID)
	if err != nil {
		return err
	}
	if attempt.HasFinished() {
		return nil
	}

	// Checked before this attempt's own row turns Completed.
	purposeDone, err := uow.SignatureRepository().HasCompleted(ctx, task.OrderID, task.Purpose)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = h.applyOutcome(attempt, outcome, now); err != nil {
		return err
	}
	if err = uow.SignatureRepository().Update(ctx, attempt); err != nil {
		return err
	}

	if outcome.State == cert.StateCompleted && !purposeDone &&
		target.State() == task.Purpose.RequiredState() {
		if err = h.applyTransition(target, task, now); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, target); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// applyOutcome moves the attempt record to the outcome's terminal state.
func (h FinalizeSigningCommandHandler) applyOutcome(
	attempt *cert.Signature,
	outcome ports.SignOutcome,
	now time.Time,
) error {
	if outcome.ReceiptID != "" && attempt.ReceiptID() == "" {
		if err := attempt.Start(outcome.ReceiptID); err != nil {
			return err
		}
	}

	switch outcome.State {
	case cert.StateCompleted:
		if outcome.Result == nil {
			return errs.NewValueIsRequiredError("result")
		}
		return attempt.Complete(*outcome.Result, now)
	case cert.StateExpired:
		return attempt.Expire(now)
	default:
		return attempt.Fail(outcome.FailedStage, outcome.FailReason, now)
	}
}

// applyTransition appends the confirmed transition to the order.
func (h FinalizeSigningCommandHandler) applyTransition(target *order.Order, task ports.SignTask, now time.Time) error {
	switch task.Purpose {
	case order.ConfirmOnboard:
		if task.ActorID == nil {
			return errs.NewValueIsRequiredError("actorID")
		}
		return target.Onboard(*task.ActorID, now)
	case order.ConfirmOutboard:
		return target.Outboard(now)
	default:
		return errs.NewValueIsInvalidErrorWithCause("purpose", errors.New(task.Purpose.String()))
	}
}
