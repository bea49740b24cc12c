package commands

import (
	"errors"

	"freight/internal/core/ports"
	"freight/internal/pkg/guard"
)

var ErrFinalizeSigningCommandIsNotConstructed = errors.New(
	"FinalizeSigningCommand must be created via NewFinalizeSigningCommand constructor",
)

// FinalizeSigningCommand applies the terminal outcome of a signing attempt
// to the attempt record and, when the signature completed, to the order.
// Issued by the sign worker after the vendor flow finishes.
type FinalizeSigningCommand struct {
	task    ports.SignTask
	outcome ports.SignOutcome

	guard guard.ConstructorGuard
}

// NewFinalizeSigningCommand creates a command to finalize one attempt.
func NewFinalizeSigningCommand(task ports.SignTask, outcome ports.SignOutcome) (FinalizeSigningCommand, error) {
	if err := task.AttemptID.Validate(); err != nil {
		return FinalizeSigningCommand{}, err
	}
	if err := task.OrderID.Validate(); err != nil {
		return FinalizeSigningCommand{}, err
	}
	if err := task.Purpose.Validate(); err != nil {
		return FinalizeSigningCommand{}, err
	}

	return FinalizeSigningCommand{
		task:    task,
		outcome: outcome,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Task returns the originating queued task.
func (c *FinalizeSigningCommand) Task() ports.SignTask {
	return c.task
}

// Outcome returns the vendor flow's terminal outcome.
func (c *FinalizeSigningCommand) Outcome() ports.SignOutcome {
	return c.outcome
}

// Validate ensures the command was created through the constructor.
func (c *FinalizeSigningCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeSigningCommandIsNotConstructed)
}
