// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"freight/internal/core/ports"
)

// ErrNotAuthorized is returned when the acting identity may not perform the
// requested operation, or a transition precondition does not hold. The HTTP
// layer renders it as 403 without leaking which check failed.
var ErrNotAuthorized = errors.New("actor is not authorized for this operation")

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DocumentRepoFactory provides access to the document repository within a transaction.
	DocumentRepoFactory interface {
		DocumentRepository() ports.DocumentRepository
	}

	// SignatureRepoFactory provides access to the signature repository within a transaction.
	SignatureRepoFactory interface {
		SignatureRepository() ports.SignatureRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by transitions that touch nothing but the order row.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IntakeUoW manages transactions for order intake, which stores a
	// document and its order atomically.
	IntakeUoW interface {
		TxManager
		OrderRepoFactory
		DocumentRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// AllocationUoW manages transactions for driver allocation, which
	// resolves the driver account and mutates the order in one
	// transaction.
	AllocationUoW interface {
		TxManager
		OrderRepoFactory
		AccountRepoFactory
	}

	// AllocationUoWFactory creates new allocation unit of work instances.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// SigningUoW manages transactions for the signing workflow: creating
	// attempts before enqueueing and finalizing them against the locked
	// order row.
	SigningUoW interface {
		TxManager
		OrderRepoFactory
		SignatureRepoFactory
	}

	// SigningUoWFactory creates new signing unit of work instances.
	SigningUoWFactory interface {
		Create() SigningUoW
	}
)
