package ports

import (
	"context"

	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// SignTask is one queued signing job. AttemptID keys the idempotency
// guard (order, purpose, attempt) at finalization; ActorID is the user the
// resulting order action is attributed to, nil for external receivers.
type SignTask struct {
	AttemptID kernel.UUID       `json:"attempt_id"`
	OrderID   kernel.UUID       `json:"order_id"`
	Purpose   order.SignPurpose `json:"purpose"`
	Vendor    cert.Vendor       `json:"vendor"`
	Signer    Signer            `json:"signer"`
	ActorID   *kernel.UUID      `json:"actor_id,omitempty"`
}

// SignTaskQueue decouples transition requests from the slow vendor flow.
// Commands enqueue; the worker pool dequeues. Implementations must be safe
// for concurrent use.
type SignTaskQueue interface {
	// Enqueue adds a task for the worker pool.
	Enqueue(ctx context.Context, task SignTask) error

	// Dequeue blocks until a task is available or ctx is done.
	Dequeue(ctx context.Context) (SignTask, error)
}
