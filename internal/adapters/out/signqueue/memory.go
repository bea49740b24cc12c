// Package signqueue provides the sign-task queue adapters. Transition
// commands enqueue signing jobs here; the worker pool dequeues them and
// drives the slow vendor flow off the request path.
package signqueue

import (
	"context"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// MemoryQueue is a process-local queue on a buffered channel. Tasks do not
// survive a restart; deployments that need durability use the Redis queue.
type MemoryQueue struct {
	tasks chan ports.SignTask
}

// NewMemoryQueue creates an in-memory queue holding up to capacity pending
// tasks.
func NewMemoryQueue(capacity int) (*MemoryQueue, error) {
	if capacity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("capacity", capacity, 1, nil)
	}

	return &MemoryQueue{tasks: make(chan ports.SignTask, capacity)}, nil
}

// Enqueue adds a task, blocking while the queue is full.
func (q *MemoryQueue) Enqueue(ctx context.Context, task ports.SignTask) error {
	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue blocks until a task is available or ctx is done.
func (q *MemoryQueue) Dequeue(ctx context.Context) (ports.SignTask, error) {
	select {
	case task := <-q.tasks:
		return task, nil
	case <-ctx.Done():
		return ports.SignTask{}, ctx.Err()
	}
}
