package signqueue_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/signqueue"
	"freight/internal/core/domain/model/cert"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(purpose order.SignPurpose) ports.SignTask {
	actorID := kernel.NewUUID()
	return ports.SignTask{
		AttemptID: kernel.NewUUID(),
		OrderID:   kernel.NewUUID(),
		Purpose:   purpose,
		Vendor:    cert.VendorKakao,
		Signer:    ports.Signer{Name: "김기사", Phone: "01012345678", Birthday: "19800101"},
		ActorID:   &actorID,
	}
}

func TestMemoryQueue_FIFO(t *testing.T) {
	queue, err := signqueue.NewMemoryQueue(8)
	require.NoError(t, err)

	first := newTask(order.ConfirmOnboard)
	second := newTask(order.ConfirmOutboard)

	ctx := context.Background()
	require.NoError(t, queue.Enqueue(ctx, first))
	require.NoError(t, queue.Enqueue(ctx, second))

	got, err := queue.Dequeue(ctx)
	require.NoError(t, err)
	assert.True(t, got.AttemptID.IsEqual(first.AttemptID))

	got, err = queue.Dequeue(ctx)
	require.NoError(t, err)
	assert.True(t, got.AttemptID.IsEqual(second.AttemptID))
}

func TestMemoryQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	queue, err := signqueue.NewMemoryQueue(1)
	require.NoError(t, err)

	task := newTask(order.ConfirmOnboard)
	done := make(chan ports.SignTask, 1)

	go func() {
		got, dequeueErr := queue.Dequeue(context.Background())
		require.NoError(t, dequeueErr)
		done <- got
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, queue.Enqueue(context.Background(), task))

	select {
	case got := <-done:
		assert.True(t, got.AttemptID.IsEqual(task.AttemptID))
	case <-time.After(time.Second):
		t.Fatal("dequeue never returned")
	}
}

func TestMemoryQueue_DequeueHonorsCancellation(t *testing.T) {
	queue, err := signqueue.NewMemoryQueue(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = queue.Dequeue(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryQueue_EnqueueHonorsCancellationWhenFull(t *testing.T) {
	queue, err := signqueue.NewMemoryQueue(1)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, queue.Enqueue(ctx, newTask(order.ConfirmOnboard)))

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	err = queue.Enqueue(blocked, newTask(order.ConfirmOnboard))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewMemoryQueue_RejectsZeroCapacity(t *testing.T) {
	_, err := signqueue.NewMemoryQueue(0)
	require.Error(t, err)
}
