package signqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// defaultQueueKey is the Redis list the tasks live in.
const defaultQueueKey = "freight:sign_tasks"

// blockTimeout bounds one BRPOP call so Dequeue can notice ctx
// cancellation between blocks.
const blockTimeout = 5 * time.Second

// RedisQueue is a durable queue on a Redis list. Enqueue pushes to the
// head, Dequeue blocks popping from the tail, so tasks come out in the
// order they went in even across process restarts.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue creates a queue on the given Redis server. key may be
// empty for the default list name.
func NewRedisQueue(addr, password string, db int, key string) (*RedisQueue, error) {
	if addr == "" {
		return nil, errs.NewValueIsRequiredError("addr")
	}
	if key == "" {
		key = defaultQueueKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisQueue{client: client, key: key}, nil
}

// Enqueue serializes the task and pushes it onto the list.
func (q *RedisQueue) Enqueue(ctx context.Context, task ports.SignTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

// Dequeue blocks until a task is available or ctx is done.
func (q *RedisQueue) Dequeue(ctx context.Context) (ports.SignTask, error) {
	for {
		values, err := q.client.BRPop(ctx, blockTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			select {
			case <-ctx.Done():
				return ports.SignTask{}, ctx.Err()
			default:
				continue
			}
		}
		if err != nil {
			return ports.SignTask{}, err
		}
		if len(values) != 2 {
			return ports.SignTask{}, errors.New("unexpected BRPOP response shape")
		}

		var task ports.SignTask
		if err = json.Unmarshal([]byte(values[1]), &task); err != nil {
			return ports.SignTask{}, err
		}
		return task, nil
	}
}

// Close releases the underlying Redis connection pool.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
