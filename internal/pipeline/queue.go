package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event asks the orchestrator to rebuild and publish the snapshot
type Event struct {
	ID     string    `json:"id"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// NewEvent creates an event stamped with a fresh id
func NewEvent(reason string) Event {
	return Event{ID: uuid.NewString(), Reason: reason, At: time.Now().UTC()}
}

// Queue carries events from mutations to the orchestrator
type Queue interface {
	// Push enqueues e without waiting for it to be consumed.
	Push(ctx context.Context, e Event) error
	// Pop blocks until an event is available or ctx is done.
	Pop(ctx context.Context) (Event, error)
	// Drain discards queued events and returns how many there were.
	Drain(ctx context.Context) (int, error)
}

// MemoryQueue is an in-process queue holding at most one pending event.
// Pushing while an event is pending is a no-op, since the pending run will
// observe the newer state anyway.
type MemoryQueue struct {
	ch chan Event
}

// NewMemoryQueue creates an in-process queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{ch: make(chan Event, 1)}
}

func (q *MemoryQueue) Push(ctx context.Context, e Event) error {
	select {
	case q.ch <- e:
	default:
	}
	return nil
}

func (q *MemoryQueue) Pop(ctx context.Context) (Event, error) {
	select {
	case e := <-q.ch:
		return e, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

func (q *MemoryQueue) Drain(ctx context.Context) (int, error) {
	n := 0
	for {
		select {
		case <-q.ch:
			n++
		default:
			return n, nil
		}
	}
}

// RedisQueue is a Redis list shared by every process publishing the same artifact
type RedisQueue struct {
	rdb         *redis.Client
	key         string
	pollTimeout time.Duration
}

// ConnectRedisQueue parses url, verifies connectivity and returns a queue on key
func ConnectRedisQueue(ctx context.Context, url, key string) (*RedisQueue, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisQueue(rdb, key), nil
}

// NewRedisQueue wraps an existing client
func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key, pollTimeout: 5 * time.Second}
}

func (q *RedisQueue) Push(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push event: %w", err)
	}
	return nil
}

func (q *RedisQueue) Pop(ctx context.Context) (Event, error) {
	for {
		res, err := q.rdb.BRPop(ctx, q.pollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return Event{}, ctx.Err()
			}
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return Event{}, ctx.Err()
			}
			return Event{}, fmt.Errorf("failed to pop event: %w", err)
		}

		// res is [key, value]
		var e Event
		if err := json.Unmarshal([]byte(res[1]), &e); err != nil {
			return Event{}, fmt.Errorf("failed to decode event: %w", err)
		}
		return e, nil
	}
}

func (q *RedisQueue) Drain(ctx context.Context) (int, error) {
	pipe := q.rdb.TxPipeline()
	llen := pipe.LLen(ctx, q.key)
	pipe.Del(ctx, q.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to drain events: %w", err)
	}
	return int(llen.Val()), nil
}

// Close releases the Redis connection pool
func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}
