package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/adforge/internal/ports"
)

const defaultQueueKey = "adforge:generation:jobs"

// RedisQueue is a Redis-list generation queue shared between the api and
// worker processes. Jobs survive a restart of either binary; an empty list
// reports io.EOF the same way the in-memory queue does.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = defaultQueueKey
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job ports.GenerationJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (ports.GenerationJob, error) {
	raw, err := q.client.LPop(ctx, q.key).Bytes()
	if err == redis.Nil {
		return ports.GenerationJob{}, io.EOF
	}
	if err != nil {
		return ports.GenerationJob{}, fmt.Errorf("dequeue job: %w", err)
	}
	var job ports.GenerationJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return ports.GenerationJob{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}
