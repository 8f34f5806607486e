package queuecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pusher enqueues a job on a named queue.
type Pusher interface {
	Push(ctx context.Context, queue string, job Job) error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379/0")
	URL string

	// Timeout bounds dialing, reads and writes
	Timeout time.Duration
}

// RedisPusher pushes jobs onto Redis lists named queues:<queue>.
type RedisPusher struct {
	client *redis.Client
}

// NewRedisPusher parses the URL and creates a client. No connection is
// made until the first push.
func NewRedisPusher(opts RedisOptions) (*RedisPusher, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	redisOpts.DialTimeout = timeout
	redisOpts.ReadTimeout = timeout
	redisOpts.WriteTimeout = timeout
	redisOpts.MaxRetries = -1

	return &RedisPusher{client: redis.NewClient(redisOpts)}, nil
}

// Key returns the list a queue is stored in.
func Key(queue string) string {
	return "queues:" + queue
}

// Push appends the job to the queue and signals waiting workers.
func (p *RedisPusher) Push(ctx context.Context, queue string, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, Key(queue), data)
		pipe.RPush(ctx, Key(queue)+":notify", 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push to queue %s: %w", queue, err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *RedisPusher) Close() error {
	return p.client.Close()
}

// SyncPusher runs jobs inline, like a queue with the sync driver.
type SyncPusher struct {
	Handled []Job
}

// Push handles the job immediately. The no-op job cannot fail.
func (p *SyncPusher) Push(_ context.Context, _ string, job Job) error {
	if job.Job != NoopJobName {
		return fmt.Errorf("no handler for job %q", job.Job)
	}
	p.Handled = append(p.Handled, job)
	return nil
}
