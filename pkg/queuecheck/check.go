package queuecheck

import (
	"context"
	"io"
	"time"

	"github.com/aucos/health-check/pkg/check"
)

// Check pushes a no-op job through the default queue connection.
type Check struct {
	Connection string // connection name echoed on success, e.g. "redis"
	Queue      string // queue name (default "default")
	Pusher     Pusher // nil when the connection could not be set up
	PusherErr  error  // reason Pusher is nil
	Now        func() time.Time
}

// Run executes the queue push check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: "queue:" + c.Connection,
	}

	if c.Pusher == nil {
		return result.Fail("Queue connection failed:", c.PusherErr)
	}
	if closer, ok := c.Pusher.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	queue := c.Queue
	if queue == "" {
		queue = "default"
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	if err := c.Pusher.Push(ctx, queue, NewNoopJob(now())); err != nil {
		return result.Fail("Queue connection failed:", err)
	}

	return result.Passf("Queue connection successful (Connection: %s). Test job pushed successfully.", c.Connection)
}
