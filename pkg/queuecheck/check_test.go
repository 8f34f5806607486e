package queuecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aucos/health-check/pkg/check"
	"github.com/aucos/health-check/pkg/config"
)

// MockPusher is a mock implementation of Pusher for testing.
type MockPusher struct {
	Err    error
	Queues []string
	Jobs   []Job
	Closed bool
}

func (m *MockPusher) Push(_ context.Context, queue string, job Job) error {
	m.Queues = append(m.Queues, queue)
	m.Jobs = append(m.Jobs, job)
	return m.Err
}

func (m *MockPusher) Close() error {
	m.Closed = true
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestCheckSuccess(t *testing.T) {
	pusher := &MockPusher{}
	c := &Check{Connection: "redis", Queue: "health", Pusher: pusher, Now: fixedNow}

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusOK, result.Status)
	assert.Equal(t, "queue:redis", result.Name)
	assert.Equal(t, "Queue connection successful (Connection: redis). Test job pushed successfully.", result.Message)
	assert.Equal(t, []string{"health"}, pusher.Queues)
	require.Len(t, pusher.Jobs, 1)
	assert.Equal(t, NoopJobName, pusher.Jobs[0].Job)
	assert.Equal(t, fixedNow().UnixMilli(), pusher.Jobs[0].PushedAt)
	assert.NotEmpty(t, pusher.Jobs[0].UUID)
	assert.True(t, pusher.Closed)
}

func TestCheckDefaultQueue(t *testing.T) {
	pusher := &MockPusher{}
	c := &Check{Connection: "redis", Pusher: pusher}

	c.Run(context.Background())

	assert.Equal(t, []string{"default"}, pusher.Queues)
}

func TestCheckPushFailure(t *testing.T) {
	pusher := &MockPusher{Err: errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")}
	c := &Check{Connection: "redis", Pusher: pusher}

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusFail, result.Status)
	assert.Equal(t, "Queue connection failed:", result.Message)
	assert.Equal(t, []string{"dial tcp 127.0.0.1:6379: connect: connection refused"}, result.Details)
}

func TestCheckSetupFailure(t *testing.T) {
	c := New(config.QueueConfig{Default: "beanstalkd"})

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusFail, result.Status)
	assert.Equal(t, []string{`unsupported queue connection "beanstalkd"`}, result.Details)
}

func TestNew(t *testing.T) {
	t.Run("redis", func(t *testing.T) {
		c := New(config.QueueConfig{Default: "redis", Queue: "default", RedisURL: "redis://localhost:6379/0"})
		require.NoError(t, c.PusherErr)
		assert.IsType(t, &RedisPusher{}, c.Pusher)
		_ = c.Pusher.(*RedisPusher).Close()
	})

	t.Run("invalid redis url", func(t *testing.T) {
		c := New(config.QueueConfig{Default: "redis", RedisURL: "invalid://url"})
		assert.Nil(t, c.Pusher)
		require.Error(t, c.PusherErr)
		assert.Contains(t, c.PusherErr.Error(), "failed to parse Redis URL")
	})

	t.Run("sync", func(t *testing.T) {
		c := New(config.QueueConfig{Default: "sync"})
		assert.IsType(t, &SyncPusher{}, c.Pusher)

		result := c.Run(context.Background())
		assert.True(t, result.OK())
		assert.Contains(t, result.Message, "(Connection: sync)")
	})
}

func TestRedisPusher(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(config.QueueConfig{
		Default:  "redis",
		Queue:    "default",
		RedisURL: fmt.Sprintf("redis://%s/0", mr.Addr()),
		Timeout:  time.Second,
	})
	c.Now = fixedNow

	result := c.Run(context.Background())
	require.True(t, result.OK(), "details: %v", result.Details)

	items, err := mr.List("queues:default")
	require.NoError(t, err)
	require.Len(t, items, 1)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(items[0]), &job))
	assert.Equal(t, NoopJobName, job.Job)
	assert.Equal(t, "HealthCheck", job.DisplayName)
	assert.Zero(t, job.Attempts)
	assert.Equal(t, fixedNow().UnixMilli(), job.PushedAt)

	notify, err := mr.List("queues:default:notify")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, notify)
}

func TestRedisPusherUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := New(config.QueueConfig{
		Default:  "redis",
		RedisURL: fmt.Sprintf("redis://%s/0", addr),
		Timeout:  200 * time.Millisecond,
	})

	result := c.Run(context.Background())

	assert.Equal(t, check.StatusFail, result.Status)
	require.Len(t, result.Details, 1)
	assert.Contains(t, result.Details[0], "failed to push to queue default")
}

func TestSyncPusher(t *testing.T) {
	p := &SyncPusher{}

	require.NoError(t, p.Push(context.Background(), "default", NewNoopJob(fixedNow())))
	assert.Len(t, p.Handled, 1)

	err := p.Push(context.Background(), "default", Job{Job: "SendInvoice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no handler for job "SendInvoice"`)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "queues:default", Key("default"))
}
