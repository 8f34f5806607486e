package queuecheck

import (
	"fmt"

	"github.com/aucos/health-check/pkg/config"
)

// Supported connection names.
const (
	ConnectionRedis = "redis"
	ConnectionSync  = "sync"
)

// New builds the check for the configured default connection. Setup
// errors are carried into the result rather than returned.
func New(cfg config.QueueConfig) *Check {
	c := &Check{Connection: cfg.Default, Queue: cfg.Queue}

	switch cfg.Default {
	case ConnectionRedis:
		p, err := NewRedisPusher(RedisOptions{URL: cfg.RedisURL, Timeout: cfg.Timeout})
		if err != nil {
			c.PusherErr = err
			return c
		}
		c.Pusher = p
	case ConnectionSync:
		c.Pusher = &SyncPusher{}
	default:
		c.PusherErr = fmt.Errorf("unsupported queue connection %q", cfg.Default)
	}
	return c
}
