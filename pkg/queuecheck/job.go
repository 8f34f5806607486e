package queuecheck

import (
	"time"

	"github.com/google/uuid"
)

// NoopJobName identifies the health check job to queue workers.
const NoopJobName = "health-check:noop"

// Job is the payload pushed onto the queue.
type Job struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	Job         string `json:"job"`
	Attempts    int    `json:"attempts"`
	PushedAt    int64  `json:"pushedAt"` // unix milliseconds
}

// NewNoopJob returns a job that does nothing when handled.
func NewNoopJob(now time.Time) Job {
	return Job{
		UUID:        uuid.NewString(),
		DisplayName: "HealthCheck",
		Job:         NoopJobName,
		PushedAt:    now.UnixMilli(),
	}
}
