package tasks

import (
	"context"
	"time"
)

// TaskInterface is one unit of batch work. Tasks are executed strictly
// sequentially; the guest author find-or-create is not safe to run
// concurrently without per-login serialization.
type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetStats() Stats
	Start()
	GetDuration() time.Duration
}
