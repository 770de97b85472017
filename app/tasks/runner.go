package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// Runner executes tasks one after another. There is deliberately no worker
// pool here: the normalized-login uniqueness invariant relies on posts
// being processed one at a time.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run executes every task in order and returns the aggregated stats. A
// task error (precondition failure, unreachable store) aborts the
// remaining tasks; per-post failures are handled inside the tasks and
// only show up in the stats.
func (r *Runner) Run(ctx context.Context, taskList []TaskInterface) (Stats, error) {
	var total Stats

	for _, task := range taskList {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		task.Start()
		slog.Debug("Task started", "id", task.GetID(), "type", task.GetType())

		err := task.Execute(ctx)
		total.Add(task.GetStats())
		if err != nil {
			return total, fmt.Errorf("task %s failed: %w", task.GetType(), err)
		}

		slog.Debug("Task finished", "id", task.GetID(), "duration", task.GetDuration())
	}

	return total, nil
}
