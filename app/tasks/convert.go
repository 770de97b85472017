package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/wptools/tags-to-authors/app/byline"
	"github.com/wptools/tags-to-authors/app/database"
)

// ErrCoAuthorsInactive aborts a run before any post is touched.
var ErrCoAuthorsInactive = errors.New("the Co-Authors Plus plugin does not seem to be active")

// conversion carries the state shared by the conversion tasks: the stores,
// run counters and collected per-post failures.
type conversion struct {
	content     byline.ContentStore
	authors     byline.GuestAuthorStore
	runs        *database.RunRepository
	progressOut io.Writer
	dryRun      bool

	stats    Stats
	failures []postFailure
}

type postFailure struct {
	PostID int64
	Err    error
}

func (c *conversion) GetStats() Stats {
	return c.stats
}

// checkPreconditions verifies the Co-Authors Plus plugin is active on the
// target installation. Precondition failures are fatal for the whole run.
func (c *conversion) checkPreconditions(ctx context.Context) error {
	active, err := c.authors.IsCoAuthorsPlusActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to check Co-Authors Plus activation: %w", err)
	}
	if !active {
		return ErrCoAuthorsInactive
	}
	return nil
}

// convertPosts runs the converter over every post, one post fully
// processed before the next. Per-post failures are collected and reported
// after the batch; they never abort it. An interrupted run leaves
// already-converted posts converted, which is safe because resolution is
// idempotent.
func (c *conversion) convertPosts(ctx context.Context, command, parameter string, converter *byline.Converter, postIDs []int64) error {
	started := time.Now()

	bar := progressbar.NewOptions(len(postIDs),
		progressbar.OptionSetWriter(c.progressOut),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, postID := range postIDs {
		if err := ctx.Err(); err != nil {
			slog.Warn("Run interrupted", "command", command, "processed", c.stats.PostsSeen)
			return err
		}

		c.stats.PostsSeen++

		result, err := converter.Run(ctx, postID)
		if err != nil {
			c.stats.Failed++
			c.failures = append(c.failures, postFailure{PostID: postID, Err: err})
			bar.Add(1)
			continue
		}

		if result.Skipped {
			c.stats.Skipped++
		} else {
			c.stats.Converted++
			c.stats.AuthorsCreated += result.Created
			c.stats.AuthorsReused += result.Reused
		}
		bar.Add(1)
	}

	for _, failure := range c.failures {
		slog.Warn("Post conversion failed", "post_id", failure.PostID, "error", failure.Err)
	}

	slog.Info("Task completed",
		"command", command,
		"duration", time.Since(started),
		"posts", c.stats.PostsSeen,
		"converted", c.stats.Converted,
		"skipped", c.stats.Skipped,
		"failed", c.stats.Failed,
		"authors_created", c.stats.AuthorsCreated,
		"authors_reused", c.stats.AuthorsReused)

	if c.runs != nil && !c.dryRun {
		record := database.RunRecord{
			Command:        command,
			Parameter:      parameter,
			DryRun:         c.dryRun,
			PostsSeen:      c.stats.PostsSeen,
			PostsConverted: c.stats.Converted,
			PostsSkipped:   c.stats.Skipped,
			PostsFailed:    c.stats.Failed,
			AuthorsCreated: c.stats.AuthorsCreated,
			AuthorsReused:  c.stats.AuthorsReused,
			StartedAt:      started,
			FinishedAt:     time.Now(),
		}
		if err := c.runs.RecordRun(ctx, record); err != nil {
			slog.Warn("Failed to record run", "error", err)
		}
	}

	return nil
}
