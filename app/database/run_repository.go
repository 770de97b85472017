package database

import (
	"context"
	"fmt"
	"time"
)

// RunRecord is one row of the conversion audit trail.
type RunRecord struct {
	Command        string
	Parameter      string
	DryRun         bool
	PostsSeen      int
	PostsConverted int
	PostsSkipped   int
	PostsFailed    int
	AuthorsCreated int
	AuthorsReused  int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// RunRepository persists conversion runs into the tool's own audit table.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) RecordRun(ctx context.Context, rec RunRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags_to_authors_runs (
			command, parameter, dry_run, posts_seen, posts_converted,
			posts_skipped, posts_failed, authors_created, authors_reused,
			started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Command, rec.Parameter, rec.DryRun, rec.PostsSeen, rec.PostsConverted,
		rec.PostsSkipped, rec.PostsFailed, rec.AuthorsCreated, rec.AuthorsReused,
		rec.StartedAt.UTC(), rec.FinishedAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}
