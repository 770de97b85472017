package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/wptools/tags-to-authors/app/byline"
	"github.com/wptools/tags-to-authors/app/database"
)

// ConvertPrefixTagsTask converts the prefix-marked tags of all published
// posts into guest authors and reassigns the bylines.
type ConvertPrefixTagsTask struct {
	Task
	conversion
	prefix    string
	postType  string
	unsetTags bool
}

func NewConvertPrefixTagsTask(content byline.ContentStore, authors byline.GuestAuthorStore,
	runs *database.RunRepository, prefix, postType string, unsetTags, dryRun bool, progressOut io.Writer) *ConvertPrefixTagsTask {
	return &ConvertPrefixTagsTask{
		Task: NewTask(TaskTypeConvertPrefixTags),
		conversion: conversion{
			content:     content,
			authors:     authors,
			runs:        runs,
			progressOut: progressOut,
			dryRun:      dryRun,
		},
		prefix:    prefix,
		postType:  postType,
		unsetTags: unsetTags,
	}
}

func (t *ConvertPrefixTagsTask) Execute(ctx context.Context) error {
	if err := t.checkPreconditions(ctx); err != nil {
		return err
	}

	postIDs, err := t.content.FindPublishedPosts(ctx, t.postType)
	if err != nil {
		return fmt.Errorf("failed to find published posts: %w", err)
	}

	converter := byline.NewConverter(t.content, t.authors,
		byline.PrefixPolicy{Prefix: t.prefix}, t.unsetTags, t.dryRun)

	return t.convertPosts(ctx, "tags-with-prefix-to-guest-authors", t.prefix, converter, postIDs)
}
