package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/wptools/tags-to-authors/app/byline"
	"github.com/wptools/tags-to-authors/app/database"
)

// ConvertTaxonomyTagsTask converts the tags of a given taxonomy into guest
// authors for every published post carrying such tags.
type ConvertTaxonomyTagsTask struct {
	Task
	conversion
	taxonomy  string
	unsetTags bool
}

func NewConvertTaxonomyTagsTask(content byline.ContentStore, authors byline.GuestAuthorStore,
	runs *database.RunRepository, taxonomy string, unsetTags, dryRun bool, progressOut io.Writer) *ConvertTaxonomyTagsTask {
	return &ConvertTaxonomyTagsTask{
		Task: NewTask(TaskTypeConvertTaxonomyTags),
		conversion: conversion{
			content:     content,
			authors:     authors,
			runs:        runs,
			progressOut: progressOut,
			dryRun:      dryRun,
		},
		taxonomy:  taxonomy,
		unsetTags: unsetTags,
	}
}

func (t *ConvertTaxonomyTagsTask) Execute(ctx context.Context) error {
	if err := t.checkPreconditions(ctx); err != nil {
		return err
	}

	postIDs, err := t.content.FindPostsWithTaxonomy(ctx, t.taxonomy)
	if err != nil {
		return fmt.Errorf("failed to find posts with taxonomy %q: %w", t.taxonomy, err)
	}

	converter := byline.NewConverter(t.content, t.authors,
		byline.TaxonomyPolicy{Taxonomy: t.taxonomy}, t.unsetTags, t.dryRun)

	return t.convertPosts(ctx, "tags-with-taxonomy-to-guest-authors", t.taxonomy, converter, postIDs)
}
