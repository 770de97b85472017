package byline

import (
	"context"
	"fmt"
	"log/slog"
)

// Converter runs the full per-post pipeline: match tags against the
// policy, resolve the extracted names to guest authors, overwrite the
// post's byline, and optionally prune the consumed tags.
type Converter struct {
	content    ContentStore
	matcher    *Matcher
	resolver   *Resolver
	reassigner *Reassigner
	policy     Policy
	unsetTags  bool
	dryRun     bool
}

func NewConverter(content ContentStore, authors GuestAuthorStore, policy Policy, unsetTags, dryRun bool) *Converter {
	return &Converter{
		content:    content,
		matcher:    NewMatcher(policy),
		resolver:   NewResolver(authors, dryRun),
		reassigner: NewReassigner(authors, dryRun),
		policy:     policy,
		unsetTags:  unsetTags,
		dryRun:     dryRun,
	}
}

// Result summarizes the conversion of a single post.
type Result struct {
	Skipped bool
	Matched int
	Created int
	Reused  int
	Pruned  int
}

// Run converts one post. Posts without tags or without matching markers
// are skipped, not failed. Steps are strictly sequential: the byline is
// only overwritten once every marker has resolved.
func (c *Converter) Run(ctx context.Context, postID int64) (*Result, error) {
	tags, err := c.tagsFor(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags for post %d: %w", postID, err)
	}
	if len(tags) == 0 {
		return &Result{Skipped: true}, nil
	}

	markers := c.matcher.Run(tags)
	if len(markers) == 0 {
		return &Result{Skipped: true}, nil
	}

	names := make([]string, len(markers))
	consumed := make([]Tag, len(markers))
	for i, marker := range markers {
		names[i] = marker.Name
		consumed[i] = marker.Tag
	}

	resolution, err := c.resolver.Run(ctx, names)
	if err != nil {
		return nil, err
	}

	if err := c.reassigner.Run(ctx, postID, resolution.Authors); err != nil {
		return nil, err
	}

	result := &Result{
		Matched: len(markers),
		Created: resolution.Created,
		Reused:  resolution.Reused,
	}

	if c.unsetTags {
		pruned, err := c.pruneConsumed(ctx, postID, tags, consumed)
		if err != nil {
			return nil, err
		}
		result.Pruned = pruned
	}

	slog.Debug("Post converted",
		"post_id", postID,
		"matched", result.Matched,
		"created", result.Created,
		"reused", result.Reused,
		"pruned", result.Pruned)

	return result, nil
}

// tagsFor reads the tag set relevant to the active policy: the post_tag
// taxonomy for prefix matching, the policy's own taxonomy otherwise.
func (c *Converter) tagsFor(ctx context.Context, postID int64) ([]Tag, error) {
	if p, ok := c.policy.(TaxonomyPolicy); ok {
		return c.content.GetPostTagsInTaxonomy(ctx, postID, p.Taxonomy)
	}
	return c.content.GetPostTags(ctx, postID)
}

func (c *Converter) pruneConsumed(ctx context.Context, postID int64, tags, consumed []Tag) (int, error) {
	residual := Prune(tags, consumed)
	pruned := len(tags) - len(residual)

	if c.dryRun {
		slog.Info("Would unset author tags", "post_id", postID, "count", pruned)
		return pruned, nil
	}

	if p, ok := c.policy.(TaxonomyPolicy); ok {
		termIDs := make([]int64, len(consumed))
		for i, tag := range consumed {
			termIDs[i] = tag.ID
		}
		if err := c.content.RemovePostTerms(ctx, postID, p.Taxonomy, termIDs); err != nil {
			return 0, fmt.Errorf("failed to unset author terms for post %d: %w", postID, err)
		}
		return pruned, nil
	}

	names := make([]string, len(residual))
	for i, tag := range residual {
		names[i] = tag.Name
	}
	if err := c.content.SetPostTags(ctx, postID, names); err != nil {
		return 0, fmt.Errorf("failed to unset author tags for post %d: %w", postID, err)
	}

	return pruned, nil
}
