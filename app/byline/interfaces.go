package byline

import "context"

// ContentStore provides access to posts and their terms.
// Implemented by database.ContentRepository over the WordPress schema.
type ContentStore interface {
	// GetPostTags returns the post's tags in the post_tag taxonomy.
	// A missing post or a post without tags yields a nil slice, not an error.
	GetPostTags(ctx context.Context, postID int64) ([]Tag, error)

	// GetPostTagsInTaxonomy returns the post's terms in the given taxonomy.
	GetPostTagsInTaxonomy(ctx context.Context, postID int64, taxonomy string) ([]Tag, error)

	// SetPostTags replaces the post's post_tag set with the named tags,
	// creating terms that do not exist yet.
	SetPostTags(ctx context.Context, postID int64, names []string) error

	// RemovePostTerms detaches the given terms of a taxonomy from the post.
	RemovePostTerms(ctx context.Context, postID int64, taxonomy string, termIDs []int64) error

	FindPublishedPosts(ctx context.Context, postType string) ([]int64, error)
	FindPostsWithTaxonomy(ctx context.Context, taxonomy string) ([]int64, error)
}

// GuestAuthorStore provides access to the Co-Authors Plus guest author
// records and post bylines. Implemented by database.GuestAuthorRepository.
type GuestAuthorStore interface {
	// FindGuestAuthor looks up a guest author by normalized login.
	// Returns nil when no record matches.
	FindGuestAuthor(ctx context.Context, login string) (*GuestAuthor, error)

	CreateGuestAuthor(ctx context.Context, displayName, login string) (int64, error)

	// SetPostAuthors assigns the byline. With appendAuthors false the
	// existing byline is fully replaced, preserving the order of logins.
	SetPostAuthors(ctx context.Context, postID int64, logins []string, appendAuthors bool) error

	// IsCoAuthorsPlusActive reports whether the Co-Authors Plus plugin is
	// active on the target installation.
	IsCoAuthorsPlusActive(ctx context.Context) (bool, error)
}
