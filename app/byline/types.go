package byline

// Tag is a term attached to a post. ID is the WordPress term_id, Taxonomy
// the classification namespace the term belongs to (post_tag, category,
// or a custom taxonomy).
type Tag struct {
	ID       int64
	Name     string
	Taxonomy string
}

// AuthorMarker is a tag recognized as carrying an author name, together
// with the name extracted from it. It only exists during a conversion
// pass and is never persisted.
type AuthorMarker struct {
	Tag  Tag
	Name string
}

// GuestAuthor is a Co-Authors Plus byline identity. Login is the
// normalized form of the display name and is unique across all guest
// authors.
type GuestAuthor struct {
	ID          int64
	Login       string
	DisplayName string
}
