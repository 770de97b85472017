package byline

import (
	"context"
	"fmt"
	"log/slog"
)

// Reassigner overwrites a post's byline with a resolved set of guest
// authors. The overwrite is destructive: the existing byline is fully
// replaced, never appended to or merged with. Callers must not invoke it
// for posts without matched markers, since an empty author list clears
// the byline.
type Reassigner struct {
	authors GuestAuthorStore
	dryRun  bool
}

func NewReassigner(authors GuestAuthorStore, dryRun bool) *Reassigner {
	return &Reassigner{authors: authors, dryRun: dryRun}
}

func (a *Reassigner) Run(ctx context.Context, postID int64, guestAuthors []GuestAuthor) error {
	logins := make([]string, len(guestAuthors))
	for i, author := range guestAuthors {
		logins[i] = author.Login
	}

	if a.dryRun {
		slog.Info("Would reassign post authors", "post_id", postID, "logins", logins)
		return nil
	}

	if err := a.authors.SetPostAuthors(ctx, postID, logins, false); err != nil {
		return fmt.Errorf("failed to set authors for post %d: %w", postID, err)
	}

	return nil
}
