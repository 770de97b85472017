package byline

import (
	"context"
	"fmt"
	"log/slog"
)

// Resolver turns raw author names into guest author records, creating
// records for names whose normalized login has no existing match.
//
// Resolution is idempotent: re-running with the same names finds the
// previously created guest authors instead of duplicating them. The
// find-then-create below is only safe because posts are processed one at
// a time; anything running resolvers concurrently would need to serialize
// creation per login.
type Resolver struct {
	authors GuestAuthorStore
	dryRun  bool
}

func NewResolver(authors GuestAuthorStore, dryRun bool) *Resolver {
	return &Resolver{authors: authors, dryRun: dryRun}
}

// Resolution is the outcome of resolving one post's author names.
// Authors holds one entry per input name, in input order; duplicate names
// resolve to the same record.
type Resolution struct {
	Authors []GuestAuthor
	Created int
	Reused  int
}

// Run resolves every name to a guest author. Store errors abort the
// resolution and are returned unretried; retrying a create that may have
// partially succeeded risks duplicate records.
func (r *Resolver) Run(ctx context.Context, names []string) (*Resolution, error) {
	res := &Resolution{Authors: make([]GuestAuthor, 0, len(names))}

	for _, name := range names {
		login := Normalize(name)
		if login == "" {
			return nil, fmt.Errorf("author name %q normalizes to an empty login", name)
		}

		existing, err := r.authors.FindGuestAuthor(ctx, login)
		if err != nil {
			return nil, fmt.Errorf("failed to look up guest author %q: %w", login, err)
		}

		if existing != nil {
			if existing.DisplayName != name {
				slog.Warn("Name collision on normalized login",
					"login", login, "existing", existing.DisplayName, "incoming", name)
			}
			res.Authors = append(res.Authors, *existing)
			res.Reused++
			continue
		}

		author := GuestAuthor{Login: login, DisplayName: name}
		if r.dryRun {
			slog.Info("Would create guest author", "login", login, "display_name", name)
		} else {
			id, err := r.authors.CreateGuestAuthor(ctx, name, login)
			if err != nil {
				return nil, fmt.Errorf("failed to create guest author %q: %w", login, err)
			}
			author.ID = id
		}

		res.Authors = append(res.Authors, author)
		res.Created++
	}

	return res, nil
}
