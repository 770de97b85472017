package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/wptools/tags-to-authors/app/byline"
)

var _ byline.GuestAuthorStore = (*GuestAuthorRepository)(nil)

// GuestAuthorRepository implements the guest author store over the
// Co-Authors Plus layout: a guest author is a wp_posts row of type
// guest-author with cap-* postmeta, plus a term in the author taxonomy
// that carries the byline assignments.
type GuestAuthorRepository struct {
	db    *DB
	terms termOps
}

func NewGuestAuthorRepository(db *DB, tablePrefix string) *GuestAuthorRepository {
	return &GuestAuthorRepository{db: db, terms: termOps{prefix: tablePrefix}}
}

func (r *GuestAuthorRepository) table(name string) string {
	return r.terms.prefix + name
}

// FindGuestAuthor looks up a guest author by normalized login. Returns nil
// when no record matches.
func (r *GuestAuthorRepository) FindGuestAuthor(ctx context.Context, login string) (*byline.GuestAuthor, error) {
	query := fmt.Sprintf(`
		SELECT p.ID, ml.meta_value, COALESCE(md.meta_value, p.post_title)
		FROM %s p
		JOIN %s ml ON ml.post_id = p.ID AND ml.meta_key = 'cap-user_login'
		LEFT JOIN %s md ON md.post_id = p.ID AND md.meta_key = 'cap-display_name'
		WHERE p.post_type = 'guest-author' AND ml.meta_value = ?
		LIMIT 1`,
		r.table("posts"), r.table("postmeta"), r.table("postmeta"))

	var author byline.GuestAuthor
	err := r.db.QueryRowContext(ctx, query, login).Scan(&author.ID, &author.Login, &author.DisplayName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find guest author %q: %w", login, err)
	}

	return &author, nil
}

// CreateGuestAuthor creates the guest author post, its cap-* meta and its
// author-taxonomy term, and returns the new post ID.
func (r *GuestAuthorRepository) CreateGuestAuthor(ctx context.Context, displayName, login string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := fmt.Sprintf(`
		INSERT INTO %s (
			post_author, post_date, post_date_gmt, post_content, post_title,
			post_excerpt, post_status, comment_status, ping_status, post_name,
			to_ping, pinged, post_modified, post_modified_gmt,
			post_content_filtered, post_parent, guid, menu_order, post_type,
			post_mime_type, comment_count
		) VALUES (0, ?, ?, '', ?, '', 'publish', 'closed', 'closed', ?, '', '', ?, ?, '', 0, '', 0, 'guest-author', '', 0)`,
		r.table("posts"))

	result, err := tx.ExecContext(ctx, query, now, now, displayName, "cap-"+login, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert guest author post: %w", err)
	}

	postID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get guest author post id: %w", err)
	}

	metaQuery := fmt.Sprintf(`INSERT INTO %s (post_id, meta_key, meta_value) VALUES (?, ?, ?)`,
		r.table("postmeta"))
	meta := map[string]string{
		"cap-user_login":   login,
		"cap-display_name": displayName,
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx, metaQuery, postID, key, value); err != nil {
			return 0, fmt.Errorf("failed to insert guest author meta %s: %w", key, err)
		}
	}

	// The author-taxonomy term is what byline assignments point at.
	ttID, err := r.ensureAuthorTerm(ctx, tx, login)
	if err != nil {
		return 0, err
	}
	inserted, err := r.terms.relate(ctx, tx, postID, ttID, 0)
	if err != nil {
		return 0, err
	}
	if inserted {
		if err := r.terms.incrementCount(ctx, tx, ttID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit guest author %q: %w", login, err)
	}

	return postID, nil
}

// SetPostAuthors assigns the byline. With append false the post's existing
// author terms are removed first, so the byline is fully replaced in the
// given order.
func (r *GuestAuthorRepository) SetPostAuthors(ctx context.Context, postID int64, logins []string, appendAuthors bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if !appendAuthors {
		existing, err := r.terms.objectTermTaxonomyIDs(ctx, tx, postID, "author")
		if err != nil {
			return err
		}
		if err := r.terms.unrelate(ctx, tx, postID, existing); err != nil {
			return err
		}
	}

	for i, login := range logins {
		ttID, err := r.ensureAuthorTerm(ctx, tx, login)
		if err != nil {
			return err
		}
		inserted, err := r.terms.relate(ctx, tx, postID, ttID, i)
		if err != nil {
			return err
		}
		if inserted {
			if err := r.terms.incrementCount(ctx, tx, ttID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit byline for post %d: %w", postID, err)
	}

	return nil
}

// IsCoAuthorsPlusActive checks the active_plugins option for the
// Co-Authors Plus plugin file. The option value is a PHP-serialized array;
// a substring match on the plugin path is sufficient and avoids porting a
// PHP unserializer.
func (r *GuestAuthorRepository) IsCoAuthorsPlusActive(ctx context.Context) (bool, error) {
	query := fmt.Sprintf(`SELECT option_value FROM %s WHERE option_name = 'active_plugins' LIMIT 1`,
		r.table("options"))

	var value string
	err := r.db.QueryRowContext(ctx, query).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read active plugins: %w", err)
	}

	return strings.Contains(value, "co-authors-plus.php"), nil
}

func (r *GuestAuthorRepository) ensureAuthorTerm(ctx context.Context, tx *sql.Tx, login string) (int64, error) {
	termID, err := r.terms.ensureTerm(ctx, tx, login, "cap-"+login)
	if err != nil {
		return 0, err
	}
	return r.terms.ensureTermTaxonomy(ctx, tx, termID, "author")
}
