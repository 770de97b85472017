package database

import (
	"context"
	"fmt"

	"github.com/wptools/tags-to-authors/app/byline"
)

var _ byline.ContentStore = (*ContentRepository)(nil)

// ContentRepository implements the content store over the WordPress
// posts/terms tables.
type ContentRepository struct {
	db    *DB
	terms termOps
}

func NewContentRepository(db *DB, tablePrefix string) *ContentRepository {
	return &ContentRepository{db: db, terms: termOps{prefix: tablePrefix}}
}

func (r *ContentRepository) table(name string) string {
	return r.terms.prefix + name
}

// GetPostTags returns the post's tags in the post_tag taxonomy. A missing
// post or a post without tags yields nil.
func (r *ContentRepository) GetPostTags(ctx context.Context, postID int64) ([]byline.Tag, error) {
	return r.GetPostTagsInTaxonomy(ctx, postID, "post_tag")
}

// GetPostTagsInTaxonomy returns the post's terms in the given taxonomy.
func (r *ContentRepository) GetPostTagsInTaxonomy(ctx context.Context, postID int64, taxonomy string) ([]byline.Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.term_id, t.name, tt.taxonomy
		FROM %s t
		JOIN %s tt ON tt.term_id = t.term_id
		JOIN %s tr ON tr.term_taxonomy_id = tt.term_taxonomy_id
		WHERE tr.object_id = ? AND tt.taxonomy = ?
		ORDER BY tr.term_order, t.name`,
		r.table("terms"), r.table("term_taxonomy"), r.table("term_relationships"))

	rows, err := r.db.QueryContext(ctx, query, postID, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for post %d: %w", postID, err)
	}
	defer rows.Close()

	var tags []byline.Tag
	for rows.Next() {
		var tag byline.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Taxonomy); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// SetPostTags replaces the post's post_tag set with the named tags,
// creating terms that do not exist yet and keeping term counts in sync.
func (r *ContentRepository) SetPostTags(ctx context.Context, postID int64, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := r.terms.objectTermTaxonomyIDs(ctx, tx, postID, "post_tag")
	if err != nil {
		return err
	}
	if err := r.terms.unrelate(ctx, tx, postID, existing); err != nil {
		return err
	}

	for i, name := range names {
		termID, err := r.terms.ensureTerm(ctx, tx, name, byline.Normalize(name))
		if err != nil {
			return err
		}
		ttID, err := r.terms.ensureTermTaxonomy(ctx, tx, termID, "post_tag")
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
		return fmt.Errorf("failed to commit tag update for post %d: %w", postID, err)
	}

	return nil
}

// RemovePostTerms detaches the given terms of a taxonomy from the post.
func (r *ContentRepository) RemovePostTerms(ctx context.Context, postID int64, taxonomy string, termIDs []int64) error {
	if len(termIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`SELECT term_taxonomy_id FROM %s WHERE taxonomy = ? AND term_id IN (%s)`,
		r.table("term_taxonomy"), placeholders(len(termIDs)))

	args := make([]interface{}, 0, len(termIDs)+1)
	args = append(args, taxonomy)
	for _, termID := range termIDs {
		args = append(args, termID)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to resolve term taxonomy ids: %w", err)
	}
	defer rows.Close()

	var ttIDs []int64
	for rows.Next() {
		var ttID int64
		if err := rows.Scan(&ttID); err != nil {
			return fmt.Errorf("failed to scan term taxonomy id: %w", err)
		}
		ttIDs = append(ttIDs, ttID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := r.terms.unrelate(ctx, tx, postID, ttIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit term removal for post %d: %w", postID, err)
	}

	return nil
}

// FindPublishedPosts returns the IDs of all published posts of the type.
func (r *ContentRepository) FindPublishedPosts(ctx context.Context, postType string) ([]int64, error) {
	query := fmt.Sprintf(`SELECT ID FROM %s WHERE post_type = ? AND post_status = 'publish' ORDER BY ID`,
		r.table("posts"))

	return r.queryPostIDs(ctx, query, postType)
}

// FindPostsWithTaxonomy returns the IDs of published posts carrying at
// least one term in the taxonomy.
func (r *ContentRepository) FindPostsWithTaxonomy(ctx context.Context, taxonomy string) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT p.ID
		FROM %s p
		JOIN %s tr ON tr.object_id = p.ID
		JOIN %s tt ON tt.term_taxonomy_id = tr.term_taxonomy_id
		WHERE tt.taxonomy = ? AND p.post_type = 'post' AND p.post_status = 'publish'
		ORDER BY p.ID`,
		r.table("posts"), r.table("term_relationships"), r.table("term_taxonomy"))

	return r.queryPostIDs(ctx, query, taxonomy)
}

func (r *ContentRepository) queryPostIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
