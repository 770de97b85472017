package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// termOps bundles the term bookkeeping shared by the content and guest
// author repositories: find-or-create of wp_terms / wp_term_taxonomy rows,
// relationship handling and count maintenance. All operations run inside
// the caller's transaction.
type termOps struct {
	prefix string
}

func (o termOps) table(name string) string {
	return o.prefix + name
}

// findTermByName returns the term_id for an exact name match, or 0.
func (o termOps) findTermByName(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var termID int64
	query := fmt.Sprintf(`SELECT term_id FROM %s WHERE name = ? LIMIT 1`, o.table("terms"))

	err := tx.QueryRowContext(ctx, query, name).Scan(&termID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up term %q: %w", name, err)
	}

	return termID, nil
}

// ensureTerm returns the term_id for name, inserting the term when absent.
func (o termOps) ensureTerm(ctx context.Context, tx *sql.Tx, name, slug string) (int64, error) {
	termID, err := o.findTermByName(ctx, tx, name)
	if err != nil {
		return 0, err
	}
	if termID != 0 {
		return termID, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, slug, term_group) VALUES (?, ?, 0)`, o.table("terms"))
	result, err := tx.ExecContext(ctx, query, name, slug)
	if err != nil {
		return 0, fmt.Errorf("failed to insert term %q: %w", name, err)
	}

	termID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted term id: %w", err)
	}

	return termID, nil
}

// ensureTermTaxonomy returns the term_taxonomy_id binding the term to the
// taxonomy, inserting the row when absent.
func (o termOps) ensureTermTaxonomy(ctx context.Context, tx *sql.Tx, termID int64, taxonomy string) (int64, error) {
	var ttID int64
	query := fmt.Sprintf(`SELECT term_taxonomy_id FROM %s WHERE term_id = ? AND taxonomy = ? LIMIT 1`,
		o.table("term_taxonomy"))

	err := tx.QueryRowContext(ctx, query, termID, taxonomy).Scan(&ttID)
	if err == nil {
		return ttID, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up term taxonomy: %w", err)
	}

	query = fmt.Sprintf(`INSERT INTO %s (term_id, taxonomy, description, parent, count) VALUES (?, ?, '', 0, 0)`,
		o.table("term_taxonomy"))
	result, err := tx.ExecContext(ctx, query, termID, taxonomy)
	if err != nil {
		return 0, fmt.Errorf("failed to insert term taxonomy: %w", err)
	}

	ttID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted term taxonomy id: %w", err)
	}

	return ttID, nil
}

// relate attaches the object to a term_taxonomy row. Returns whether a new
// relationship was inserted, so callers can keep counts accurate.
func (o termOps) relate(ctx context.Context, tx *sql.Tx, objectID, ttID int64, order int) (bool, error) {
	query := fmt.Sprintf(`INSERT IGNORE INTO %s (object_id, term_taxonomy_id, term_order) VALUES (?, ?, ?)`,
		o.table("term_relationships"))

	result, err := tx.ExecContext(ctx, query, objectID, ttID, order)
	if err != nil {
		return false, fmt.Errorf("failed to insert term relationship: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// objectTermTaxonomyIDs returns the term_taxonomy_ids of the given
// taxonomy currently attached to the object.
func (o termOps) objectTermTaxonomyIDs(ctx context.Context, tx *sql.Tx, objectID int64, taxonomy string) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT tt.term_taxonomy_id
		FROM %s tr
		JOIN %s tt ON tt.term_taxonomy_id = tr.term_taxonomy_id
		WHERE tr.object_id = ? AND tt.taxonomy = ?`,
		o.table("term_relationships"), o.table("term_taxonomy"))

	rows, err := tx.QueryContext(ctx, query, objectID, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to query object terms: %w", err)
	}
	defer rows.Close()

	var ttIDs []int64
	for rows.Next() {
		var ttID int64
		if err := rows.Scan(&ttID); err != nil {
			return nil, fmt.Errorf("failed to scan term taxonomy id: %w", err)
		}
		ttIDs = append(ttIDs, ttID)
	}

	return ttIDs, rows.Err()
}

// unrelate removes the object's relationships to the given term_taxonomy
// rows and decrements their counts.
func (o termOps) unrelate(ctx context.Context, tx *sql.Tx, objectID int64, ttIDs []int64) error {
	if len(ttIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE object_id = ? AND term_taxonomy_id IN (%s)`,
		o.table("term_relationships"), placeholders(len(ttIDs)))

	args := make([]interface{}, 0, len(ttIDs)+1)
	args = append(args, objectID)
	for _, ttID := range ttIDs {
		args = append(args, ttID)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete term relationships: %w", err)
	}

	query = fmt.Sprintf(`UPDATE %s SET count = GREATEST(count - 1, 0) WHERE term_taxonomy_id IN (%s)`,
		o.table("term_taxonomy"), placeholders(len(ttIDs)))

	if _, err := tx.ExecContext(ctx, query, args[1:]...); err != nil {
		return fmt.Errorf("failed to decrement term counts: %w", err)
	}

	return nil
}

func (o termOps) incrementCount(ctx context.Context, tx *sql.Tx, ttID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET count = count + 1 WHERE term_taxonomy_id = ?`, o.table("term_taxonomy"))

	if _, err := tx.ExecContext(ctx, query, ttID); err != nil {
		return fmt.Errorf("failed to increment term count: %w", err)
	}

	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
