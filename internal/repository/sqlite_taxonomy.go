package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tracksheet/internal/db"
	"github.com/alexanderramin/tracksheet/internal/domain"
)

// SQLiteTaxonomyRepo stores the custom status and risk entries of each
// dashboard in insertion order.
type SQLiteTaxonomyRepo struct {
	db db.DBTX
}

func NewSQLiteTaxonomyRepo(conn db.DBTX) *SQLiteTaxonomyRepo {
	return &SQLiteTaxonomyRepo{db: conn}
}

func (r *SQLiteTaxonomyRepo) ListCustom(ctx context.Context, dashboardID string, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, color FROM taxonomy_entries WHERE dashboard_id = ? AND kind = ? ORDER BY seq`,
		dashboardID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing %s entries: %w", kind, err)
	}
	defer rows.Close()

	out := []domain.TaxonomyEntry{}
	for rows.Next() {
		var e domain.TaxonomyEntry
		if err := rows.Scan(&e.Name, &e.Color); err != nil {
			return nil, fmt.Errorf("scanning %s entry: %w", kind, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s entries: %w", kind, err)
	}
	return out, nil
}

// Add appends e after the existing entries of kind. Name uniqueness against
// built-ins is the caller's job; the table only rejects exact duplicates.
func (r *SQLiteTaxonomyRepo) Add(ctx context.Context, dashboardID string, kind domain.TaxonomyKind, e domain.TaxonomyEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO taxonomy_entries (dashboard_id, kind, seq, name, color)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM taxonomy_entries WHERE dashboard_id = ? AND kind = ?), ?, ?)`,
		dashboardID, string(kind), dashboardID, string(kind), e.Name, e.Color)
	if isUniqueViolation(err) {
		return fmt.Errorf("%s %q: %w", kind, e.Name, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting %s entry: %w", kind, err)
	}
	return nil
}

func (r *SQLiteTaxonomyRepo) DeleteByDashboard(ctx context.Context, dashboardID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM taxonomy_entries WHERE dashboard_id = ?`, dashboardID); err != nil {
		return fmt.Errorf("clearing taxonomy entries: %w", err)
	}
	return nil
}
