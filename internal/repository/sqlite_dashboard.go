package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tracksheet/internal/db"
	"github.com/alexanderramin/tracksheet/internal/domain"
)

// SQLiteDashboardRepo implements DashboardRepo using a SQLite database.
type SQLiteDashboardRepo struct {
	db db.DBTX
}

func NewSQLiteDashboardRepo(conn db.DBTX) *SQLiteDashboardRepo {
	return &SQLiteDashboardRepo{db: conn}
}

const dashboardColumns = `id, name, created_at`

func (r *SQLiteDashboardRepo) Create(ctx context.Context, d *domain.Dashboard) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dashboards (`+dashboardColumns+`) VALUES (?, ?, ?)`,
		d.ID, d.Name, d.CreatedAt.UTC().Format(time.RFC3339),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("dashboard %q: %w", d.Name, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("inserting dashboard: %w", err)
	}
	return nil
}

func (r *SQLiteDashboardRepo) GetByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dashboardColumns+` FROM dashboards WHERE id = ?`, id)
	return scanDashboard(row)
}

func (r *SQLiteDashboardRepo) GetByName(ctx context.Context, name string) (*domain.Dashboard, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dashboardColumns+` FROM dashboards WHERE name = ?`, name)
	return scanDashboard(row)
}

func (r *SQLiteDashboardRepo) List(ctx context.Context) ([]*domain.Dashboard, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+dashboardColumns+` FROM dashboards ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing dashboards: %w", err)
	}
	defer rows.Close()

	var out []*domain.Dashboard
	for rows.Next() {
		d, err := scanDashboard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dashboards: %w", err)
	}
	return out, nil
}

// Delete removes the dashboard; its activities and taxonomy entries go with
// it through ON DELETE CASCADE.
func (r *SQLiteDashboardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dashboards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dashboard: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("dashboard %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDashboard(s rowScanner) (*domain.Dashboard, error) {
	var d domain.Dashboard
	var createdAt string
	if err := s.Scan(&d.ID, &d.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dashboard: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning dashboard: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	d.CreatedAt = t
	return &d, nil
}
