package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tracksheet/internal/db"
	"github.com/alexanderramin/tracksheet/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
// Activities keep the order they were created in through the seq column.
type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, name, discipline, responsible, priority, notes,
	dependencies, required_resources, document_link,
	planned_start, planned_end, actual_start, actual_end,
	planned_status, actual_status,
	planned_value, actual_value, actual_cost,
	completion_percent, associated_risk, last_updated`

func (r *SQLiteActivityRepo) Create(ctx context.Context, dashboardID string, a *domain.Activity) error {
	query := `INSERT INTO activities (dashboard_id, seq, ` + activityColumns + `)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM activities WHERE dashboard_id = ?),
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := append([]any{dashboardID, dashboardID}, activityValues(a)...)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("activity %s: %w", a.ID, ErrConflict)
		}
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteActivityRepo) ListByDashboard(ctx context.Context, dashboardID string) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE dashboard_id = ? ORDER BY seq`, dashboardID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	out := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}

// Update replaces every field of the stored activity with a's.
func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET
		name = ?, discipline = ?, responsible = ?, priority = ?, notes = ?,
		dependencies = ?, required_resources = ?, document_link = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		planned_status = ?, actual_status = ?,
		planned_value = ?, actual_value = ?, actual_cost = ?,
		completion_percent = ?, associated_risk = ?, last_updated = ?
		WHERE id = ?`
	vals := activityValues(a)
	args := append(vals[1:], a.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteActivityRepo) DeleteByDashboard(ctx context.Context, dashboardID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE dashboard_id = ?`, dashboardID); err != nil {
		return fmt.Errorf("clearing activities: %w", err)
	}
	return nil
}

// activityValues returns the column values in activityColumns order.
func activityValues(a *domain.Activity) []any {
	return []any{
		a.ID, a.Name, a.Discipline, a.Responsible, string(a.Priority), a.Notes,
		encodeList(a.Dependencies), encodeList(a.RequiredResources), a.DocumentLink,
		nullableDateToValue(a.PlannedStart), nullableDateToValue(a.PlannedEnd),
		nullableDateToValue(a.ActualStart), nullableDateToValue(a.ActualEnd),
		a.PlannedStatus, a.ActualStatus,
		nullableFloatToValue(a.PlannedValue), nullableFloatToValue(a.ActualValue), nullableFloatToValue(a.ActualCost),
		a.CompletionPercent, a.AssociatedRisk, nullableDateToValue(a.LastUpdated),
	}
}

// scanActivity returns sql.ErrNoRows unwrapped so callers can map it.
func scanActivity(s rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var priority, deps, resources string
	var plannedStart, plannedEnd, actualStart, actualEnd, lastUpdated sql.NullString
	var plannedValue, actualValue, actualCost sql.NullFloat64

	err := s.Scan(
		&a.ID, &a.Name, &a.Discipline, &a.Responsible, &priority, &a.Notes,
		&deps, &resources, &a.DocumentLink,
		&plannedStart, &plannedEnd, &actualStart, &actualEnd,
		&a.PlannedStatus, &a.ActualStatus,
		&plannedValue, &actualValue, &actualCost,
		&a.CompletionPercent, &a.AssociatedRisk, &lastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}

	a.Priority = domain.Priority(priority)
	a.Dependencies = decodeList(deps)
	a.RequiredResources = decodeList(resources)
	a.PlannedStart = parseNullableDate(plannedStart)
	a.PlannedEnd = parseNullableDate(plannedEnd)
	a.ActualStart = parseNullableDate(actualStart)
	a.ActualEnd = parseNullableDate(actualEnd)
	a.LastUpdated = parseNullableDate(lastUpdated)
	a.PlannedValue = nullableFloat(plannedValue)
	a.ActualValue = nullableFloat(actualValue)
	a.ActualCost = nullableFloat(actualCost)
	return &a, nil
}
