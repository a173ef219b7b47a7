package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tracksheet/internal/db"
	"github.com/alexanderramin/tracksheet/internal/domain"
)

// SQLiteStateStore persists a dashboard's activities and custom taxonomies
// as one unit.
type SQLiteStateStore struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

func NewSQLiteStateStore(conn db.DBTX, uow db.UnitOfWork) *SQLiteStateStore {
	return &SQLiteStateStore{conn: conn, uow: uow}
}

func (s *SQLiteStateStore) Load(ctx context.Context, dashboardID string) (*domain.DashboardState, error) {
	if _, err := NewSQLiteDashboardRepo(s.conn).GetByID(ctx, dashboardID); err != nil {
		return nil, err
	}

	activities, err := NewSQLiteActivityRepo(s.conn).ListByDashboard(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	tax := NewSQLiteTaxonomyRepo(s.conn)
	statuses, err := tax.ListCustom(ctx, dashboardID, domain.TaxonomyStatus)
	if err != nil {
		return nil, err
	}
	risks, err := tax.ListCustom(ctx, dashboardID, domain.TaxonomyRisk)
	if err != nil {
		return nil, err
	}
	return &domain.DashboardState{
		Activities:     activities,
		CustomStatuses: statuses,
		CustomRisks:    risks,
	}, nil
}

// Save replaces the stored state of the dashboard with st. Either all of it
// is written or none of it is.
func (s *SQLiteStateStore) Save(ctx context.Context, dashboardID string, st domain.DashboardState) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := NewSQLiteDashboardRepo(tx).GetByID(ctx, dashboardID); err != nil {
			return err
		}

		activities := NewSQLiteActivityRepo(tx)
		if err := activities.DeleteByDashboard(ctx, dashboardID); err != nil {
			return err
		}
		for i := range st.Activities {
			if err := activities.Create(ctx, dashboardID, &st.Activities[i]); err != nil {
				return fmt.Errorf("saving activity %d: %w", i, err)
			}
		}

		tax := NewSQLiteTaxonomyRepo(tx)
		if err := tax.DeleteByDashboard(ctx, dashboardID); err != nil {
			return err
		}
		for _, e := range st.CustomStatuses {
			if err := tax.Add(ctx, dashboardID, domain.TaxonomyStatus, e); err != nil {
				return err
			}
		}
		for _, e := range st.CustomRisks {
			if err := tax.Add(ctx, dashboardID, domain.TaxonomyRisk, e); err != nil {
				return err
			}
		}
		return nil
	})
}
