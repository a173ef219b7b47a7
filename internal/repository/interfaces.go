package repository

import (
	"context"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

type DashboardRepo interface {
	Create(ctx context.Context, d *domain.Dashboard) error
	GetByID(ctx context.Context, id string) (*domain.Dashboard, error)
	GetByName(ctx context.Context, name string) (*domain.Dashboard, error)
	List(ctx context.Context) ([]*domain.Dashboard, error)
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, dashboardID string, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByDashboard(ctx context.Context, dashboardID string) ([]domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
	DeleteByDashboard(ctx context.Context, dashboardID string) error
}

type TaxonomyRepo interface {
	ListCustom(ctx context.Context, dashboardID string, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error)
	Add(ctx context.Context, dashboardID string, kind domain.TaxonomyKind, e domain.TaxonomyEntry) error
	DeleteByDashboard(ctx context.Context, dashboardID string) error
}

// StateStore loads and saves the whole persisted state of a dashboard.
type StateStore interface {
	Load(ctx context.Context, dashboardID string) (*domain.DashboardState, error)
	Save(ctx context.Context, dashboardID string, s domain.DashboardState) error
}
