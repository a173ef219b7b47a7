package service

import (
	"context"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/narrative"
)

type DashboardService interface {
	Create(ctx context.Context, name string) (*domain.Dashboard, error)
	List(ctx context.Context) ([]*domain.Dashboard, error)
	GetByID(ctx context.Context, id string) (*domain.Dashboard, error)
	// Resolve finds a dashboard by full ID, unique ID prefix or exact name.
	Resolve(ctx context.Context, ref string) (*domain.Dashboard, error)
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	Add(ctx context.Context, dashboardID string, a domain.Activity) (*domain.Activity, error)
	Update(ctx context.Context, dashboardID string, a domain.Activity) (*domain.Activity, error)
	Delete(ctx context.Context, dashboardID, activityRef string) (*domain.Activity, error)
	List(ctx context.Context, dashboardID string) ([]domain.Activity, error)
}

type TaxonomyService interface {
	AddStatus(ctx context.Context, dashboardID string, e domain.TaxonomyEntry) (*domain.TaxonomyEntry, error)
	AddRisk(ctx context.Context, dashboardID string, e domain.TaxonomyEntry) (*domain.TaxonomyEntry, error)
	Add(ctx context.Context, dashboardID string, kind domain.TaxonomyKind, e domain.TaxonomyEntry) (*domain.TaxonomyEntry, error)
	Customs(ctx context.Context, dashboardID string, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error)
	Resolve(ctx context.Context, dashboardID string, kind domain.TaxonomyKind) ([]string, error)
}

type ImportService = app.ImportActivitiesUseCase

type ReportService = app.ReportUseCase

type AnalysisService interface {
	app.AnalyzeUseCase
	// AnalyzeReport reuses an already built report.
	AnalyzeReport(ctx context.Context, report *app.ReportResponse) (*narrative.Analysis, error)
}

// Clock returns the current calendar date. Services take one so reports and
// lastUpdatedDate stamps are reproducible in tests.
type Clock func() domain.Date
