package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/heatmap"
	"github.com/alexanderramin/tracksheet/internal/taxonomy"
)

// DefaultCustomColor is the badge color of a custom entry added without one.
const DefaultCustomColor = "#6B7280"

type taxonomyService struct {
	workspaces *WorkspaceManager
	observer   UseCaseObserver
}

func NewTaxonomyService(workspaces *WorkspaceManager, observers ...UseCaseObserver) TaxonomyService {
	return &taxonomyService{workspaces: workspaces, observer: useCaseObserverOrNoop(observers)}
}

func (s *taxonomyService) AddStatus(ctx context.Context, dashboardID string, e domain.TaxonomyEntry) (*domain.TaxonomyEntry, error) {
	return s.Add(ctx, dashboardID, domain.TaxonomyStatus, e)
}

func (s *taxonomyService) AddRisk(ctx context.Context, dashboardID string, e domain.TaxonomyEntry) (*domain.TaxonomyEntry, error) {
	return s.Add(ctx, dashboardID, domain.TaxonomyRisk, e)
}

// Add validates e against the resolved labels of kind and appends it. A
// rejected entry returns a *taxonomy.Error and leaves the state untouched.
func (s *taxonomyService) Add(ctx context.Context, dashboardID string, kind domain.TaxonomyKind, e domain.TaxonomyEntry) (out *domain.TaxonomyEntry, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "taxonomy.add", start, err, map[string]any{"kind": string(kind), "name": e.Name})
	}()

	if !domain.ValidTaxonomyKinds[kind] {
		return nil, invalidf("invalid taxonomy kind %q (expected status or risk)", kind)
	}
	if e.Color == "" {
		e.Color = DefaultCustomColor
	}
	if _, err := heatmap.ParseHex(e.Color); err != nil {
		return nil, invalidf("invalid badge color: %v", err)
	}

	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	err = ws.Mutate(func(st *domain.DashboardState) error {
		next, err := taxonomy.Add(kind, st.Customs(kind), e)
		if err != nil {
			return err
		}
		added := next[len(next)-1]
		out = &added
		if kind == domain.TaxonomyRisk {
			st.CustomRisks = next
		} else {
			st.CustomStatuses = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *taxonomyService) Customs(ctx context.Context, dashboardID string, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error) {
	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	return ws.State().Customs(kind), nil
}

func (s *taxonomyService) Resolve(ctx context.Context, dashboardID string, kind domain.TaxonomyKind) ([]string, error) {
	customs, err := s.Customs(ctx, dashboardID, kind)
	if err != nil {
		return nil, err
	}
	return taxonomy.ResolveKind(kind, customs), nil
}
