package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/repository"
)

type dashboardService struct {
	dashboards repository.DashboardRepo
	workspaces *WorkspaceManager
	observer   UseCaseObserver
}

func NewDashboardService(dashboards repository.DashboardRepo, workspaces *WorkspaceManager, observers ...UseCaseObserver) DashboardService {
	return &dashboardService{
		dashboards: dashboards,
		workspaces: workspaces,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) Create(ctx context.Context, name string) (d *domain.Dashboard, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "dashboard.create", start, err, nil) }()

	d = &domain.Dashboard{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := d.ValidateName(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := s.dashboards.Create(ctx, d); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("dashboard %q: %w", d.Name, err)
		}
		return nil, fmt.Errorf("creating dashboard: %w", err)
	}
	return d, nil
}

func (s *dashboardService) List(ctx context.Context) ([]*domain.Dashboard, error) {
	return s.dashboards.List(ctx)
}

func (s *dashboardService) GetByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	return s.dashboards.GetByID(ctx, id)
}

func (s *dashboardService) Resolve(ctx context.Context, ref string) (*domain.Dashboard, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, invalidf("dashboard reference is required")
	}

	if d, err := s.dashboards.GetByID(ctx, ref); err == nil {
		return d, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if d, err := s.dashboards.GetByName(ctx, ref); err == nil {
		return d, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := s.dashboards.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Dashboard
	for _, d := range all {
		if strings.HasPrefix(d.ID, strings.ToLower(ref)) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("dashboard %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, invalidf("dashboard prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (s *dashboardService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "dashboard.delete", start, err, map[string]any{"dashboard_id": id}) }()

	if err := s.dashboards.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting dashboard: %w", err)
	}
	s.workspaces.Forget(ctx, id)
	return nil
}
