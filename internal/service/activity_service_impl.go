package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/repository"
)

type activityService struct {
	workspaces *WorkspaceManager
	clock      Clock
	observer   UseCaseObserver
}

func NewActivityService(workspaces *WorkspaceManager, clock Clock, observers ...UseCaseObserver) ActivityService {
	if clock == nil {
		clock = domain.Today
	}
	return &activityService{
		workspaces: workspaces,
		clock:      clock,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// normalizeActivity trims free text and fills the defaults of a blank
// activity form.
func normalizeActivity(a *domain.Activity) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Discipline = strings.TrimSpace(a.Discipline)
	a.Responsible = strings.TrimSpace(a.Responsible)
	if a.Name == "" {
		return invalidf("activity name is required")
	}
	if a.Priority == "" {
		a.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[a.Priority] {
		return invalidf("invalid priority %q (expected High, Medium or Low)", a.Priority)
	}
	a.PlannedStatus = domain.CoalesceStr(a.PlannedStatus, domain.StatusNotStarted)
	a.ActualStatus = domain.CoalesceStr(a.ActualStatus, domain.StatusNotStarted)
	a.AssociatedRisk = domain.CoalesceStr(a.AssociatedRisk, domain.RiskLow)
	a.CompletionPercent = min(max(a.CompletionPercent, 0), 100)
	return nil
}

func (s *activityService) Add(ctx context.Context, dashboardID string, a domain.Activity) (out *domain.Activity, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "activity.add", start, err, map[string]any{"dashboard_id": dashboardID}) }()

	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if err := normalizeActivity(&a); err != nil {
		return nil, err
	}
	a.ID = uuid.New().String()
	today := s.clock()
	a.LastUpdated = &today

	if err := ws.Mutate(func(st *domain.DashboardState) error {
		st.Activities = append(st.Activities, a.Clone())
		return nil
	}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *activityService) Update(ctx context.Context, dashboardID string, a domain.Activity) (out *domain.Activity, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "activity.update", start, err, map[string]any{"activity_id": a.ID}) }()

	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if err := normalizeActivity(&a); err != nil {
		return nil, err
	}
	today := s.clock()
	a.LastUpdated = &today

	err = ws.Mutate(func(st *domain.DashboardState) error {
		for i := range st.Activities {
			if st.Activities[i].ID == a.ID {
				st.Activities[i] = a.Clone()
				return nil
			}
		}
		return fmt.Errorf("activity %s: %w", a.ID, repository.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *activityService) Delete(ctx context.Context, dashboardID, activityRef string) (out *domain.Activity, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "activity.delete", start, err, map[string]any{"activity_ref": activityRef}) }()

	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	err = ws.Mutate(func(st *domain.DashboardState) error {
		idx, err := findActivity(st.Activities, activityRef)
		if err != nil {
			return err
		}
		removed := st.Activities[idx]
		out = &removed
		st.Activities = append(st.Activities[:idx], st.Activities[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *activityService) List(ctx context.Context, dashboardID string) ([]domain.Activity, error) {
	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	return ws.State().Activities, nil
}

// findActivity matches a full ID or a unique ID prefix.
func findActivity(activities []domain.Activity, ref string) (int, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return -1, invalidf("activity reference is required")
	}
	found := -1
	for i, a := range activities {
		if a.ID == ref {
			return i, nil
		}
		if strings.HasPrefix(a.ID, ref) {
			if found >= 0 {
				return -1, invalidf("activity prefix %q is ambiguous", ref)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("activity %q: %w", ref, repository.ErrNotFound)
	}
	return found, nil
}
