package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/tracksheet/internal/autosave"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/repository"
)

// Workspace is the in-memory working copy of one dashboard. Reads hand out
// deep copies; every successful mutation schedules a debounced save.
type Workspace struct {
	dashboard domain.Dashboard

	mu    sync.RWMutex
	state domain.DashboardState
	saver *autosave.Debouncer
}

func (w *Workspace) Dashboard() domain.Dashboard { return w.dashboard }

// State returns a deep copy of the current state.
func (w *Workspace) State() domain.DashboardState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// Mutate applies fn to a copy of the state. The copy replaces the current
// state only when fn succeeds.
func (w *Workspace) Mutate(fn func(s *domain.DashboardState) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	w.state = next
	w.saver.Notify(next)
	return nil
}

// Flush writes any pending change immediately.
func (w *Workspace) Flush(ctx context.Context) error {
	return w.saver.Flush(ctx)
}

// WorkspaceManager opens each dashboard at most once per process and owns
// the autosave debouncers.
type WorkspaceManager struct {
	dashboards repository.DashboardRepo
	store      repository.StateStore
	delay      time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	spaces map[string]*Workspace
}

func NewWorkspaceManager(dashboards repository.DashboardRepo, store repository.StateStore, delay time.Duration, logger *slog.Logger) *WorkspaceManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkspaceManager{
		dashboards: dashboards,
		store:      store,
		delay:      delay,
		logger:     logger,
		spaces:     make(map[string]*Workspace),
	}
}

// Open returns the workspace of dashboardID, loading it on first use.
func (m *WorkspaceManager) Open(ctx context.Context, dashboardID string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ws, ok := m.spaces[dashboardID]; ok {
		return ws, nil
	}

	d, err := m.dashboards.GetByID(ctx, dashboardID)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard %s: %w", dashboardID, err)
	}
	st, err := m.store.Load(ctx, dashboardID)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard state: %w", err)
	}

	ws := &Workspace{
		dashboard: *d,
		state:     *st,
		saver:     autosave.New(m.store, dashboardID, m.delay, m.logger),
	}
	m.spaces[dashboardID] = ws
	return ws, nil
}

// Forget drops a workspace without saving it. Used after the dashboard
// itself is deleted.
func (m *WorkspaceManager) Forget(ctx context.Context, dashboardID string) {
	m.mu.Lock()
	ws, ok := m.spaces[dashboardID]
	delete(m.spaces, dashboardID)
	m.mu.Unlock()
	if ok {
		// Closing an unsaved debouncer would write into a deleted dashboard.
		ws.saver.Discard()
	}
}

// Close flushes every open workspace. All workspaces are closed even when
// some fail; the errors are joined.
func (m *WorkspaceManager) Close(ctx context.Context) error {
	m.mu.Lock()
	spaces := make([]*Workspace, 0, len(m.spaces))
	for _, ws := range m.spaces {
		spaces = append(spaces, ws)
	}
	m.spaces = make(map[string]*Workspace)
	m.mu.Unlock()

	var errs []error
	for _, ws := range spaces {
		if err := ws.saver.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("saving dashboard %s: %w", ws.dashboard.Name, err))
		}
	}
	return errors.Join(errs...)
}
