package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/logging"
	"github.com/alexanderramin/tracksheet/internal/narrative"
	"github.com/alexanderramin/tracksheet/internal/repository"
	"github.com/alexanderramin/tracksheet/internal/taxonomy"
	"github.com/alexanderramin/tracksheet/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}

type testEnv struct {
	db         *sql.DB
	store      *repository.SQLiteStateStore
	dashRepo   *repository.SQLiteDashboardRepo
	workspaces *WorkspaceManager
	observer   *recordingObserver

	dashboards DashboardService
	activities ActivityService
	taxonomies TaxonomyService
	imports    ImportService
	reports    ReportService
	analysis   AnalysisService
}

func fixedClock() domain.Date { return testutil.Today }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:       database,
		store:    repository.NewSQLiteStateStore(database, testutil.NewTestUoW(database)),
		dashRepo: repository.NewSQLiteDashboardRepo(database),
		observer: &recordingObserver{},
	}
	env.workspaces = NewWorkspaceManager(env.dashRepo, env.store, 10*time.Millisecond, logging.Discard())
	t.Cleanup(func() { _ = env.workspaces.Close(context.Background()) })

	env.dashboards = NewDashboardService(env.dashRepo, env.workspaces, env.observer)
	env.activities = NewActivityService(env.workspaces, fixedClock, env.observer)
	env.taxonomies = NewTaxonomyService(env.workspaces, env.observer)
	env.imports = NewImportService(env.workspaces, fixedClock, env.observer)
	env.reports = NewReportService(env.workspaces, fixedClock, env.observer)
	env.analysis = NewAnalysisService(env.reports, narrative.NewService(nil), env.observer)
	return env
}

func (e *testEnv) newDashboard(t *testing.T, name string) *domain.Dashboard {
	t.Helper()
	d, err := e.dashboards.Create(context.Background(), name)
	require.NoError(t, err)
	return d
}

// reload reads what is actually persisted, bypassing the workspace cache.
func (e *testEnv) reload(t *testing.T, dashboardID string) *domain.DashboardState {
	t.Helper()
	require.NoError(t, e.workspaces.Close(context.Background()))
	st, err := e.store.Load(context.Background(), dashboardID)
	require.NoError(t, err)
	return st
}

func TestDashboardService_CreateAndResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	d := env.newDashboard(t, "  Plant A  ")
	assert.Equal(t, "Plant A", d.Name)

	byName, err := env.dashboards.Resolve(ctx, "Plant A")
	require.NoError(t, err)
	assert.Equal(t, d.ID, byName.ID)

	byPrefix, err := env.dashboards.Resolve(ctx, d.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, d.ID, byPrefix.ID)

	_, err = env.dashboards.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := env.dashboards.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDashboardService_CreateRejectsBlankAndDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.dashboards.Create(ctx, "   ")
	assert.EqualError(t, err, "dashboard name is required")

	env.newDashboard(t, "Plant A")
	_, err = env.dashboards.Create(ctx, "Plant A")
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestDashboardService_DeleteForgetsWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Temp")

	_, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, env.dashboards.Delete(ctx, d.ID))

	_, err = env.activities.List(ctx, d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, env.workspaces.Close(ctx))
}

func TestActivityService_AddAppliesDefaultsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	added, err := env.activities.Add(ctx, d.ID, domain.Activity{
		Name:              " Survey ",
		Responsible:       "Ana",
		CompletionPercent: 140,
		PlannedValue:      testutil.Money(0),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Survey", added.Name)
	assert.Equal(t, domain.PriorityMedium, added.Priority)
	assert.Equal(t, domain.StatusNotStarted, added.ActualStatus)
	assert.Equal(t, domain.RiskLow, added.AssociatedRisk)
	assert.InDelta(t, 100, added.CompletionPercent, 1e-9)
	require.NotNil(t, added.LastUpdated)
	assert.True(t, added.LastUpdated.Equal(testutil.Today))

	st := env.reload(t, d.ID)
	require.Len(t, st.Activities, 1)
	assert.Equal(t, added.ID, st.Activities[0].ID)
	require.NotNil(t, st.Activities[0].PlannedValue)
	assert.Equal(t, 0.0, *st.Activities[0].PlannedValue)
}

func TestActivityService_AddRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	_, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: ""})
	assert.EqualError(t, err, "activity name is required")

	_, err = env.activities.Add(ctx, d.ID, domain.Activity{Name: "A", Priority: "Urgent"})
	assert.ErrorContains(t, err, `invalid priority "Urgent"`)

	list, err := env.activities.List(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestActivityService_UpdateReplacesWholesale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	added, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: "A", Notes: "first", Dependencies: []string{"x"}})
	require.NoError(t, err)

	updated := domain.Activity{ID: added.ID, Name: "A2", ActualStatus: domain.StatusCompleted}
	_, err = env.activities.Update(ctx, d.ID, updated)
	require.NoError(t, err)

	list, err := env.activities.List(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A2", list[0].Name)
	assert.Empty(t, list[0].Notes)
	assert.Empty(t, list[0].Dependencies)
	assert.Equal(t, domain.StatusCompleted, list[0].ActualStatus)

	_, err = env.activities.Update(ctx, d.ID, domain.Activity{ID: "missing", Name: "X"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityService_DeleteByPrefix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	a, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: "A"})
	require.NoError(t, err)
	b, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: "B"})
	require.NoError(t, err)

	removed, err := env.activities.Delete(ctx, d.ID, a.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, a.ID, removed.ID)

	_, err = env.activities.Delete(ctx, d.ID, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	st := env.reload(t, d.ID)
	require.Len(t, st.Activities, 1)
	assert.Equal(t, b.ID, st.Activities[0].ID)
}

func TestWorkspace_ListReturnsCopies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")
	_, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: "A"})
	require.NoError(t, err)

	list, err := env.activities.List(ctx, d.ID)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err := env.activities.List(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Name)
}

func TestWorkspace_FailedMutationLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	ws, err := env.workspaces.Open(ctx, d.ID)
	require.NoError(t, err)

	err = ws.Mutate(func(st *domain.DashboardState) error {
		st.Activities = append(st.Activities, domain.Activity{Name: "ghost"})
		return errors.New("rejected")
	})
	assert.EqualError(t, err, "rejected")
	assert.Empty(t, ws.State().Activities)
}

func TestWorkspace_AutosaveAfterQuietPeriod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	_, err := env.activities.Add(ctx, d.ID, domain.Activity{Name: "A"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		st, err := env.store.Load(ctx, d.ID)
		return err == nil && len(st.Activities) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestTaxonomyService_AddAndResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	added, err := env.taxonomies.AddStatus(ctx, d.ID, domain.TaxonomyEntry{Name: " On Hold ", Color: "#AABBCC"})
	require.NoError(t, err)
	assert.Equal(t, "On Hold", added.Name)

	risk, err := env.taxonomies.AddRisk(ctx, d.ID, domain.TaxonomyEntry{Name: "Critical"})
	require.NoError(t, err)
	assert.Equal(t, DefaultCustomColor, risk.Color)

	statuses, err := env.taxonomies.Resolve(ctx, d.ID, domain.TaxonomyStatus)
	require.NoError(t, err)
	assert.Equal(t, []string{"Completed", "In Progress", "Delayed", "Not Started", "On Hold"}, statuses)

	risks, err := env.taxonomies.Resolve(ctx, d.ID, domain.TaxonomyRisk)
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Medium", "Low", "Critical"}, risks)

	st := env.reload(t, d.ID)
	assert.Equal(t, []domain.TaxonomyEntry{{Name: "On Hold", Color: "#AABBCC"}}, st.CustomStatuses)
}

func TestTaxonomyService_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	_, err := env.taxonomies.AddStatus(ctx, d.ID, domain.TaxonomyEntry{Name: "Delayed"})
	var terr *taxonomy.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, taxonomy.CodeDuplicateName, terr.Code)

	_, err = env.taxonomies.AddRisk(ctx, d.ID, domain.TaxonomyEntry{Name: "  "})
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, taxonomy.CodeBlankName, terr.Code)
	assert.Equal(t, "Risk name cannot be empty", terr.Message)

	_, err = env.taxonomies.AddStatus(ctx, d.ID, domain.TaxonomyEntry{Name: "X", Color: "blue"})
	assert.ErrorContains(t, err, "invalid badge color")

	_, err = env.taxonomies.Add(ctx, d.ID, "phase", domain.TaxonomyEntry{Name: "X"})
	assert.ErrorContains(t, err, "invalid taxonomy kind")

	customs, err := env.taxonomies.Customs(ctx, d.ID, domain.TaxonomyStatus)
	require.NoError(t, err)
	assert.Empty(t, customs)
}

func TestImportService_ImportsFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	path := filepath.Join(t.TempDir(), "acts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
customStatuses:
  - name: On Hold
activities:
  - activityName: Survey
    actualStatus: On Hold
  - activityName: Excavation
    completionPercent: 130
`), 0o644))

	res, err := env.imports.ImportFile(ctx, d.ID, path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ActivityCount)
	assert.Equal(t, 1, res.StatusesAdded)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "completionPercent")

	st := env.reload(t, d.ID)
	require.Len(t, st.Activities, 2)
	assert.Equal(t, "Survey", st.Activities[0].Name)
	assert.Equal(t, "On Hold", st.CustomStatuses[0].Name)
}

func TestImportService_InvalidFileAddsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")

	path := filepath.Join(t.TempDir(), "acts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities":[{"activityName":"ok"},{"activityName":"","priority":"Top"}]}`), 0o644))

	_, err := env.imports.ImportFile(ctx, d.ID, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")

	list, err := env.activities.List(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func seedReportDashboard(t *testing.T, env *testEnv) *domain.Dashboard {
	t.Helper()
	ctx := context.Background()
	d := env.newDashboard(t, "Plant A")
	for _, a := range []domain.Activity{
		testutil.NewTestActivity("Late", testutil.WithStatus(domain.StatusDelayed), testutil.WithPlannedEnd(testutil.DaysFromToday(-5)),
			testutil.WithPlannedStart(testutil.DaysFromToday(-10)), testutil.WithPriority(domain.PriorityHigh)),
		testutil.NewTestActivity("Done", testutil.WithStatus(domain.StatusCompleted), testutil.WithResponsible("Bruno"),
			testutil.WithPlannedStart(testutil.DaysFromToday(-100))),
		testutil.NewTestActivity("Open", testutil.WithPlannedEnd(testutil.DaysFromToday(10)), testutil.WithResponsible("Carla"),
			testutil.WithPlannedStart(testutil.DaysFromToday(2))),
	} {
		_, err := env.activities.Add(ctx, d.ID, a)
		require.NoError(t, err)
	}
	return d
}

func TestReportService_BuildsReport(t *testing.T) {
	env := newTestEnv(t)
	d := seedReportDashboard(t, env)

	resp, err := env.reports.Build(context.Background(), app.NewReportRequest(d.ID))
	require.NoError(t, err)

	assert.Equal(t, d.ID, resp.Dashboard.ID)
	assert.True(t, resp.Today.Equal(testutil.Today))
	assert.Len(t, resp.Filtered, 3)
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, resp.ResponsibleOptions)
	require.Len(t, resp.Overdue, 1)
	assert.Equal(t, "Late", resp.Overdue[0].Name)
	assert.Equal(t, 5, resp.Overdue[0].OverdueDays)
	assert.Equal(t, 1, resp.Totals.CompletedActivities)
	assert.Equal(t, 1, resp.Totals.HighPriorityCount)
	assert.NotNil(t, resp.CustomStatuses)
}

func TestReportService_PeriodOverridesExplicitRange(t *testing.T) {
	env := newTestEnv(t)
	d := seedReportDashboard(t, env)

	req := app.NewReportRequest(d.ID)
	req.Period = "month"
	req.Criteria.StartDate = testutil.Date("2000-01-01")
	req.Criteria.EndDate = testutil.Date("2000-01-02")

	resp, err := env.reports.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", resp.Criteria.StartDate.String())
	assert.Equal(t, "2024-03-31", resp.Criteria.EndDate.String())
	names := make([]string, len(resp.Filtered))
	for i, a := range resp.Filtered {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"Late", "Open"}, names)
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, resp.ResponsibleOptions, "options come from the unfiltered set")
}

func TestReportService_Errors(t *testing.T) {
	env := newTestEnv(t)
	d := env.newDashboard(t, "Plant A")
	ctx := context.Background()

	req := app.NewReportRequest(d.ID)
	req.Period = "decade"
	_, err := env.reports.Build(ctx, req)
	var rerr *app.ReportError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, app.ReportErrInvalidPeriod, rerr.Code)

	_, err = env.reports.Build(ctx, app.NewReportRequest("missing"))
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, app.ReportErrDashboardNotFound, rerr.Code)
}

func TestAnalysisService_FallsBackWithoutModel(t *testing.T) {
	env := newTestEnv(t)
	d := seedReportDashboard(t, env)

	a, err := env.analysis.Analyze(context.Background(), app.NewReportRequest(d.ID))
	require.NoError(t, err)
	assert.Equal(t, narrative.SourceFallback, a.Source)
	assert.Contains(t, a.Text, "1 of 3 activities are completed")
}

func TestUseCaseObserver_ReceivesEvents(t *testing.T) {
	env := newTestEnv(t)
	d := seedReportDashboard(t, env)

	_, err := env.reports.Build(context.Background(), app.NewReportRequest(d.ID))
	require.NoError(t, err)

	names := env.observer.names()
	assert.Equal(t, "dashboard.create", names[0])
	assert.Contains(t, names, "activity.add")
	assert.Equal(t, "report.build", names[len(names)-1])
}
