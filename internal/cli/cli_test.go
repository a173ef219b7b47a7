package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/logging"
	"github.com/alexanderramin/tracksheet/internal/narrative"
	"github.com/alexanderramin/tracksheet/internal/repository"
	"github.com/alexanderramin/tracksheet/internal/service"
	"github.com/alexanderramin/tracksheet/internal/testutil"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteStateStore(database, testutil.NewTestUoW(database))
	dashRepo := repository.NewSQLiteDashboardRepo(database)
	workspaces := service.NewWorkspaceManager(dashRepo, store, time.Hour, logging.Discard())
	t.Cleanup(func() { _ = workspaces.Close(context.Background()) })

	clock := func() domain.Date { return testutil.Today }
	reports := service.NewReportService(workspaces, clock)
	light, err := theme.Lookup("light")
	require.NoError(t, err)

	return &App{
		Dashboards: service.NewDashboardService(dashRepo, workspaces),
		Activities: service.NewActivityService(workspaces, clock),
		Taxonomies: service.NewTaxonomyService(workspaces),
		Import:     service.NewImportService(workspaces, clock),
		Reports:    reports,
		Analysis:   service.NewAnalysisService(reports, narrative.NewService(nil)),
		Theme:      light,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiRe.ReplaceAllString(buf.String(), ""), err
}

func seedDashboard(t *testing.T, app *App, name string) *domain.Dashboard {
	t.Helper()
	d, err := app.Dashboards.Create(context.Background(), name)
	require.NoError(t, err)
	return d
}

func TestDashboardCreateAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "dashboard", "create", "North", "Plant")
	require.NoError(t, err)
	assert.Contains(t, out, "Created dashboard North Plant")

	out, err = executeCmd(t, app, "dashboard", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "North Plant")
}

func TestDashboardList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "dashboard", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No dashboards found.")
}

func TestDashboardDelete_RequiresConfirmation(t *testing.T) {
	app := testApp(t)
	seedDashboard(t, app, "Plant")

	_, err := executeCmd(t, app, "dashboard", "delete", "Plant")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := executeCmd(t, app, "dashboard", "delete", "Plant", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted dashboard Plant")
}

func TestDashboardResolution(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "activity", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dashboards yet")

	seedDashboard(t, app, "A")
	seedDashboard(t, app, "B")
	_, err = executeCmd(t, app, "activity", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dashboard")

	out, err := executeCmd(t, app, "activity", "list", "-d", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "No activities found.")
}

func TestActivityAddUpdateRemove(t *testing.T) {
	app := testApp(t)
	d := seedDashboard(t, app, "Plant")

	out, err := executeCmd(t, app, "activity", "add",
		"--name", "Pour slab",
		"--discipline", "Civil",
		"--responsible", "Ana",
		"--priority", "High",
		"--planned-start", "2024-03-01",
		"--planned-end", "2024-03-10",
		"--planned-value", "1000",
		"--depends-on", "Formwork,Rebar",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Added Pour slab")

	list, err := app.Activities.List(context.Background(), d.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	a := list[0]
	assert.Equal(t, domain.PriorityHigh, a.Priority)
	assert.Equal(t, []string{"Formwork", "Rebar"}, a.Dependencies)
	require.NotNil(t, a.PlannedValue)
	assert.Equal(t, 1000.0, *a.PlannedValue)
	assert.Nil(t, a.ActualValue, "unset amounts stay absent")

	out, err = executeCmd(t, app, "activity", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pour slab")
	assert.Contains(t, out, "R$ 1.000,00")
	assert.Contains(t, out, "10/03/2024")

	_, err = executeCmd(t, app, "activity", "update", a.ID[:6], "--status", "Completed", "--planned-end", "")
	require.NoError(t, err)
	list, _ = app.Activities.List(context.Background(), d.ID)
	assert.Equal(t, domain.StatusCompleted, list[0].ActualStatus)
	assert.Nil(t, list[0].PlannedEnd)
	assert.Equal(t, "Civil", list[0].Discipline, "untouched fields are kept")

	out, err = executeCmd(t, app, "activity", "remove", a.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Pour slab")
}

func TestActivityAdd_RejectsBadInput(t *testing.T) {
	app := testApp(t)
	seedDashboard(t, app, "Plant")

	_, err := executeCmd(t, app, "activity", "add", "--name", "X", "--planned-start", "01/03/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = executeCmd(t, app, "activity", "add", "--name", "X", "--priority", "Urgent")
	var verr *service.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestActivityImport(t *testing.T) {
	app := testApp(t)
	seedDashboard(t, app, "Plant")
	path := filepath.Join(t.TempDir(), "activities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
customStatuses:
  - name: On Hold
    color: "#F59E0B"
activities:
  - activityName: Survey
    discipline: Civil
    responsible: Ana
    actualStatus: On Hold
  - activityName: Cabling
    discipline: Electrical
    completionPercent: 150
`), 0o644))

	out, err := executeCmd(t, app, "activity", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 activities into Plant")
	assert.Contains(t, out, "Added 1 custom statuses and 0 custom risks")
	assert.Contains(t, out, "warning: ")
}

func TestTaxonomyAddAndList(t *testing.T) {
	app := testApp(t)
	seedDashboard(t, app, "Plant")

	out, err := executeCmd(t, app, "taxonomy", "add-status", "--name", "On Hold", "--color", "#F59E0B")
	require.NoError(t, err)
	assert.Contains(t, out, `Added status "On Hold" (#F59E0B)`)

	out, err = executeCmd(t, app, "taxonomy", "add-risk", "--name", "Critical")
	require.NoError(t, err)
	assert.Contains(t, out, service.DefaultCustomColor)

	out, err = executeCmd(t, app, "taxonomy", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "STATUS LABELS")
	assert.Contains(t, out, "RISK LABELS")
	assert.Contains(t, out, "On Hold")
	assert.Contains(t, out, "Critical")

	out, err = executeCmd(t, app, "taxonomy", "list", "--kind", "risk")
	require.NoError(t, err)
	assert.NotContains(t, out, "STATUS LABELS")

	_, err = executeCmd(t, app, "taxonomy", "add-status", "--name", "Completed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestTaxonomyAdd_WithoutNameNeedsTerminal(t *testing.T) {
	app := testApp(t)
	seedDashboard(t, app, "Plant")

	_, err := executeCmd(t, app, "taxonomy", "add-risk")

	assert.ErrorIs(t, err, errNotInteractive)
}

func seedReportData(t *testing.T, app *App) *domain.Dashboard {
	t.Helper()
	d := seedDashboard(t, app, "Plant")
	ctx := context.Background()
	for _, a := range []domain.Activity{
		testutil.NewTestActivity("Late pour",
			testutil.WithPlannedStart(testutil.DaysFromToday(-10)),
			testutil.WithPlannedEnd(testutil.DaysFromToday(-3)),
			testutil.WithStatus(domain.StatusDelayed),
			testutil.WithValues(testutil.Money(1000), testutil.Money(1200))),
		testutil.NewTestActivity("Wiring",
			testutil.WithDiscipline("Electrical"),
			testutil.WithResponsible("Bruno"),
			testutil.WithPlannedEnd(testutil.DaysFromToday(5)),
			testutil.WithStatus(domain.StatusNotStarted)),
	} {
		_, err := app.Activities.Add(ctx, d.ID, a)
		require.NoError(t, err)
	}
	return d
}

func TestReport(t *testing.T) {
	app := testApp(t)
	seedReportData(t, app)

	out, err := executeCmd(t, app, "report")
	require.NoError(t, err)
	for _, want := range []string{"Plant", "SUMMARY", "OVERDUE", "Late pour", "3 days", "REMAINING", "Wiring", "R$ 1.200,00"} {
		assert.Contains(t, out, want)
	}

	out, err = executeCmd(t, app, "report", "--responsible", "Bruno", "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "responsible Bruno")
	assert.Contains(t, out, "Nothing overdue.")
}

func TestReport_JSON(t *testing.T) {
	app := testApp(t)
	seedReportData(t, app)

	out, err := executeCmd(t, app, "report", "--json", "--search", "wiring")
	require.NoError(t, err)

	var body struct {
		Activities []domain.DerivedActivity `json:"activities"`
		Totals     struct {
			TotalActivities int `json:"totalActivities"`
		} `json:"totals"`
		ResponsibleOptions []string `json:"responsibleOptions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 1, body.Totals.TotalActivities)
	require.Len(t, body.Activities, 1)
	assert.Equal(t, 5, body.Activities[0].RemainingDays)
	assert.Equal(t, []string{"Ana", "Bruno"}, body.ResponsibleOptions)
}

func TestReport_BadFlags(t *testing.T) {
	app := testApp(t)
	seedReportData(t, app)

	_, err := executeCmd(t, app, "report", "--period", "fortnight")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "report", "--theme", "neon")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "report", "--start", "2024/01/01")
	assert.Error(t, err)
}

func TestAnalyze_Fallback(t *testing.T) {
	app := testApp(t)
	seedReportData(t, app)

	out, err := executeCmd(t, app, "analyze", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "## Progress")

	out, err = executeCmd(t, app, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress")
	assert.Contains(t, out, "source: fallback")
}

func TestServe_UsesConfiguredAddress(t *testing.T) {
	app := testApp(t)
	app.ServeAddr = "127.0.0.1:9999"
	var got string
	app.Serve = func(_ context.Context, addr string) error {
		got = addr
		return nil
	}

	_, err := executeCmd(t, app, "serve")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", got)

	_, err = executeCmd(t, app, "serve", "--addr", ":8181")
	require.NoError(t, err)
	assert.Equal(t, ":8181", got)
}

func TestRoot_InitAndCloseHooks(t *testing.T) {
	app := testApp(t)
	var opts Options
	closed := false
	app.Init = func(_ context.Context, o Options) error {
		opts = o
		return nil
	}
	app.Close = func(context.Context) error {
		closed = true
		return nil
	}

	_, err := executeCmd(t, app, "--config", "/tmp/ts.toml", "-v", "dashboard", "list")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ts.toml", opts.ConfigPath)
	assert.True(t, opts.Verbose)
	assert.True(t, closed)
}

func TestFindActivity(t *testing.T) {
	list := []domain.Activity{{ID: "abc123", Name: "A"}, {ID: "abd456", Name: "B"}}

	a, err := findActivity(list, "abd")
	require.NoError(t, err)
	assert.Equal(t, "B", a.Name)

	_, err = findActivity(list, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = findActivity(list, "zzz")
	assert.ErrorContains(t, err, "not found")
}
