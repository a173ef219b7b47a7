package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/engine"
	"github.com/alexanderramin/tracksheet/internal/filter"
	"github.com/alexanderramin/tracksheet/internal/narrative"
	"github.com/alexanderramin/tracksheet/internal/repository"
)

type reportService struct {
	workspaces *WorkspaceManager
	clock      Clock
	observer   UseCaseObserver
}

func NewReportService(workspaces *WorkspaceManager, clock Clock, observers ...UseCaseObserver) ReportService {
	if clock == nil {
		clock = domain.Today
	}
	return &reportService{workspaces: workspaces, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

// Build snapshots the dashboard and runs the engine over the snapshot. The
// workspace lock is held only while copying.
func (s *reportService) Build(ctx context.Context, req app.ReportRequest) (resp *app.ReportResponse, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"dashboard_id": req.DashboardID}
		if resp != nil {
			fields["activities"] = len(resp.Filtered)
			fields["overdue"] = len(resp.Overdue)
		}
		observe(ctx, s.observer, "report.build", start, err, fields)
	}()

	today := s.clock()
	if req.Today != nil {
		today = *req.Today
	}

	criteria := req.Criteria
	if req.Period != "" && req.Period != string(filter.PeriodAll) {
		from, to, err := filter.PeriodRange(filter.Period(req.Period), today)
		if err != nil {
			return nil, &app.ReportError{Code: app.ReportErrInvalidPeriod, Message: err.Error()}
		}
		criteria.StartDate, criteria.EndDate = from, to
	}

	ws, err := s.workspaces.Open(ctx, req.DashboardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.ReportError{Code: app.ReportErrDashboardNotFound, Message: fmt.Sprintf("dashboard %s not found", req.DashboardID)}
		}
		return nil, err
	}
	st := ws.State()

	report := engine.Run(engine.Snapshot{
		Activities:     st.Activities,
		CustomStatuses: st.CustomStatuses,
		CustomRisks:    st.CustomRisks,
		Criteria:       criteria,
		Today:          today,
	})

	return &app.ReportResponse{
		Dashboard:          ws.Dashboard(),
		Criteria:           criteria,
		Period:             req.Period,
		ResponsibleOptions: filter.ResponsibleOptions(st.Activities),
		CustomStatuses:     nonNilEntries(st.CustomStatuses),
		CustomRisks:        nonNilEntries(st.CustomRisks),
		Report:             report,
	}, nil
}

func nonNilEntries(in []domain.TaxonomyEntry) []domain.TaxonomyEntry {
	if in == nil {
		return []domain.TaxonomyEntry{}
	}
	return in
}

type analysisService struct {
	reports  ReportService
	analyzer narrative.Analyzer
	observer UseCaseObserver
}

func NewAnalysisService(reports ReportService, analyzer narrative.Analyzer, observers ...UseCaseObserver) AnalysisService {
	return &analysisService{reports: reports, analyzer: analyzer, observer: useCaseObserverOrNoop(observers)}
}

func (s *analysisService) Analyze(ctx context.Context, req app.ReportRequest) (*narrative.Analysis, error) {
	report, err := s.reports.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeReport(ctx, report)
}

func (s *analysisService) AnalyzeReport(ctx context.Context, report *app.ReportResponse) (a *narrative.Analysis, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"dashboard_id": report.Dashboard.ID}
		if a != nil {
			fields["source"] = a.Source
		}
		observe(ctx, s.observer, "report.analyze", start, err, fields)
	}()
	return s.analyzer.Analyze(ctx, report.Totals)
}
