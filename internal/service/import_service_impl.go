package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/importer"
)

type importService struct {
	workspaces *WorkspaceManager
	clock      Clock
	observer   UseCaseObserver
}

func NewImportService(workspaces *WorkspaceManager, clock Clock, observers ...UseCaseObserver) ImportService {
	if clock == nil {
		clock = domain.Today
	}
	return &importService{workspaces: workspaces, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

// ImportFile appends the activities and custom taxonomies of a JSON or YAML
// file to the dashboard. Nothing is added when validation finds an error.
func (s *importService) ImportFile(ctx context.Context, dashboardID, path string) (res *app.ImportResult, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"dashboard_id": dashboardID, "path": path}
		if res != nil {
			fields["activities"] = res.ActivityCount
		}
		observe(ctx, s.observer, "activity.import", start, err, fields)
	}()

	file, err := importer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	ws, err := s.workspaces.Open(ctx, dashboardID)
	if err != nil {
		return nil, err
	}

	var result importer.Result
	err = ws.Mutate(func(st *domain.DashboardState) error {
		result = importer.Validate(file, *st)
		if !result.OK() {
			return formatValidationErrors(result.Errors)
		}
		converted := importer.Convert(file, s.clock())
		st.Activities = append(st.Activities, converted.Activities...)
		st.CustomStatuses = append(st.CustomStatuses, converted.CustomStatuses...)
		st.CustomRisks = append(st.CustomRisks, converted.CustomRisks...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &app.ImportResult{
		Dashboard:     ws.Dashboard(),
		ActivityCount: len(file.Activities),
		StatusesAdded: len(file.CustomStatuses),
		RisksAdded:    len(file.CustomRisks),
		Warnings:      result.Warnings,
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return &ValidationError{Message: msg}
}
