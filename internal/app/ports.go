package app

import (
	"context"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/narrative"
)

type ReportUseCase interface {
	Build(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}

type AnalyzeUseCase interface {
	Analyze(ctx context.Context, req ReportRequest) (*narrative.Analysis, error)
}

// ImportResult holds the outcome of an activity file import.
type ImportResult struct {
	Dashboard     domain.Dashboard
	ActivityCount int
	StatusesAdded int
	RisksAdded    int
	Warnings      []string
}

type ImportActivitiesUseCase interface {
	ImportFile(ctx context.Context, dashboardID, path string) (*ImportResult, error)
}
