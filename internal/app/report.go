package app

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/engine"
)

// ReportRequest selects a dashboard and the filters for one pipeline run.
type ReportRequest struct {
	DashboardID string
	Criteria    domain.FilterCriteria
	// Period is a preset (week, month, ...). When set to anything other
	// than "all" it replaces the explicit date bounds in Criteria.
	Period string
	// Today overrides the clock, for reproducible reports.
	Today *domain.Date
}

func NewReportRequest(dashboardID string) ReportRequest {
	return ReportRequest{
		DashboardID: dashboardID,
		Criteria:    domain.NewFilterCriteria(),
	}
}

// ReportResponse is the engine report plus what a renderer needs around it.
type ReportResponse struct {
	Dashboard          domain.Dashboard       `json:"dashboard"`
	Criteria           domain.FilterCriteria  `json:"criteria"`
	Period             string                 `json:"period,omitempty"`
	ResponsibleOptions []string               `json:"responsibleOptions"`
	CustomStatuses     []domain.TaxonomyEntry `json:"customStatuses"`
	CustomRisks        []domain.TaxonomyEntry `json:"customRisks"`
	engine.Report
}

type ReportErrorCode string

const (
	ReportErrInvalidPeriod     ReportErrorCode = "INVALID_PERIOD"
	ReportErrDashboardNotFound ReportErrorCode = "DASHBOARD_NOT_FOUND"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}
