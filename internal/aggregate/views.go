package aggregate

import (
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Views bundles every aggregate computed for one report.
type Views struct {
	PlannedStatus          []StatusBucket           `json:"plannedStatus"`
	RealStatus             []StatusBucket           `json:"realStatus"`
	StatusComparison       []StatusRow              `json:"statusComparison"`
	CostByDiscipline       []DisciplineCost         `json:"costByDiscipline"`
	CompletionByDiscipline []DisciplineCompletion   `json:"completionByDiscipline"`
	Priorities             []LabelCount             `json:"priorities"`
	Risks                  []LabelCount             `json:"riskDistribution"`
	Responsibles           []ResponsibleSummary     `json:"responsibles"`
	Matrix                 Matrix                   `json:"matrix"`
	Overdue                []domain.DerivedActivity `json:"overdue"`
	Remaining              []domain.DerivedActivity `json:"remaining"`
	Deviation              []DeviationPoint         `json:"deadlineDeviation"`
	Totals                 Totals                   `json:"totals"`
}

// Build runs the independent aggregators concurrently. Each goroutine owns
// one field of the result, so the outcome does not depend on scheduling.
func Build(derived []domain.DerivedActivity, statusLabels []string, today domain.Date) Views {
	var v Views
	var g errgroup.Group

	g.Go(func() error {
		v.PlannedStatus = StatusSummary(derived, statusLabels, PlannedStatus)
		return nil
	})
	g.Go(func() error {
		v.RealStatus = StatusSummary(derived, statusLabels, ActualStatus)
		return nil
	})
	g.Go(func() error {
		v.CostByDiscipline = CostByDiscipline(derived)
		return nil
	})
	g.Go(func() error {
		v.CompletionByDiscipline = CompletionByDiscipline(derived)
		return nil
	})
	g.Go(func() error {
		v.Priorities = PriorityCounts(derived)
		v.Risks = RiskCounts(derived)
		return nil
	})
	g.Go(func() error {
		v.Responsibles = SummarizeByResponsible(derived)
		return nil
	})
	g.Go(func() error {
		v.Matrix = BuildMatrix(derived)
		return nil
	})
	g.Go(func() error {
		v.Overdue = OverdueList(derived)
		v.Remaining = RemainingList(derived)
		return nil
	})
	g.Go(func() error {
		v.Deviation = DeadlineDeviation(derived, today)
		v.Totals = ComputeTotals(derived)
		return nil
	})
	// Aggregators are total functions; Wait only joins.
	_ = g.Wait()

	v.StatusComparison = StatusComparison(v.PlannedStatus, v.RealStatus)
	return v
}
