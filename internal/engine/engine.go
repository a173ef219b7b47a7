// Package engine runs the full report pipeline over one input snapshot:
// resolve taxonomies, filter, derive metrics, aggregate.
package engine

import (
	"github.com/alexanderramin/tracksheet/internal/aggregate"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/filter"
	"github.com/alexanderramin/tracksheet/internal/metrics"
	"github.com/alexanderramin/tracksheet/internal/taxonomy"
)

// Snapshot is the complete input of one run. Run never modifies it.
type Snapshot struct {
	Activities     []domain.Activity
	CustomStatuses []domain.TaxonomyEntry
	CustomRisks    []domain.TaxonomyEntry
	Criteria       domain.FilterCriteria
	Today          domain.Date
}

// Report is the complete output of one run.
type Report struct {
	Today    domain.Date              `json:"today"`
	Statuses []string                 `json:"statuses"`
	Risks    []string                 `json:"risks"`
	Filtered []domain.DerivedActivity `json:"activities"`
	aggregate.Views
}

// Run computes a fresh report from s. Identical snapshots produce equal
// reports.
func Run(s Snapshot) Report {
	statuses := taxonomy.ResolveKind(domain.TaxonomyStatus, s.CustomStatuses)
	risks := taxonomy.ResolveKind(domain.TaxonomyRisk, s.CustomRisks)

	filtered := filter.Filter(s.Activities, s.Criteria)
	derived := metrics.DeriveAll(filtered, s.Today)

	return Report{
		Today:    s.Today,
		Statuses: statuses,
		Risks:    risks,
		Filtered: derived,
		Views:    aggregate.Build(derived, statuses, s.Today),
	}
}
