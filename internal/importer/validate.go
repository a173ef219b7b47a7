package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/taxonomy"
)

// Result collects every problem found in a file. Errors block the import;
// warnings are reported and the data is normalized by Convert.
type Result struct {
	Errors   []error
	Warnings []string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Errorf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the file against existing custom taxonomies of the target
// dashboard. It never stops at the first problem.
func Validate(file *ActivityFile, existing domain.DashboardState) Result {
	var res Result

	statuses := validateTaxonomy(&res, domain.TaxonomyStatus, "customStatuses", existing.CustomStatuses, file.CustomStatuses)
	risks := validateTaxonomy(&res, domain.TaxonomyRisk, "customRisks", existing.CustomRisks, file.CustomRisks)

	if len(file.Activities) == 0 {
		res.warnf("file contains no activities")
	}

	knownStatus := setOf(taxonomy.ResolveKind(domain.TaxonomyStatus, statuses))
	knownRisk := setOf(taxonomy.ResolveKind(domain.TaxonomyRisk, risks))

	for i, a := range file.Activities {
		prefix := fmt.Sprintf("activities[%d]", i)
		if strings.TrimSpace(a.Name) == "" {
			res.errorf("%s.activityName is required", prefix)
		} else {
			prefix = fmt.Sprintf("activities[%d] (%s)", i, a.Name)
		}

		if a.Priority != "" && !domain.ValidPriorities[domain.Priority(a.Priority)] {
			res.errorf("%s.priority: invalid value %q (expected High, Medium or Low)", prefix, a.Priority)
		}

		for _, f := range []struct{ name, value string }{
			{"plannedStartDate", a.PlannedStart},
			{"plannedEndDate", a.PlannedEnd},
			{"actualStartDate", a.ActualStart},
			{"actualEndDate", a.ActualEnd},
			{"lastUpdatedDate", a.LastUpdated},
		} {
			if strings.TrimSpace(f.value) == "" {
				continue
			}
			if _, err := domain.ParseDate(f.value); err != nil {
				res.errorf("%s.%s: invalid date %q (expected YYYY-MM-DD)", prefix, f.name, f.value)
			}
		}
		if ps, pe := domain.ParseOptionalDate(a.PlannedStart), domain.ParseOptionalDate(a.PlannedEnd); ps != nil && pe != nil && pe.Before(*ps) {
			res.warnf("%s: plannedEndDate %s is before plannedStartDate %s", prefix, pe, ps)
		}

		for _, f := range []struct {
			name  string
			value *float64
		}{
			{"plannedValue", a.PlannedValue},
			{"actualValue", a.ActualValue},
			{"actualCost", a.ActualCost},
		} {
			if f.value != nil && *f.value < 0 {
				res.errorf("%s.%s must not be negative", prefix, f.name)
			}
		}

		if c := a.CompletionPercent; c != nil && (*c < 0 || *c > 100) {
			res.warnf("%s.completionPercent %.1f is outside 0..100 and will be clamped", prefix, *c)
		}

		for _, f := range []struct{ name, value string }{
			{"plannedStatus", a.PlannedStatus},
			{"actualStatus", a.ActualStatus},
		} {
			if f.value != "" && !knownStatus[f.value] {
				res.warnf("%s.%s %q is not a known status and will not appear in status summaries", prefix, f.name, f.value)
			}
		}
		if a.AssociatedRisk != "" && !knownRisk[a.AssociatedRisk] {
			res.warnf("%s.associatedRisk %q is not a known risk", prefix, a.AssociatedRisk)
		}
	}

	return res
}

// validateTaxonomy adds the file's entries one by one on top of existing and
// returns the combined list of accepted entries.
func validateTaxonomy(res *Result, kind domain.TaxonomyKind, field string, existing []domain.TaxonomyEntry, entries []TaxonomyImport) []domain.TaxonomyEntry {
	combined := existing
	for i, e := range entries {
		next, err := taxonomy.Add(kind, combined, domain.TaxonomyEntry{Name: e.Name, Color: e.Color})
		if err != nil {
			res.errorf("%s[%d]: %w", field, i, err)
			continue
		}
		combined = next
	}
	return combined
}

func setOf(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
