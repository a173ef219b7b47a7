package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Converted is a validated file turned into domain values.
type Converted struct {
	Activities     []domain.Activity
	CustomStatuses []domain.TaxonomyEntry
	CustomRisks    []domain.TaxonomyEntry
}

// Convert maps the file onto domain activities with fresh IDs. Call
// Validate first; Convert assumes the file has no errors. Missing
// enumerations get the same defaults as a new activity form, completion is
// clamped to 0..100 and lastUpdatedDate defaults to today.
func Convert(file *ActivityFile, today domain.Date) Converted {
	out := Converted{
		Activities:     make([]domain.Activity, 0, len(file.Activities)),
		CustomStatuses: convertTaxonomy(file.CustomStatuses),
		CustomRisks:    convertTaxonomy(file.CustomRisks),
	}

	for _, a := range file.Activities {
		act := domain.Activity{
			ID:                uuid.New().String(),
			Name:              strings.TrimSpace(a.Name),
			Discipline:        strings.TrimSpace(a.Discipline),
			Responsible:       strings.TrimSpace(a.Responsible),
			Priority:          domain.Priority(domain.CoalesceStr(a.Priority, string(domain.PriorityMedium))),
			Notes:             a.Notes,
			Dependencies:      a.Dependencies,
			RequiredResources: a.RequiredResources,
			DocumentLink:      a.DocumentLink,
			PlannedStart:      domain.ParseOptionalDate(a.PlannedStart),
			PlannedEnd:        domain.ParseOptionalDate(a.PlannedEnd),
			ActualStart:       domain.ParseOptionalDate(a.ActualStart),
			ActualEnd:         domain.ParseOptionalDate(a.ActualEnd),
			PlannedStatus:     domain.CoalesceStr(a.PlannedStatus, domain.StatusNotStarted),
			ActualStatus:      domain.CoalesceStr(a.ActualStatus, domain.StatusNotStarted),
			PlannedValue:      a.PlannedValue,
			ActualValue:       a.ActualValue,
			ActualCost:        a.ActualCost,
			AssociatedRisk:    domain.CoalesceStr(a.AssociatedRisk, domain.RiskLow),
			LastUpdated:       domain.CoalesceDate(domain.ParseOptionalDate(a.LastUpdated), &today),
		}
		if a.CompletionPercent != nil {
			act.CompletionPercent = min(max(*a.CompletionPercent, 0), 100)
		}
		out.Activities = append(out.Activities, act.Clone())
	}

	return out
}

func convertTaxonomy(entries []TaxonomyImport) []domain.TaxonomyEntry {
	out := make([]domain.TaxonomyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.TaxonomyEntry{Name: strings.TrimSpace(e.Name), Color: e.Color})
	}
	return out
}
