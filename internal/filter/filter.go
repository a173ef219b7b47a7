// Package filter selects the working set of activities for a report.
package filter

import (
	"strings"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Filter returns the activities that satisfy every predicate in c, in their
// original order. The input slice is not modified.
func Filter(activities []domain.Activity, c domain.FilterCriteria) []domain.Activity {
	term := strings.ToLower(c.SearchTerm)
	out := make([]domain.Activity, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		if matchesLowerSearch(a, term) &&
			MatchesStatus(a, c.StatusFilter) &&
			MatchesResponsible(a, c.ResponsibleFilter) &&
			MatchesDate(a, c.StartDate, c.EndDate) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// MatchesSearch reports whether term is empty or appears, case-insensitively,
// in the string form of any field of a.
func MatchesSearch(a *domain.Activity, term string) bool {
	return matchesLowerSearch(a, strings.ToLower(term))
}

func matchesLowerSearch(a *domain.Activity, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	for _, f := range a.SearchFields() {
		if strings.Contains(strings.ToLower(f), lowerTerm) {
			return true
		}
	}
	return false
}

// MatchesStatus compares against the actual status. An empty filter behaves
// like "All".
func MatchesStatus(a *domain.Activity, status string) bool {
	return isWildcard(status) || a.ActualStatus == status
}

func MatchesResponsible(a *domain.Activity, responsible string) bool {
	return isWildcard(responsible) || a.Responsible == responsible
}

// MatchesDate applies the inclusive range [start, end] to the activity's
// reference date. The range is only active when both bounds are set; an
// activity without a reference date fails an active range.
func MatchesDate(a *domain.Activity, start, end *domain.Date) bool {
	if start == nil || end == nil {
		return true
	}
	ref := a.ReferenceDate()
	if ref == nil {
		return false
	}
	return !ref.Before(*start) && !ref.After(*end)
}

// ResponsibleOptions lists the distinct responsible names of activities in
// first-seen order, skipping blanks.
func ResponsibleOptions(activities []domain.Activity) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range activities {
		if a.Responsible == "" || seen[a.Responsible] {
			continue
		}
		seen[a.Responsible] = true
		out = append(out, a.Responsible)
	}
	return out
}

func isWildcard(v string) bool {
	return v == "" || v == domain.FilterAll
}
