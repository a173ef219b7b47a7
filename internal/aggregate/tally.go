package aggregate

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
)

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Tally counts activities by the key returned from fn, keeping keys in order
// of first appearance.
func Tally(derived []domain.DerivedActivity, fn func(a *domain.Activity) string) []LabelCount {
	out := []LabelCount{}
	index := make(map[string]int)
	for i := range derived {
		key := fn(&derived[i].Activity)
		j, ok := index[key]
		if !ok {
			j = len(out)
			index[key] = j
			out = append(out, LabelCount{Label: key})
		}
		out[j].Count++
	}
	return out
}

func PriorityCounts(derived []domain.DerivedActivity) []LabelCount {
	return Tally(derived, func(a *domain.Activity) string { return string(a.Priority) })
}

func RiskCounts(derived []domain.DerivedActivity) []LabelCount {
	return Tally(derived, func(a *domain.Activity) string { return a.AssociatedRisk })
}

// CountOf returns the count recorded for label, or 0.
func CountOf(counts []LabelCount, label string) int {
	for _, c := range counts {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}
