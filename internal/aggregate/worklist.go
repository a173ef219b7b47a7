package aggregate

import (
	"sort"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// OverdueList returns the Delayed activities by ascending planned end date.
// Activities without a planned end date go last, keeping their input order.
func OverdueList(derived []domain.DerivedActivity) []domain.DerivedActivity {
	out := []domain.DerivedActivity{}
	for _, d := range derived {
		if d.ActualStatus == domain.StatusDelayed {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PlannedEnd, out[j].PlannedEnd
		if (a == nil) != (b == nil) {
			return a != nil
		}
		if a == nil {
			return false
		}
		return a.Before(*b)
	})
	return out
}

// RemainingList returns the open activities with days left before their
// planned end, fewest days first.
func RemainingList(derived []domain.DerivedActivity) []domain.DerivedActivity {
	out := []domain.DerivedActivity{}
	for _, d := range derived {
		if d.RemainingDays > 0 && !d.IsCompleted() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RemainingDays < out[j].RemainingDays
	})
	return out
}
