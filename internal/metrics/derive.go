// Package metrics computes the per-activity schedule metrics.
package metrics

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
)

type Result struct {
	OverdueDays   int
	RemainingDays int
}

// Derive computes the overdue and remaining day counts of a relative to
// today. Missing end dates yield 0 for the affected metric.
func Derive(a *domain.Activity, today domain.Date) Result {
	return Result{
		OverdueDays:   overdueDays(a, today),
		RemainingDays: remainingDays(a, today),
	}
}

func overdueDays(a *domain.Activity, today domain.Date) int {
	plannedEnd := a.PlannedEnd
	if plannedEnd == nil {
		return 0
	}

	switch a.ActualStatus {
	case domain.StatusDelayed:
		return max(0, plannedEnd.DaysUntil(today))
	case domain.StatusCompleted:
		if a.ActualEnd != nil && a.ActualEnd.After(*plannedEnd) {
			return plannedEnd.DaysUntil(*a.ActualEnd)
		}
	case domain.StatusInProgress, domain.StatusNotStarted:
		if today.After(*plannedEnd) {
			return plannedEnd.DaysUntil(today)
		}
	}
	return 0
}

func remainingDays(a *domain.Activity, today domain.Date) int {
	if a.IsCompleted() || a.PlannedEnd == nil || !a.PlannedEnd.After(today) {
		return 0
	}
	return today.DaysUntil(*a.PlannedEnd)
}

// DeriveAll attaches metrics to every activity, preserving order. The
// returned activities are copies.
func DeriveAll(activities []domain.Activity, today domain.Date) []domain.DerivedActivity {
	out := make([]domain.DerivedActivity, len(activities))
	for i := range activities {
		r := Derive(&activities[i], today)
		out[i] = domain.DerivedActivity{
			Activity:      activities[i].Clone(),
			OverdueDays:   r.OverdueDays,
			RemainingDays: r.RemainingDays,
		}
	}
	return out
}
