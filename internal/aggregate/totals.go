package aggregate

import (
	"sort"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Totals are the headline figures of a report and the inputs of the
// narrative analysis.
type Totals struct {
	TotalActivities      int     `json:"totalActivities"`
	CompletedActivities  int     `json:"completedActivities"`
	OverallCompletionPct float64 `json:"overallCompletionPct"`
	OverdueCount         int     `json:"overdueCount"`
	TotalOverdueDays     int     `json:"totalOverdueDays"`
	TotalRemainingDays   int     `json:"totalRemainingDays"`
	PlannedCost          float64 `json:"plannedCost"`
	ActualCost           float64 `json:"actualCost"`
	CostDeviation        float64 `json:"costDeviation"`
	HighPriorityCount    int     `json:"highPriorityCount"`
	HighRiskCount        int     `json:"highRiskCount"`
}

// OverallCompletion is the percentage of Completed activities, 0 for an
// empty set.
func OverallCompletion(derived []domain.DerivedActivity) float64 {
	completed := 0
	for i := range derived {
		if derived[i].IsCompleted() {
			completed++
		}
	}
	return Percent(completed, len(derived))
}

// ComputeTotals sums the headline figures. Planned and actual cost are the
// planned and actual values; absent amounts count as 0.
func ComputeTotals(derived []domain.DerivedActivity) Totals {
	t := Totals{TotalActivities: len(derived)}
	for i := range derived {
		d := &derived[i]
		if d.IsCompleted() {
			t.CompletedActivities++
		}
		if d.ActualStatus == domain.StatusDelayed {
			t.OverdueCount++
		}
		t.TotalOverdueDays += d.OverdueDays
		t.TotalRemainingDays += d.RemainingDays
		t.PlannedCost += domain.FloatOrZero(d.PlannedValue)
		t.ActualCost += domain.FloatOrZero(d.ActualValue)
		if d.Priority == domain.PriorityHigh {
			t.HighPriorityCount++
		}
		if d.AssociatedRisk == domain.RiskHigh {
			t.HighRiskCount++
		}
	}
	t.CostDeviation = t.ActualCost - t.PlannedCost
	t.OverallCompletionPct = Percent(t.CompletedActivities, t.TotalActivities)
	return t
}

// DeviationPoint is how many days an activity finished, or is running,
// past its planned end. Negative values mean ahead of plan.
type DeviationPoint struct {
	ID       string `json:"id"`
	Activity string `json:"activity"`
	Days     int    `json:"days"`
}

// DeadlineDeviation measures actual end minus planned end, or today minus
// planned end while the activity has no actual end. Activities without a
// planned end score 0. Largest deviation first.
func DeadlineDeviation(derived []domain.DerivedActivity, today domain.Date) []DeviationPoint {
	out := make([]DeviationPoint, 0, len(derived))
	for i := range derived {
		d := &derived[i]
		p := DeviationPoint{ID: d.ID, Activity: d.Name}
		if d.PlannedEnd != nil {
			end := today
			if d.ActualEnd != nil {
				end = *d.ActualEnd
			}
			p.Days = d.PlannedEnd.DaysUntil(end)
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Days > out[j].Days
	})
	return out
}
