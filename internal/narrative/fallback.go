package narrative

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/aggregate"
)

// Deterministic builds the analysis straight from the totals. It is used
// whenever the model is disabled, unreachable or returns nothing useful.
func Deterministic(t aggregate.Totals) *Analysis {
	if t.TotalActivities == 0 {
		return &Analysis{
			Text:   "No activities match the current filters, so there is nothing to analyze yet.",
			Source: SourceFallback,
		}
	}

	var b strings.Builder
	b.WriteString("## Progress\n\n")
	fmt.Fprintf(&b, "%d of %d activities are completed (%.1f%%).", t.CompletedActivities, t.TotalActivities, t.OverallCompletionPct)
	switch {
	case t.OverallCompletionPct >= 75:
		b.WriteString(" The portfolio is close to done.\n\n")
	case t.OverallCompletionPct >= 40:
		b.WriteString(" Work is well under way.\n\n")
	default:
		b.WriteString(" Most of the work is still ahead.\n\n")
	}

	b.WriteString("## Schedule\n\n")
	if t.OverdueCount == 0 {
		b.WriteString("No activity is flagged as delayed.")
	} else {
		fmt.Fprintf(&b, "%d delayed %s account for %d overdue days.",
			t.OverdueCount, plural(t.OverdueCount, "activity", "activities"), t.TotalOverdueDays)
	}
	fmt.Fprintf(&b, " Open activities have %d days remaining in total.\n\n", t.TotalRemainingDays)

	b.WriteString("## Cost\n\n")
	fmt.Fprintf(&b, "Planned %.2f against actual %.2f. ", t.PlannedCost, t.ActualCost)
	switch {
	case t.CostDeviation > 0:
		fmt.Fprintf(&b, "Actual spending exceeds plan by %.2f.\n\n", t.CostDeviation)
	case t.CostDeviation < 0:
		fmt.Fprintf(&b, "Actual spending is %.2f under plan.\n\n", math.Abs(t.CostDeviation))
	default:
		b.WriteString("Spending matches plan.\n\n")
	}

	var attention []string
	if t.OverdueCount > 0 {
		attention = append(attention, "recover the delayed activities")
	}
	if t.CostDeviation > 0 {
		attention = append(attention, "review the cost overrun")
	}
	if t.HighRiskCount > 0 {
		attention = append(attention, fmt.Sprintf("monitor the %d high risk %s",
			t.HighRiskCount, plural(t.HighRiskCount, "activity", "activities")))
	}
	if t.HighPriorityCount > 0 {
		attention = append(attention, fmt.Sprintf("keep the %d high priority %s moving",
			t.HighPriorityCount, plural(t.HighPriorityCount, "activity", "activities")))
	}
	if len(attention) > 0 {
		b.WriteString("## Attention\n\n")
		for _, a := range attention {
			b.WriteString("- " + strings.ToUpper(a[:1]) + a[1:] + ".\n")
		}
	}

	return &Analysis{Text: strings.TrimRight(b.String(), "\n"), Source: SourceFallback}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
