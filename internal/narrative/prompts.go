package narrative

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/aggregate"
)

const systemPrompt = `You are a project controls analyst. You write concise, professional
performance analyses of activity portfolios for project managers.

Rules:
- Use only the figures you are given. Never invent numbers.
- Cover overall progress, schedule adherence and cost management.
- Highlight strengths first, then the areas that need attention.
- Answer in Markdown with short paragraphs or bullet lists. No tables.`

// BuildPrompt renders the report totals as the user prompt.
func BuildPrompt(t aggregate.Totals) string {
	var b strings.Builder
	b.WriteString("Write a concise, professional analysis of activity performance based on the following data:\n")
	fmt.Fprintf(&b, "- Activities tracked: %d\n", t.TotalActivities)
	fmt.Fprintf(&b, "- Overall completion: %.1f%% (%d of %d completed)\n",
		t.OverallCompletionPct, t.CompletedActivities, t.TotalActivities)
	fmt.Fprintf(&b, "- Accumulated overdue days: %d (%d delayed activities)\n", t.TotalOverdueDays, t.OverdueCount)
	fmt.Fprintf(&b, "- Remaining days across open activities: %d\n", t.TotalRemainingDays)
	fmt.Fprintf(&b, "- Planned cost: %.2f\n", t.PlannedCost)
	fmt.Fprintf(&b, "- Actual cost: %.2f\n", t.ActualCost)
	fmt.Fprintf(&b, "- Cost deviation: %.2f (positive means actual exceeded planned)\n", t.CostDeviation)
	fmt.Fprintf(&b, "- High priority activities: %d\n", t.HighPriorityCount)
	fmt.Fprintf(&b, "- High risk activities: %d\n", t.HighRiskCount)
	return b.String()
}
