package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/aggregate"
	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

const progressWidth = 20

// FormatReport renders every section of a report, in dashboard order.
func FormatReport(r *app.ReportResponse, t theme.Theme) string {
	p := theme.Palette{Theme: t, CustomStatuses: r.CustomStatuses, CustomRisks: r.CustomRisks}

	sections := []string{
		FormatReportHeader(r),
		FormatTotals(r.Totals),
		Header("Status: planned vs real") + "\n" + FormatStatusComparison(r.StatusComparison, p),
		Header("Cost by discipline") + "\n" + FormatCostByDiscipline(r.CostByDiscipline),
		Header("Completion by discipline") + "\n" + FormatCompletionByDiscipline(r.CompletionByDiscipline),
		Header("Priorities") + "\n" + FormatLabelCounts("Priority", r.Priorities),
		Header("Risks") + "\n" + FormatRiskCounts(r.Views.Risks, p),
		Header("Responsibles") + "\n" + FormatResponsibles(r.Responsibles),
		Header("Discipline x responsible") + "\n" + RenderHeatmap(r.Matrix, t),
		Header("Overdue") + "\n" + FormatOverdue(r.Overdue),
		Header("Remaining") + "\n" + FormatRemaining(r.Remaining),
		Header("Deadline deviation") + "\n" + FormatDeviation(r.Deviation),
		Header("Activities") + "\n" + FormatActivityRows(r.Filtered, p),
	}
	return strings.Join(sections, "\n\n")
}

// FormatReportHeader names the dashboard and the active filters.
func FormatReportHeader(r *app.ReportResponse) string {
	var filters []string
	c := r.Criteria
	if c.SearchTerm != "" {
		filters = append(filters, fmt.Sprintf("search %q", c.SearchTerm))
	}
	if c.StatusFilter != "" && c.StatusFilter != domain.FilterAll {
		filters = append(filters, "status "+c.StatusFilter)
	}
	if c.ResponsibleFilter != "" && c.ResponsibleFilter != domain.FilterAll {
		filters = append(filters, "responsible "+c.ResponsibleFilter)
	}
	if c.HasDateRange() {
		filters = append(filters, fmt.Sprintf("%s to %s", FormatDate(c.StartDate), FormatDate(c.EndDate)))
	}
	if r.Period != "" {
		filters = append(filters, "period "+r.Period)
	}

	line := Bold(r.Dashboard.Name) + Dim(fmt.Sprintf("  as of %s", FormatDate(&r.Today)))
	if len(filters) > 0 {
		line += "\n" + Dim("filters: "+strings.Join(filters, ", "))
	}
	return line
}

// FormatTotals renders the headline figures in a box.
func FormatTotals(t aggregate.Totals) string {
	rows := [][2]string{
		{"Activities", fmt.Sprintf("%d (%d completed)", t.TotalActivities, t.CompletedActivities)},
		{"Completion", RenderProgress(t.OverallCompletionPct, progressWidth)},
		{"Overdue", fmt.Sprintf("%d, %s late in total", t.OverdueCount, FormatDays(t.TotalOverdueDays))},
		{"Remaining", FormatDays(t.TotalRemainingDays) + " across open work"},
		{"Planned value", FormatAmount(t.PlannedCost)},
		{"Actual value", FormatAmount(t.ActualCost)},
		{"Deviation", SignedStyle(t.CostDeviation).Render(FormatAmount(t.CostDeviation))},
		{"High priority", fmt.Sprintf("%d", t.HighPriorityCount)},
		{"High risk", fmt.Sprintf("%d", t.HighRiskCount)},
	}
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%s %s", StyleDim.Render(fmt.Sprintf("%-14s", r[0])), r[1])
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return RenderBox("Summary", b.String())
}

func FormatStatusComparison(rows []aggregate.StatusRow, p theme.Palette) string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{Badge(r.Status, p.StatusBadge(r.Status)), fmt.Sprintf("%d", r.Planned), fmt.Sprintf("%d", r.Real)}
	}
	return RenderAlignedTable([]string{"Status", "Planned", "Real"}, []Align{AlignLeft, AlignRight, AlignRight}, out)
}

func FormatCostByDiscipline(rows []aggregate.DisciplineCost) string {
	if len(rows) == 0 {
		return Dim("No activities.")
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			label(r.Discipline),
			FormatAmount(r.Planned),
			FormatAmount(r.Actual),
			SignedStyle(r.Deviation).Render(FormatAmount(r.Deviation)),
		}
	}
	return RenderAlignedTable(
		[]string{"Discipline", "Planned", "Actual", "Deviation"},
		[]Align{AlignLeft, AlignRight, AlignRight, AlignRight},
		out,
	)
}

func FormatCompletionByDiscipline(rows []aggregate.DisciplineCompletion) string {
	if len(rows) == 0 {
		return Dim("No activities.")
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			label(r.Discipline),
			fmt.Sprintf("%d/%d", r.Completed, r.Total),
			RenderProgress(r.Percent, progressWidth),
		}
	}
	return RenderAlignedTable([]string{"Discipline", "Done", "Completion"}, []Align{AlignLeft, AlignRight}, out)
}

func FormatLabelCounts(title string, counts []aggregate.LabelCount) string {
	if len(counts) == 0 {
		return Dim("No activities.")
	}
	out := make([][]string, len(counts))
	for i, c := range counts {
		out[i] = []string{label(c.Label), fmt.Sprintf("%d", c.Count)}
	}
	return RenderAlignedTable([]string{title, "Count"}, []Align{AlignLeft, AlignRight}, out)
}

// FormatRiskCounts is FormatLabelCounts with risk badges.
func FormatRiskCounts(counts []aggregate.LabelCount, p theme.Palette) string {
	if len(counts) == 0 {
		return Dim("No activities.")
	}
	out := make([][]string, len(counts))
	for i, c := range counts {
		out[i] = []string{Badge(label(c.Label), p.RiskBadge(c.Label)), fmt.Sprintf("%d", c.Count)}
	}
	return RenderAlignedTable([]string{"Risk", "Count"}, []Align{AlignLeft, AlignRight}, out)
}

func FormatResponsibles(rows []aggregate.ResponsibleSummary) string {
	if len(rows) == 0 {
		return Dim("No activities.")
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			label(r.Responsible),
			fmt.Sprintf("%d", r.Total),
			StyleGreen.Render(fmt.Sprintf("%d", r.Completed)),
			StyleBlue.Render(fmt.Sprintf("%d", r.InProgress)),
			StyleRed.Render(fmt.Sprintf("%d", r.Delayed)),
			StyleDim.Render(fmt.Sprintf("%d", r.NotStarted)),
		}
	}
	return RenderAlignedTable(
		[]string{"Responsible", "Total", "Completed", "In Progress", "Delayed", "Not Started"},
		[]Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
		out,
	)
}

func FormatOverdue(list []domain.DerivedActivity) string {
	if len(list) == 0 {
		return StyleGreen.Render("Nothing overdue.")
	}
	out := make([][]string, len(list))
	for i, a := range list {
		out[i] = []string{
			Truncate(a.Name, 40),
			OrDash(a.Responsible),
			FormatDate(a.PlannedEnd),
			StyleRed.Render(FormatDays(a.OverdueDays)),
		}
	}
	return RenderAlignedTable([]string{"Activity", "Responsible", "Planned end", "Late by"}, []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight}, out)
}

func FormatRemaining(list []domain.DerivedActivity) string {
	if len(list) == 0 {
		return Dim("No upcoming deadlines.")
	}
	out := make([][]string, len(list))
	for i, a := range list {
		style := StyleFg
		if a.RemainingDays <= 7 {
			style = StyleYellow
		}
		out[i] = []string{
			Truncate(a.Name, 40),
			OrDash(a.Responsible),
			FormatDate(a.PlannedEnd),
			style.Render(FormatDays(a.RemainingDays)),
		}
	}
	return RenderAlignedTable([]string{"Activity", "Responsible", "Planned end", "Left"}, []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight}, out)
}

func FormatDeviation(points []aggregate.DeviationPoint) string {
	if len(points) == 0 {
		return Dim("No activities.")
	}
	out := make([][]string, len(points))
	for i, p := range points {
		out[i] = []string{Truncate(p.Activity, 40), SignedStyle(float64(p.Days)).Render(FormatDays(p.Days))}
	}
	return RenderAlignedTable([]string{"Activity", "Deviation"}, []Align{AlignLeft, AlignRight}, out)
}

// FormatActivityRows lists derived activities with status and risk badges.
func FormatActivityRows(list []domain.DerivedActivity, p theme.Palette) string {
	if len(list) == 0 {
		return Dim("No activities match the current filters.")
	}
	out := make([][]string, len(list))
	for i, a := range list {
		out[i] = []string{
			TruncID(a.ID),
			Truncate(a.Name, 32),
			OrDash(a.Discipline),
			OrDash(a.Responsible),
			PriorityStyle(a.Priority).Render(string(a.Priority)),
			Badge(a.ActualStatus, p.StatusBadge(a.ActualStatus)),
			Badge(a.AssociatedRisk, p.RiskBadge(a.AssociatedRisk)),
			FormatPercent(a.CompletionPercent),
			FormatDate(a.PlannedEnd),
		}
	}
	return RenderAlignedTable(
		[]string{"ID", "Activity", "Discipline", "Responsible", "Priority", "Status", "Risk", "Done", "Planned end"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
		out,
	)
}
