package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

func FormatDashboardList(list []*domain.Dashboard) string {
	rows := make([][]string, len(list))
	for i, d := range list {
		rows[i] = []string{TruncID(d.ID), d.Name, d.CreatedAt.Local().Format("02/01/2006 15:04")}
	}
	return RenderTable([]string{"ID", "Name", "Created"}, rows)
}

// FormatActivityList renders stored activities. Values are shown as
// recorded; derived schedule metrics belong to the report.
func FormatActivityList(list []domain.Activity, p theme.Palette) string {
	rows := make([][]string, len(list))
	for i, a := range list {
		rows[i] = []string{
			TruncID(a.ID),
			Truncate(a.Name, 32),
			OrDash(a.Discipline),
			OrDash(a.Responsible),
			Badge(a.ActualStatus, p.StatusBadge(a.ActualStatus)),
			FormatDate(a.PlannedStart),
			FormatDate(a.PlannedEnd),
			FormatCurrency(a.PlannedValue),
			FormatCurrency(a.ActualValue),
		}
	}
	return RenderAlignedTable(
		[]string{"ID", "Activity", "Discipline", "Responsible", "Status", "Start", "End", "Planned", "Actual"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight},
		rows,
	)
}

// FormatTaxonomy lists the resolved labels of kind as badges, marking the
// custom ones.
func FormatTaxonomy(kind domain.TaxonomyKind, resolved []string, customs []domain.TaxonomyEntry, p theme.Palette) string {
	custom := make(map[string]bool, len(customs))
	for _, c := range customs {
		custom[c.Name] = true
	}
	var b strings.Builder
	b.WriteString(Header(string(kind) + " labels"))
	for _, name := range resolved {
		badge := p.StatusBadge(name)
		if kind == domain.TaxonomyRisk {
			badge = p.RiskBadge(name)
		}
		origin := Dim("built-in")
		if custom[name] {
			origin = StyleBlue.Render("custom " + badge.Background)
		}
		fmt.Fprintf(&b, "\n%s  %s", Badge(name, badge), origin)
	}
	return b.String()
}
