package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tracksheet/internal/aggregate"
	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/engine"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

func money(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) *domain.Date {
	v := domain.NewDate(y, m, d)
	return &v
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDate(date(2024, time.March, 5)))
	assert.Equal(t, "N/A", FormatDate(nil))
	assert.Equal(t, "N/A", FormatDate(&domain.Date{}))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"absent", nil, "N/A"},
		{"zero", money(0), "R$ 0,00"},
		{"small", money(7.5), "R$ 7,50"},
		{"thousands", money(1234.56), "R$ 1.234,56"},
		{"millions", money(1234567.891), "R$ 1.234.567,89"},
		{"negative", money(-1500), "-R$ 1.500,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestFormatDaysAndPercent(t *testing.T) {
	assert.Equal(t, "1 day", FormatDays(1))
	assert.Equal(t, "0 days", FormatDays(0))
	assert.Equal(t, "-3 days", FormatDays(-3))
	assert.Equal(t, "42.5%", FormatPercent(42.5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Fundaç…", Truncate("Fundações", 7))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░]   0%", stripANSI(RenderProgress(-5, 10)))
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderProgress(50, 10)))
	assert.Equal(t, "[██████████] 100%", stripANSI(RenderProgress(140, 10)))
}

func TestRenderAlignedTable(t *testing.T) {
	out := stripANSI(RenderAlignedTable(
		[]string{"Name", "Count"},
		[]Align{AlignLeft, AlignRight},
		[][]string{{"Civil", "3"}, {"Electrical", "12"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name        Count", lines[0])
	assert.Equal(t, "Civil           3", lines[2])
	assert.Equal(t, "Electrical     12", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderHeatmap(t *testing.T) {
	m := aggregate.Matrix{
		Disciplines:  []string{"Civil", ""},
		Responsibles: []string{"Ana", "Bruno"},
		Cells:        [][]int{{2, 0}, {1, 1}},
		MaxCount:     2,
	}
	th, err := theme.Lookup("light")
	require.NoError(t, err)

	out := stripANSI(RenderHeatmap(m, th))

	assert.Contains(t, out, "Civil")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Bruno")
	assert.Contains(t, out, "max 2 per cell")
}

func TestRenderHeatmap_Empty(t *testing.T) {
	th, _ := theme.Lookup("dark")
	assert.Equal(t, "No activities to plot.", stripANSI(RenderHeatmap(aggregate.Matrix{}, th)))
}

func TestFormatReport(t *testing.T) {
	today := domain.NewDate(2024, time.March, 15)
	activities := []domain.Activity{
		{
			ID: "a1", Name: "Pour slab", Discipline: "Civil", Responsible: "Ana",
			Priority: domain.PriorityHigh, PlannedStatus: domain.StatusInProgress,
			ActualStatus: domain.StatusInProgress, AssociatedRisk: domain.RiskHigh,
			PlannedEnd: date(2024, time.March, 10), PlannedValue: money(1000), ActualValue: money(1500),
		},
		{
			ID: "a2", Name: "Wiring", Discipline: "Electrical", Responsible: "Bruno",
			Priority: domain.PriorityLow, PlannedStatus: domain.StatusCompleted,
			ActualStatus: domain.StatusCompleted, AssociatedRisk: "Critical", CompletionPercent: 100,
		},
	}
	customRisks := []domain.TaxonomyEntry{{Name: "Critical", Color: "#7C3AED"}}
	rep := engine.Run(engine.Snapshot{
		Activities:  activities,
		CustomRisks: customRisks,
		Criteria:    domain.NewFilterCriteria(),
		Today:       today,
	})
	resp := &app.ReportResponse{
		Dashboard:   domain.Dashboard{ID: "d1", Name: "Plant"},
		Criteria:    domain.FilterCriteria{SearchTerm: "slab", StatusFilter: domain.FilterAll, ResponsibleFilter: "Ana"},
		CustomRisks: customRisks,
		Report:      rep,
	}
	th, _ := theme.Lookup("light")

	out := stripANSI(FormatReport(resp, th))

	for _, want := range []string{
		"Plant", "as of 15/03/2024", `search "slab"`, "responsible Ana",
		"SUMMARY", "STATUS: PLANNED VS REAL", "COST BY DISCIPLINE", "DISCIPLINE X RESPONSIBLE",
		"R$ 1.500,00", "Pour slab", "5 days", "Critical",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "status All")
}

func TestFormatTaxonomy(t *testing.T) {
	th, _ := theme.Lookup("light")
	customs := []domain.TaxonomyEntry{{Name: "On Hold", Color: "#F59E0B"}}
	p := theme.Palette{Theme: th, CustomStatuses: customs}

	out := stripANSI(FormatTaxonomy(domain.TaxonomyStatus, append(domain.BuiltInStatuses(), "On Hold"), customs, p))

	assert.Contains(t, out, "STATUS LABELS")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "custom #F59E0B")
	assert.Equal(t, 4, strings.Count(out, "built-in"))
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownPlain)

	assert.Equal(t, "", r.Render("   ", 80))
	out := r.Render("## Progress\n\nAll **good**.", 80)
	assert.Contains(t, out, "Progress")
	assert.Contains(t, out, "good")
}

func TestMarkdownStyleFor(t *testing.T) {
	assert.Equal(t, MarkdownPlain, MarkdownStyleFor("dark", false))
	assert.Equal(t, MarkdownDark, MarkdownStyleFor("dark", true))
	assert.Equal(t, MarkdownLight, MarkdownStyleFor("blue-green", true))
}
