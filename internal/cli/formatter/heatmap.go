package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tracksheet/internal/aggregate"
	"github.com/alexanderramin/tracksheet/internal/heatmap"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

const heatmapCellWidth = 7

// RenderHeatmap draws the discipline x responsible matrix with each cell
// shaded between the theme's header background and its primary color.
func RenderHeatmap(m aggregate.Matrix, t theme.Theme) string {
	if len(m.Disciplines) == 0 {
		return Dim("No activities to plot.")
	}
	swatches := heatmap.Shade(m, t.HeatmapBase(), t.HeatmapAccent())

	labelWidth := len("Discipline")
	for _, d := range m.Disciplines {
		labelWidth = max(labelWidth, lipgloss.Width(label(d)))
	}
	colWidth := heatmapCellWidth
	for _, r := range m.Responsibles {
		colWidth = max(colWidth, lipgloss.Width(label(r))+2)
	}
	cell := lipgloss.NewStyle().Width(colWidth).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("%-*s", labelWidth, "Discipline")))
	for _, r := range m.Responsibles {
		b.WriteString(cell.Inherit(StyleHeader).Render(label(r)))
	}
	b.WriteString("\n")

	for i, d := range m.Disciplines {
		b.WriteString(fmt.Sprintf("%-*s", labelWidth, label(d)))
		for _, s := range swatches[i] {
			b.WriteString(cell.
				Background(lipgloss.Color(s.Background)).
				Foreground(lipgloss.Color(s.Foreground)).
				Render(fmt.Sprintf("%d", s.Count)))
		}
		b.WriteString("\n")
	}
	b.WriteString(Dim(fmt.Sprintf("max %d per cell", m.MaxCount)))
	return b.String()
}

// label shows a blank discipline or responsible explicitly.
func label(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}
