// Package theme holds the color themes and the status/risk badge palette.
package theme

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/heatmap"
)

type Theme struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Background    string `json:"background"`
	TextColor     string `json:"textColor"`
	PrimaryColor  string `json:"primaryColor"`
	TableHeaderBg string `json:"tableHeaderBg"`
	TableBorder   string `json:"tableBorder"`
}

const DefaultKey = "light"

var themes = map[string]Theme{
	"light": {
		Key:           "light",
		Name:          "Light",
		Background:    "#F3F4F6",
		TextColor:     "#1F2937",
		PrimaryColor:  "#3B82F6",
		TableHeaderBg: "#F9FAFB",
		TableBorder:   "#E5E7EB",
	},
	"dark": {
		Key:           "dark",
		Name:          "Dark",
		Background:    "#1F2937",
		TextColor:     "#F9FAFB",
		PrimaryColor:  "#60A5FA",
		TableHeaderBg: "#4B5563",
		TableBorder:   "#6B7280",
	},
	"blue-green": {
		Key:           "blue-green",
		Name:          "Blue-Green",
		Background:    "#E0F2F7",
		TextColor:     "#2C3E50",
		PrimaryColor:  "#3498DB",
		TableHeaderBg: "#ECF0F1",
		TableBorder:   "#BDC3C7",
	},
}

// Lookup returns the theme registered under key.
func Lookup(key string) (Theme, error) {
	t, ok := themes[key]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", key, Keys())
	}
	return t, nil
}

// Keys lists the registered theme keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(themes))
	for k := range themes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HeatmapBase is the color of an empty heatmap cell.
func (t Theme) HeatmapBase() heatmap.RGB { return heatmap.MustParseHex(t.TableHeaderBg) }

// HeatmapAccent is the color of the busiest heatmap cell.
func (t Theme) HeatmapAccent() heatmap.RGB { return heatmap.MustParseHex(t.PrimaryColor) }

// Badge is the pair of colors used to draw a status or risk label.
type Badge struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

var defaultStatusBadges = map[string]Badge{
	domain.StatusCompleted:  {Background: "#D1FAE5", Text: "#065F46"},
	domain.StatusInProgress: {Background: "#DBEAFE", Text: "#1E40AF"},
	domain.StatusDelayed:    {Background: "#FEE2E2", Text: "#991B1B"},
	domain.StatusNotStarted: {Background: "#F3F4F6", Text: "#374151"},
}

var defaultRiskBadges = map[string]Badge{
	domain.RiskHigh:   {Background: "#FEE2E2", Text: "#991B1B"},
	domain.RiskMedium: {Background: "#FEF3C7", Text: "#92400E"},
	domain.RiskLow:    {Background: "#D1FAE5", Text: "#065F46"},
}

// Palette resolves badge colors for one dashboard.
type Palette struct {
	Theme          Theme
	CustomStatuses []domain.TaxonomyEntry
	CustomRisks    []domain.TaxonomyEntry
}

// StatusBadge returns the colors for a status label. Custom entries use
// their own color with a readable text color; unknown labels fall back to
// the theme.
func (p Palette) StatusBadge(name string) Badge {
	return p.badge(name, p.CustomStatuses, defaultStatusBadges)
}

func (p Palette) RiskBadge(name string) Badge {
	return p.badge(name, p.CustomRisks, defaultRiskBadges)
}

func (p Palette) badge(name string, customs []domain.TaxonomyEntry, defaults map[string]Badge) Badge {
	for _, c := range customs {
		if c.Name == name {
			return Badge{Background: c.Color, Text: heatmap.ReadableTextHex(c.Color)}
		}
	}
	if b, ok := defaults[name]; ok {
		return b
	}
	return Badge{Background: p.Theme.TableHeaderBg, Text: p.Theme.TextColor}
}
