package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tracksheet/internal/cli/formatter"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/heatmap"
)

func tracksheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateOptionalColor(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := heatmap.ParseHex(s); err != nil {
		return fmt.Errorf("use #RRGGBB format")
	}
	return nil
}

func validatePercent(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("enter a number between 0 and 100")
	}
	return nil
}

// taxonomyEntryForm collects the name and badge color of a custom label.
func taxonomyEntryForm(kind domain.TaxonomyKind, name, color *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("New %s name", kind)).
				Value(name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Badge color").
				Description("#RRGGBB, blank for the default gray").
				Placeholder("#6B7280").
				Value(color).
				Validate(validateOptionalColor),
		),
	).WithTheme(tracksheetHuhTheme()).WithShowHelp(false)
}

// activityFormValues holds the string-typed answers of activityForm.
type activityFormValues struct {
	Name         string
	Discipline   string
	Responsible  string
	Priority     string
	Status       string
	Risk         string
	PlannedStart string
	PlannedEnd   string
	Completion   string
}

func options(labels []string) []huh.Option[string] {
	out := make([]huh.Option[string], len(labels))
	for i, l := range labels {
		out[i] = huh.NewOption(l, l)
	}
	return out
}

// activityForm asks for the fields most activities need. Statuses and risks
// offer the dashboard's resolved labels.
func activityForm(v *activityFormValues, statuses, risks []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Activity name").Value(&v.Name).Validate(validateRequired("name")),
			huh.NewInput().Title("Discipline").Value(&v.Discipline),
			huh.NewInput().Title("Responsible").Value(&v.Responsible),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Priority").
				Options(options([]string{string(domain.PriorityHigh), string(domain.PriorityMedium), string(domain.PriorityLow)})...).
				Value(&v.Priority),
			huh.NewSelect[string]().Title("Status").Options(options(statuses)...).Value(&v.Status),
			huh.NewSelect[string]().Title("Risk").Options(options(risks)...).Value(&v.Risk),
		),
		huh.NewGroup(
			huh.NewInput().Title("Planned start").Placeholder("2025-06-01").Value(&v.PlannedStart).Validate(validateOptionalDate),
			huh.NewInput().Title("Planned end").Placeholder("2025-06-30").Value(&v.PlannedEnd).Validate(validateOptionalDate),
			huh.NewInput().Title("Completion %").Placeholder("0").Value(&v.Completion).Validate(validatePercent),
		),
	).WithTheme(tracksheetHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(result),
		),
	).WithTheme(tracksheetHuhTheme()).WithShowHelp(false)
}
