package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/tracksheet/internal/cli/formatter"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Manage the activities of a dashboard",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityUpdateCmd(app),
		newActivityListCmd(app),
		newActivityImportCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

// activityFlags binds one flag per editable activity field. Only flags the
// user actually set are applied.
type activityFlags struct {
	name, discipline, responsible, priority string
	plannedStatus, status, risk             string
	notes, link                             string
	dependencies, resources                 []string
	plannedStart, plannedEnd                string
	actualStart, actualEnd                  string
	plannedValue, actualValue, actualCost   float64
	completion                              float64
}

func (f *activityFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Activity name")
	fs.StringVar(&f.discipline, "discipline", "", "Discipline")
	fs.StringVar(&f.responsible, "responsible", "", "Responsible party")
	fs.StringVar(&f.priority, "priority", "", "Priority (High, Medium, Low)")
	fs.StringVar(&f.plannedStatus, "planned-status", "", "Planned status")
	fs.StringVar(&f.status, "status", "", "Actual status")
	fs.StringVar(&f.risk, "risk", "", "Associated risk")
	fs.StringVar(&f.notes, "notes", "", "Notes")
	fs.StringVar(&f.link, "link", "", "Document link")
	fs.StringSliceVar(&f.dependencies, "depends-on", nil, "Dependencies (comma separated)")
	fs.StringSliceVar(&f.resources, "resources", nil, "Required resources (comma separated)")
	fs.StringVar(&f.plannedStart, "planned-start", "", "Planned start (YYYY-MM-DD, blank clears)")
	fs.StringVar(&f.plannedEnd, "planned-end", "", "Planned end (YYYY-MM-DD, blank clears)")
	fs.StringVar(&f.actualStart, "actual-start", "", "Actual start (YYYY-MM-DD, blank clears)")
	fs.StringVar(&f.actualEnd, "actual-end", "", "Actual end (YYYY-MM-DD, blank clears)")
	fs.Float64Var(&f.plannedValue, "planned-value", 0, "Planned value")
	fs.Float64Var(&f.actualValue, "actual-value", 0, "Actual value")
	fs.Float64Var(&f.actualCost, "actual-cost", 0, "Actual cost")
	fs.Float64Var(&f.completion, "completion", 0, "Completion percentage (0-100)")
}

func (f *activityFlags) apply(fs *pflag.FlagSet, a *domain.Activity) error {
	strs := []struct {
		flag string
		val  string
		dst  *string
	}{
		{"name", f.name, &a.Name},
		{"discipline", f.discipline, &a.Discipline},
		{"responsible", f.responsible, &a.Responsible},
		{"planned-status", f.plannedStatus, &a.PlannedStatus},
		{"status", f.status, &a.ActualStatus},
		{"risk", f.risk, &a.AssociatedRisk},
		{"notes", f.notes, &a.Notes},
		{"link", f.link, &a.DocumentLink},
	}
	for _, s := range strs {
		if fs.Changed(s.flag) {
			*s.dst = s.val
		}
	}
	if fs.Changed("priority") {
		a.Priority = domain.Priority(f.priority)
	}
	if fs.Changed("depends-on") {
		a.Dependencies = f.dependencies
	}
	if fs.Changed("resources") {
		a.RequiredResources = f.resources
	}

	dates := []struct {
		flag string
		val  string
		dst  **domain.Date
	}{
		{"planned-start", f.plannedStart, &a.PlannedStart},
		{"planned-end", f.plannedEnd, &a.PlannedEnd},
		{"actual-start", f.actualStart, &a.ActualStart},
		{"actual-end", f.actualEnd, &a.ActualEnd},
	}
	for _, d := range dates {
		if !fs.Changed(d.flag) {
			continue
		}
		if strings.TrimSpace(d.val) == "" {
			*d.dst = nil
			continue
		}
		parsed, err := domain.ParseDate(d.val)
		if err != nil {
			return fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", d.flag, d.val)
		}
		*d.dst = &parsed
	}

	amounts := []struct {
		flag string
		val  float64
		dst  **float64
	}{
		{"planned-value", f.plannedValue, &a.PlannedValue},
		{"actual-value", f.actualValue, &a.ActualValue},
		{"actual-cost", f.actualCost, &a.ActualCost},
	}
	for _, m := range amounts {
		if fs.Changed(m.flag) {
			v := m.val
			*m.dst = &v
		}
	}
	if fs.Changed("completion") {
		a.CompletionPercent = f.completion
	}
	return nil
}

func newActivityAddCmd(app *App) *cobra.Command {
	var dashRef string
	var flags activityFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}

			var a domain.Activity
			if !cmd.Flags().Changed("name") && app.interactive() {
				if err := promptActivity(ctx, app, d.ID, &a); err != nil {
					return err
				}
			}
			if err := flags.apply(cmd.Flags(), &a); err != nil {
				return err
			}

			out, err := app.Activities.Add(ctx, d.ID, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] to %s\n", out.Name, shortID(out.ID), d.Name)
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)
	flags.register(cmd.Flags())

	return cmd
}

func promptActivity(ctx context.Context, app *App, dashboardID string, a *domain.Activity) error {
	statuses, err := app.Taxonomies.Resolve(ctx, dashboardID, domain.TaxonomyStatus)
	if err != nil {
		return err
	}
	risks, err := app.Taxonomies.Resolve(ctx, dashboardID, domain.TaxonomyRisk)
	if err != nil {
		return err
	}
	v := activityFormValues{
		Priority: string(domain.PriorityMedium),
		Status:   domain.StatusNotStarted,
		Risk:     domain.RiskLow,
	}
	if err := activityForm(&v, statuses, risks).Run(); err != nil {
		return err
	}

	a.Name = v.Name
	a.Discipline = v.Discipline
	a.Responsible = v.Responsible
	a.Priority = domain.Priority(v.Priority)
	a.PlannedStatus = v.Status
	a.ActualStatus = v.Status
	a.AssociatedRisk = v.Risk
	a.PlannedStart = domain.ParseOptionalDate(v.PlannedStart)
	a.PlannedEnd = domain.ParseOptionalDate(v.PlannedEnd)
	if v.Completion != "" {
		a.CompletionPercent, _ = strconv.ParseFloat(v.Completion, 64)
	}
	return nil
}

func newActivityUpdateCmd(app *App) *cobra.Command {
	var dashRef string
	var flags activityFlags

	cmd := &cobra.Command{
		Use:   "update REF",
		Short: "Change fields of an activity (only the flags given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}
			list, err := app.Activities.List(ctx, d.ID)
			if err != nil {
				return err
			}
			a, err := findActivity(list, args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), &a); err != nil {
				return err
			}
			out, err := app.Activities.Update(ctx, d.ID, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s]\n", out.Name, shortID(out.ID))
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)
	flags.register(cmd.Flags())

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var dashRef string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the stored activities of a dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}
			list, err := app.Activities.List(ctx, d.ID)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
				return nil
			}
			p, err := palette(ctx, app, d.ID, app.Theme)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(list, p))
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)

	return cmd
}

func newActivityImportCmd(app *App) *cobra.Command {
	var dashRef string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import activities and custom labels from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}
			res, err := app.Import.ImportFile(ctx, d.ID, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d activities into %s\n", res.ActivityCount, d.Name)
			if res.StatusesAdded > 0 || res.RisksAdded > 0 {
				fmt.Fprintf(out, "Added %d custom statuses and %d custom risks\n", res.StatusesAdded, res.RisksAdded)
			}
			for _, w := range res.Warnings {
				fmt.Fprintln(out, formatter.StyleYellow.Render("warning: ")+w)
			}
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)

	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	var dashRef string

	cmd := &cobra.Command{
		Use:     "remove REF",
		Aliases: []string{"rm"},
		Short:   "Remove an activity by ID or ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}
			removed, err := app.Activities.Delete(ctx, d.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed.Name)
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)

	return cmd
}

// palette loads the custom labels of a dashboard for badge coloring.
func palette(ctx context.Context, app *App, dashboardID string, t theme.Theme) (theme.Palette, error) {
	statuses, err := app.Taxonomies.Customs(ctx, dashboardID, domain.TaxonomyStatus)
	if err != nil {
		return theme.Palette{}, err
	}
	risks, err := app.Taxonomies.Customs(ctx, dashboardID, domain.TaxonomyRisk)
	if err != nil {
		return theme.Palette{}, err
	}
	return theme.Palette{Theme: t, CustomStatuses: statuses, CustomRisks: risks}, nil
}
