package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tracksheet/internal/cli/formatter"
	"github.com/alexanderramin/tracksheet/internal/domain"
)

func newTaxonomyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "taxonomy",
		Aliases: []string{"tax"},
		Short:   "List and extend the status and risk labels of a dashboard",
	}

	cmd.AddCommand(
		newTaxonomyListCmd(app),
		newTaxonomyAddCmd(app, domain.TaxonomyStatus),
		newTaxonomyAddCmd(app, domain.TaxonomyRisk),
	)

	return cmd
}

func newTaxonomyListCmd(app *App) *cobra.Command {
	var dashRef, kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resolved labels, built-ins first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kinds := []domain.TaxonomyKind{domain.TaxonomyStatus, domain.TaxonomyRisk}
			if kind != "" {
				k := domain.TaxonomyKind(strings.ToLower(kind))
				if !domain.ValidTaxonomyKinds[k] {
					return fmt.Errorf("invalid --kind %q (expected status or risk)", kind)
				}
				kinds = []domain.TaxonomyKind{k}
			}

			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}
			p, err := palette(ctx, app, d.ID, app.Theme)
			if err != nil {
				return err
			}

			var sections []string
			for _, k := range kinds {
				resolved, err := app.Taxonomies.Resolve(ctx, d.ID, k)
				if err != nil {
					return err
				}
				customs := p.CustomStatuses
				if k == domain.TaxonomyRisk {
					customs = p.CustomRisks
				}
				sections = append(sections, formatter.FormatTaxonomy(k, resolved, customs, p))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sections, "\n\n"))
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)
	cmd.Flags().StringVar(&kind, "kind", "", "Only list one kind (status or risk)")

	return cmd
}

// newTaxonomyAddCmd builds add-status or add-risk. Without --name it opens
// a form when attached to a terminal.
func newTaxonomyAddCmd(app *App, kind domain.TaxonomyKind) *cobra.Command {
	var dashRef, name, color string

	cmd := &cobra.Command{
		Use:   "add-" + string(kind),
		Short: fmt.Sprintf("Add a custom %s label", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := resolveDashboard(ctx, app, dashRef)
			if err != nil {
				return err
			}
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name: %w", errNotInteractive)
				}
				if err := taxonomyEntryForm(kind, &name, &color).Run(); err != nil {
					return err
				}
			}

			e, err := app.Taxonomies.Add(ctx, d.ID, kind, domain.TaxonomyEntry{Name: name, Color: strings.TrimSpace(color)})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", kind, e.Name, e.Color)
			return nil
		},
	}
	addDashboardFlag(cmd, &dashRef)
	cmd.Flags().StringVar(&name, "name", "", "Label name")
	cmd.Flags().StringVar(&color, "color", "", "Badge color as #RRGGBB")

	return cmd
}
