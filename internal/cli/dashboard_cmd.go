package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tracksheet/internal/cli/formatter"
)

func newDashboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Manage dashboards",
	}

	cmd.AddCommand(
		newDashboardCreateCmd(app),
		newDashboardListCmd(app),
		newDashboardDeleteCmd(app),
	)

	return cmd
}

func newDashboardCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new dashboard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Dashboards.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created dashboard %s [%s]\n", d.Name, d.DisplayID())
			return nil
		},
	}
}

func newDashboardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List dashboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Dashboards.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dashboards found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboardList(list))
			return nil
		},
	}
}

func newDashboardDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete REF",
		Short: "Delete a dashboard with all its activities and custom labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Dashboards.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --yes", d.Name)
				}
				if err := confirmForm(fmt.Sprintf("Delete dashboard %q and all its activities?", d.Name), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Dashboards.Delete(cmd.Context(), d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted dashboard %s\n", d.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
