package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tracksheet/internal/service"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

// Options are the global flags, handed to App.Init before any subcommand
// runs.
type Options struct {
	ConfigPath string
	EnvFile    string
	Verbose    bool
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Dashboards service.DashboardService
	Activities service.ActivityService
	Taxonomies service.TaxonomyService
	Import     service.ImportService
	Reports    service.ReportService
	Analysis   service.AnalysisService

	// Theme colors badges and the heatmap unless --theme overrides it.
	Theme theme.Theme

	// Init wires the services from the global flags. It may be nil when the
	// fields above are already set.
	Init func(ctx context.Context, opts Options) error
	// Close flushes pending saves and releases resources.
	Close func(ctx context.Context) error
	// Serve runs the HTTP API on addr until ctx is cancelled.
	Serve func(ctx context.Context, addr string) error
	// ServeAddr is the configured listen address.
	ServeAddr string

	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tracksheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:           "tracksheet",
		Short:         "Activity tracking dashboards with schedule and cost reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Init == nil {
				return nil
			}
			return app.Init(cmd.Context(), opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Close == nil {
				return nil
			}
			return app.Close(context.WithoutCancel(cmd.Context()))
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.tracksheet/config.toml)")
	root.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "Dotenv file with TRACKSHEET_* overrides")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newDashboardCmd(app),
		newActivityCmd(app),
		newTaxonomyCmd(app),
		newReportCmd(app),
		newAnalyzeCmd(app),
		newServeCmd(app),
	)

	return root
}

var errNotInteractive = errors.New("missing required flags (run in a terminal for an interactive form)")
