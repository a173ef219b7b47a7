package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/tracksheet/internal/api"
	"github.com/alexanderramin/tracksheet/internal/cli"
	"github.com/alexanderramin/tracksheet/internal/config"
	"github.com/alexanderramin/tracksheet/internal/db"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/llm"
	"github.com/alexanderramin/tracksheet/internal/logging"
	"github.com/alexanderramin/tracksheet/internal/narrative"
	"github.com/alexanderramin/tracksheet/internal/repository"
	"github.com/alexanderramin/tracksheet/internal/service"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	var (
		database   *sql.DB
		workspaces *service.WorkspaceManager
		closed     bool
	)

	app.Init = func(ctx context.Context, opts cli.Options) error {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path, opts.EnvFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if opts.Verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err := logging.New(os.Stderr, cfg.Logging.Level)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		database, err = db.OpenDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		uow := db.NewSQLiteUnitOfWork(database)
		dashboardRepo := repository.NewSQLiteDashboardRepo(database)
		stateStore := repository.NewSQLiteStateStore(database, uow)
		workspaces = service.NewWorkspaceManager(dashboardRepo, stateStore, cfg.AutosaveDelay(), logger)

		// Wire the narrative model; a disabled client always falls back.
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		llmClient := llm.New(llm.NewConfig(llm.Settings{
			Enabled:    cfg.LLM.Enabled,
			LogCalls:   cfg.LLM.LogCalls,
			Endpoint:   cfg.LLM.Endpoint,
			Model:      cfg.LLM.Model,
			TimeoutMs:  cfg.LLM.TimeoutMS,
			MaxRetries: cfg.LLM.MaxRetries,
		}), observer)

		// Wire services
		useCases := service.NewLogUseCaseObserver(logger)
		reports := service.NewReportService(workspaces, domain.Today, useCases)

		app.Dashboards = service.NewDashboardService(dashboardRepo, workspaces, useCases)
		app.Activities = service.NewActivityService(workspaces, domain.Today, useCases)
		app.Taxonomies = service.NewTaxonomyService(workspaces, useCases)
		app.Import = service.NewImportService(workspaces, domain.Today, useCases)
		app.Reports = reports
		app.Analysis = service.NewAnalysisService(reports, narrative.NewService(llmClient), useCases)

		app.Theme, err = theme.Lookup(cfg.Display.Theme)
		if err != nil {
			return err
		}
		app.ServeAddr = cfg.Server.Addr
		app.Serve = func(ctx context.Context, addr string) error {
			h := api.NewHandler(api.Services{
				Dashboards: app.Dashboards,
				Activities: app.Activities,
				Taxonomies: app.Taxonomies,
				Reports:    app.Reports,
				Analysis:   app.Analysis,
			}, logger, cfg.Display.Theme, version)
			return api.Run(ctx, addr, api.NewRouter(h), logger)
		}
		return nil
	}

	app.Close = func(ctx context.Context) error {
		if closed {
			return nil
		}
		closed = true
		var errs []error
		if workspaces != nil {
			errs = append(errs, workspaces.Close(ctx))
		}
		if database != nil {
			errs = append(errs, database.Close())
		}
		return errors.Join(errs...)
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.Version = version
	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRunE does not run after a failed command.
		_ = app.Close(context.Background())
	}
	return err
}
