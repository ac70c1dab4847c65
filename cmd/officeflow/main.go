package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/officeflow/internal/cli"
	"github.com/alexanderramin/officeflow/internal/config"
	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := config.NewLogger(os.Stderr, cfg)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	locker := service.NewInstanceLocker()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	templates := service.NewTemplateService(database, uow, nil, observers...)

	// Seed the catalog from the template directory on every start.
	if report, err := templates.LoadDir(context.Background(), cfg.TemplateDir); err != nil {
		logger.Warn("template seed failed", "dir", cfg.TemplateDir, "error", err)
	} else {
		for file, skipErr := range report.Skipped {
			logger.Warn("template skipped", "file", file, "error", skipErr)
		}
		logger.Debug("templates seeded", "dir", cfg.TemplateDir, "loaded", len(report.Loaded))
	}

	app := &cli.App{
		Templates:     templates,
		Instances:     service.NewInstanceService(database, uow, locker, cfg.DependencyMode, nil, observers...),
		Notifications: service.NewNotificationService(database, nil, observers...),
		Sweeper:       service.NewSweepService(database, uow, locker, service.NewSweepMetrics(reg), logger, observers...),
		Config:        cfg,
		Logger:        logger,
		Metrics:       reg,
	}

	// Detect interactive terminal for the status picker.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
