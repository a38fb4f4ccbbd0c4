package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alexanderramin/lookahead/internal/cli"
	"github.com/alexanderramin/lookahead/internal/config"
	"github.com/alexanderramin/lookahead/internal/db"
	"github.com/alexanderramin/lookahead/internal/importer"
	"github.com/alexanderramin/lookahead/internal/logging"
	"github.com/alexanderramin/lookahead/internal/repository"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		database  *sql.DB
		logCloser io.Closer
	)
	defer func() {
		if database != nil {
			database.Close()
		}
		if logCloser != nil {
			logCloser.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for the wizard and grid editor.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.LoadConfig = func(path string, flags *pflag.FlagSet) (*config.Config, error) {
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.Load(path, flags)
		if err != nil {
			return nil, err
		}
		logger, closer, err := logging.Open(cfg.Log, os.Stderr)
		if err != nil {
			return nil, err
		}
		app.Logger, logCloser = logger, closer
		return cfg, nil
	}

	app.Connect = func(cfg *config.Config) error {
		var err error
		database, err = db.OpenDB(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		scheduleRepo := repository.NewSQLiteScheduleRepo(database)
		taskRepo := repository.NewSQLiteTaskRepo(database)
		manpowerRepo := repository.NewSQLiteManpowerRepo(database)

		// Wire unit of work for transactional operations
		uow := db.NewSQLiteUnitOfWork(database)
		observer := service.NewSlogUseCaseObserver(app.Logger)

		workDays, err := cfg.Schedule.WorkDayPattern()
		if err != nil {
			return err
		}
		defaults := importer.Defaults{HoursPerDay: cfg.Schedule.HoursPerDay, WorkDays: workDays}

		schedules := service.NewScheduleService(scheduleRepo, taskRepo, manpowerRepo, uow, observer)
		app.Schedules = schedules
		app.Editor = service.NewEditorService(schedules, scheduleRepo, taskRepo, manpowerRepo, app.Logger, observer)
		app.Import = service.NewImportService(uow, defaults, observer)
		app.Export = service.NewExportService(schedules, observer)

		app.Logger.Debug("database ready", "path", cfg.DB.Path)
		return nil
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
