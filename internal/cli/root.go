package cli

import (
	"log/slog"

	"github.com/alexanderramin/lookahead/internal/config"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedules service.ScheduleService
	Editor    service.EditorService
	Import    service.ImportService
	Export    service.ExportService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The wizard and
	// the grid editor refuse to start without one.
	IsInteractive func() bool

	// LoadConfig and Connect run once flags are parsed. LoadConfig fills
	// Config; Connect fills the services. Tests leave both nil and set the
	// fields directly.
	LoadConfig func(configPath string, flags *pflag.FlagSet) (*config.Config, error)
	Connect    func(cfg *config.Config) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// annotationOffline marks commands that must run without opening the
// database.
const annotationOffline = "lookahead/offline"

// NewRootCmd creates the top-level "lookahead" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "lookahead",
		Short:         "Plan crew manpower week by week across a construction lookahead",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.LoadConfig != nil && app.Config == nil {
				cfg, err := app.LoadConfig(configPath, cmd.Flags())
				if err != nil {
					return err
				}
				app.Config = cfg
			}
			if app.Connect != nil && cmd.Annotations[annotationOffline] == "" {
				return app.Connect(app.Config)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.lookahead/config.yaml)")
	pf.String("db", "", "SQLite database path")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (text|json)")
	pf.String("log-file", "", "Append logs to this file instead of stderr")

	root.AddCommand(
		newScheduleCmd(app),
		newTaskCmd(app),
		newManpowerCmd(app),
		newWeekCmd(app),
		newNewCmd(app),
		newEditCmd(app),
		newConfigCmd(app),
	)

	return root
}
