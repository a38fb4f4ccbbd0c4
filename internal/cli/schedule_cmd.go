package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/cli/formatter"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/form"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"s"},
		Short:   "Manage lookahead schedules",
	}

	cmd.AddCommand(
		newScheduleAddCmd(app),
		newScheduleListCmd(app),
		newScheduleInspectCmd(app),
		newScheduleRemoveCmd(app),
		newScheduleImportCmd(app),
		newScheduleExportCmd(app),
	)

	return cmd
}

// scheduleDefaults returns the configured hours per day and work days.
func (a *App) scheduleDefaults() (float64, domain.WorkDayPattern) {
	if a.Config == nil {
		return 8, domain.DefaultWorkDays()
	}
	days, err := a.Config.Schedule.WorkDayPattern()
	if err != nil {
		days = domain.DefaultWorkDays()
	}
	return a.Config.Schedule.HoursPerDay, days
}

type scheduleAddInput struct {
	ShortID  string
	Name     string
	Start    string
	Weeks    string
	End      string
	Hours    float64
	WorkDays string
}

// buildSchedule runs the add flags through a ScheduleForm so the end date
// is derived the same way the wizard derives it.
func buildSchedule(app *App, in scheduleAddInput) (*domain.Schedule, error) {
	if (in.Weeks == "") == (in.End == "") {
		return nil, fmt.Errorf("give exactly one of --weeks and --end")
	}

	hours, days := app.scheduleDefaults()
	if in.Hours != 0 {
		hours = in.Hours
	}
	if in.WorkDays != "" {
		parsed, err := domain.ParseWorkDayPattern(in.WorkDays)
		if err != nil {
			return nil, fmt.Errorf("invalid --work-days: %w", err)
		}
		days = parsed
	}

	f := form.NewScheduleForm(hours, days)
	defer f.Close()
	f.HoursPerDay.Set(hours)
	f.Name.Set(in.Name)
	f.ShortID.Set(in.ShortID)
	if err := f.SetStartDateText(in.Start); err != nil {
		return nil, err
	}
	if in.Weeks != "" {
		if err := f.SetTotalWeeksText(in.Weeks); err != nil {
			return nil, err
		}
	} else {
		end, err := parseDate(in.End)
		if err != nil {
			return nil, err
		}
		f.EndDate.Set(end)
	}
	return f.Build()
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var in scheduleAddInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSchedule(app, in)
			if err != nil {
				return err
			}
			if err := app.Schedules.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Created schedule %s [%s] %s, %d weeks",
				s.Name, s.ShortID, formatter.FormatDateRange(s.StartDate, s.EndDate), calendar.TotalWeeks(s))))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ShortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. LAS01)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Schedule name")
	cmd.Flags().StringVar(&in.Start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Weeks, "weeks", "", "Number of weeks (derives the end date)")
	cmd.Flags().StringVar(&in.End, "end", "", "End date (YYYY-MM-DD), instead of --weeks")
	cmd.Flags().Float64Var(&in.Hours, "hours", 0, "Hours per crew member per day (default from config)")
	cmd.Flags().StringVar(&in.WorkDays, "work-days", "", "Work days as designators, 1=Mon … 7=Sun (e.g. 1,2,3,4,5,6)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.Schedules.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(schedules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No schedules found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleList(schedules))
			return nil
		},
	}
}

func newScheduleInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SCHEDULE",
		Short: "Show schedule details and task hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, args[0], func(session *service.EditorSession) error {
				s := session.Store.Schedule()
				data := formatter.ScheduleInspectData{
					Schedule:  s,
					TaskHours: make(map[string]float64, len(s.Tasks)),
				}
				data.TotalWeeks, _ = session.Editor.TotalWeeks()
				data.CurrentWeek, _ = session.Editor.CurrentWeek()
				for _, t := range s.Tasks {
					data.TaskHours[t.ID] = session.Editor.ScheduleTotalHours(t.ID)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleInspect(data))
				return nil
			})
		},
	}
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SCHEDULE",
		Short: "Remove a schedule with its tasks and manpower",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Schedules.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Schedules.Delete(cmd.Context(), s.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Removed schedule %s [%s]", s.Name, s.ShortID)))
			return nil
		},
	}
}

func newScheduleImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a schedule from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Imported schedule %s [%s]: %d tasks, %d week rows",
				result.Schedule.Name, result.Schedule.ShortID, result.TaskCount, result.WeekRowCount)))
			return nil
		},
	}
}

func newScheduleExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export SCHEDULE",
		Short: "Export a schedule as an XLSX workbook, one sheet per week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			name, err := app.Export.ExportXLSX(cmd.Context(), args[0], &buf)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				dir := "."
				if app.Config != nil && app.Config.Export.Dir != "" {
					dir = app.Config.Export.Dir
				}
				path = filepath.Join(dir, name)
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, name)
			}
			if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
				path += ".xlsx"
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating export directory: %w", err)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing workbook: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Exported "+path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory (default <export.dir>/<id>-lookahead.xlsx)")

	return cmd
}
