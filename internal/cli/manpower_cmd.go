package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/cli/formatter"
	"github.com/alexanderramin/lookahead/internal/schedule"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/spf13/cobra"
)

func newManpowerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manpower",
		Aliases: []string{"mp"},
		Short:   "Edit crew counts",
	}
	cmd.AddCommand(newManpowerSetCmd(app))
	return cmd
}

func newManpowerSetCmd(app *App) *cobra.Command {
	var week, day int

	cmd := &cobra.Command{
		Use:   "set SCHEDULE TASK COUNTS",
		Short: "Set crew counts for a task in one week",
		Long: `Set crew counts for a task in one week.

COUNTS is a comma-separated list applied to the week's work days in order
(e.g. 2,2,1,1,2). With --day, COUNTS is a single value for that work day.
Values are whole numbers; decimals are truncated and negatives become 0.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withSession(ctx, app, args[0], func(session *service.EditorSession) error {
				s := session.Store.Schedule()
				task, err := resolveTask(s, args[1])
				if err != nil {
					return err
				}

				total, ok := session.Editor.TotalWeeks()
				if !ok {
					return fmt.Errorf("schedule %s has no weeks", s.ShortID)
				}
				weekIdx, _ := session.Editor.CurrentWeek()
				if cmd.Flags().Changed("week") {
					if weekIdx, err = parseWeekFlag(week, total); err != nil {
						return err
					}
				}
				days := calendar.ValidWorkDays(s, weekIdx)

				values := strings.Split(args[2], ",")
				first := 0
				if cmd.Flags().Changed("day") {
					if len(values) != 1 {
						return fmt.Errorf("--day takes a single count, got %d", len(values))
					}
					if day < 1 || day > len(days) {
						return fmt.Errorf("day %d out of range (week %d has %d work days)", day, weekIdx+1, len(days))
					}
					first = day - 1
				} else if len(values) > len(days) {
					return fmt.Errorf("%d counts given but week %d has %d work days", len(values), weekIdx+1, len(days))
				}

				for i, raw := range values {
					session.Store.UpdateManpowerInput(ctx, task.ID, weekIdx, first+i, raw)
				}

				counts := make([]string, 0, len(days))
				for _, n := range schedule.FitCounts(task.Manpower[weekIdx], len(days)) {
					counts = append(counts, strconv.Itoa(n))
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s, %s: [%s] %s",
					task.Name, formatter.WeekLabel(weekIdx, total), strings.Join(counts, " "),
					formatter.FormatHours(session.Editor.WeekHours(task.ID, weekIdx)))))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week number, starting at 1 (default: the schedule's current week)")
	cmd.Flags().IntVar(&day, "day", 0, "Work-day number within the week, starting at 1")

	return cmd
}
