package cli

import (
	"fmt"

	"github.com/alexanderramin/lookahead/internal/cli/formatter"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	var week int
	var next, prev bool

	cmd := &cobra.Command{
		Use:   "week SCHEDULE",
		Short: "Show the manpower grid for the current week",
		Long: `Show the manpower grid for one week of a schedule.

--week, --next and --prev also move the schedule's current week, which is
remembered between runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if next && prev {
				return fmt.Errorf("--next and --prev cannot be combined")
			}
			ctx := cmd.Context()
			return withSession(ctx, app, args[0], func(session *service.EditorSession) error {
				ed := session.Editor
				total, ok := ed.TotalWeeks()
				if !ok {
					return fmt.Errorf("schedule %s has no weeks", session.Store.Schedule().ShortID)
				}

				switch {
				case cmd.Flags().Changed("week"):
					idx, err := parseWeekFlag(week, total)
					if err != nil {
						return err
					}
					ed.GoToWeek(ctx, idx)
				case next:
					if !ed.NextWeek(ctx) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Warning("Already at the last week."))
					}
				case prev:
					if !ed.PrevWeek(ctx) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Warning("Already at the first week."))
					}
				}

				g, _ := ed.Grid()
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeekGrid(g, nil))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week number to show, starting at 1")
	cmd.Flags().BoolVar(&next, "next", false, "Advance to the next week")
	cmd.Flags().BoolVar(&prev, "prev", false, "Go back to the previous week")

	return cmd
}
