package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit SCHEDULE",
		Short: "Edit crew counts week by week in an interactive grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("edit needs an interactive terminal; use 'lookahead manpower set' instead")
			}
			ctx := cmd.Context()
			session, err := app.Editor.Open(ctx, args[0])
			if err != nil {
				return err
			}
			defer session.Close()

			p := tea.NewProgram(newGridModel(ctx, session), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return err
			}
			if err := session.Err(); err != nil {
				return fmt.Errorf("some changes were not saved: %w", err)
			}
			return nil
		},
	}
}
