package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lookahead/internal/cli/formatter"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage the tasks of a schedule",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskRenameCmd(app),
		newTaskRemoveCmd(app),
		newTaskMoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add SCHEDULE NAME...",
		Short: "Append a task with empty manpower",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			return withSession(cmd.Context(), app, args[0], func(session *service.EditorSession) error {
				id := session.Store.AddTask(cmd.Context(), name)
				task, idx, _ := session.Store.Schedule().TaskByID(id)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added task #%d %s", idx+1, task.Name)))
				return nil
			})
		},
	}
}

func newTaskRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename SCHEDULE TASK NAME...",
		Short: "Rename a task (TASK is a number, id, or name)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args[2:], " "))
			if name == "" {
				return fmt.Errorf("task name must not be empty")
			}
			return withSession(cmd.Context(), app, args[0], func(session *service.EditorSession) error {
				task, err := resolveTask(session.Store.Schedule(), args[1])
				if err != nil {
					return err
				}
				old := task.Name
				session.Store.UpdateTask(cmd.Context(), task.ID, domain.TaskPatch{Name: &name})
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Renamed %s %s %s", old, formatter.Dim("→"), name)))
				return nil
			})
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SCHEDULE TASK",
		Short: "Remove a task and its manpower",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), app, args[0], func(session *service.EditorSession) error {
				task, err := resolveTask(session.Store.Schedule(), args[1])
				if err != nil {
					return err
				}
				name := task.Name
				session.Store.RemoveTask(cmd.Context(), task.ID)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Removed task "+name))
				return nil
			})
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "move SCHEDULE TASK",
		Short: "Move a task to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to < 1 {
				return fmt.Errorf("--to must be a task number starting at 1")
			}
			return withSession(cmd.Context(), app, args[0], func(session *service.EditorSession) error {
				task, err := resolveTask(session.Store.Schedule(), args[1])
				if err != nil {
					return err
				}
				session.Store.MoveTask(cmd.Context(), task.ID, to-1)
				_, idx, _ := session.Store.Schedule().TaskByID(task.ID)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Moved %s to #%d", task.Name, idx+1)))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "New task number (1 = first)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
