package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/backend/internal/client"
	"github.com/taskdeck/backend/internal/domain"
)

func newAddCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			return ctrl.Submit(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newListCommand(opts *options) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			if err := ctrl.SetFilter(cmd.Context(), domain.ParseFilter(filter)); err != nil {
				return err
			}
			printTasks(cmd, ctrl)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, pending or completed")
	return cmd
}

func printTasks(cmd *cobra.Command, ctrl *client.Controller) {
	tasks := ctrl.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s  %s\n", mark, t.ID, t.Text)
	}
}

func newToggleCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a task's completed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			return ctrl.Toggle(cmd.Context(), args[0])
		},
	}
}

func newEditCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Rewrite a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			if !ctrl.StartEdit(args[0]) {
				return fmt.Errorf("no task with id %s", args[0])
			}
			return ctrl.Submit(cmd.Context(), strings.Join(args[1:], " "))
		},
	}
}

func newRemoveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			ctrl.RequestDelete(args[0])
			return confirmPending(cmd, ctrl, opts.yes)
		},
	}
}

func newClearCommand(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks, or every task with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}

			filter := domain.FilterCompleted
			if all {
				filter = domain.FilterAll
			}
			ctrl.RequestClear(filter)
			return confirmPending(cmd, ctrl, opts.yes)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove every task, not just completed ones")
	return cmd
}
