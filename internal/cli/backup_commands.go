package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskdeck/backend/internal/core/ports"
)

func newStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}

			stats := ctrl.Stats(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "total: %d\npending: %d\ncompleted: %d\n",
				stats.Total, stats.Pending, stats.Completed)
			return nil
		},
	}
}

func newExportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a backup file of every task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.newController()
			if err != nil {
				return err
			}

			data, err := ctrl.Export(cmd.Context())
			if err != nil {
				return err
			}

			path := fmt.Sprintf("taskdeck-backup-%s.json", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				path = args[0]
			}

			encoded, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, encoded, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d task(s) to %s\n", data.TotalTasks, path)
			return nil
		},
	}
}

func newImportCommand(opts *options) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var data ports.ExportData
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("invalid backup file: %w", err)
			}
			if data.Tasks == nil {
				return fmt.Errorf("invalid backup file: no tasks array")
			}

			ctrl, err := opts.newController()
			if err != nil {
				return err
			}

			count, err := ctrl.Import(cmd.Context(), data.Tasks, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d task(s)\n", count)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "clear existing tasks before importing")
	return cmd
}
