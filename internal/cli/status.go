package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current task",
	Long:  `Display the files of the current task and the names computed for them.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := eng.Status(context.Background(), &engine.StatusRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Task")
		PrintLabelValueWithColor("Status", result.Task.Status.String(), statusColor(result.Task.Status))
		PrintLabelValue("Directory", result.Dir)
		if result.Task.Rule != "" {
			PrintLabelValue("Rule", result.Task.Rule)
		}
		PrintLabelValue("History", PrintCount(result.Depth, "task", "tasks"))
		fmt.Fprintln(stdout)
		printTask(result.Task)
		return nil
	},
}
