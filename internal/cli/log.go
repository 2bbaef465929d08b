package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/engine"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List the task history, newest first",
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

		result, err := eng.Log(context.Background(), &engine.LogRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		rows := make([][]string, 0, len(result.Tasks))
		for i, t := range result.Tasks {
			created := "-"
			if !t.CreatedAt.IsZero() {
				created = t.CreatedAt.Local().Format("2006-01-02 15:04")
			}
			ruleText := t.Rule
			if ruleText == "" {
				ruleText = "-"
			}
			rows = append(rows, []string{strconv.Itoa(i), t.Status.String(), strconv.Itoa(t.Pending()), created, ruleText})
		}

		PrintSection("Task History")
		if len(rows) == 1 && result.Tasks[0].Pending() == 0 {
			PrintEmptyState("No tasks yet.")
			return nil
		}
		PrintTable([]string{"#", "STATUS", "FILES", "CREATED", "RULE"}, rows)
		return nil
	},
}
