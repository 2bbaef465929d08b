package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/engine"
)

var addNew bool

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add files to the current task",
	Long: `Add files or directories to the current task of this directory's session.

Adding files after a commit starts a new task; use --new to start one
explicitly. Paths that do not exist are skipped with a warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := eng.Add(context.Background(), &engine.AddRequest{
			CWD:   cwd,
			Paths: args,
			New:   addNew,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		for _, p := range result.Skipped {
			PrintWarning("skipped missing path " + p)
		}
		msg := "Added " + PrintCount(len(result.Added), "file", "files")
		if result.NewTask {
			msg += " to a new task"
		}
		PrintSuccess(msg)
		printTask(result.Task)
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&addNew, "new", false, "Start a new task instead of extending the current one")
}
