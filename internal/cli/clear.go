package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/engine"
)

var clearAll bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the files of the current task",
	Long: `Empty the current task so new files can be added.

With --all the whole task history of this directory is deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := eng.Clear(context.Background(), &engine.ClearRequest{CWD: cwd, All: clearAll})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.Deleted {
			PrintSuccess("Deleted task history")
			return nil
		}
		PrintSuccess("Cleared " + PrintCount(result.Removed, "file", "files"))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Delete the whole task history")
}
