package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/engine"
)

var (
	testRule   ruleFlags
	commitRule ruleFlags
)

const ruleExamples = `  batchren test --rule rename --to holiday
  batchren test --rule ordinal --prefix img_ --digits 3
  batchren test --rule replace --from " " --with _
  batchren test --rule insert --text draft- --at 1
  batchren test --rule delete --tail --at 1 --count 4
  batchren test --rule to-unicode --encoding Shift-JIS
  batchren test --rule rename --ext-only --to jpg`

var testCmd = &cobra.Command{
	Use:   "test [path]...",
	Short: "Preview new names without renaming",
	Long: `Compute the new name of every file in the current task and show it.

Paths given on the command line replace the current files with a new task.
Nothing is renamed on disk; run "commit" with the same rule to apply it.`,
	Example: ruleExamples,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRule(cmd, args, &testRule, false)
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit [path]...",
	Short: "Rename files on disk",
	Long: `Rename every file in the current task using the given rule.

A file the filesystem refuses to rename (for example because the new name is
taken) keeps its name; the other files are still renamed. A committed task is
finished; add files to start the next one.`,
	Example: ruleExamples,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRule(cmd, args, &commitRule, true)
	},
}

func runRule(cmd *cobra.Command, args []string, flags *ruleFlags, commit bool) error {
	mask, r, err := flags.build(cmd)
	if err != nil {
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	req := &engine.RunRequest{
		CWD:   cwd,
		Mask:  mask,
		Rule:  r,
		Paths: args,
	}

	var result *engine.RunResult
	if commit {
		result, err = eng.Commit(context.Background(), req)
	} else {
		result, err = eng.Test(context.Background(), req)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	printTask(result.Task)
	fmt.Fprintln(stdout)
	switch {
	case !commit:
		PrintInfo(fmt.Sprintf("Tested %s with %s", PrintCount(result.Task.Pending(), "file", "files"), result.Task.Rule))
	case result.Failed > 0:
		PrintWarning(fmt.Sprintf("Renamed %s, %d failed", PrintCount(result.Renamed, "file", "files"), result.Failed))
	default:
		PrintSuccess("Renamed " + PrintCount(result.Renamed, "file", "files"))
	}
	return nil
}

func init() {
	testRule.bind(testCmd)
	commitRule.bind(commitCmd)
}
