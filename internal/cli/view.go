package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/danieljhkim/batchren/internal/engine"
	"github.com/danieljhkim/batchren/internal/task"
)

const arrow = " → "

func statusColor(s task.Status) *color.Color {
	switch s {
	case task.Pending:
		return warningColor
	case task.Tested:
		return infoColor
	case task.Finished:
		return successColor
	default:
		return dimColor
	}
}

// printTask renders a task the way the status, test and commit commands
// show it.
func printTask(v engine.TaskView) {
	switch v.Status {
	case task.Ready:
		PrintEmptyState("No files yet.")
		PrintEmptyState("Add files or directories with `batchren add PATH...`.")
	case task.Pending:
		PrintInfo(fmt.Sprintf("%s pending", PrintCount(v.Pending(), "item", "items")))
		fmt.Fprintln(stdout)
		for _, c := range v.Chains {
			PrintInfo(c.Original)
		}
	case task.Tested, task.Finished:
		for _, line := range taskLines(v) {
			PrintInfo(line)
		}
	}
}

// taskLines builds one line per chain for a tested or finished task. Chains
// that stay in one directory show bare names followed by the directory;
// other chains show full paths. Empty slots render as blank lines.
func taskLines(v engine.TaskView) []string {
	action := "test"
	if v.Status == task.Finished {
		action = "rename"
	}

	width := 0
	for _, c := range v.Chains {
		if c.Original != "" && c.InOneDir() {
			if w := runewidth.StringWidth(filepath.Base(c.Original)); w > width {
				width = w
			}
		}
	}

	lines := make([]string, 0, len(v.Chains))
	for _, c := range v.Chains {
		if c.Original == "" {
			lines = append(lines, "")
			continue
		}

		var b strings.Builder
		b.WriteString(action)
		b.WriteString("  ")

		history := c.History()
		if c.InOneDir() {
			b.WriteString(runewidth.FillRight(filepath.Base(history[0]), width))
			for _, name := range history[1:] {
				b.WriteString(arrow)
				b.WriteString(filepath.Base(name))
			}
			b.WriteString("  in dir: ")
			b.WriteString(filepath.Dir(history[0]))
		} else {
			b.WriteString(strings.Join(history, arrow))
		}

		if c.Err != "" {
			b.WriteString("  (failed: ")
			b.WriteString(c.Err)
			b.WriteString(")")
		}
		lines = append(lines, b.String())
	}
	return lines
}
