package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	color.NoColor = true
}

// resetFlags restores every flag in the command tree to its default so
// package-level flag variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output, "batchren") {
		t.Error("expected help to contain 'batchren'")
	}
	for _, group := range []string{"Task Lifecycle:", "History:", "CLI & Tooling:"} {
		if !strings.Contains(output, group) {
			t.Errorf("expected help to contain group %q", group)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")

	output, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(output) != "1.2.3" {
		t.Errorf("expected version output 1.2.3, got %q", output)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := execute(t, "invalid-command"); err == nil {
		t.Error("expected error for invalid command")
	}
}

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"normal version", "1.2.3", "1.2.3"},
		{"empty version keeps previous", "", "1.2.3"},
		{"dev version", "dev", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)
			if rootCmd.Version != tt.want {
				t.Errorf("SetVersion(%q) left %q, want %q", tt.version, rootCmd.Version, tt.want)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	subcommands := []string{"add", "test", "commit", "status", "clear", "log", "encodings", "version", "completion"}

	for _, name := range subcommands {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			if err != nil || cmd == rootCmd {
				t.Errorf("subcommand %q not registered", name)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	output, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output, "batchren") {
		t.Error("expected completion script to mention batchren")
	}
}
