package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/batchren/internal/engine"
	"github.com/danieljhkim/batchren/internal/rule"
)

// setupTestEnv points batchren at a temp root and changes into a fresh work
// directory holding the given files.
func setupTestEnv(t *testing.T, files ...string) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("BATCHREN_ROOT", filepath.Join(tmpDir, "home"))
	t.Setenv("BATCHREN_LOCAL_ENCODING", "UTF-8")
	t.Setenv("BATCHREN_HISTORY", "")

	workDir := filepath.Join(tmpDir, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(workDir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldDir) })

	return workDir
}

func decode[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(output), &v); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v, output: %q", err, output)
	}
	return v
}

func TestAddAndStatus_JSONOutput(t *testing.T) {
	setupTestEnv(t, "a.txt", "b.txt")

	output, err := execute(t, "--json", "add", "a.txt", "b.txt", "missing.txt")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	added := decode[engine.AddResult](t, output)
	if len(added.Added) != 2 || len(added.Skipped) != 1 {
		t.Errorf("unexpected add result: %+v", added)
	}

	output, err = execute(t, "--json", "status")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output, `"status": "pending"`) {
		t.Errorf("expected pending status in %s", output)
	}
	status := decode[engine.StatusResult](t, output)
	if len(status.Task.Chains) != 2 || status.Depth != 1 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestTestThenCommit(t *testing.T) {
	workDir := setupTestEnv(t, "x.jpg", "y.jpg")

	if _, err := execute(t, "add", "x.jpg", "y.jpg"); err != nil {
		t.Fatalf("add: %v", err)
	}

	output, err := execute(t, "test", "--rule", "ordinal", "--prefix", "img_")
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if !strings.Contains(output, "test  x.jpg → img_001.jpg  in dir: ") {
		t.Errorf("unexpected test output:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(workDir, "x.jpg")); err != nil {
		t.Errorf("test must not rename: %v", err)
	}

	output, err = execute(t, "commit", "--rule", "ordinal", "--prefix", "img_")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !strings.Contains(output, "Renamed 2 files") {
		t.Errorf("unexpected commit output:\n%s", output)
	}
	for _, name := range []string{"img_001.jpg", "img_002.jpg"} {
		if _, err := os.Stat(filepath.Join(workDir, name)); err != nil {
			t.Errorf("expected %s on disk: %v", name, err)
		}
	}

	_, err = execute(t, "commit", "--rule", "ordinal")
	if !errors.Is(err, engine.ErrTaskFinished) {
		t.Errorf("expected ErrTaskFinished, got %v", err)
	}
}

func TestCommit_WithPaths(t *testing.T) {
	workDir := setupTestEnv(t, "photo one.jpeg")

	output, err := execute(t, "--json", "commit", "--rule", "rename", "--ext-only", "--to", "jpg", "photo one.jpeg")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	result := decode[engine.RunResult](t, output)
	if result.Renamed != 1 {
		t.Errorf("Renamed = %d, want 1", result.Renamed)
	}
	if _, err := os.Stat(filepath.Join(workDir, "photo one.jpg")); err != nil {
		t.Errorf("expected renamed file: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	setupTestEnv(t, "a.txt")

	if _, err := execute(t, "test", "--rule", "rename", "--to", "b"); !errors.Is(err, engine.ErrNoFiles) {
		t.Errorf("expected ErrNoFiles on empty session, got %v", err)
	}
	if _, err := execute(t, "test", "--to", "b"); err == nil {
		t.Error("expected error when --rule is missing")
	}
	if _, err := execute(t, "test", "--rule", "rename", "a.txt"); !errors.Is(err, rule.ErrInsufficientArguments) {
		t.Errorf("expected ErrInsufficientArguments, got %v", err)
	}
}

func TestLogAndClear(t *testing.T) {
	setupTestEnv(t, "a.txt", "b.txt")

	if _, err := execute(t, "commit", "--rule", "insert", "--text", "1-", "a.txt"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := execute(t, "add", "b.txt"); err != nil {
		t.Fatalf("add: %v", err)
	}

	output, err := execute(t, "--json", "log")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	history := decode[engine.LogResult](t, output)
	if len(history.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(history.Tasks))
	}
	if history.Tasks[0].Pending() != 1 || !strings.HasPrefix(history.Tasks[1].Rule, "insert") {
		t.Errorf("unexpected history: %+v", history.Tasks)
	}

	output, err = execute(t, "log")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(output, "STATUS") || !strings.Contains(output, "finished") {
		t.Errorf("unexpected log table:\n%s", output)
	}

	output, err = execute(t, "clear")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(output, "Cleared 1 file") {
		t.Errorf("unexpected clear output: %q", output)
	}

	if _, err := execute(t, "clear", "--all"); err != nil {
		t.Fatalf("clear --all: %v", err)
	}
	output, err = execute(t, "--json", "log")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if got := decode[engine.LogResult](t, output); len(got.Tasks) != 1 || got.Tasks[0].Pending() != 0 {
		t.Errorf("expected a fresh history, got %+v", got.Tasks)
	}
}

func TestEncodingsCommand(t *testing.T) {
	output, err := execute(t, "--json", "encodings")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	infos := decode[[]encodingInfo](t, output)
	if len(infos) != 5 || infos[0].Name != "Shift-JIS" {
		t.Errorf("unexpected encodings: %+v", infos)
	}
}
