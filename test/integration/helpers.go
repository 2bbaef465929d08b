package integration

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/danieljhkim/batchren/internal/clock"
	"github.com/danieljhkim/batchren/internal/codec"
	"github.com/danieljhkim/batchren/internal/config"
	"github.com/danieljhkim/batchren/internal/engine"
	"github.com/danieljhkim/batchren/internal/fsops"
	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/state"
)

// testEnv wires an engine to the real filesystem inside a temp directory.
type testEnv struct {
	eng   *engine.Engine
	dir   string
	paths *config.Paths
	clock *clock.FakeClock
	log   *logging.Recorder
}

func setupTestEngine(t *testing.T, localEncoding string) *testEnv {
	t.Helper()

	root := t.TempDir()
	paths := config.PathsAt(filepath.Join(root, "home"))
	fs := fsops.NewRealFS()
	if err := paths.EnsureDirectories(fs); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	dir := filepath.Join(root, "work")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	rec := &logging.Recorder{}
	settings := config.Settings{LocalEncoding: localEncoding, HistoryDepth: config.DefaultHistoryDepth}
	eng := engine.New(fs, codec.NewTextCodec(), state.NewFileSessionStore(fs, paths.Sessions), clk, rec, settings)

	return &testEnv{eng: eng, dir: dir, paths: paths, clock: clk, log: rec}
}

// writeFiles creates empty files in the work directory.
func (e *testEnv) writeFiles(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(e.dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// listDir returns the sorted names in the work directory.
func (e *testEnv) listDir(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		t.Fatalf("failed to read work dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
