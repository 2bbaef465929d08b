package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/batchren/internal/fsops"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv("BATCHREN_ROOT", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root == "" {
			t.Error("Root should not be empty")
		}
		if paths.Sessions != filepath.Join(paths.Root, "sessions") {
			t.Errorf("Sessions path incorrect: got %s", paths.Sessions)
		}
		if paths.Config != filepath.Join(paths.Root, "config.json") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
		if filepath.Base(paths.Root) != ".batchren" {
			t.Errorf("Root should end with .batchren, got: %s", paths.Root)
		}
	})

	t.Run("respects BATCHREN_ROOT environment variable", func(t *testing.T) {
		customRoot := "/custom/batchren/path"
		t.Setenv("BATCHREN_ROOT", customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Sessions != filepath.Join(customRoot, "sessions") {
			t.Errorf("Sessions should be under custom root, got: %s", paths.Sessions)
		}
	})
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "root"))

	fs := fsops.NewRealFS()

	if err := paths.EnsureDirectories(fs); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{paths.Root, paths.Sessions} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("directory %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}

	// Idempotent
	if err := paths.EnsureDirectories(fs); err != nil {
		t.Errorf("second EnsureDirectories failed: %v", err)
	}
}

type recordingDirMaker struct {
	dirs []string
	err  error
}

func (r *recordingDirMaker) MkdirAll(path string, perm os.FileMode) error {
	r.dirs = append(r.dirs, path)
	return r.err
}

func TestPaths_EnsureDirectoriesUsesFS(t *testing.T) {
	paths := PathsAt("/data/batchren")

	t.Run("creates root then sessions", func(t *testing.T) {
		fs := &recordingDirMaker{}
		if err := paths.EnsureDirectories(fs); err != nil {
			t.Fatalf("EnsureDirectories failed: %v", err)
		}
		if len(fs.dirs) != 2 || fs.dirs[0] != paths.Root || fs.dirs[1] != paths.Sessions {
			t.Errorf("MkdirAll calls = %v, want [%s %s]", fs.dirs, paths.Root, paths.Sessions)
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		errDenied := errors.New("permission denied")
		fs := &recordingDirMaker{err: errDenied}
		err := paths.EnsureDirectories(fs)
		if !errors.Is(err, errDenied) {
			t.Fatalf("EnsureDirectories error = %v, want %v", err, errDenied)
		}
		if len(fs.dirs) != 1 {
			t.Errorf("MkdirAll called %d times, want 1", len(fs.dirs))
		}
	})
}
