package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/clock"
	"github.com/danieljhkim/batchren/internal/codec"
	"github.com/danieljhkim/batchren/internal/config"
	"github.com/danieljhkim/batchren/internal/engine"
	"github.com/danieljhkim/batchren/internal/fsops"
	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/state"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	fs := fsops.NewRealFS()

	// Ensure directories exist
	if err := paths.EnsureDirectories(fs); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	settings, err := config.LoadSettings(fs, paths)
	if err != nil {
		return nil, err
	}

	level := logging.LevelWarn
	if verbose {
		level = logging.LevelDebug
	}
	log := logging.NewConsoleLogger(cmd.ErrOrStderr(), level)

	store := state.NewFileSessionStore(fs, paths.Sessions)

	return engine.New(fs, codec.NewTextCodec(), store, clock.RealClock{}, log, *settings), nil
}

// workingDir returns the directory that selects the session.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// outputJSON outputs a value as indented JSON.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
