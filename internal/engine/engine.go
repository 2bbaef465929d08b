// Package engine provides the core business logic for batchren operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// the rename core. Every operation loads the session of the working
// directory, mutates only the task on top of its stack, and saves the session
// back before returning a result struct.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Add: Appends files to a task, starting a new one when needed
//   - Test/Commit: Runs a rename rule in preview or on disk
//   - Status/Log/Clear: Inspects and resets the session
package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/batchren/internal/clock"
	"github.com/danieljhkim/batchren/internal/config"
	"github.com/danieljhkim/batchren/internal/fsops"
	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/rule"
	"github.com/danieljhkim/batchren/internal/state"
	"github.com/danieljhkim/batchren/internal/task"
)

// Engine orchestrates all batchren operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	codec    rule.Codec
	store    state.SessionStore
	clock    clock.Clock
	log      logging.Logger
	settings config.Settings
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	codec rule.Codec,
	store state.SessionStore,
	clk clock.Clock,
	log logging.Logger,
	settings config.Settings,
) *Engine {
	if log == nil {
		log = logging.Nop{}
	}
	if settings.HistoryDepth < 1 {
		settings.HistoryDepth = config.DefaultHistoryDepth
	}
	return &Engine{
		fs:       fs,
		codec:    codec,
		store:    store,
		clock:    clk,
		log:      log,
		settings: settings,
	}
}

// session is a loaded session plus the ID it is stored under.
type session struct {
	id string
	*state.Session
}

// openSession loads the session for cwd, creating an empty one if none has
// been saved yet.
func (e *Engine) openSession(cwd string) (*session, error) {
	dir, err := absDir(cwd)
	if err != nil {
		return nil, err
	}
	id := state.ComputeSessionID(dir)

	s, err := e.store.Load(id)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		e.log.Debug("starting new session", logging.F("dir", dir))
		s = state.NewSession(dir, e.clock.Now())
	}
	return &session{id: id, Session: s}, nil
}

func (e *Engine) saveSession(s *session) error {
	s.UpdatedAt = e.clock.Now()
	if err := e.store.Save(s.id, s.Session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// topTask rebuilds a live task from the snapshot on top of the stack.
func (e *Engine) topTask(s *session) (*task.Task, error) {
	t := task.New(e.fs, e.codec, e.settings.LocalEncoding, e.log.With(logging.F("session", shortID(s.id))))
	if err := t.Restore(s.Top().Snapshot); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", shortID(s.id), err)
	}
	return t, nil
}

func absDir(cwd string) (string, error) {
	if cwd == "" {
		return "", fmt.Errorf("%w: working directory is required", ErrValidation)
	}
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", cwd, err)
	}
	return dir, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
