package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/task"
)

// Add appends files to the task on top of the session's history.
//
// A new task is started when req.New is set or when the current task has
// already been committed; the oldest tasks are dropped once the history is
// deeper than the configured limit. Paths that do not exist are skipped.
func (e *Engine) Add(ctx context.Context, req *AddRequest) (*AddResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", ErrValidation)
	}

	s, err := e.openSession(req.CWD)
	if err != nil {
		return nil, err
	}

	added, skipped, err := e.resolvePaths(s.Dir, req.Paths)
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return nil, fmt.Errorf("%w: none of the given paths exist", ErrNoFiles)
	}

	fresh := req.New || s.Top().Status == task.Finished
	newTask, err := e.appendFiles(s, added, fresh)
	if err != nil {
		return nil, err
	}

	if err := e.saveSession(s); err != nil {
		return nil, err
	}

	return &AddResult{
		SessionID: s.id,
		Added:     added,
		Skipped:   skipped,
		NewTask:   newTask,
		Task:      viewOf(*s.Top()),
	}, nil
}

// resolvePaths makes every path absolute against dir and splits them into
// existing and missing ones.
func (e *Engine) resolvePaths(dir string, paths []string) (added, skipped []string, err error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		p = filepath.Clean(p)

		exists, err := e.fs.Exists(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check %s: %w", p, err)
		}
		if !exists {
			e.log.Warn("no such file", logging.F("path", p))
			skipped = append(skipped, p)
			continue
		}
		added = append(added, p)
	}
	return added, skipped, nil
}

// appendFiles adds paths to the top task, first pushing a new task if fresh
// is set and the top task is not already empty. It reports whether a task
// was pushed.
func (e *Engine) appendFiles(s *session, paths []string, fresh bool) (bool, error) {
	pushed := false
	if fresh && s.Top().Status != task.Ready {
		s.Push(e.clock.Now(), e.settings.HistoryDepth)
		pushed = true
	}

	t, err := e.topTask(s)
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		t.Append(p)
	}

	top := s.Top()
	if top.CreatedAt.IsZero() {
		top.CreatedAt = e.clock.Now()
	}
	top.Snapshot = t.Snapshot()
	e.log.Debug("files added", logging.F("count", len(paths)), logging.F("total", t.Len()))
	return pushed, nil
}
