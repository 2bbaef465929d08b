package engine

import (
	"context"

	"github.com/danieljhkim/batchren/internal/task"
)

// Status returns the task on top of the session's history.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := e.openSession(req.CWD)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		SessionID: s.id,
		Dir:       s.Dir,
		Depth:     len(s.Tasks),
		Task:      viewOf(*s.Top()),
	}, nil
}

// Log returns every task in the session's history, newest first.
func (e *Engine) Log(ctx context.Context, req *LogRequest) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := e.openSession(req.CWD)
	if err != nil {
		return nil, err
	}

	result := &LogResult{SessionID: s.id, Tasks: make([]TaskView, 0, len(s.Tasks))}
	for i := len(s.Tasks) - 1; i >= 0; i-- {
		result.Tasks = append(result.Tasks, viewOf(s.Tasks[i]))
	}
	return result, nil
}

// Clear empties the task on top of the history, or deletes the whole
// history when req.All is set.
func (e *Engine) Clear(ctx context.Context, req *ClearRequest) (*ClearResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := e.openSession(req.CWD)
	if err != nil {
		return nil, err
	}
	result := &ClearResult{SessionID: s.id, Removed: viewOf(*s.Top()).Pending()}

	if req.All {
		if err := e.store.Delete(s.id); err != nil {
			return nil, err
		}
		result.Deleted = true
		return result, nil
	}

	// A corrupt top task is replaced rather than restored.
	t := task.New(e.fs, e.codec, e.settings.LocalEncoding, e.log)
	t.Clear()
	s.Top().Snapshot = t.Snapshot()

	if err := e.saveSession(s); err != nil {
		return nil, err
	}
	return result, nil
}
