package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/task"
)

// Test computes the new name of every file in the current task without
// touching the filesystem.
func (e *Engine) Test(ctx context.Context, req *RunRequest) (*RunResult, error) {
	return e.run(ctx, req, false)
}

// Commit renames every file in the current task on disk. Files the
// filesystem refuses to rename are reported in the result; the remaining
// files are still renamed.
func (e *Engine) Commit(ctx context.Context, req *RunRequest) (*RunResult, error) {
	return e.run(ctx, req, true)
}

func (e *Engine) run(ctx context.Context, req *RunRequest, commit bool) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Rule == nil {
		return nil, fmt.Errorf("%w: a rename rule is required", ErrValidation)
	}
	if !req.Mask.Valid() {
		return nil, fmt.Errorf("%w: no such rename mask %s", ErrValidation, req.Mask)
	}

	s, err := e.openSession(req.CWD)
	if err != nil {
		return nil, err
	}

	if len(req.Paths) > 0 {
		added, _, err := e.resolvePaths(s.Dir, req.Paths)
		if err != nil {
			return nil, err
		}
		if len(added) == 0 {
			return nil, fmt.Errorf("%w: none of the given paths exist", ErrNoFiles)
		}
		if _, err := e.appendFiles(s, added, true); err != nil {
			return nil, err
		}
	}

	top := s.Top()
	switch top.Status {
	case task.Ready:
		return nil, ErrNoFiles
	case task.Finished:
		return nil, fmt.Errorf("%w: add files to start a new task", ErrTaskFinished)
	}

	t, err := e.topTask(s)
	if err != nil {
		return nil, err
	}

	if commit {
		err = t.CommitAll(req.Mask, req.Rule)
	} else {
		err = t.TestAll(req.Mask, req.Rule)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	top.Snapshot = t.Snapshot()
	top.RunAt = e.clock.Now()

	result := &RunResult{
		SessionID: s.id,
		Committed: commit,
		Task:      viewOf(*top),
	}
	tally(result, top.Chains)

	if err := e.saveSession(s); err != nil {
		if commit {
			e.log.Error("files were renamed but the session could not be saved", logging.F("error", err.Error()))
		}
		return nil, err
	}

	e.log.Info("rename pass finished",
		logging.F("commit", commit),
		logging.F("renamed", result.Renamed),
		logging.F("unchanged", result.Unchanged),
		logging.F("failed", result.Failed))
	return result, nil
}

func tally(r *RunResult, chains []task.Chain) {
	for _, c := range chains {
		switch {
		case c.Original == "":
		case c.Err != "":
			r.Failed++
		case c.Committed:
			r.Renamed++
		case c.Candidate == "" || c.Candidate == c.Original:
			r.Unchanged++
		}
	}
}
