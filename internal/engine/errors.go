package engine

import "errors"

var (
	// ErrValidation indicates a malformed request or a rule the core rejected.
	ErrValidation = errors.New("validation failed")

	// ErrNoFiles indicates a run on a task that holds no files.
	ErrNoFiles = errors.New("no files to rename")

	// ErrTaskFinished indicates a run on a task that was already committed.
	ErrTaskFinished = errors.New("task already finished")
)
