package engine

import "github.com/danieljhkim/batchren/internal/rule"

// AddRequest represents a request to add files to the current task.
type AddRequest struct {
	// CWD is the current working directory (selects the session)
	CWD string

	// Paths are the files to add; relative paths are resolved against CWD
	Paths []string

	// New starts a fresh task instead of extending the current one
	New bool
}

// RunRequest represents a request to test or commit a rename rule.
type RunRequest struct {
	// CWD is the current working directory (selects the session)
	CWD string

	// Mask selects the part of each file name the rule edits
	Mask rule.Mask

	// Rule is the parsed rename rule
	Rule rule.Rule

	// Paths, if given, replace the current files with a new task first
	Paths []string
}

// StatusRequest represents a request for the current task.
type StatusRequest struct {
	// CWD is the current working directory
	CWD string
}

// ClearRequest represents a request to clear the session.
type ClearRequest struct {
	// CWD is the current working directory
	CWD string

	// All deletes the whole task history instead of emptying the top task
	All bool
}

// LogRequest represents a request for the task history.
type LogRequest struct {
	// CWD is the current working directory
	CWD string
}
