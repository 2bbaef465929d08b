package engine

import (
	"time"

	"github.com/danieljhkim/batchren/internal/state"
	"github.com/danieljhkim/batchren/internal/task"
)

// TaskView is a read-only view of one task in the history.
type TaskView struct {
	// Status is the task status
	Status task.Status `json:"status"`

	// Rule describes the rule used by the last pass
	Rule string `json:"rule,omitempty"`

	// Chains are the per-file rename records, in the order files were added
	Chains []task.Chain `json:"chains"`

	// CreatedAt is when the task was started
	CreatedAt time.Time `json:"createdAt"`

	// RunAt is when the last pass ran
	RunAt time.Time `json:"runAt,omitempty"`
}

func viewOf(r state.TaskRecord) TaskView {
	return TaskView{
		Status:    r.Status,
		Rule:      r.Rule,
		Chains:    append([]task.Chain{}, r.Chains...),
		CreatedAt: r.CreatedAt,
		RunAt:     r.RunAt,
	}
}

// Pending counts chains that still carry a name, i.e. every non-empty slot.
func (v TaskView) Pending() int {
	n := 0
	for _, c := range v.Chains {
		if c.Original != "" {
			n++
		}
	}
	return n
}

// AddResult represents the result of adding files.
type AddResult struct {
	// SessionID is the session the files were added to
	SessionID string `json:"sessionId"`

	// Added is the list of absolute paths appended to the task
	Added []string `json:"added"`

	// Skipped is the list of paths that do not exist
	Skipped []string `json:"skipped,omitempty"`

	// NewTask reports whether a new task was started
	NewTask bool `json:"newTask"`

	// Task is the task after the files were added
	Task TaskView `json:"task"`
}

// RunResult represents the result of a test or commit pass.
type RunResult struct {
	// SessionID is the session the pass ran in
	SessionID string `json:"sessionId"`

	// Committed reports whether files were renamed on disk
	Committed bool `json:"committed"`

	// Renamed is the number of files renamed on disk
	Renamed int `json:"renamed"`

	// Unchanged is the number of files whose name the rule left as it was
	Unchanged int `json:"unchanged"`

	// Failed is the number of renames the filesystem refused
	Failed int `json:"failed"`

	// Task is the task after the pass
	Task TaskView `json:"task"`
}

// StatusResult represents the current task of a session.
type StatusResult struct {
	// SessionID is the session ID
	SessionID string `json:"sessionId"`

	// Dir is the directory the session belongs to
	Dir string `json:"dir"`

	// Depth is the number of tasks in the history
	Depth int `json:"depth"`

	// Task is the task on top of the history
	Task TaskView `json:"task"`
}

// LogResult represents the task history, newest first.
type LogResult struct {
	// SessionID is the session ID
	SessionID string `json:"sessionId"`

	// Tasks are the tasks in the history, newest first
	Tasks []TaskView `json:"tasks"`
}

// ClearResult represents the result of clearing a session.
type ClearResult struct {
	// SessionID is the session ID
	SessionID string `json:"sessionId"`

	// Removed is the number of files dropped from the task
	Removed int `json:"removed"`

	// Deleted reports whether the whole history was deleted
	Deleted bool `json:"deleted"`
}
