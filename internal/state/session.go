package state

import (
	"time"

	"github.com/danieljhkim/batchren/internal/task"
)

// Session is the persisted task stack for one working directory.
type Session struct {
	// Dir is the working directory the session belongs to
	Dir string `json:"dir"`

	// Tasks is the task stack, oldest first; the last entry is the top
	Tasks []TaskRecord `json:"tasks"`

	// UpdatedAt is when the session was last saved
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskRecord is one task in the stack.
type TaskRecord struct {
	task.Snapshot

	// CreatedAt is when the task was pushed
	CreatedAt time.Time `json:"createdAt"`

	// RunAt is when a test or commit pass last ran, zero if never
	RunAt time.Time `json:"runAt,omitempty"`
}

// NewSession creates a session holding a single empty task.
func NewSession(dir string, now time.Time) *Session {
	s := &Session{Dir: dir, Tasks: []TaskRecord{}}
	s.Push(now, 0)
	return s
}

// Top returns the task on top of the stack, pushing an empty one if the
// stack is empty.
func (s *Session) Top() *TaskRecord {
	if len(s.Tasks) == 0 {
		s.Push(time.Time{}, 0)
	}
	return &s.Tasks[len(s.Tasks)-1]
}

// Push adds an empty Ready task on top. A positive depth trims the oldest
// tasks so at most depth remain.
func (s *Session) Push(now time.Time, depth int) *TaskRecord {
	s.Tasks = append(s.Tasks, TaskRecord{
		Snapshot:  task.Snapshot{Status: task.Ready, Chains: []task.Chain{}},
		CreatedAt: now,
	})
	if depth > 0 && len(s.Tasks) > depth {
		s.Tasks = append([]TaskRecord{}, s.Tasks[len(s.Tasks)-depth:]...)
	}
	return s.Top()
}
