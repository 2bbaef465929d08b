package task

import "fmt"

// Status is the stage a whole batch is in.
type Status int

const (
	// Ready means the task holds no files.
	Ready Status = iota
	// Pending means files are present and no rule has been applied since the
	// last reset.
	Pending
	// Tested means every chain carries a freshly computed candidate.
	Tested
	// Finished means a commit pass has run.
	Finished
)

var statusNames = [...]string{"ready", "pending", "tested", "finished"}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("invalid status %q", text)
}
