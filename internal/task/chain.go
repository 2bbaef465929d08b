package task

import (
	"path/filepath"

	"github.com/danieljhkim/batchren/internal/logging"
)

// Chain is the rename record of one tracked file.
type Chain struct {
	// Original is the path the file had when it was appended. An empty
	// Original marks a cleared slot that every pass skips.
	Original string `json:"original"`

	// Candidate is the path computed by the last test pass, empty when none.
	Candidate string `json:"candidate,omitempty"`

	// Committed is set once the file was renamed to Candidate on disk.
	Committed bool `json:"committed,omitempty"`

	// Err holds the rename failure that dropped the candidate during commit.
	Err string `json:"error,omitempty"`
}

// History returns the chain's names oldest first: the original path, then the
// candidate if there is one.
func (c Chain) History() []string {
	if c.Candidate == "" {
		return []string{c.Original}
	}
	return []string{c.Original, c.Candidate}
}

// Current returns the newest name in the chain.
func (c Chain) Current() string {
	if c.Candidate != "" {
		return c.Candidate
	}
	return c.Original
}

// InOneDir reports whether every name in the chain lives in the same
// directory.
func (c Chain) InOneDir() bool {
	return IsAllInOneDir(c.History(), nil)
}

func (c *Chain) reset() {
	*c = Chain{Original: c.Original}
}

// IsAllInOneDir reports whether every path shares the parent directory of the
// first. An empty list is reported to log and yields false.
func IsAllInOneDir(paths []string, log logging.Logger) bool {
	if len(paths) == 0 {
		if log != nil {
			log.Debug("empty rename history")
		}
		return false
	}
	first := filepath.Dir(filepath.Clean(paths[0]))
	for _, p := range paths[1:] {
		if filepath.Dir(filepath.Clean(p)) != first {
			return false
		}
	}
	return true
}
