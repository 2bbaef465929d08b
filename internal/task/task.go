package task

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/rule"
)

// Renamer is the filesystem primitive a commit pass needs. fsops.FS
// satisfies it.
type Renamer interface {
	Rename(oldpath, newpath string) error
}

// Task is an ordered batch of rename chains plus the batch status.
type Task struct {
	chains []Chain
	status Status
	rule   string

	fs    Renamer
	codec rule.Codec
	local string
	log   logging.Logger
}

// New creates an empty Ready task. codec and localEncoding are only used by
// the transcoding rules.
func New(fs Renamer, codec rule.Codec, localEncoding string, log logging.Logger) *Task {
	if log == nil {
		log = logging.Nop{}
	}
	return &Task{
		chains: []Chain{},
		status: Ready,
		fs:     fs,
		codec:  codec,
		local:  localEncoding,
		log:    log,
	}
}

// Append adds a chain for path and leaves the task Pending.
func (t *Task) Append(path string) {
	if path != "" {
		path = filepath.Clean(path)
	}
	t.chains = append(t.chains, Chain{Original: path})
	if t.status != Pending {
		t.status = Pending
	}
}

// Clear drops every chain and returns the task to Ready.
func (t *Task) Clear() {
	t.chains = []Chain{}
	t.status = Ready
	t.rule = ""
}

// Status returns the batch status.
func (t *Task) Status() Status {
	return t.status
}

// Chains returns a copy of the chain list.
func (t *Task) Chains() []Chain {
	return append([]Chain(nil), t.chains...)
}

// Len returns the number of chains.
func (t *Task) Len() int {
	return len(t.chains)
}

// IsEmpty reports whether the task holds no chains.
func (t *Task) IsEmpty() bool {
	return len(t.chains) == 0
}

// Rule describes the rule used by the last successful pass.
func (t *Task) Rule() string {
	return t.rule
}

// TestAll discards every candidate and computes a fresh one per chain from
// its original path. Ordinal rules receive the chain index as their sequence
// input. If the rule fails for any chain the task is left exactly as it was
// and the error is returned.
func (t *Task) TestAll(mask rule.Mask, r rule.Rule) error {
	if !mask.Valid() {
		err := fmt.Errorf("%w: %s", rule.ErrUnknownMask, mask)
		t.log.Warn("no such rename mask", logging.F("mask", mask.String()))
		return err
	}
	if r == nil {
		t.log.Warn("no rename rule specified")
		return fmt.Errorf("%w: nil rule", rule.ErrUnknownRule)
	}

	candidates, err := t.candidates(mask, r)
	if err != nil {
		t.log.Warn("rename rule rejected", logging.F("rule", r.Kind().String()), logging.F("error", err.Error()))
		return err
	}

	for i := range t.chains {
		t.chains[i].reset()
		t.chains[i].Candidate = candidates[i]
	}
	t.rule = rule.Describe(mask, r)
	if len(t.chains) == 0 {
		t.status = Ready
	} else {
		t.status = Tested
	}
	return nil
}

func (t *Task) candidates(mask rule.Mask, r rule.Rule) ([]string, error) {
	seq, sequenced := r.(rule.Sequenced)
	env := rule.Env{Codec: t.codec, LocalEncoding: t.local}

	out := make([]string, len(t.chains))
	for i, c := range t.chains {
		if c.Original == "" {
			continue
		}
		if sequenced {
			env.Sequence = seq.Sequence(i)
		}
		name, err := rule.Apply(mask, r, filepath.Base(c.Original), env)
		if err != nil {
			return nil, err
		}
		out[i] = filepath.Join(filepath.Dir(c.Original), name)
	}
	return out, nil
}

// CommitAll runs TestAll and then renames every chain from its original path
// to its candidate, in chain order. A failed rename drops that chain's
// candidate and records the error on the chain; the pass continues with the
// next chain. Chains whose candidate equals the original are left untouched
// and lose their candidate as well. The task ends Finished unless TestAll
// rejected the rule, in which case nothing is renamed and its error is
// returned.
func (t *Task) CommitAll(mask rule.Mask, r rule.Rule) error {
	if t.fs == nil {
		return errors.New("task has no filesystem to rename with")
	}
	if err := t.TestAll(mask, r); err != nil {
		return err
	}

	for i := range t.chains {
		c := &t.chains[i]
		if c.Candidate == "" {
			continue
		}
		if c.Candidate == c.Original {
			c.Candidate = ""
			continue
		}
		if err := t.fs.Rename(c.Original, c.Candidate); err != nil {
			t.log.Warn("rename failed",
				logging.F("from", c.Original),
				logging.F("to", c.Candidate),
				logging.F("error", err.Error()))
			c.Candidate = ""
			c.Err = err.Error()
			continue
		}
		c.Committed = true
		t.log.Debug("renamed", logging.F("from", c.Original), logging.F("to", c.Candidate))
	}
	t.status = Finished
	return nil
}

// Snapshot is the serializable form of a Task.
type Snapshot struct {
	Status Status  `json:"status"`
	Rule   string  `json:"rule,omitempty"`
	Chains []Chain `json:"chains"`
}

// Snapshot captures the task's status and chains.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{Status: t.status, Rule: t.rule, Chains: t.Chains()}
}

// Restore replaces the task's contents with s. The snapshot must be
// consistent: Ready holds no chains, Pending and Tested hold at least one.
func (t *Task) Restore(s Snapshot) error {
	if s.Status < Ready || s.Status > Finished {
		return fmt.Errorf("invalid snapshot status %d", int(s.Status))
	}
	empty := len(s.Chains) == 0
	if (s.Status == Ready && !empty) || ((s.Status == Pending || s.Status == Tested) && empty) {
		return fmt.Errorf("inconsistent snapshot: status %s with %d chains", s.Status, len(s.Chains))
	}
	t.chains = append([]Chain{}, s.Chains...)
	t.status = s.Status
	t.rule = s.Rule
	return nil
}
