package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/batchren/internal/logging"
	"github.com/danieljhkim/batchren/internal/rule"
)

// fakeRenamer records renames and fails for sources listed in fail.
type fakeRenamer struct {
	fail  map[string]bool
	calls []renameCall
}

type renameCall struct {
	from string
	to   string
}

func newFakeRenamer(failing ...string) *fakeRenamer {
	r := &fakeRenamer{fail: make(map[string]bool)}
	for _, p := range failing {
		r.fail[p] = true
	}
	return r
}

func (r *fakeRenamer) Rename(oldpath, newpath string) error {
	r.calls = append(r.calls, renameCall{from: oldpath, to: newpath})
	if r.fail[oldpath] {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrPermission}
	}
	return nil
}

func newTestTask(fs Renamer, paths ...string) (*Task, *logging.Recorder) {
	log := &logging.Recorder{}
	tk := New(fs, nil, "UTF-8", log)
	for _, p := range paths {
		tk.Append(p)
	}
	return tk, log
}

func candidates(tk *Task) []string {
	var out []string
	for _, c := range tk.Chains() {
		out = append(out, c.Candidate)
	}
	return out
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries %v, want %d entries %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTask_StatusTransitions(t *testing.T) {
	tk, _ := newTestTask(newFakeRenamer())
	if tk.Status() != Ready || !tk.IsEmpty() {
		t.Fatalf("new task: status %s, empty %v; want ready and empty", tk.Status(), tk.IsEmpty())
	}

	tk.Append("/a/x.txt")
	if tk.Status() != Pending {
		t.Errorf("after Append: status %s, want pending", tk.Status())
	}

	if err := tk.TestAll(rule.ExtExcluded, rule.Rename{To: "y"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	if tk.Status() != Tested {
		t.Errorf("after TestAll: status %s, want tested", tk.Status())
	}

	tk.Append("/a/z.txt")
	if tk.Status() != Pending {
		t.Errorf("after Append on tested task: status %s, want pending", tk.Status())
	}

	if err := tk.CommitAll(rule.ExtExcluded, rule.Rename{To: "y"}); err != nil {
		t.Fatalf("CommitAll() error = %v", err)
	}
	if tk.Status() != Finished {
		t.Errorf("after CommitAll: status %s, want finished", tk.Status())
	}

	tk.Clear()
	if tk.Status() != Ready || tk.Len() != 0 {
		t.Errorf("after Clear: status %s, len %d; want ready and 0", tk.Status(), tk.Len())
	}
}

func TestTask_TestAllOnEmptyTaskStaysReady(t *testing.T) {
	tk, _ := newTestTask(newFakeRenamer())
	if err := tk.TestAll(rule.ExtExcluded, rule.Rename{To: "x"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	if tk.Status() != Ready {
		t.Errorf("status = %s, want ready", tk.Status())
	}
}

func TestTask_TestAllRecomputesFromOriginal(t *testing.T) {
	tk, _ := newTestTask(newFakeRenamer(), "/d/a.txt", "/d/b.txt")

	if err := tk.TestAll(rule.ExtExcluded, rule.Insert{Text: "x", Offset: 0}); err != nil {
		t.Fatalf("first TestAll() error = %v", err)
	}
	if err := tk.TestAll(rule.ExtExcluded, rule.Insert{Text: "y", Offset: 0}); err != nil {
		t.Fatalf("second TestAll() error = %v", err)
	}

	for _, c := range tk.Chains() {
		if len(c.History()) != 2 {
			t.Errorf("chain %q history length = %d, want 2", c.Original, len(c.History()))
		}
	}
	assertStrings(t, candidates(tk), []string{"/d/ya.txt", "/d/yb.txt"})
}

func TestTask_OrdinalSequence(t *testing.T) {
	tk, _ := newTestTask(newFakeRenamer(), "/p/a.txt", "/p/b.txt", "/p/c.txt")

	if err := tk.TestAll(rule.ExtExcluded, rule.Ordinal{Prefix: "img_", Template: "000"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	assertStrings(t, candidates(tk), []string{"/p/img_000.txt", "/p/img_001.txt", "/p/img_002.txt"})

	if err := tk.TestAll(rule.ExtExcluded, rule.Ordinal{Prefix: "img_", Template: "001"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	assertStrings(t, candidates(tk), []string{"/p/img_001.txt", "/p/img_002.txt", "/p/img_003.txt"})

	if err := tk.TestAll(rule.ExtExcluded, rule.Ordinal{Template: "01", Reverse: true}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	assertStrings(t, candidates(tk), []string{"/p/01.txt", "/p/00.txt", "/p/99.txt"})
}

func TestTask_OrdinalTenthFile(t *testing.T) {
	var paths []string
	for i := 0; i < 10; i++ {
		paths = append(paths, fmt.Sprintf("/n/f%d", i))
	}
	tk, _ := newTestTask(newFakeRenamer(), paths...)

	if err := tk.TestAll(rule.ExtExcluded, rule.Ordinal{Template: "00"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	if got := tk.Chains()[9].Candidate; got != "/n/09" {
		t.Errorf("tenth candidate = %q, want /n/09", got)
	}
}

func TestTask_RuleErrorLeavesStateUntouched(t *testing.T) {
	tk, log := newTestTask(newFakeRenamer(), "/d/a.txt", "/d/README")

	if err := tk.TestAll(rule.ExtExcluded, rule.Rename{To: "z"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}
	before := tk.Chains()

	// Renaming README's base to "" yields an empty name; the whole pass aborts.
	err := tk.TestAll(rule.ExtExcluded, rule.Rename{To: ""})
	if !errors.Is(err, rule.ErrInvalidName) {
		t.Fatalf("TestAll() error = %v, want ErrInvalidName", err)
	}
	if tk.Status() != Tested {
		t.Errorf("status = %s, want tested", tk.Status())
	}
	after := tk.Chains()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("chain %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if log.Count(logging.LevelWarn) != 1 {
		t.Errorf("warn entries = %d, want 1", log.Count(logging.LevelWarn))
	}
}

func TestTask_InvalidMaskAndNilRule(t *testing.T) {
	tk, log := newTestTask(newFakeRenamer(), "/d/a.txt")

	if err := tk.TestAll(rule.Mask(5), rule.Rename{To: "b"}); !errors.Is(err, rule.ErrUnknownMask) {
		t.Errorf("TestAll(bad mask) error = %v, want ErrUnknownMask", err)
	}
	if err := tk.TestAll(rule.ExtExcluded, nil); !errors.Is(err, rule.ErrUnknownRule) {
		t.Errorf("TestAll(nil rule) error = %v, want ErrUnknownRule", err)
	}
	if tk.Status() != Pending {
		t.Errorf("status = %s, want pending", tk.Status())
	}
	if log.Count(logging.LevelWarn) != 2 {
		t.Errorf("warn entries = %d, want 2", log.Count(logging.LevelWarn))
	}
}

func TestTask_EmptySlotIsSkipped(t *testing.T) {
	fs := newFakeRenamer()
	tk, _ := newTestTask(fs, "/d/a.txt", "", "/d/c.txt")

	if err := tk.CommitAll(rule.ExtExcluded, rule.Ordinal{Template: "0"}); err != nil {
		t.Fatalf("CommitAll() error = %v", err)
	}
	assertStrings(t, candidates(tk), []string{"/d/0.txt", "", "/d/2.txt"})
	if len(fs.calls) != 2 {
		t.Errorf("rename calls = %d, want 2", len(fs.calls))
	}
}

func TestTask_CommitAllPartialFailure(t *testing.T) {
	fs := newFakeRenamer("/d/b.txt")
	tk, log := newTestTask(fs, "/d/a.txt", "/d/b.txt", "/d/c.txt")

	if err := tk.CommitAll(rule.ExtOnly, rule.Rename{To: "md"}); err != nil {
		t.Fatalf("CommitAll() error = %v", err)
	}
	if tk.Status() != Finished {
		t.Errorf("status = %s, want finished", tk.Status())
	}

	chains := tk.Chains()
	wantLens := []int{2, 1, 2}
	for i, c := range chains {
		if got := len(c.History()); got != wantLens[i] {
			t.Errorf("chain %d history length = %d, want %d", i, got, wantLens[i])
		}
	}
	if !chains[0].Committed || chains[1].Committed || !chains[2].Committed {
		t.Errorf("committed flags = %v %v %v, want true false true", chains[0].Committed, chains[1].Committed, chains[2].Committed)
	}
	if chains[1].Err == "" {
		t.Error("failed chain should record its error")
	}
	if chains[2].Current() != "/d/c.md" {
		t.Errorf("chain 2 current = %q, want /d/c.md", chains[2].Current())
	}
	if len(fs.calls) != 3 {
		t.Errorf("rename calls = %d, want 3", len(fs.calls))
	}
	if log.Count(logging.LevelWarn) != 1 {
		t.Errorf("warn entries = %d, want 1", log.Count(logging.LevelWarn))
	}
}

func TestTask_CommitAllSkipsUnchangedNames(t *testing.T) {
	fs := newFakeRenamer()
	tk, _ := newTestTask(fs, "/d/apple.txt", "/d/pear.txt")

	if err := tk.CommitAll(rule.ExtExcluded, rule.Replace{From: "pp", To: "b"}); err != nil {
		t.Fatalf("CommitAll() error = %v", err)
	}
	chains := tk.Chains()
	if chains[0].Candidate != "/d/able.txt" || !chains[0].Committed {
		t.Errorf("chain 0 = %+v, want committed rename to /d/able.txt", chains[0])
	}
	if chains[1].Candidate != "" || chains[1].Committed || chains[1].Err != "" {
		t.Errorf("chain 1 = %+v, want untouched", chains[1])
	}
	if len(fs.calls) != 1 {
		t.Errorf("rename calls = %d, want 1", len(fs.calls))
	}
}

func TestTask_CommitAllRuleErrorRenamesNothing(t *testing.T) {
	fs := newFakeRenamer()
	tk, _ := newTestTask(fs, "/d/a.txt")

	err := tk.CommitAll(rule.ExtExcluded, rule.Ordinal{Template: "x"})
	if !errors.Is(err, rule.ErrInvalidArgument) {
		t.Fatalf("CommitAll() error = %v, want ErrInvalidArgument", err)
	}
	if len(fs.calls) != 0 {
		t.Errorf("rename calls = %d, want 0", len(fs.calls))
	}
	if tk.Status() != Pending {
		t.Errorf("status = %s, want pending", tk.Status())
	}
}

func TestTask_CommitAllOnRealFilesystem(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"über.txt", "taken.txt", "x.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	tk, _ := newTestTask(realRenamer{},
		filepath.Join(dir, "über.txt"),
		filepath.Join(dir, "missing.txt"),
		filepath.Join(dir, "x.txt"))

	if err := tk.CommitAll(rule.ExtExcluded, rule.Delete{Start: 0, Count: 1}); err != nil {
		t.Fatalf("CommitAll() error = %v", err)
	}

	chains := tk.Chains()
	if !chains[0].Committed || chains[0].Candidate != filepath.Join(dir, "ber.txt") {
		t.Errorf("chain 0 = %+v, want committed to ber.txt", chains[0])
	}
	if chains[1].Committed || chains[1].Err == "" {
		t.Errorf("chain 1 = %+v, want failure recorded", chains[1])
	}
	if !chains[2].Committed {
		t.Errorf("chain 2 = %+v, want committed", chains[2])
	}
	if _, err := os.Stat(filepath.Join(dir, "ber.txt")); err != nil {
		t.Errorf("ber.txt should exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".txt")); err != nil {
		t.Errorf(".txt should exist: %v", err)
	}
}

type realRenamer struct{}

func (realRenamer) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func TestTask_SnapshotRestore(t *testing.T) {
	tk, _ := newTestTask(newFakeRenamer(), "/d/a.txt")
	if err := tk.TestAll(rule.ExtExcluded, rule.Rename{To: "b"}); err != nil {
		t.Fatalf("TestAll() error = %v", err)
	}

	snap := tk.Snapshot()
	restored, _ := newTestTask(newFakeRenamer())
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored.Status() != Tested || restored.Len() != 1 || restored.Rule() != tk.Rule() {
		t.Errorf("restored = %s/%d/%q, want tested/1/%q", restored.Status(), restored.Len(), restored.Rule(), tk.Rule())
	}

	bad := []Snapshot{
		{Status: Ready, Chains: []Chain{{Original: "/x"}}},
		{Status: Tested},
		{Status: Status(9)},
	}
	for _, s := range bad {
		if err := restored.Restore(s); err == nil {
			t.Errorf("Restore(%+v) should fail", s)
		}
	}
}

func TestIsAllInOneDir(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  bool
	}{
		{name: "empty", paths: nil, want: false},
		{name: "single", paths: []string{"/a/x"}, want: true},
		{name: "same dir", paths: []string{"/a/x", "/a/y"}, want: true},
		{name: "different dirs", paths: []string{"/a/x", "/b/y"}, want: false},
		{name: "unclean same dir", paths: []string{"/a/./x", "/a//y"}, want: true},
		{name: "nested", paths: []string{"/a/x", "/a/b/y"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &logging.Recorder{}
			if got := IsAllInOneDir(tt.paths, log); got != tt.want {
				t.Errorf("IsAllInOneDir(%v) = %v, want %v", tt.paths, got, tt.want)
			}
			if len(tt.paths) == 0 && log.Count(logging.LevelDebug) != 1 {
				t.Error("empty input should be reported")
			}
		})
	}
}

func TestStatus_Text(t *testing.T) {
	for _, s := range []Status{Ready, Pending, Tested, Finished} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) error = %v", s, err)
		}
		var back Status
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, back, err, s)
		}
	}
	if _, err := Status(7).MarshalText(); err == nil {
		t.Error("MarshalText(7) should fail")
	}
}
