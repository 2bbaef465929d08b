// Package logging provides the diagnostic channel used by the rename core.
//
// The core reports configuration problems and per-file rename failures
// through a Logger instead of printing. The CLI installs a ConsoleLogger that
// writes leveled, colored lines to stderr; tests install a Recorder.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger is a leveled logger with structured key/value fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that adds fields to every entry.
	With(fields ...Field) Logger
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgCyan),
	LevelWarn:  color.New(color.FgYellow, color.Bold),
	LevelError: color.New(color.FgRed, color.Bold),
}

// ConsoleLogger writes "LEVEL msg key=value ..." lines. The level tag is
// colored; fatih/color disables color when the output is not a terminal.
type ConsoleLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	min    Level
	fields []Field
}

// NewConsoleLogger creates a ConsoleLogger writing entries at or above min.
func NewConsoleLogger(out io.Writer, min Level) *ConsoleLogger {
	return &ConsoleLogger{mu: &sync.Mutex{}, out: out, min: min}
}

func (l *ConsoleLogger) log(level Level, msg string, fields []Field) {
	if level < l.min {
		return
	}
	var b strings.Builder
	b.WriteString(levelColors[level].Sprint(level.String()))
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range append(append([]Field{}, l.fields...), fields...) {
		fmt.Fprintf(&b, " %s=%v", f.Key, quoteIfNeeded(f.Value))
	}
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}

func quoteIfNeeded(v any) any {
	if s, ok := v.(string); ok && (s == "" || strings.ContainsAny(s, " \t\"=")) {
		return fmt.Sprintf("%q", s)
	}
	return v
}

func (l *ConsoleLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *ConsoleLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *ConsoleLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *ConsoleLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *ConsoleLogger) With(fields ...Field) Logger {
	return &ConsoleLogger{
		mu:     l.mu,
		out:    l.out,
		min:    l.min,
		fields: append(append([]Field{}, l.fields...), fields...),
	}
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Debug(string, ...Field) {}
func (Nop) Info(string, ...Field)  {}
func (Nop) Warn(string, ...Field)  {}
func (Nop) Error(string, ...Field) {}
func (n Nop) With(...Field) Logger { return n }

// Entry is one recorded log call.
type Entry struct {
	Level  Level
	Msg    string
	Fields []Field
}

// Recorder keeps entries in memory for tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) record(level Level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: fields})
}

func (r *Recorder) Debug(msg string, fields ...Field) { r.record(LevelDebug, msg, fields) }
func (r *Recorder) Info(msg string, fields ...Field)  { r.record(LevelInfo, msg, fields) }
func (r *Recorder) Warn(msg string, fields ...Field)  { r.record(LevelWarn, msg, fields) }
func (r *Recorder) Error(msg string, fields ...Field) { r.record(LevelError, msg, fields) }
func (r *Recorder) With(...Field) Logger              { return r }

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Count returns how many entries were recorded at level.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}
