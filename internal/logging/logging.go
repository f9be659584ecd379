// Package logging builds the diagnostics logger used across bv and defines the
// narrow Diagnostics interface the core packages depend on.
package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Diagnostics receives classified, non-fatal messages from the core packages.
// *log.Logger satisfies it.
type Diagnostics interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

// levels is ordered from most to least verbose.
var levels = []log.Level{
	log.DebugLevel,
	log.InfoLevel,
	log.WarnLevel,
	log.ErrorLevel,
	log.FatalLevel,
}

// DefaultLevel is used when neither -v nor -q is given.
const DefaultLevel = log.InfoLevel

// LevelFromVerbosity maps counted -v/-q flags onto a log level, starting from
// DefaultLevel and clamping at both ends.
func LevelFromVerbosity(verbose, quiet int) log.Level {
	idx := 1 // DefaultLevel
	idx += quiet - verbose
	idx = max(0, min(idx, len(levels)-1))
	return levels[idx]
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "bv",
		Level:  level,
	})
}

// Discard returns a Diagnostics that drops everything.
func Discard() Diagnostics {
	return log.New(io.Discard)
}

// Entry is a diagnostic captured by Recorder.
type Entry struct {
	Level   log.Level
	Message string
	Keyvals []any
}

// Recorder is a Diagnostics that keeps every entry in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Verify Recorder implements Diagnostics.
var _ Diagnostics = (*Recorder)(nil)

func (r *Recorder) Debug(msg any, keyvals ...any) { r.add(log.DebugLevel, msg, keyvals) }
func (r *Recorder) Warn(msg any, keyvals ...any)  { r.add(log.WarnLevel, msg, keyvals) }

func (r *Recorder) add(level log.Level, msg any, keyvals []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprint(msg), Keyvals: keyvals})
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns how many entries were recorded at level.
func (r *Recorder) Count(level log.Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}
