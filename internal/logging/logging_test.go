package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		name           string
		verbose, quiet int
		want           log.Level
	}{
		{"default", 0, 0, log.InfoLevel},
		{"one -v", 1, 0, log.DebugLevel},
		{"many -v clamps", 5, 0, log.DebugLevel},
		{"one -q", 0, 1, log.WarnLevel},
		{"two -q", 0, 2, log.ErrorLevel},
		{"many -q clamps", 0, 9, log.FatalLevel},
		{"cancel out", 2, 2, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromVerbosity(tt.verbose, tt.quiet); got != tt.want {
				t.Errorf("LevelFromVerbosity(%d, %d) = %v, want %v", tt.verbose, tt.quiet, got, tt.want)
			}
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.WarnLevel)

	logger.Debug("hidden")
	logger.Warn("shown", "path", "bv.yml")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "bv.yml") {
		t.Errorf("expected warning with keyvals, got %q", out)
	}
	if !strings.Contains(out, "bv") {
		t.Errorf("expected prefix in output, got %q", out)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Debug("one")
	r.Warn("two", "k", "v")
	r.Warn("three")

	if got := r.Count(log.WarnLevel); got != 2 {
		t.Errorf("Count(warn) = %d, want 2", got)
	}
	entries := r.Entries()
	if len(entries) != 3 || entries[1].Message != "two" || len(entries[1].Keyvals) != 2 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestDiscard(t *testing.T) {
	d := Discard()
	d.Warn("nothing to see")
	d.Debug("still nothing")
}
