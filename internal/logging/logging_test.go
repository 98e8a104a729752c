package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered lines: %q", out)
	}
	if !strings.Contains(out, "shown 3") {
		t.Errorf("output missing warn line: %q", out)
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	child := l.With("body", "HR 2061")
	child.Debug("position failed")

	out := buf.String()
	if !strings.Contains(out, "position failed") || !strings.Contains(out, "HR 2061") {
		t.Errorf("child output = %q", out)
	}

	// Level changes on the parent apply to children.
	buf.Reset()
	l.SetLevel(LevelError)
	child.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("child ignored parent level: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	l.With("k", "v").Error("still nothing")
}

func TestLoggerReconfigure(t *testing.T) {
	var first, second bytes.Buffer
	l := New(LevelError)
	l.SetOutput(&first)
	child := l.With("run", 1)

	child.Warn("dropped")
	l.SetLevel(LevelWarn)
	child.Warn("kept")

	l.SetOutput(&second)
	child.Error("moved")

	if strings.Contains(first.String(), "dropped") {
		t.Errorf("warn logged below error level: %q", first.String())
	}
	if !strings.Contains(first.String(), "kept") {
		t.Errorf("warn missing after SetLevel: %q", first.String())
	}
	if strings.Contains(first.String(), "moved") || !strings.Contains(second.String(), "moved") {
		t.Errorf("child did not follow SetOutput: first=%q second=%q", first.String(), second.String())
	}
}
