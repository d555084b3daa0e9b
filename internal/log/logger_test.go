package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentRepository, Output: &buf})

	l.Debug("collection written", FieldCount, 3)
	out := buf.String()
	if !strings.Contains(out, "component=repository") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected output: %s", out)
	}

	buf.Reset()
	l.WithComponent(ComponentSettings).Warn("bad value")
	if !strings.Contains(buf.String(), "component=settings") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf})
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered, got %s", buf.String())
	}
	if l.Component() != ComponentApp {
		t.Fatalf("expected default component, got %s", l.Component())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithOperation(OpAdd).
		WithError(errors.New("boom")).
		WithError(nil).
		WithTransaction("id-1", "EXPENSE", "Food", "12.50").
		WithCount(1)
	if len(f) != 7 {
		t.Fatalf("expected 7 fields, got %d: %v", len(f), f)
	}
	if got := len(f.ToSlice()); got != 14 {
		t.Fatalf("expected 14 slice entries, got %d", got)
	}
}
