package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeSite, false},
		{LevelDetail, ScopeSite, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Errorf("ParseLevel(%q) = %s", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	span := Begin(tr, ScopePass, "rewrite", 0)
	Point(tr, ScopeNode, "wrap", "Ident", span.ID(), map[string]string{"column": "4", "b": "x"})
	span.WithExtra("sites", "1").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ rewrite") {
		t.Errorf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "• wrap (Ident) {b=x, column=4}") {
		t.Errorf("point line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← rewrite (ok) {sites=1}") {
		t.Errorf("end line: %q", lines[2])
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeNode, "wrap", "", 0, nil)
	if buf.Len() != 0 {
		t.Fatalf("node event leaked at phase level: %q", buf.String())
	}
	Begin(tr, ScopePass, "parse", 0).End("")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 ndjson lines, got %d", got)
	}
	if !strings.Contains(buf.String(), `"name":"parse"`) {
		t.Errorf("missing name field: %s", buf.String())
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeNode, name, "", 0, nil)
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" || tr.Dropped() != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop tracer from empty context")
	}
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	if ParentID(ctx) != 0 {
		t.Fatal("expected root parent")
	}
	span := Begin(ring, ScopePass, "outer", ParentID(ctx))
	ctx = WithParent(ctx, span)
	if ParentID(ctx) != span.ID() {
		t.Fatal("parent span not propagated")
	}
	inner := Begin(ring, ScopeSite, "inner", ParentID(ctx))
	inner.End("")
	span.End("")
	snap := ring.Snapshot()
	if len(snap) != 4 || snap[1].ParentID != span.ID() {
		t.Fatalf("unexpected events: %+v", snap)
	}
	if WithParent(ctx, Begin(Nop, ScopePass, "off", 0)) != ctx {
		t.Fatal("disabled span must not change context")
	}
}

func TestTeeFlattens(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	if Tee(LevelDebug, nil, Nop) != Nop {
		t.Fatal("empty tee must be Nop")
	}
	if Tee(LevelDebug, a, Nop) != Tracer(a) {
		t.Fatal("single tracer must be returned as is")
	}
	tee := Tee(LevelDebug, Tee(LevelDebug, a, b), a)
	Point(tee, ScopeNode, "p", "", 0, nil)
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 1 {
		t.Fatalf("a=%d b=%d", len(a.Snapshot()), len(b.Snapshot()))
	}
	if RingOf(tee) != a {
		t.Fatal("RingOf must find the first ring")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestStreamTracerReportsWriteError(t *testing.T) {
	boom := errors.New("disk full")
	tr := NewStreamTracer(failWriter{boom}, LevelDebug, FormatText)
	Begin(tr, ScopePass, "parse", 0).End("")
	if err := tr.Flush(); !errors.Is(err, boom) {
		t.Fatalf("Flush() = %v, want %v", err, boom)
	}
}

func TestStreamTracerBuffersPoints(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(tr, ScopeNode, "wrap", "", 0, nil)
	if buf.Len() != 0 {
		t.Fatalf("point written before flush: %q", buf.String())
	}
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "wrap") {
		t.Fatalf("point lost after flush: %q", buf.String())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want StorageMode
		ok   bool
	}{
		{"stream", ModeStream, true},
		{" Ring ", ModeRing, true},
		{"BOTH", ModeBoth, true},
		{"", ModeStream, false},
		{"disk", ModeStream, false},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if StorageMode(0).String() != "unknown" || ModeBoth.String() != "both" {
		t.Error("unexpected mode names")
	}
}

func TestNewBothModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "fold", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	ring := RingOf(tr)
	if ring == nil || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring missing or incomplete: %v", ring)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream output: %q", buf.String())
	}
}
