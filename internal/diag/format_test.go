package diag

import (
	"testing"

	"powerassert/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.swift", []byte("a\nb\n"))

	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportError(r, SynUnexpectedToken, source.Span{File: id, Start: 2, End: 3}, "first line\nsecond").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "note line").
		Emit()
	ReportInfo(r, RwFoldFallback, source.Span{File: id, Start: 0, End: 1}, "coarse").Emit()
	bag.Sort()

	expected := "info RW3001 sample.swift:1:1 coarse\n" +
		"error SYN2001 sample.swift:2:1 first line second\n" +
		"note SYN2001 sample.swift:1:1 note line"
	if got := FormatShort(bag.Items(), fs, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(RwColumnFallback, SevInfo, sp, "raw", nil)
	r.Report(RwColumnFallback, SevInfo, sp, "raw", nil)
	r.Report(RwColumnFallback, SevInfo, sp.ShiftRight(1), "raw", nil)
	if bag.Len() != 2 || r.Suppressed() != 1 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d (suppressed %d)", bag.Len(), r.Suppressed())
	}
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("info diagnostics must not count as errors or warnings")
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(SynUnexpectedToken, source.Span{}, "one")) {
		t.Fatal("first add must succeed")
	}
	if bag.Add(NewError(SynUnexpectedToken, source.Span{}, "two")) {
		t.Fatal("second add must hit the limit")
	}
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(SynUnexpectedToken, source.Span{}, "base").WithNote(source.Span{}, "a")
	left := base.WithNote(source.Span{}, "left")
	right := base.WithNote(source.Span{}, "right")
	if left.Notes[1].Msg != "left" || right.Notes[1].Msg != "right" || len(base.Notes) != 1 {
		t.Fatalf("notes aliased: %+v / %+v", left.Notes, right.Notes)
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev          Severity
		name, label string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "info"},
	}
	for _, tt := range tests {
		if tt.sev.String() != tt.name || tt.sev.Label() != tt.label {
			t.Errorf("%d: got %s/%s", tt.sev, tt.sev.String(), tt.sev.Label())
		}
	}
}
