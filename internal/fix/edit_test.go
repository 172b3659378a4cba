package fix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"powerassert/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestApply(t *testing.T) {
	content := []byte("#assert(a == b) #assert(c)")
	tests := []struct {
		name  string
		edits []TextEdit
		want  string
	}{
		{"none", nil, "#assert(a == b) #assert(c)"},
		{"out of order", []TextEdit{
			{Span: span(24, 25), NewText: "capture(c)"},
			{Span: span(8, 14), NewText: "x"},
		}, "#assert(x) #assert(capture(c))"},
		{"insert", []TextEdit{{Span: span(0, 0), NewText: "// "}}, "// #assert(a == b) #assert(c)"},
		{"delete", []TextEdit{{Span: span(15, 26), NewText: ""}}, "#assert(a == b)"},
		{"adjacent", []TextEdit{
			{Span: span(8, 9), NewText: "A"},
			{Span: span(9, 14), NewText: "!= B", OldText: " == b"},
		}, "#assert(A!= B) #assert(c)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(content, tt.edits)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
	if string(content) != "#assert(a == b) #assert(c)" {
		t.Errorf("input modified: %q", content)
	}
}

func TestApplyErrors(t *testing.T) {
	content := []byte("abcdef")
	tests := []struct {
		name  string
		edits []TextEdit
		want  string
	}{
		{"overlap", []TextEdit{{Span: span(0, 3)}, {Span: span(2, 4)}}, "conflicting"},
		{"insert inside", []TextEdit{{Span: span(1, 4)}, {Span: span(2, 2)}}, "conflicting"},
		{"bounds", []TextEdit{{Span: span(4, 9)}}, "out of bounds"},
		{"stale", []TextEdit{{Span: span(0, 1), OldText: "z"}}, "source changed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(content, tt.edits)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
	if _, err := Apply(content, []TextEdit{{Span: span(0, 3)}, {Span: span(1, 2)}}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestSpansConflict(t *testing.T) {
	tests := []struct {
		a, b source.Span
		want bool
	}{
		{span(0, 0), span(0, 0), false},
		{span(2, 2), span(0, 3), true},
		{span(3, 3), span(0, 3), false},
		{span(0, 3), span(3, 5), false},
		{span(0, 4), span(3, 5), true},
	}
	for _, tt := range tests {
		if got := spansConflict(TextEdit{Span: tt.a}, TextEdit{Span: tt.b}); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWriteFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.swift")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("new")); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q", data)
	}
}
