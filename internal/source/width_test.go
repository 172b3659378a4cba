package source

import (
	"testing"
	"unicode/utf8"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "abc", 3},
		{"empty", "", 0},
		{"wide", "日本", 4},
		{"combining", "é", 1},
		{"hangul", "한국어", 6},
		{"mixed", "a日b", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DisplayWidth([]byte(tt.input))
			if !ok {
				t.Fatalf("DisplayWidth(%q) reported decode failure", tt.input)
			}
			if got != tt.want {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// Один широкий глиф, одна комбинирующая метка и два обычных символа.
func TestDisplayWidthWideCombiningOrdinary(t *testing.T) {
	prefix := "日́ab"
	got, ok := DisplayWidth([]byte(prefix))
	if !ok {
		t.Fatal("unexpected decode failure")
	}
	if got != 4 {
		t.Fatalf("width = %d, want 4", got)
	}
	const graphemes = 3 // "日́", "a", "b"
	if got != graphemes+1 {
		t.Errorf("width = %d, want grapheme count %d + 1", got, graphemes)
	}
	if n := utf8.RuneCountInString(prefix); n != 4 {
		t.Errorf("codepoints = %d, want 4", n)
	}
}

func TestDisplayWidthInvalidUTF8(t *testing.T) {
	if _, ok := DisplayWidth([]byte{'a', 0xff, 'b'}); ok {
		t.Fatal("expected decode failure for invalid UTF-8")
	}
}

func TestColumnAt(t *testing.T) {
	content := []byte("x == 1\n日本 == y")
	tests := []struct {
		off  uint32
		want int
	}{
		{0, 0},
		{2, 2},
		{7, 0},  // start of second line
		{14, 5}, // after "日本 "
	}
	for _, tt := range tests {
		got, ok := ColumnAt(content, tt.off)
		if !ok {
			t.Fatalf("ColumnAt(%d) fell back to raw offset", tt.off)
		}
		if got != tt.want {
			t.Errorf("ColumnAt(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestColumnAtFallsBackToRawOffset(t *testing.T) {
	content := []byte{'a', 0xff, 0xfe, 'b', 'c'}
	got, ok := ColumnAt(content, 4)
	if ok {
		t.Fatal("expected fallback")
	}
	if got != 4 {
		t.Errorf("fallback column = %d, want raw offset 4", got)
	}
}

func TestConverter(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("expr", []byte("a\n  日 + b"))
	conv := NewConverter(fs.Get(id))

	pos := conv.Position(4)
	if pos.Line != 2 || pos.Col != 3 {
		t.Errorf("Position(4) = %+v, want 2:3", pos)
	}
	col, ok := conv.DisplayColumn(8)
	if !ok || col != 5 {
		t.Errorf("DisplayColumn(8) = %d,%v, want 5,true", col, ok)
	}
}

func TestStartColumnOffset(t *testing.T) {
	line := []byte("    #assert(x == 1)")
	if got := StartColumnOffset(line, 4, 11); got != 7 {
		t.Errorf("StartColumnOffset = %d, want 7", got)
	}
	if got := StartColumnOffset(line, 4, 100); got != 15 {
		t.Errorf("clamped StartColumnOffset = %d, want 15", got)
	}
	wide := []byte("#検証(x)")
	if got := StartColumnOffset(wide, 0, 7); got != 5 {
		t.Errorf("wide StartColumnOffset = %d, want 5", got)
	}
}
