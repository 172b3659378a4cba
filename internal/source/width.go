package source

import (
	"bytes"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
)

// cells is a fixed width condition: East Asian ambiguous runes count as one
// cell regardless of the user's locale, so columns are stable across machines.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// DisplayWidth returns the number of terminal cells text occupies: wide
// glyphs take two cells, combining marks none, everything else one.
// ok is false when text is not valid UTF-8.
func DisplayWidth(text []byte) (width int, ok bool) {
	if !utf8.Valid(text) {
		return 0, false
	}
	return cells.StringWidth(string(text)), true
}

// StringWidth is DisplayWidth for strings that are known to be valid.
func StringWidth(s string) int {
	return cells.StringWidth(s)
}

// Truncate cuts s to at most width cells, ending it with tail, measured
// with the same condition as StringWidth.
func Truncate(s string, width int, tail string) string {
	return cells.Truncate(s, width, tail)
}

// ColumnAt returns the 0-based display column of offset within its line.
// When the line prefix cannot be decoded the raw byte distance from the line
// start is returned instead and ok is false.
func ColumnAt(content []byte, offset uint32) (column int, ok bool) {
	end := min(int(offset), len(content))
	start := bytes.LastIndexByte(content[:end], '\n') + 1
	prefix := content[start:end]
	if w, decoded := DisplayWidth(prefix); decoded {
		return w, true
	}
	return len(prefix), false
}

// Converter turns raw offsets of one file into positions. It is bound to a
// single File and must not be shared between unrelated trees.
type Converter struct {
	file *File
}

// NewConverter returns a converter for f.
func NewConverter(f *File) *Converter {
	return &Converter{file: f}
}

// File returns the bound file.
func (c *Converter) File() *File {
	return c.file
}

// Position returns the 1-based line and raw column of off.
func (c *Converter) Position(off uint32) LineCol {
	return toLineCol(c.file.LineIdx, off)
}

// DisplayColumn returns the 0-based display column of off (see ColumnAt).
func (c *Converter) DisplayColumn(off uint32) (int, bool) {
	return ColumnAt(c.file.Content, off)
}

// StartColumnOffset measures the distance, in display cells, between the start
// of an invocation and the end of its leading keyword on line. Out of range
// bounds are clamped; an undecodable slice falls back to its byte length.
func StartColumnOffset(line []byte, invocationStart, keywordEnd int) int {
	invocationStart = max(0, min(invocationStart, len(line)))
	keywordEnd = max(invocationStart, min(keywordEnd, len(line)))
	if w, ok := DisplayWidth(line[invocationStart:keywordEnd]); ok {
		return w
	}
	return keywordEnd - invocationStart
}

// Offset converts a non-negative int into a span offset.
func Offset(n int) (uint32, error) {
	return safecast.Conv[uint32](n)
}
