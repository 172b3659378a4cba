package source

import "fmt"

// FileID indexes a File inside its FileSet.
type FileID uint32

// Span — полуоткрытый диапазон байтов [Start, End) одного файла.
// Нулевой Span у синтезированных узлов, которых нет в исходнике.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool  { return s.Start == s.End }
func (s Span) Len() uint32  { return s.End - s.Start }
func (s Span) String() string {
	return fmt.Sprintf("%d:[%d,%d)", s.File, s.Start, s.End)
}

// Contains reports whether off falls inside s.
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Cover returns the smallest span of s's file holding both spans. A span of
// another file leaves s unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	return Span{File: s.File, Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// ShiftRight moves s forward by n bytes: offsets of a virtual sub-file
// become offsets of the file it was cut from.
func (s Span) ShiftRight(n uint32) Span {
	s.Start += n
	s.End += n
	return s
}

// LineCol is a 1-based line and raw byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
