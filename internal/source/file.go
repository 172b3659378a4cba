package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

// FileFlags records how a file was loaded.
type FileFlags uint8

const (
	// FileVirtual marks in-memory files: stdin, tests, --expr.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is one loaded source. Content is normalized: no BOM, LF line ends.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Flags   FileFlags
}

// Denormalize converts text derived from Content back to the on-disk
// conventions of the file: CRLF line ends and the BOM are restored.
func (f *File) Denormalize(text []byte) []byte {
	if f.Flags&FileNormalizedCRLF != 0 {
		text = bytes.ReplaceAll(text, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&FileHadBOM != 0 {
		text = append(append([]byte{}, utf8BOM...), text...)
	}
	return text
}

// GetLine returns line lineNum (1-based) without its newline, or "" when
// the file has no such line.
func (f *File) GetLine(lineNum uint32) string {
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	if lineNum == 0 || lineNum > lines+1 {
		return ""
	}
	start := uint32(0)
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if lineNum <= lines {
		end = f.LineIdx[lineNum-1]
	}
	return string(f.Content[start:end])
}
