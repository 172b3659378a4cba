// Package fix applies text edits to source files.
package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"fortio.org/safecast"

	"powerassert/internal/source"
)

// ErrConflict is returned when two edits overlap.
var ErrConflict = errors.New("conflicting edits")

// TextEdit replaces the bytes under Span with NewText.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string // если задан, проверяется перед применением
}

// Apply returns content with edits applied. Edits may come in any order;
// they must not overlap and must lie within content.
func Apply(content []byte, edits []TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return content, nil
	}
	lenContent, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return nil, fmt.Errorf("content length overflow: %w", err)
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		if a.Span.Start != b.Span.Start {
			return int(a.Span.Start) - int(b.Span.Start)
		}
		return int(a.Span.End) - int(b.Span.End)
	})

	size := len(content)
	for i, e := range sorted {
		if e.Span.End < e.Span.Start || e.Span.End > lenContent {
			return nil, fmt.Errorf("edit %v out of bounds (len %d)", e.Span, lenContent)
		}
		if i > 0 && spansConflict(sorted[i-1], e) {
			return nil, fmt.Errorf("%w: %v and %v", ErrConflict, sorted[i-1].Span, e.Span)
		}
		if e.OldText != "" && string(content[e.Span.Start:e.Span.End]) != e.OldText {
			return nil, fmt.Errorf("edit %v: source changed, expected %q", e.Span, e.OldText)
		}
		size += len(e.NewText) - int(e.Span.Len())
	}

	out := make([]byte, 0, max(size, 0))
	var pos uint32
	for _, e := range sorted {
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	return append(out, content[pos:]...), nil
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// (Start == End) never conflict. A zero-length edit conflicts with a non-zero
// span if its position is within that span (Start <= pos < End). For two
// non-zero spans, any overlap yields a conflict.
func spansConflict(a, b TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// WriteFile replaces path with content, keeping the file mode.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
