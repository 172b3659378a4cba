package diag

import (
	"fmt"
	"strings"

	"powerassert/internal/source"
)

// FormatShort renders diagnostics into a stable, single-line-per-entry form:
//
//	<severity> <ID> <path>:<line>:<col> <message>
//
// Notes follow their diagnostic with the "note" severity.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var lines []string
	for _, d := range diags {
		lines = append(lines, formatLine(d.Severity.Label(), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			lines = append(lines, formatLine("note", d.Code, note.Span, note.Msg, fs))
		}
	}
	return strings.Join(lines, "\n")
}

func formatLine(label string, code Code, sp source.Span, msg string, fs *source.FileSet) string {
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s %s %s:%d:%d %s", label, code.ID(), file.Path, start.Line, start.Col, sanitizeMessage(msg))
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
