package diag

import (
	"slices"
	"strings"

	"powerassert/internal/source"
)

// Severity orders diagnostics: degradations of the rewrite are SevInfo,
// malformed input is SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label — имя в нижнем регистре для однострочного формата
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return strings.ToLower(severityNames[s])
	}
	return "info"
}

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with one more note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Span: sp, Msg: msg})
	return d
}
