package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"powerassert/internal/diag"
	"powerassert/internal/source"
)

// Encoding selects the report serialization.
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingMsgpack Encoding = "msgpack"
)

// ParseEncoding converts a flag value to Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return EncodingJSON, nil
	case "msgpack", "mp":
		return EncodingMsgpack, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (expected: json|msgpack)", s)
	}
}

// Report is the machine-readable result of a run, consumed by code
// generators that splice capture calls themselves.
type Report struct {
	Files []FileReport `json:"files" msgpack:"files"`
}

// FileReport describes one processed file.
type FileReport struct {
	Path        string             `json:"path" msgpack:"path"`
	Sites       []SiteResult       `json:"sites" msgpack:"sites"`
	Diagnostics []DiagnosticRecord `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// DiagnosticRecord is a flattened diagnostic with resolved positions.
type DiagnosticRecord struct {
	Severity string `json:"severity" msgpack:"severity"`
	Code     string `json:"code" msgpack:"code"`
	Message  string `json:"message" msgpack:"message"`
	Line     uint32 `json:"line,omitempty" msgpack:"line,omitempty"`
	Col      uint32 `json:"col,omitempty" msgpack:"col,omitempty"`
}

// NewReport builds a Report from file results.
func NewReport(fs *source.FileSet, files []FileResult) *Report {
	rep := &Report{Files: make([]FileReport, 0, len(files))}
	for _, f := range files {
		fr := FileReport{Path: f.Path, Sites: f.Sites}
		if fr.Sites == nil {
			fr.Sites = []SiteResult{}
		}
		if f.Bag != nil {
			for _, d := range f.Bag.Items() {
				fr.Diagnostics = append(fr.Diagnostics, record(fs, d))
			}
		}
		rep.Files = append(rep.Files, fr)
	}
	return rep
}

func record(fs *source.FileSet, d diag.Diagnostic) DiagnosticRecord {
	r := DiagnosticRecord{Severity: d.Severity.String(), Code: d.Code.ID(), Message: d.Message}
	if fs != nil && !d.Primary.Empty() {
		start, _ := fs.Resolve(d.Primary)
		r.Line, r.Col = start.Line, start.Col
	}
	return r
}

// Encode writes rep to w.
func Encode(w io.Writer, rep *Report, enc Encoding) error {
	switch enc {
	case EncodingMsgpack:
		return msgpack.NewEncoder(w).Encode(rep)
	case EncodingJSON, "":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(rep)
	default:
		return fmt.Errorf("unknown encoding %q", enc)
	}
}

// Decode reads a report written by Encode.
func Decode(r io.Reader, enc Encoding) (*Report, error) {
	var rep Report
	var err error
	switch enc {
	case EncodingMsgpack:
		err = msgpack.NewDecoder(r).Decode(&rep)
	case EncodingJSON, "":
		err = json.NewDecoder(r).Decode(&rep)
	default:
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
