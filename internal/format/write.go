package format

import (
	"bytes"

	"powerassert/internal/token"
)

// Options controls printing.
type Options struct {
	// StripComments replaces comment trivia with a single space.
	StripComments bool
	// SingleLine replaces newlines with a single space. Line comments are
	// dropped since nothing may follow them on the same line.
	SingleLine bool
}

func (o Options) normalizes() bool {
	return o.StripComments || o.SingleLine
}

// Writer accumulates printed output.
type Writer struct {
	opt Options
	buf bytes.Buffer
}

// NewWriter creates a new printing writer.
func NewWriter(opt Options) *Writer {
	return &Writer{opt: opt}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return w.buf.String()
}

// WriteToken writes a token together with its trivia.
func (w *Writer) WriteToken(t *token.Token) {
	w.writeTrivia(t.Leading)
	w.buf.WriteString(t.Text)
	w.writeTrivia(t.Trailing)
}

func (w *Writer) writeTrivia(ts []token.Trivia) {
	for _, tv := range ts {
		switch tv.Kind {
		case token.TriviaSpace:
			if w.opt.normalizes() && w.endsWith(' ', '\t') {
				continue
			}
		case token.TriviaNewline:
			if w.opt.SingleLine {
				w.space()
				continue
			}
		case token.TriviaLineComment:
			if w.opt.StripComments || w.opt.SingleLine {
				w.space()
				continue
			}
		case token.TriviaBlockComment:
			if w.opt.StripComments {
				w.space()
				continue
			}
		}
		w.buf.WriteString(tv.Text)
	}
}

// space writes a single space unless the output is empty or already ends
// with whitespace.
func (w *Writer) space() {
	if w.buf.Len() == 0 || w.endsWith(' ', '\t', '\n') {
		return
	}
	w.buf.WriteByte(' ')
}

func (w *Writer) endsWith(bs ...byte) bool {
	b := w.buf.Bytes()
	if len(b) == 0 {
		return false
	}
	last := b[len(b)-1]
	for _, c := range bs {
		if last == c {
			return true
		}
	}
	return false
}
