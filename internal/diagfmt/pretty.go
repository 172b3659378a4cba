package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"powerassert/internal/diag"
	"powerassert/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.bold.Sprintf("%s:%d:%d", displayPath(f, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.bold.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, f, d.Primary, opts.Context, p)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				p.note.Sprint("note:"), displayPath(nf, opts.PathMode), ns.Line, ns.Col, note.Msg)
		}
	}
}

// writeSnippet печатает строку span'а и подчёркивание в колонках экрана
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int8, p palette) {
	if f == nil {
		return
	}
	start := source.NewConverter(f).Position(sp.Start)
	first := start.Line
	if context > 0 {
		first = max(1, start.Line-uint32(context))
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		text := strings.TrimRight(f.GetLine(ln), "\n")
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := strings.TrimRight(f.GetLine(start.Line), "\n")
	lineStart := sp.Start - (start.Col - 1)
	col, _ := source.ColumnAt(f.Content, sp.Start)

	// подчёркивание не выходит за конец строки
	end := min(int(sp.End-lineStart), len(line))
	from := min(int(sp.Start-lineStart), len(line))
	width := 1
	if end > from {
		width = max(1, source.StringWidth(line[from:end]))
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", col),
		p.caret.Sprint(marker),
	)
}
