// Package diagram renders power-assert diagrams: the asserted source line
// followed by the captured values hung under their columns.
//
//	#assert(xs.count == 4)
//	        |  |     |  |
//	        |  3     |  4
//	        |        false
//	        [1, 2, 3]
package diagram

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"powerassert/internal/source"
)

// Value is one captured value at a display column of the source line.
type Value struct {
	Column int
	Text   string
}

// Options controls rendering.
type Options struct {
	// MaxValueWidth truncates longer values with "..."; 0 means no limit.
	MaxValueWidth int
	// Styled enables lipgloss styling of markers and values.
	Styled bool
}

var (
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	falseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	nilStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type cell struct {
	col    int
	text   string
	marker bool
}

// Render draws line and values. Values are placed right to left: a value
// goes on the current row when it ends before the next occupied column to
// its right, otherwise only its marker is drawn and it moves down a row.
func Render(line string, values []Value, opts Options) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(line, " \t\r\n"))
	if len(values) == 0 {
		sb.WriteByte('\n')
		return sb.String()
	}

	pending := make([]Value, len(values))
	for i, v := range values {
		pending[i] = Value{Column: max(v.Column, 0), Text: truncate(v.Text, opts.MaxValueWidth)}
	}
	// справа налево; при равных колонках первым идёт захваченный раньше
	slices.SortStableFunc(pending, func(a, b Value) int { return b.Column - a.Column })

	markers := make([]cell, 0, len(pending))
	for _, v := range pending {
		if n := len(markers); n == 0 || markers[n-1].col != v.Column {
			markers = append(markers, cell{col: v.Column, text: "|", marker: true})
		}
	}
	sb.WriteByte('\n')
	sb.WriteString(renderRow(markers, opts))

	for len(pending) > 0 {
		var row []cell
		var rest []Value
		limit := -1 // -1: справа ничего нет
		for _, v := range pending {
			w := source.StringWidth(v.Text)
			if limit < 0 || v.Column+w < limit {
				row = append(row, cell{col: v.Column, text: v.Text})
			} else {
				if n := len(row); n == 0 || row[n-1].col != v.Column {
					row = append(row, cell{col: v.Column, text: "|", marker: true})
				}
				rest = append(rest, v)
			}
			limit = v.Column
		}
		sb.WriteByte('\n')
		sb.WriteString(renderRow(row, opts))
		pending = rest
	}
	sb.WriteByte('\n')
	return sb.String()
}

// renderRow пишет ячейки, отсортированные по убыванию колонки
func renderRow(cells []cell, opts Options) string {
	var sb strings.Builder
	width := 0
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		if c.col > width {
			sb.WriteString(strings.Repeat(" ", c.col-width))
			width = c.col
		}
		sb.WriteString(style(c, opts))
		width += source.StringWidth(c.text)
	}
	return sb.String()
}

func style(c cell, opts Options) string {
	if !opts.Styled {
		return c.text
	}
	switch {
	case c.marker:
		return markerStyle.Render(c.text)
	case c.text == "false":
		return falseStyle.Render(c.text)
	case c.text == "nil":
		return nilStyle.Render(c.text)
	}
	return valueStyle.Render(c.text)
}

func truncate(value string, width int) string {
	if width <= 0 || source.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return source.Truncate(value, width, "")
	}
	return source.Truncate(value, width, "...")
}
