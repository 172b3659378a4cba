package format

import (
	"io"

	"powerassert/internal/syntax"
)

// Print returns the source text of n, trivia included.
func Print(n *syntax.Node) string {
	return PrintWith(n, Options{})
}

// PrintWith prints n with the given options.
func PrintWith(n *syntax.Node, opt Options) string {
	w := NewWriter(opt)
	w.Node(n)
	return w.String()
}

// Fprint writes the source text of n to out.
func Fprint(out io.Writer, n *syntax.Node) error {
	w := NewWriter(Options{})
	w.Node(n)
	_, err := out.Write(w.Bytes())
	return err
}

// Node writes every token of n in source order.
func (w *Writer) Node(n *syntax.Node) {
	syntax.Walk(n, func(c *syntax.Node) bool {
		if c.Kind == syntax.Token {
			w.WriteToken(c.Tok)
		}
		return true
	})
}
