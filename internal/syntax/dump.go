package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders n as a compact S-expression: leaves print their text,
// interior nodes print as (Kind child ...).
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	if n.Kind == Token {
		sb.WriteString(n.Tok.Text)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	for _, c := range n.Children {
		sb.WriteByte(' ')
		dump(sb, c)
	}
	sb.WriteByte(')')
}

// DumpTree writes one node per line, indented by depth.
func DumpTree(w io.Writer, n *Node) error {
	return dumpTree(w, n, 0)
}

func dumpTree(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	if n.Kind == Token {
		_, err := fmt.Fprintf(w, "%s%s %q\n", indent, n.Tok.Kind, n.Tok.Text)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, n.Kind); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dumpTree(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
