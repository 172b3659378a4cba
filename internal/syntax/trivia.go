package syntax

import (
	"strings"

	"powerassert/internal/token"
)

// FirstToken returns the first token of n in source order.
func FirstToken(n *Node) *token.Token {
	for n != nil {
		if n.Kind == Token {
			return n.Tok
		}
		if len(n.Children) == 0 {
			return nil
		}
		n = n.Children[0]
	}
	return nil
}

// LastToken returns the last token of n in source order.
func LastToken(n *Node) *token.Token {
	for n != nil {
		if n.Kind == Token {
			return n.Tok
		}
		if len(n.Children) == 0 {
			return nil
		}
		n = n.Children[len(n.Children)-1]
	}
	return nil
}

// Tokens returns the tokens of n in source order.
func Tokens(n *Node) []*token.Token {
	var out []*token.Token
	Walk(n, func(c *Node) bool {
		if c.Kind == Token {
			out = append(out, c.Tok)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants in pre-order; fn returning false skips
// the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// LeadingTrivia is the leading trivia of n's first token.
func LeadingTrivia(n *Node) []token.Trivia {
	if t := FirstToken(n); t != nil {
		return t.Leading
	}
	return nil
}

// TrailingTrivia is the trailing trivia of n's last token.
func TrailingTrivia(n *Node) []token.Trivia {
	if t := LastToken(n); t != nil {
		return t.Trailing
	}
	return nil
}

// Text returns the source text of n without its outer trivia.
func Text(n *Node) string {
	var sb strings.Builder
	toks := Tokens(n)
	for i, t := range toks {
		if i > 0 {
			sb.WriteString(token.TriviaText(t.Leading))
		}
		sb.WriteString(t.Text)
		if i < len(toks)-1 {
			sb.WriteString(token.TriviaText(t.Trailing))
		}
	}
	return sb.String()
}

// Start returns the source offset of n's first token and whether n has one.
// Synthesized tokens have no source position.
func Start(n *Node) (uint32, bool) {
	t := FirstToken(n)
	if t == nil || t.Synthetic() {
		return 0, false
	}
	return t.Span.Start, true
}

// WithoutTrivia returns a copy of n with the outer trivia removed.
func WithoutTrivia(n *Node) *Node {
	return WithTrivia(n, nil, nil)
}

// WithTrivia returns a copy of n whose first token carries leading and whose
// last token carries trailing. Only the paths to those tokens are copied.
func WithTrivia(n *Node, leading, trailing []token.Trivia) *Node {
	if n == nil {
		return nil
	}
	n = setEdge(n, true, func(t *token.Token) { t.Leading = leading })
	return setEdge(n, false, func(t *token.Token) { t.Trailing = trailing })
}

func setEdge(n *Node, first bool, set func(*token.Token)) *Node {
	if n.Kind == Token {
		cp := *n.Tok
		set(&cp)
		return Leaf(&cp)
	}
	if len(n.Children) == 0 {
		return n
	}
	out := &Node{Kind: n.Kind, Children: make([]*Node, len(n.Children))}
	copy(out.Children, n.Children)
	i := 0
	if !first {
		i = len(out.Children) - 1
	}
	out.Children[i] = setEdge(out.Children[i], first, set)
	return out
}
