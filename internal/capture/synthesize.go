package capture

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// Synthesizer builds capture calls.
type Synthesizer struct {
	callee   []string
	label    string
	typeSelf bool
}

// NewSynthesizer creates a synthesizer for the given sink and column label.
func NewSynthesizer(callee, label string, typeSelf bool) *Synthesizer {
	if callee == "" {
		callee = DefaultCallee
	}
	if label == "" {
		label = DefaultColumnLabel
	}
	return &Synthesizer{
		callee:   strings.Split(callee, "."),
		label:    label,
		typeSelf: typeSelf,
	}
}

// Wrap returns `callee(<n>, label: column)`. The argument is n without its
// outer trivia; the call carries n's leading and trailing trivia instead.
func (s *Synthesizer) Wrap(n *syntax.Node, column int) *syntax.Node {
	arg := syntax.WithoutTrivia(n)
	if s.typeSelf && IsTypeLike(n) {
		arg = syntax.NewMember(arg, token.New(token.Dot, "."), token.New(token.Ident, "self"))
	}

	comma := token.New(token.Comma, ",")
	comma.Trailing = space()
	colon := token.New(token.Colon, ":")
	colon.Trailing = space()

	call := syntax.NewCall(
		s.calleeNode(),
		token.New(token.LParen, "("),
		syntax.NewArgList(
			syntax.NewArg(nil, nil, arg),
			syntax.Leaf(comma),
			syntax.NewArg(
				token.New(token.Ident, s.label),
				colon,
				syntax.NewLiteral(syntax.IntLit, token.New(token.IntLit, strconv.Itoa(column))),
			),
		),
		token.New(token.RParen, ")"),
		nil,
	)
	return syntax.WithTrivia(call, syntax.LeadingTrivia(n), syntax.TrailingTrivia(n))
}

func (s *Synthesizer) calleeNode() *syntax.Node {
	n := syntax.NewIdent(token.New(token.Ident, s.callee[0]))
	for _, part := range s.callee[1:] {
		n = syntax.NewMember(n, token.New(token.Dot, "."), token.New(token.Ident, part))
	}
	return n
}

// IsTypeLike reports whether n is an identifier that names a type by
// convention: its first letter is upper-case.
func IsTypeLike(n *syntax.Node) bool {
	if n.Kind != syntax.Ident {
		return false
	}
	t := n.Token()
	if t == nil || t.Kind != token.Ident {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.Text)
	return unicode.IsUpper(r)
}

// Unwrap reports whether n is a call built by Wrap and returns its captured
// argument and column.
func (s *Synthesizer) Unwrap(n *syntax.Node) (arg *syntax.Node, column int, ok bool) {
	if n == nil || n.Kind != syntax.Call || syntax.Text(n.Callee()) != strings.Join(s.callee, ".") {
		return nil, 0, false
	}
	args := n.Args()
	if len(args) != 2 {
		return nil, 0, false
	}
	if l := args[1].Label(); l == nil || l.Text != s.label {
		return nil, 0, false
	}
	col, err := strconv.Atoi(syntax.Text(args[1].Value()))
	if err != nil {
		return nil, 0, false
	}
	return args[0].Value(), col, true
}

func space() []token.Trivia {
	return []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}
}
