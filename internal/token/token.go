package token

import (
	"powerassert/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// New builds a synthesized token that has no source location.
func New(kind Kind, text string) *Token {
	return &Token{Kind: kind, Text: text}
}

// IsLiteral reports whether the token is a numeric, boolean, nil or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the token spells an operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case PrefixOp, BinaryOp, PostfixOp, OptionalMark, ExclaimMark, Question:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Synthetic reports whether the token was built by a rewrite rather than lexed.
func (t Token) Synthetic() bool {
	return t.Span.Empty() && t.Text != ""
}

// Bare returns a copy of t without trivia.
func (t Token) Bare() *Token {
	t.Leading = nil
	t.Trailing = nil
	return &t
}
