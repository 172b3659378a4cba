package token

import (
	"strings"

	"powerassert/internal/source"
)

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line_comment"
	case TriviaBlockComment:
		return "block_comment"
	}
	return "unknown"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// TriviaText concatenates the text of a trivia run.
func TriviaText(ts []Trivia) string {
	switch len(ts) {
	case 0:
		return ""
	case 1:
		return ts[0].Text
	}
	var sb strings.Builder
	for _, tv := range ts {
		sb.WriteString(tv.Text)
	}
	return sb.String()
}
