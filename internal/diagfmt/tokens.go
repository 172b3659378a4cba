package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"powerassert/internal/source"
	"powerassert/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Span     source.Span `json:"span"`
	Column   int         `json:"column"`
	Leading  []string    `json:"leading,omitempty"`
	Trailing []string    `json:"trailing,omitempty"`
}

func triviaKinds(ts []token.Trivia) []string {
	if len(ts) == 0 {
		return nil
	}
	out := make([]string, 0, len(ts))
	for _, tv := range ts {
		out = append(out, tv.Kind.String())
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// col — экранная колонка начала токена (0-based).
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		col, _ := source.ColumnAt(fs.Get(tok.Span.File).Content, tok.Span.Start)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d col %d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col, col)

		if leading := triviaKinds(tok.Leading); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		if trailing := triviaKinds(tok.Trailing); len(trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", strings.Join(trailing, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		col, _ := source.ColumnAt(fs.Get(tok.Span.File).Content, tok.Span.Start)
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Column:   col,
			Leading:  triviaKinds(tok.Leading),
			Trailing: triviaKinds(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
