package driver

import (
	"powerassert/internal/diag"
	"powerassert/internal/lexer"
	"powerassert/internal/source"
	"powerassert/internal/token"
)

// DefaultKeyword is the macro name of assertion invocations.
const DefaultKeyword = "assert"

// Invocation is one `#keyword(...)` found in a file.
type Invocation struct {
	Hash   source.Span // '#'
	LParen source.Span
	RParen source.Span
}

// Args returns the span between the parentheses.
func (inv Invocation) Args() source.Span {
	return source.Span{File: inv.Hash.File, Start: inv.LParen.End, End: inv.RParen.Start}
}

// FindInvocations lexes f and returns every `#keyword(` ... `)` in source
// order. Lexical errors elsewhere in the file are ignored: only the
// invocations are reparsed, with a reporter. An invocation that is never
// closed is reported and ends the scan.
func FindInvocations(f *source.File, keyword string, reporter diag.Reporter) []Invocation {
	if keyword == "" {
		keyword = DefaultKeyword
	}
	toks := lexer.New(f, lexer.Options{}).All()

	var out []Invocation
	for i := 0; i+2 < len(toks); i++ {
		hash, name, lp := &toks[i], &toks[i+1], &toks[i+2]
		if hash.Kind != token.Hash || name.Kind != token.Ident || name.Text != keyword || lp.Kind != token.LParen {
			continue
		}
		// `# assert (` не считается вызовом
		if len(hash.Trailing) > 0 || len(name.Leading) > 0 || len(name.Trailing) > 0 || len(lp.Leading) > 0 {
			continue
		}
		end := matchingParen(toks, i+2)
		if end < 0 {
			if reporter != nil {
				diag.ReportError(reporter, diag.DrvUnclosedAssert,
					source.Span{File: f.ID, Start: hash.Span.Start, End: lp.Span.End},
					"expected ')' to close #"+keyword).Emit()
			}
			break
		}
		out = append(out, Invocation{Hash: hash.Span, LParen: lp.Span, RParen: toks[end].Span})
		i = end
	}
	return out
}

// matchingParen returns the index of the ')' closing toks[open], or -1.
func matchingParen(toks []token.Token, open int) int {
	depth := 0
	for j := open; j < len(toks); j++ {
		switch toks[j].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				if toks[j].Kind == token.RParen {
					return j
				}
				return -1
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}
