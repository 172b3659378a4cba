package lexer

import (
	"powerassert/internal/diag"
	"powerassert/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// `$0`, `$x` — идентификаторы (сокращённые параметры замыканий).
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '$' {
		lx.cursor.Bump()
	} else {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentStartRune(r) {
			// не идентификатор: один неизвестный символ
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unknown character")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.bumpRune()
	}

	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	// Проверка на ключевое слово (регистрозависимо)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
