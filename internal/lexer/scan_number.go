package lexer

import (
	"powerassert/internal/diag"
	"powerassert/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10.
// Дробная часть только если после '.' идёт цифра: `1...5` и `t.0` не ломаются.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// ведущий 0 и база?
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			goto emit
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for b := lx.cursor.Peek(); (b >= '0' && b <= '7') || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			goto emit
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			goto emit
		}
	}

	// десятичная целая часть
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// дробная часть
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

emit:
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() == 2 && lx.file.Content[sp.Start] == '0' && !isDec(lx.file.Content[sp.Start+1]) {
		lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
