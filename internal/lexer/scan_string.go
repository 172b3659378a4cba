package lexer

import (
	"powerassert/internal/diag"
	"powerassert/internal/token"
)

// "..." с escape-последовательностями и интерполяцией \( ... ).
// Внутри интерполяции допускаются вложенные строки и скобки.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipStringBody() {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// skipStringBody съедает строку начиная с открывающей кавычки.
// false — строка не закрыта (EOF или перевод строки).
func (lx *Lexer) skipStringBody() bool {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '"':
			lx.cursor.Bump()
			return true
		case '\n':
			return false
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '(' {
				lx.cursor.Bump()
				if !lx.skipInterpolation() {
					return false
				}
				continue
			}
			// грубая обработка escape: съесть следующий байт, не валидируем глубоко здесь
			if lx.cursor.EOF() {
				return false
			}
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) skipInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				return true
			}
		case '"':
			if !lx.skipStringBody() {
				return false
			}
			continue
		case '\n':
			return false
		}
		lx.cursor.Bump()
	}
	return false
}
