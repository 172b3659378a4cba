package lexer

import (
	"powerassert/internal/diag"
	"powerassert/internal/token"
)

// scanOperatorOrDot сканирует максимальную серию операторных символов.
// Точка входит в оператор только если он с неё начинается (`...`, `..<`);
// одиночная '.' — это token.Dot.
//
// Вид оператора определяется пробелами вокруг него:
//   - связан с обеих сторон или ни с одной — бинарный (`a+b`, `a + b`)
//   - только справа — префиксный (`-x`)
//   - только слева — постфиксный; `?` и `!` слева-связанные всегда
//     OptionalMark/ExclaimMark (`a?.b`, `a!`)
//   - одиночный `?` без левой связи — тернарный Question
func (lx *Lexer) scanOperatorOrDot(hadTrivia bool) token.Token {
	start := lx.cursor.Mark()
	leftBound := !hadTrivia && lx.boundOnLeft(uint32(start))

	if lx.cursor.Peek() == '.' {
		if lx.cursor.PeekAt(1) != '.' {
			lx.cursor.Bump()
			return lx.emit(token.Dot, start)
		}
		for lx.cursor.Peek() == '.' || isOperatorByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		for isOperatorByte(lx.cursor.Peek()) {
			// "//" и "/*" начинают комментарий, а не оператор
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && (b1 == '/' || b1 == '*') && lx.cursor.Off > uint32(start) {
				break
			}
			lx.cursor.Bump()
		}
	}

	text := string(lx.file.Content[uint32(start):lx.cursor.Off])
	rightBound := lx.boundOnRight()

	switch {
	case leftBound && text == "?":
		return lx.emit(token.OptionalMark, start)
	case leftBound && text == "!":
		return lx.emit(token.ExclaimMark, start)
	case text == "?":
		return lx.emit(token.Question, start)
	case leftBound == rightBound:
		return lx.emit(token.BinaryOp, start)
	case rightBound:
		return lx.emit(token.PrefixOp, start)
	default:
		return lx.emit(token.PostfixOp, start)
	}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ':':
		return lx.emit(token.Colon, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case '\\':
		return lx.emit(token.Backslash, start)
	case '#':
		return lx.emit(token.Hash, start)
	default:
		// неизвестный символ
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
