package lexer

import (
	"powerassert/internal/diag"
	"powerassert/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ' и '\t' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (поддерживает вложенность; если не закрыта — репорт и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			lx.hold = append(lx.hold, lx.scanSpaces())
			continue
		}

		// newlines (коалесцируем подряд)
		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.hold = append(lx.hold, lx.trivia(token.TriviaNewline, start))
			continue
		}

		if b == '/' {
			if tv, ok := lx.scanComment(); ok {
				lx.hold = append(lx.hold, tv)
				continue
			}
		}

		// нет больше trivia
		break
	}
}

// collectTrailingTrivia забирает пробелы и комментарии до конца строки.
// Перевод строки остаётся leading trivia следующего токена.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' {
			out = append(out, lx.scanSpaces())
			continue
		}
		if b == '/' {
			if tv, ok := lx.scanComment(); ok {
				out = append(out, tv)
				continue
			}
		}
		break
	}
	return out
}

func (lx *Lexer) scanSpaces() token.Trivia {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.trivia(token.TriviaSpace, start)
}

// //... или /*...*/
func (lx *Lexer) scanComment() (token.Trivia, bool) {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return token.Trivia{}, false
	}
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.trivia(token.TriviaLineComment, start), true

	case '*': // "/* ... */" (with nesting)
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		tv := lx.trivia(token.TriviaBlockComment, start)
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, tv.Span, "unterminated block comment")
		}
		return tv, true

	default:
		// это не комментарий — вернёмся, пусть сканируется как оператор '/'
		lx.cursor.Reset(start)
		return token.Trivia{}, false
	}
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
