package lexer

import (
	"powerassert/internal/source"
	"powerassert/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next возвращает следующий **значимый** токен с уже собранными Leading и Trailing.
// После EOF всегда возвращает EOF; trivia в конце ввода висит на Leading у EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) collectLeadingTrivia() — набить lx.hold
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.takeHold(),
		}
		return tok
	}

	// 3) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '$':
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор → scanIdentOrKeyword() разберётся
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case isOperatorByte(ch) || ch == '.':
		tok = lx.scanOperatorOrDot(len(lx.hold) > 0)

	default:
		// скобки, запятые, \ и # и т.д.
		tok = lx.scanPunct()
	}

	// 4) Leading из hold, Trailing — до конца строки
	tok.Leading = lx.takeHold()
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the remaining input, EOF included.
func (lx *Lexer) All() []token.Token {
	tokens := make([]token.Token, 0, 16)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := lx.hold
	lx.hold = nil
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
