package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущий байт как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	return r, sz
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.So, r)
}
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isOperatorByte(b byte) bool {
	switch b {
	case '/', '=', '-', '+', '!', '*', '%', '<', '>', '&', '|', '^', '~', '?':
		return true
	}
	return false
}

// ===== Связанность операторов =====

// boundOnLeft: перед off нет пробела и открывающего разделителя.
func (lx *Lexer) boundOnLeft(off uint32) bool {
	if off == 0 {
		return false
	}
	switch lx.file.Content[off-1] {
	case ' ', '\t', '\n', '\r', '(', '[', '{', ',', ';', ':':
		return false
	case '/':
		// конец блочного комментария считается пробелом
		return off < 2 || lx.file.Content[off-2] != '*'
	}
	return true
}

// boundOnRight: за курсором нет пробела, конца ввода и закрывающего разделителя.
func (lx *Lexer) boundOnRight() bool {
	if lx.cursor.EOF() {
		return false
	}
	switch lx.cursor.Peek() {
	case ' ', '\t', '\n', '\r', ')', ']', '}', ',', ';', ':':
		return false
	case '/':
		b := lx.cursor.PeekAt(1)
		return b != '/' && b != '*'
	}
	return true
}
