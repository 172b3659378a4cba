package interp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

func parseInt(text string) (int64, error) {
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q: %w", text, err)
	}
	return v, nil
}

func parseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q: %w", text, err)
	}
	return v, nil
}

// unquote раскрывает escape-последовательности; \( expr ) вычисляется через
// interpolate. Результат приводится к NFC, чтобы "é" и "e\u{301}" были равны.
func unquote(lit string, interpolate func(src string) (string, error)) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	body := lit[1 : len(lit)-1]
	var sb strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("dangling escape in %s", lit)
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '"', '\\', '\'':
			sb.WriteByte(body[i])
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if end < 0 || i+1 >= len(body) || body[i+1] != '{' {
				return "", fmt.Errorf("malformed unicode escape in %s", lit)
			}
			cp, err := strconv.ParseUint(body[i+2:i+end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(cp)) {
				return "", fmt.Errorf("invalid unicode scalar in %s", lit)
			}
			sb.WriteRune(rune(cp))
			i += end
		case '(':
			end := interpolationEnd(body, i+1)
			if end < 0 {
				return "", fmt.Errorf("unterminated interpolation in %s", lit)
			}
			s, err := interpolate(body[i+1 : end])
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			i = end
		default:
			return "", fmt.Errorf("unknown escape \\%c in %s", body[i], lit)
		}
		i++
	}
	return norm.NFC.String(sb.String()), nil
}

// interpolationEnd ищет ')' парную той, что стоит перед start
func interpolationEnd(s string, start int) int {
	depth := 1
	inString := false
	for i := start; i < len(s); i++ {
		switch c := s[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
