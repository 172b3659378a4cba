package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"powerassert/internal/diag"
	"powerassert/internal/lexer"
	"powerassert/internal/source"
	"powerassert/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(parts, " ")
}

// expectTokens проверяет последовательность токенов без EOF
func expectTokens(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("%q token %d: expected %v, got %v (text: %q)",
				input, i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntLit},
		{"1_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o17", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e9", token.FloatLit},
		{"2.5e-3", token.FloatLit},
		{`"hello"`, token.StringLit},
		{`"a \"quoted\" word"`, token.StringLit},
		{`"sum: \(a + b)"`, token.StringLit},
		{`"nested \(f("x"))"`, token.StringLit},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
		{"nil", token.KwNil},
		{"value", token.Ident},
		{"$0", token.Ident},
		{"имя", token.Ident},
		{"変数", token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectTokens(t, tt.input, []token.Kind{tt.kind})
			if toks[0].Text != tt.input {
				t.Errorf("text = %q, want %q", toks[0].Text, tt.input)
			}
		})
	}
}

func TestIntegerFollowedByMember(t *testing.T) {
	expectTokens(t, "1.description", []token.Kind{token.IntLit, token.Dot, token.Ident})
}

func TestOperatorClassification(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{"a + b", []token.Kind{token.Ident, token.BinaryOp, token.Ident}},
		{"a+b", []token.Kind{token.Ident, token.BinaryOp, token.Ident}},
		{"-x", []token.Kind{token.PrefixOp, token.Ident}},
		{"a + -x", []token.Kind{token.Ident, token.BinaryOp, token.PrefixOp, token.Ident}},
		{"!flag", []token.Kind{token.PrefixOp, token.Ident}},
		{"(!flag)", []token.Kind{token.LParen, token.PrefixOp, token.Ident, token.RParen}},
		{"x!", []token.Kind{token.Ident, token.ExclaimMark}},
		{"x!.y", []token.Kind{token.Ident, token.ExclaimMark, token.Dot, token.Ident}},
		{"a?.b", []token.Kind{token.Ident, token.OptionalMark, token.Dot, token.Ident}},
		{"f()?.b", []token.Kind{token.Ident, token.LParen, token.RParen, token.OptionalMark, token.Dot, token.Ident}},
		{"a ?? b", []token.Kind{token.Ident, token.BinaryOp, token.Ident}},
		{"a != b", []token.Kind{token.Ident, token.BinaryOp, token.Ident}},
		{"a === b", []token.Kind{token.Ident, token.BinaryOp, token.Ident}},
		{"c ? x : y", []token.Kind{token.Ident, token.Question, token.Ident, token.Colon, token.Ident}},
		{"1...5", []token.Kind{token.IntLit, token.BinaryOp, token.IntLit}},
		{"0..<n", []token.Kind{token.IntLit, token.BinaryOp, token.Ident}},
		{"a /*c*/ + b", []token.Kind{token.Ident, token.BinaryOp, token.Ident}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.expected)
		})
	}
}

func TestGreedyOperatorText(t *testing.T) {
	toks := expectTokens(t, "a ..< b", []token.Kind{token.Ident, token.BinaryOp, token.Ident})
	if toks[1].Text != "..<" {
		t.Errorf("operator text = %q, want %q", toks[1].Text, "..<")
	}
	toks = expectTokens(t, "a<<=b", []token.Kind{token.Ident, token.BinaryOp, token.Ident})
	if toks[1].Text != "<<=" {
		t.Errorf("operator text = %q, want %q", toks[1].Text, "<<=")
	}
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, `#assert(\.name, [1: "a"]) { $0 };`, []token.Kind{
		token.Hash, token.Ident, token.LParen,
		token.Backslash, token.Dot, token.Ident, token.Comma,
		token.LBracket, token.IntLit, token.Colon, token.StringLit, token.RBracket,
		token.RParen,
		token.LBrace, token.Ident, token.RBrace, token.Semicolon,
	})
}

func TestTriviaAttachment(t *testing.T) {
	input := "  a // first\n  + /* op */ b  "
	toks := expectTokens(t, input, []token.Kind{token.Ident, token.BinaryOp, token.Ident})

	if got := token.TriviaText(toks[0].Leading); got != "  " {
		t.Errorf("a leading = %q", got)
	}
	if got := token.TriviaText(toks[0].Trailing); got != " // first" {
		t.Errorf("a trailing = %q", got)
	}
	if got := token.TriviaText(toks[1].Leading); got != "\n  " {
		t.Errorf("+ leading = %q", got)
	}
	if got := token.TriviaText(toks[1].Trailing); got != " /* op */ " {
		t.Errorf("+ trailing = %q", got)
	}
	if got := token.TriviaText(toks[2].Trailing); got != "  " {
		t.Errorf("b trailing = %q", got)
	}
}

func TestRoundTripText(t *testing.T) {
	inputs := []string{
		"a + b * c",
		"  foo.bar(x, y: 2)?.baz[0]!  ",
		"/* lead */ x == y // tail\n",
		"c ? [1, 2] : [3]",
		"\n\n  value\n",
	}
	for _, input := range inputs {
		lx, _ := makeTestLexer(input)
		var sb strings.Builder
		for _, tok := range lx.All() {
			sb.WriteString(token.TriviaText(tok.Leading))
			sb.WriteString(tok.Text)
			sb.WriteString(token.TriviaText(tok.Trailing))
		}
		if sb.String() != input {
			t.Errorf("round trip: got %q, want %q", sb.String(), input)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("expected EOF after EOF, got %v", n.Kind)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"\"line\nbreak\"", diag.LexUnterminatedString},
		{"a /* never closed", diag.LexUnterminatedBlockComment},
		{"@", diag.LexUnknownChar},
		{"1e", diag.LexBadNumber},
		{"0x", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, reporter := makeTestLexer(tt.input)
			lx.All()
			if len(reporter.diagnostics) == 0 {
				t.Fatalf("expected %s, got no diagnostics", tt.code.ID())
			}
			if reporter.diagnostics[0].Code != tt.code {
				t.Errorf("code = %s, want %s (%v)", reporter.diagnostics[0].Code.ID(), tt.code.ID(), reporter.ErrorMessages())
			}
		})
	}
}
