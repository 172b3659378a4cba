package parser

import (
	"powerassert/internal/diag"
	"powerassert/internal/source"
	"powerassert/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() *token.Token {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	p.lastSpan = tok.Span
	return tok
}

// getDiagnosticSpan — на EOF указываем на позицию сразу после последнего токена
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.pos > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем nil.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.err(code, msg)
	return nil
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// hasNewline — есть ли перевод строки в trivia перед токеном
func hasNewline(t *token.Token) bool {
	for _, tv := range t.Leading {
		if tv.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

// adjacent — токены стоят вплотную, без trivia между ними
func adjacent(prev, next *token.Token) bool {
	return len(prev.Trailing) == 0 && len(next.Leading) == 0
}

// isOperatorToken — любой из видов операторов, которые могут стоять между операндами
func isOperatorToken(k token.Kind) bool {
	switch k {
	case token.BinaryOp, token.PrefixOp, token.PostfixOp:
		return true
	}
	return false
}

// closesOperand — токен, на котором заканчивается выражение
func closesOperand(k token.Kind) bool {
	switch k {
	case token.EOF, token.Comma, token.RParen, token.RBracket, token.RBrace, token.Colon, token.Semicolon:
		return true
	}
	return false
}
