package parser

import (
	"powerassert/internal/diag"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// parsePostfix наращивает цепочку: .name, ?, !, (args), [args], { closure }.
// '(' '[' '{' с новой строки цепочку не продолжают.
func (p *Parser) parsePostfix(base *syntax.Node) *syntax.Node {
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Dot:
			if !p.nameFollows() {
				return base
			}
			dot := p.advance()
			base = syntax.NewMember(base, dot, p.advance())

		case token.OptionalMark:
			base = syntax.NewOptionalChain(base, p.advance())

		case token.ExclaimMark:
			base = syntax.NewForceUnwrap(base, p.advance())

		case token.LParen:
			if hasNewline(tok) {
				return base
			}
			base = p.parseCall(base)

		case token.LBracket:
			if hasNewline(tok) {
				return base
			}
			lb := p.advance()
			args := p.parseArgItems(token.RBracket)
			rb := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after subscript")
			base = syntax.NewSubscript(base, lb, args, rb)

		case token.LBrace:
			if hasNewline(tok) || !acceptsTrailingClosure(base) {
				return base
			}
			base = syntax.NewCall(base, nil, nil, nil, p.parseClosure())

		default:
			return base
		}
	}
}

func (p *Parser) nameFollows() bool {
	k := p.peekAt(1).Kind
	return k == token.Ident || k == token.IntLit
}

// parseCall парсит вызов: callee(args...) с необязательным trailing closure
func (p *Parser) parseCall(callee *syntax.Node) *syntax.Node {
	lp := p.advance() // съедаем '('
	args := p.parseArgItems(token.RParen)
	rp := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments")

	var trailing *syntax.Node
	if rp != nil && p.at(token.LBrace) && !hasNewline(p.peek()) {
		trailing = p.parseClosure()
	}
	return syntax.NewCall(callee, lp, args, rp, trailing)
}

func acceptsTrailingClosure(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.Ident, syntax.Member:
		return true
	}
	return false
}

// parseArgItems — `[label:] expr (, [label:] expr)* ,?` до закрывающего токена
func (p *Parser) parseArgItems(closer token.Kind) *syntax.Node {
	var items []*syntax.Node
	for !p.at(closer) && !p.at(token.EOF) {
		items = append(items, p.parseArg())
		if !p.at(token.Comma) {
			break
		}
		items = append(items, syntax.Leaf(p.advance()))
	}
	return syntax.NewArgList(items...)
}

func (p *Parser) parseArg() *syntax.Node {
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
		label := p.advance()
		colon := p.advance()
		return syntax.NewArg(label, colon, p.parseExpr())
	}
	return syntax.NewArg(nil, nil, p.parseExpr())
}
