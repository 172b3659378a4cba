package parser

import (
	"powerassert/internal/diag"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// parseTuple: () | (expr) | (a, b) | (x: 1, y: 2)
func (p *Parser) parseTuple() *syntax.Node {
	lp := p.advance()
	elems := p.parseArgItems(token.RParen)
	rp := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	return syntax.NewTuple(lp, elems, rp)
}

// parseCollection: [] | [:] | [a, b] | [k: v, ...]
func (p *Parser) parseCollection() *syntax.Node {
	lb := p.advance()

	if p.at(token.Colon) && p.peekAt(1).Kind == token.RBracket {
		colon := p.advance()
		rb := p.advance()
		return syntax.NewDictionary(lb, syntax.Leaf(colon), rb)
	}
	if p.at(token.RBracket) {
		return syntax.NewArray(lb, syntax.NewArgList(), p.advance())
	}

	first := p.parseExpr()
	if p.at(token.Colon) {
		items := []*syntax.Node{p.parseDictElement(first)}
		for p.at(token.Comma) {
			items = append(items, syntax.Leaf(p.advance()))
			if p.atOr(token.RBracket, token.EOF) {
				break
			}
			items = append(items, p.parseDictElement(p.parseExpr()))
		}
		rb := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after dictionary literal")
		return syntax.NewDictionary(lb, syntax.NewArgList(items...), rb)
	}

	items := []*syntax.Node{syntax.NewArg(nil, nil, first)}
	for p.at(token.Comma) {
		items = append(items, syntax.Leaf(p.advance()))
		if p.atOr(token.RBracket, token.EOF) {
			break
		}
		items = append(items, syntax.NewArg(nil, nil, p.parseExpr()))
	}
	rb := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after array literal")
	return syntax.NewArray(lb, syntax.NewArgList(items...), rb)
}

func (p *Parser) parseDictElement(key *syntax.Node) *syntax.Node {
	colon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in dictionary literal")
	if colon == nil {
		return syntax.New(syntax.DictElement, key)
	}
	return syntax.NewDictElement(key, colon, p.parseExpr())
}

// parseClosure собирает тело замыкания как есть, с учётом вложенных скобок.
// Внутренность не разбирается: переписывание в замыкания не заходит.
func (p *Parser) parseClosure() *syntax.Node {
	toks := []*token.Token{p.advance()}
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF:
			p.err(diag.SynUnclosedBrace, "expected '}' to close closure")
			return syntax.NewClosure(toks...)
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		toks = append(toks, p.advance())
	}
	return syntax.NewClosure(toks...)
}

// parseKeyPath: \Type.a.b, \.a?.b
func (p *Parser) parseKeyPath() *syntax.Node {
	toks := []*token.Token{p.advance()}
	for {
		next := p.peek()
		if !adjacent(toks[len(toks)-1], next) {
			break
		}
		switch next.Kind {
		case token.Ident, token.Dot, token.OptionalMark, token.ExclaimMark:
			toks = append(toks, p.advance())
			continue
		}
		break
	}
	if len(toks) == 1 {
		p.err(diag.SynExpectIdentifier, "expected key path components after '\\'")
	}
	return syntax.NewKeyPath(toks...)
}

// parseMacro: #name или #name(args)
func (p *Parser) parseMacro() *syntax.Node {
	hash := p.advance()
	if !p.at(token.Ident) || !adjacent(hash, p.peek()) {
		p.err(diag.SynExpectIdentifier, "expected macro name after '#'")
		return syntax.New(syntax.MacroExpansion, syntax.Leaf(hash))
	}
	name := p.advance()
	if !p.at(token.LParen) || !adjacent(name, p.peek()) {
		return syntax.NewMacroExpansion(hash, name, nil, nil, nil)
	}
	lp := p.advance()
	args := p.parseArgItems(token.RParen)
	rp := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after macro arguments")
	return syntax.NewMacroExpansion(hash, name, lp, args, rp)
}
