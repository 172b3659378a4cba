package parser

import (
	"powerassert/internal/diag"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// parseExpr — главная точка входа для выражений.
// Приоритеты здесь не известны: операнды и операторы складываются в плоский
// Sequence, который потом сворачивает fold. Одиночный операнд возвращается как есть.
func (p *Parser) parseExpr() *syntax.Node {
	elems := p.appendOperand(nil)

	for {
		tok := p.peek()
		switch {
		case isOperatorToken(tok.Kind):
			// в позиции оператора любой оператор — бинарный
			elems = append(elems, syntax.NewBinaryOperator(p.advance()))
			elems = p.appendOperand(elems)

		case tok.Kind == token.Question:
			q := p.advance()
			mid := p.parseExpr()
			colon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in ternary expression")
			elems = append(elems, syntax.NewTernaryOperator(q, mid, colon))
			elems = p.appendOperand(elems)

		default:
			if len(elems) == 1 {
				return elems[0]
			}
			return syntax.NewSequence(elems...)
		}
	}
}

// appendOperand добавляет операнд. Бинарный оператор в позиции операнда
// (`a + - b`) остаётся неразрешённым префиксом — его разберёт fold.
func (p *Parser) appendOperand(elems []*syntax.Node) []*syntax.Node {
	for p.atOr(token.BinaryOp, token.PostfixOp) && !closesOperand(p.peekAt(1).Kind) {
		elems = append(elems, syntax.NewBinaryOperator(p.advance()))
	}
	return append(elems, p.parseOperand())
}

// parseOperand — префиксы + postfix-цепочка
func (p *Parser) parseOperand() *syntax.Node {
	tok := p.peek()
	if isOperatorToken(tok.Kind) {
		if closesOperand(p.peekAt(1).Kind) {
			// ссылка на оператор как на значение: reduce(0, +)
			return syntax.NewIdent(p.advance())
		}
		if tok.Kind == token.PrefixOp {
			op := p.advance()
			return syntax.NewPrefix(op, p.parseOperand())
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePrimary — литералы, идентификаторы и скобочные формы
func (p *Parser) parsePrimary() *syntax.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return syntax.NewLiteral(syntax.IntLit, p.advance())
	case token.FloatLit:
		return syntax.NewLiteral(syntax.FloatLit, p.advance())
	case token.StringLit:
		return syntax.NewLiteral(syntax.StringLit, p.advance())
	case token.KwTrue, token.KwFalse:
		return syntax.NewLiteral(syntax.BoolLit, p.advance())
	case token.KwNil:
		return syntax.NewLiteral(syntax.NilLit, p.advance())
	case token.Ident:
		return syntax.NewIdent(p.advance())
	case token.Dot:
		// неявный член: .red
		dot := p.advance()
		name := p.expectName()
		if name == nil {
			return syntax.New(syntax.Member, syntax.Leaf(dot))
		}
		return syntax.NewMember(nil, dot, name)
	case token.LParen:
		return p.parseTuple()
	case token.LBracket:
		return p.parseCollection()
	case token.LBrace:
		return p.parseClosure()
	case token.Backslash:
		return p.parseKeyPath()
	case token.Hash:
		return p.parseMacro()
	case token.Invalid:
		// лексер уже сообщил об ошибке; сохраняем токен, чтобы не терять текст
		return syntax.NewIdent(p.advance())
	default:
		p.err(diag.SynExpectExpression, "expected expression")
		return syntax.NewIdent(&token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan()})
	}
}

// expectName — имя члена после '.': идентификатор или индекс кортежа
func (p *Parser) expectName() *token.Token {
	if p.atOr(token.Ident, token.IntLit) {
		return p.advance()
	}
	p.err(diag.SynExpectIdentifier, "expected member name after '.'")
	return nil
}
