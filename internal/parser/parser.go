package parser

import (
	"slices"

	"powerassert/internal/diag"
	"powerassert/internal/lexer"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser — состояние парсера на одно выражение.
// Токены лексятся заранее: подписи аргументов (`label:`) требуют
// просмотра на два токена вперёд.
type Parser struct {
	file     *source.File
	toks     []*token.Token // включая EOF
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

func newParser(f *source.File, opts Options) *Parser {
	lx := lexer.New(f, lexer.Options{Reporter: opts.Reporter})
	all := lx.All()
	toks := make([]*token.Token, len(all))
	for i := range all {
		toks[i] = &all[i]
	}
	return &Parser{
		file:     f,
		toks:     toks,
		opts:     opts,
		lastSpan: source.Span{File: f.ID},
	}
}

// ParseExpr parses f as a single expression. Binary operators stay in flat
// Sequence nodes. ok is false when a syntax error was reported; the returned
// tree is still usable on a best-effort basis. nil only for empty input.
func ParseExpr(f *source.File, opts Options) (*syntax.Node, bool) {
	p := newParser(f, opts)
	if p.at(token.EOF) {
		p.err(diag.SynExpectExpression, "expected expression")
		return nil, false
	}
	n := p.parseExpr()
	p.finish()
	return n, p.opts.CurrentErrors == 0
}

// ParseArguments parses f as a comma-separated argument list without
// surrounding parentheses, e.g. the inside of `#assert(...)`.
func ParseArguments(f *source.File, opts Options) (*syntax.Node, bool) {
	p := newParser(f, opts)
	if p.at(token.EOF) {
		p.err(diag.SynExpectExpression, "expected expression")
		return nil, false
	}
	n := p.parseArgItems(token.EOF)
	p.finish()
	return n, p.opts.CurrentErrors == 0
}

// finish проверяет, что ввод закончился, и переносит trivia с EOF
// в trailing последнего значимого токена, чтобы печать не теряла хвост.
func (p *Parser) finish() {
	if !p.at(token.EOF) {
		p.err(diag.SynTrailingInput, "unexpected input after expression")
	}
	eof := p.toks[len(p.toks)-1]
	if len(eof.Leading) == 0 || p.pos == 0 {
		return
	}
	last := p.toks[p.pos-1]
	last.Trailing = append(last.Trailing, eof.Leading...)
	eof.Leading = nil
}

func (p *Parser) peek() *token.Token {
	return p.toks[p.pos]
}

// peekAt смотрит на n токенов вперёд; за концом — EOF.
func (p *Parser) peekAt(n int) *token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}
