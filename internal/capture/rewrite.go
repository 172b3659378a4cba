package capture

import (
	"bytes"
	"fmt"
	"strconv"

	"powerassert/internal/diag"
	"powerassert/internal/fold"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
	"powerassert/internal/trace"
)

// Site describes one captured subexpression.
type Site struct {
	Kind   syntax.Kind `json:"kind" msgpack:"kind"`
	Column int         `json:"column" msgpack:"column"`
	Text   string      `json:"text" msgpack:"text"`
}

// Rewriter instruments one expression. It holds no shared state and is not
// safe for concurrent use; create one per assertion site.
type Rewriter struct {
	src     []byte
	opts    Options
	synth   *Synthesizer
	parents syntax.Parents
	sites   []Site
	span    *trace.Span
}

// New creates a rewriter for an expression whose token spans index src.
func New(src []byte, opts Options) *Rewriter {
	opts = opts.withDefaults()
	return &Rewriter{
		src:   src,
		opts:  opts,
		synth: NewSynthesizer(opts.Callee, opts.ColumnLabel, opts.TypeSelf),
	}
}

// Synthesizer returns the synthesizer used for wrapping.
func (r *Rewriter) Synthesizer() *Synthesizer {
	return r.synth
}

// Captures returns the sites wrapped by the last Rewrite in evaluation order.
func (r *Rewriter) Captures() []Site {
	return r.sites
}

// Rewrite folds expr and returns the instrumented tree. It never fails:
// anything it cannot resolve precisely is captured more coarsely and
// reported as an informational diagnostic.
func (r *Rewriter) Rewrite(expr *syntax.Node) *syntax.Node {
	r.sites = nil
	if expr == nil {
		return nil
	}
	r.span = trace.Begin(r.opts.Tracer, trace.ScopePass, "rewrite", 0)
	defer func() {
		r.span.WithExtra("captures", strconv.Itoa(len(r.sites))).End("")
	}()

	folded, _ := fold.FoldAll(expr, r.opts.Table)
	r.parents = syntax.BuildParents(folded)
	return r.rewrite(folded)
}

// rewrite dispatches on the node kind. Children are rewritten first, then
// the node itself is wrapped when its kind calls for it.
func (r *Rewriter) rewrite(n *syntax.Node) *syntax.Node {
	switch n.Kind {
	case syntax.Token, syntax.BinaryOperator:
		return n

	case syntax.IntLit, syntax.FloatLit, syntax.BoolLit, syntax.StringLit, syntax.NilLit:
		return r.wrap(n, n, r.startColumn(n))

	case syntax.Ident:
		if isOperatorRef(n) || r.isCallee(n) {
			return n
		}
		return r.wrap(n, n, r.startColumn(n))

	case syntax.Member:
		if n.Base() == nil {
			// .red: тип выводится из контекста, обёртка его потеряет
			return n
		}
		out := r.children(n)
		if r.isCallee(n) || r.forcedInChain(n) {
			return out
		}
		return r.wrap(n, out, r.tokenColumn(n, n.Name()))

	case syntax.Subscript:
		out := r.children(n)
		if r.forcedInChain(n) {
			return out
		}
		closer := syntax.LastToken(n)
		if closer == nil || closer.Kind != token.RBracket {
			closer = nil
		}
		return r.wrap(n, out, r.tokenColumn(n, closer))

	case syntax.Call:
		out := r.children(n)
		if r.forcedInChain(n) {
			return out
		}
		return r.wrap(n, out, r.tokenColumn(n, calleeAnchor(n.Callee())))

	case syntax.ForceUnwrap:
		out := r.children(n)
		if r.isCallee(n) || r.forcedInChain(n) {
			return out
		}
		return r.wrap(n, out, r.startColumn(n))

	case syntax.Prefix, syntax.Ternary, syntax.Tuple,
		syntax.Array, syntax.Dictionary:
		out := r.children(n)
		return r.wrap(n, out, r.startColumn(n))

	case syntax.KeyPath, syntax.MacroExpansion:
		// составное значение целиком, внутрь не заходим
		return r.wrap(n, n, r.startColumn(n))

	case syntax.Infix:
		out := r.children(n)
		return r.wrap(n, out, r.tokenColumn(n, n.Operator()))

	case syntax.Sequence:
		// свёртка не удалась: одна точка захвата на всю последовательность
		r.degrade(diag.RwFoldFallback, n, "operator sequence could not be folded; capturing it as a whole")
		out := r.children(n)
		var anchor *token.Token
		if op := syntax.FindDescendant(n, syntax.BinaryOperator); op != nil {
			anchor = op.Token()
		}
		return r.wrap(n, out, r.tokenColumn(n, anchor))

	case syntax.Closure:
		return n

	case syntax.OptionalChain, syntax.ArgList, syntax.Arg, syntax.DictElement, syntax.TernaryOperator:
		return r.children(n)

	default:
		panic(fmt.Sprintf("capture: unhandled node kind %s", n.Kind))
	}
}

func (r *Rewriter) children(n *syntax.Node) *syntax.Node {
	return n.Replace(r.rewrite)
}

// wrap captures out (the rewritten form of orig) at column. When orig is a
// postfix node on an optional chain that its parent continues, the chain
// marker is re-applied after the capture call: `capture(a?.b, column: 3)?.c`.
func (r *Rewriter) wrap(orig, out *syntax.Node, column int) *syntax.Node {
	r.sites = append(r.sites, Site{Kind: orig.Kind, Column: column, Text: syntax.Text(orig)})
	trace.Point(r.opts.Tracer, trace.ScopeNode, "wrap", orig.Kind.String(), r.span.ID(),
		map[string]string{"column": strconv.Itoa(column), "text": syntax.Text(orig)})

	wrapped := r.synth.Wrap(out, column)
	if !r.continuesOptionalChain(orig) {
		return wrapped
	}
	mark := token.New(token.OptionalMark, "?")
	mark.Trailing = syntax.TrailingTrivia(wrapped)
	return syntax.NewOptionalChain(syntax.WithTrivia(wrapped, syntax.LeadingTrivia(wrapped), nil), mark)
}

func (r *Rewriter) continuesOptionalChain(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.Member, syntax.Subscript, syntax.Call, syntax.ForceUnwrap:
	default:
		return false
	}
	if !syntax.ChainContainsOptional(n) {
		return false
	}
	parent := r.parents.Parent(n)
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case syntax.Member, syntax.Subscript:
		return parent.Base() == n
	case syntax.Call:
		return parent.Callee() == n
	}
	return false
}

// isCallee — n вызывается (возможно через `?` или `!`): `f(x)`, `a.b?()`,
// `f!(x)`. Захватывается весь вызов, не вызываемое выражение.
func (r *Rewriter) isCallee(n *syntax.Node) bool {
	for {
		p := r.parents.Parent(n)
		if p == nil {
			return false
		}
		switch p.Kind {
		case syntax.OptionalChain, syntax.ForceUnwrap:
			if p.Base() != n {
				return false
			}
			n = p
		case syntax.Call:
			return p.Callee() == n
		default:
			return false
		}
	}
}

// forcedInChain reports whether n is the operand of a `!` inside an optional
// chain (`a?.b!`). The `!` unwraps a link of the chain, so n stays bare and
// the force-unwrap node is captured instead.
func (r *Rewriter) forcedInChain(n *syntax.Node) bool {
	p := r.parents.Parent(n)
	return p != nil && p.Kind == syntax.ForceUnwrap && p.Base() == n && syntax.ChainContainsOptional(n)
}

// startColumn — колонка первого токена узла
func (r *Rewriter) startColumn(n *syntax.Node) int {
	return r.tokenColumn(n, syntax.FirstToken(n))
}

// tokenColumn returns the display column of anchor; without a usable anchor
// it falls back to n's own start.
func (r *Rewriter) tokenColumn(n *syntax.Node, anchor *token.Token) int {
	if anchor == nil || anchor.Synthetic() {
		r.degrade(diag.RwAnchorFallback, n, "no anchor token; using the start of the expression")
		anchor = syntax.FirstToken(n)
		if anchor == nil || anchor.Synthetic() {
			return r.opts.StartColumnOffset
		}
	}
	col, ok := source.ColumnAt(r.src, anchor.Span.Start)
	if !ok {
		r.degrade(diag.RwColumnFallback, n, "source is not valid UTF-8; using the raw offset as column")
	}
	// строки продолжения уже начинаются с начала строки исходника
	if bytes.IndexByte(r.src[:min(int(anchor.Span.Start), len(r.src))], '\n') >= 0 {
		return col
	}
	return col + r.opts.StartColumnOffset
}

func (r *Rewriter) degrade(code diag.Code, n *syntax.Node, msg string) {
	trace.Point(r.opts.Tracer, trace.ScopeNode, "degrade", code.ID(), r.span.ID(), nil)
	if r.opts.Reporter == nil {
		return
	}
	diag.ReportInfo(r.opts.Reporter, code, r.spanOf(n), msg).Emit()
}

func (r *Rewriter) spanOf(n *syntax.Node) source.Span {
	first, last := syntax.FirstToken(n), syntax.LastToken(n)
	if first == nil || last == nil {
		return source.Span{File: r.opts.File}
	}
	return source.Span{File: r.opts.File, Start: first.Span.Start, End: last.Span.End}
}

// calleeAnchor — последний компонент вызываемого выражения
func calleeAnchor(callee *syntax.Node) *token.Token {
	for callee != nil {
		switch callee.Kind {
		case syntax.Member:
			return callee.Name()
		case syntax.Ident:
			return callee.Token()
		case syntax.OptionalChain, syntax.ForceUnwrap:
			callee = callee.Base()
		case syntax.Call:
			callee = callee.Callee()
		default:
			return syntax.FirstToken(callee)
		}
	}
	return nil
}

// isOperatorRef — идентификатор, который на самом деле ссылка на оператор: reduce(0, +)
func isOperatorRef(n *syntax.Node) bool {
	t := n.Token()
	return t != nil && t.IsOperator()
}
