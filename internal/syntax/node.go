package syntax

import "powerassert/internal/token"

// Node is an immutable syntax tree node.
// Leaves of kind Token carry Tok; every other kind carries Children.
// Nodes are never mutated after construction: rewrites build new nodes
// and share unchanged subtrees.
type Node struct {
	Kind     Kind
	Children []*Node
	Tok      *token.Token
}

// Leaf wraps a token into a Token node.
func Leaf(tok *token.Token) *Node {
	return &Node{Kind: Token, Tok: tok}
}

// New builds an interior node. nil children are skipped.
func New(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Children: make([]*Node, 0, len(children))}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// leaf returns Leaf(tok), or nil for a nil token.
func leaf(tok *token.Token) *Node {
	if tok == nil {
		return nil
	}
	return Leaf(tok)
}

// ===== Typed constructors =====

// NewLiteral builds a literal of the given kind from its token.
func NewLiteral(kind Kind, tok *token.Token) *Node {
	return New(kind, Leaf(tok))
}

func NewIdent(tok *token.Token) *Node { return New(Ident, Leaf(tok)) }

func NewBinaryOperator(tok *token.Token) *Node { return New(BinaryOperator, Leaf(tok)) }

// NewTernaryOperator builds the `? mid :` element of a Sequence.
func NewTernaryOperator(question *token.Token, mid *Node, colon *token.Token) *Node {
	return New(TernaryOperator, Leaf(question), mid, leaf(colon))
}

// NewMember builds base.name; base may be nil for an implicit member.
func NewMember(base *Node, dot, name *token.Token) *Node {
	return New(Member, base, Leaf(dot), Leaf(name))
}

func NewSubscript(base *Node, lbrack *token.Token, args *Node, rbrack *token.Token) *Node {
	return New(Subscript, base, Leaf(lbrack), args, leaf(rbrack))
}

// NewCall builds callee(args) with an optional trailing closure.
// lparen/args/rparen are nil for a call made of a trailing closure only.
func NewCall(callee *Node, lparen *token.Token, args *Node, rparen *token.Token, trailing *Node) *Node {
	return New(Call, callee, leaf(lparen), args, leaf(rparen), trailing)
}

// NewArgList builds an argument list from Arg nodes and comma leaves.
func NewArgList(items ...*Node) *Node { return New(ArgList, items...) }

// NewArg builds `label: expr`; label and colon may be nil.
func NewArg(label, colon *token.Token, expr *Node) *Node {
	return New(Arg, leaf(label), leaf(colon), expr)
}

func NewPrefix(op *token.Token, operand *Node) *Node {
	return New(Prefix, Leaf(op), operand)
}

func NewForceUnwrap(operand *Node, mark *token.Token) *Node {
	return New(ForceUnwrap, operand, Leaf(mark))
}

func NewOptionalChain(operand *Node, mark *token.Token) *Node {
	return New(OptionalChain, operand, Leaf(mark))
}

// NewInfix builds lhs op rhs; op is a BinaryOperator node.
func NewInfix(lhs, op, rhs *Node) *Node {
	return New(Infix, lhs, op, rhs)
}

func NewTernary(cond *Node, question *token.Token, then *Node, colon *token.Token, els *Node) *Node {
	return New(Ternary, cond, Leaf(question), then, leaf(colon), els)
}

func NewTuple(lparen *token.Token, elems *Node, rparen *token.Token) *Node {
	return New(Tuple, Leaf(lparen), elems, leaf(rparen))
}

func NewArray(lbrack *token.Token, elems *Node, rbrack *token.Token) *Node {
	return New(Array, Leaf(lbrack), elems, leaf(rbrack))
}

// NewDictionary builds [k: v, ...]; elems is an ArgList of DictElement nodes,
// or a single colon leaf for the empty dictionary literal.
func NewDictionary(lbrack *token.Token, elems *Node, rbrack *token.Token) *Node {
	return New(Dictionary, Leaf(lbrack), elems, leaf(rbrack))
}

func NewDictElement(key *Node, colon *token.Token, value *Node) *Node {
	return New(DictElement, key, Leaf(colon), value)
}

// NewKeyPath builds a key path from its raw tokens, backslash included.
func NewKeyPath(toks ...*token.Token) *Node {
	return New(KeyPath, leaves(toks)...)
}

// NewMacroExpansion builds #name or #name(args).
func NewMacroExpansion(hash, name, lparen *token.Token, args *Node, rparen *token.Token) *Node {
	return New(MacroExpansion, Leaf(hash), Leaf(name), leaf(lparen), args, leaf(rparen))
}

// NewClosure builds a closure from its raw tokens, braces included.
func NewClosure(toks ...*token.Token) *Node {
	return New(Closure, leaves(toks)...)
}

func NewSequence(elems ...*Node) *Node { return New(Sequence, elems...) }

func leaves(toks []*token.Token) []*Node {
	out := make([]*Node, 0, len(toks))
	for _, t := range toks {
		out = append(out, Leaf(t))
	}
	return out
}

// ===== Accessors =====

// IsLeaf reports whether n is a raw token leaf.
func (n *Node) IsLeaf() bool { return n != nil && n.Kind == Token }

// Token returns the single token of a literal, identifier or operator node,
// or the token of a leaf.
func (n *Node) Token() *token.Token {
	if n == nil {
		return nil
	}
	if n.Kind == Token {
		return n.Tok
	}
	if len(n.Children) > 0 && n.Children[0].IsLeaf() {
		return n.Children[0].Tok
	}
	return nil
}

// Base returns the base expression of a member, subscript, force unwrap or
// optional chain. Nil for implicit members.
func (n *Node) Base() *Node {
	switch n.Kind {
	case Member, Subscript, ForceUnwrap, OptionalChain:
		if len(n.Children) > 0 && !n.Children[0].IsLeaf() {
			return n.Children[0]
		}
	}
	return nil
}

// Name returns the member name token of a Member.
func (n *Node) Name() *token.Token {
	if n.Kind != Member || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1].Tok
}

// Callee returns the called expression of a Call.
func (n *Node) Callee() *Node {
	if n.Kind != Call || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// ArgList returns the ArgList child, if any.
func (n *Node) ArgList() *Node {
	for _, c := range n.Children {
		if c.Kind == ArgList {
			return c
		}
	}
	return nil
}

// Args returns the Arg (or DictElement) nodes of n's argument list.
func (n *Node) Args() []*Node {
	list := n
	if n.Kind != ArgList {
		list = n.ArgList()
	}
	if list == nil {
		return nil
	}
	out := make([]*Node, 0, len(list.Children))
	for _, c := range list.Children {
		if !c.IsLeaf() {
			out = append(out, c)
		}
	}
	return out
}

// Label returns the label token of an Arg, or nil.
func (n *Node) Label() *token.Token {
	if n.Kind == Arg && len(n.Children) == 3 {
		return n.Children[0].Tok
	}
	return nil
}

// Value returns the expression of an Arg, the value of a DictElement or the
// operand of a prefix operator.
func (n *Node) Value() *Node {
	switch n.Kind {
	case Arg, DictElement, Prefix:
		return n.Children[len(n.Children)-1]
	}
	return nil
}

// Key returns the key of a DictElement.
func (n *Node) Key() *Node {
	if n.Kind != DictElement {
		return nil
	}
	return n.Children[0]
}

// TrailingClosure returns the trailing closure of a Call, or nil.
func (n *Node) TrailingClosure() *Node {
	if n.Kind != Call {
		return nil
	}
	if last := n.Children[len(n.Children)-1]; last.Kind == Closure && len(n.Children) > 1 {
		return last
	}
	return nil
}

// Operator returns the operator token of an Infix, Prefix or BinaryOperator.
func (n *Node) Operator() *token.Token {
	switch n.Kind {
	case Infix:
		return n.Children[1].Token()
	case Prefix, BinaryOperator:
		return n.Children[0].Tok
	}
	return nil
}

// Lhs and Rhs return the operands of an Infix.
func (n *Node) Lhs() *Node {
	if n.Kind != Infix {
		return nil
	}
	return n.Children[0]
}

func (n *Node) Rhs() *Node {
	if n.Kind != Infix {
		return nil
	}
	return n.Children[2]
}

// TernaryParts returns condition, then and else branches of a Ternary.
func (n *Node) TernaryParts() (cond, then, els *Node) {
	if n.Kind != Ternary || len(n.Children) < 5 {
		return nil, nil, nil
	}
	return n.Children[0], n.Children[2], n.Children[4]
}

// Middle returns the middle expression of a TernaryOperator element.
func (n *Node) Middle() *Node {
	if n.Kind != TernaryOperator || len(n.Children) < 2 {
		return nil
	}
	return n.Children[1]
}

// Replace returns a shallow copy of n with children replaced by fn.
// When fn returns every child unchanged, n itself is returned.
func (n *Node) Replace(fn func(*Node) *Node) *Node {
	if n == nil || n.Kind == Token {
		return n
	}
	var out []*Node
	for i, c := range n.Children {
		nc := fn(c)
		if nc != c && out == nil {
			out = make([]*Node, len(n.Children))
			copy(out, n.Children[:i])
		}
		if out != nil {
			out[i] = nc
		}
	}
	if out == nil {
		return n
	}
	return &Node{Kind: n.Kind, Children: out}
}
