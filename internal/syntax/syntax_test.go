package syntax

import (
	"testing"

	"powerassert/internal/source"
	"powerassert/internal/token"
)

func tok(kind token.Kind, text string, start uint32) *token.Token {
	return &token.Token{
		Kind: kind,
		Text: text,
		Span: source.Span{Start: start, End: start + uint32(len(text))},
	}
}

func space(text string) []token.Trivia {
	return []token.Trivia{{Kind: token.TriviaSpace, Text: text}}
}

// a?.b(x)
func optionalCall() (*Node, *Node, *Node) {
	a := NewIdent(tok(token.Ident, "a", 0))
	opt := NewOptionalChain(a, tok(token.OptionalMark, "?", 1))
	member := NewMember(opt, tok(token.Dot, ".", 2), tok(token.Ident, "b", 3))
	x := NewIdent(tok(token.Ident, "x", 5))
	call := NewCall(member, tok(token.LParen, "(", 4), NewArgList(NewArg(nil, nil, x)), tok(token.RParen, ")", 6), nil)
	return call, member, x
}

func TestDump(t *testing.T) {
	call, _, _ := optionalCall()
	want := "(Call (Member (OptionalChain (Ident a) ?) . b) ( (ArgList (Arg (Ident x))) ))"
	if got := Dump(call); got != want {
		t.Fatalf("Dump = %s\nwant   %s", got, want)
	}
	if got := Text(call); got != "a?.b(x)" {
		t.Fatalf("Text = %q", got)
	}
}

func TestParentsAndNearestAncestor(t *testing.T) {
	call, member, x := optionalCall()
	p := BuildParents(call)

	if p.Parent(member) != call {
		t.Fatal("member parent must be the call")
	}
	if p.Parent(call) != nil {
		t.Fatal("root has no parent")
	}
	if got := NearestAncestor(p, x, Call); got != call {
		t.Fatalf("NearestAncestor(x, Call) = %v", got)
	}
	if got := NearestAncestor(p, x, Subscript); got != nil {
		t.Fatalf("expected no Subscript ancestor, got %v", got)
	}
}

func TestFindDescendant(t *testing.T) {
	call, member, _ := optionalCall()

	if got := FindDescendant(call, Member); got != member {
		t.Fatal("expected member")
	}
	if got := FindDescendant(call, OptionalChain); got == nil {
		t.Fatal("expected optional chain marker")
	}
	if got := FindDescendant(call, Subscript); got != nil {
		t.Fatalf("unexpected %v", got)
	}
	// n itself is not a candidate
	if got := FindDescendant(member, Member); got != nil {
		t.Fatalf("FindDescendant must exclude the root, got %v", Dump(got))
	}
	if got := FindDescendant(Leaf(tok(token.Ident, "a", 0)), Token); got != nil {
		t.Fatal("leaves have no descendants")
	}
}

func TestChainContainsOptional(t *testing.T) {
	call, member, x := optionalCall()
	if !ChainContainsOptional(call) || !ChainContainsOptional(member) {
		t.Fatal("optional marker on the spine not found")
	}
	if ChainContainsOptional(x) {
		t.Fatal("plain identifier has no optional chain")
	}
	// a?.b used as an argument does not make f(...) optional
	f := NewCall(NewIdent(tok(token.Ident, "f", 10)), tok(token.LParen, "(", 11),
		NewArgList(NewArg(nil, nil, member)), tok(token.RParen, ")", 16), nil)
	if ChainContainsOptional(f) {
		t.Fatal("optional inside an argument is not on the spine")
	}
}

func TestWithTriviaCopiesEdges(t *testing.T) {
	first := tok(token.Ident, "a", 0)
	first.Leading = space("  ")
	last := tok(token.Ident, "b", 4)
	last.Trailing = space(" ")
	n := NewInfix(NewIdent(first), NewBinaryOperator(tok(token.BinaryOp, "+", 2)), NewIdent(last))

	bare := WithoutTrivia(n)
	if len(LeadingTrivia(bare)) != 0 || len(TrailingTrivia(bare)) != 0 {
		t.Fatal("WithoutTrivia left outer trivia")
	}
	if token.TriviaText(LeadingTrivia(n)) != "  " || token.TriviaText(TrailingTrivia(n)) != " " {
		t.Fatal("original node was mutated")
	}
	if bare.Children[1] != n.Children[1] {
		t.Fatal("untouched children must be shared")
	}

	back := WithTrivia(bare, LeadingTrivia(n), TrailingTrivia(n))
	if token.TriviaText(LeadingTrivia(back)) != "  " || token.TriviaText(TrailingTrivia(back)) != " " {
		t.Fatal("WithTrivia did not restore trivia")
	}
}

func TestReplaceSharesUnchanged(t *testing.T) {
	call, _, _ := optionalCall()
	if got := call.Replace(func(c *Node) *Node { return c }); got != call {
		t.Fatal("identity Replace must return the same node")
	}
	swapped := call.Replace(func(c *Node) *Node {
		if c.Kind == ArgList {
			return NewArgList()
		}
		return c
	})
	if swapped == call || swapped.Children[0] != call.Children[0] {
		t.Fatal("Replace must copy the parent and share untouched children")
	}
}

func TestStartOfSyntheticNode(t *testing.T) {
	if _, ok := Start(NewIdent(token.New(token.Ident, "capture"))); ok {
		t.Fatal("synthetic tokens have no position")
	}
	if off, ok := Start(NewIdent(tok(token.Ident, "a", 7))); !ok || off != 7 {
		t.Fatalf("Start = %d, %v", off, ok)
	}
}
