package fold_test

import (
	"testing"

	"powerassert/internal/fold"
	"powerassert/internal/format"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
)

func parse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("expr.swift", []byte(src)))
	n, ok := parser.ParseExpr(f, parser.Options{})
	if !ok {
		t.Fatalf("parse %q failed", src)
	}
	return n
}

func TestFold(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(Infix (IntLit 1) (BinaryOperator +) (Infix (IntLit 2) (BinaryOperator *) (IntLit 3)))"},
		{"1 * 2 + 3", "(Infix (Infix (IntLit 1) (BinaryOperator *) (IntLit 2)) (BinaryOperator +) (IntLit 3))"},
		{"a - b - c", "(Infix (Infix (Ident a) (BinaryOperator -) (Ident b)) (BinaryOperator -) (Ident c))"},
		{"a ?? b ?? c", "(Infix (Ident a) (BinaryOperator ??) (Infix (Ident b) (BinaryOperator ??) (Ident c)))"},
		{"a == b && c", "(Infix (Infix (Ident a) (BinaryOperator ==) (Ident b)) (BinaryOperator &&) (Ident c))"},
		{"a + - b", "(Infix (Ident a) (BinaryOperator +) (Prefix - (Ident b)))"},
		{"a == b ? x : y", "(Ternary (Infix (Ident a) (BinaryOperator ==) (Ident b)) ? (Ident x) : (Ident y))"},
		{"a ? b : c ? d : e", "(Ternary (Ident a) ? (Ident b) : (Ternary (Ident c) ? (Ident d) : (Ident e)))"},
		{"x ?? 0 > 1", "(Infix (Infix (Ident x) (BinaryOperator ??) (IntLit 0)) (BinaryOperator >) (IntLit 1))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n := parse(t, tt.src)
			res := fold.Fold(n, fold.DefaultTable())
			if !res.Folded {
				t.Fatalf("fold failed: %v", res.Err)
			}
			if got := syntax.Dump(res.Node); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
			// свёртка не меняет текст
			if got := format.Print(res.Node); got != tt.src {
				t.Errorf("print after fold = %q", got)
			}
		})
	}
}

func TestFoldFailureKeepsSequence(t *testing.T) {
	table := fold.DefaultTable()
	for _, src := range []string{"a == b == c", "a <> b", "1 ... 2 ..< 3"} {
		n := parse(t, src)
		res := fold.Fold(n, table)
		if res.Folded || res.Err == nil {
			t.Errorf("%q: expected failure", src)
		}
		if res.Node != n {
			t.Errorf("%q: failed fold must return the original sequence", src)
		}
	}
}

func TestFoldIdempotent(t *testing.T) {
	table := fold.DefaultTable()
	folded, failures := fold.FoldAll(parse(t, "f(a + b * c) == [d - e]"), table)
	if failures != 0 {
		t.Fatalf("unexpected failures: %d", failures)
	}
	again, failures := fold.FoldAll(folded, table)
	if failures != 0 || again != folded {
		t.Fatal("folding a folded tree must return it unchanged")
	}
	if res := fold.Fold(folded, table); res.Node != folded || !res.Folded {
		t.Fatal("Fold of a non-sequence must be the identity")
	}
}

func TestFoldAllNested(t *testing.T) {
	n, failures := fold.FoldAll(parse(t, "f(a + b * c) == (x == y == z)"), fold.DefaultTable())
	if failures != 1 {
		t.Fatalf("failures = %d, want 1", failures)
	}
	if n.Kind != syntax.Infix {
		t.Fatalf("root = %s, want Infix", n.Kind)
	}
	call := n.Lhs()
	arg := call.Args()[0].Value()
	if arg.Kind != syntax.Infix || arg.Rhs().Kind != syntax.Infix {
		t.Fatalf("argument not folded: %s", syntax.Dump(arg))
	}
	if seq := syntax.FindDescendant(n.Rhs(), syntax.Sequence); seq == nil {
		t.Fatal("failed inner sequence must be kept")
	}
}

func TestCustomOperator(t *testing.T) {
	table := fold.DefaultTable()
	table.Define("<>", fold.Operator{Precedence: 130, Assoc: fold.AssocNone})
	res := fold.Fold(parse(t, "a <> b + c"), table)
	if !res.Folded {
		t.Fatalf("fold failed: %v", res.Err)
	}
	if res.Node.Kind != syntax.Infix || res.Node.Operator().Text != "<>" {
		t.Fatalf("unexpected tree %s", syntax.Dump(res.Node))
	}
}
