package parser_test

import (
	"testing"

	"powerassert/internal/diag"
	"powerassert/internal/format"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42", "(IntLit 42)"},
		{"x", "(Ident x)"},
		{"1 + 2 * 3", "(Sequence (IntLit 1) (BinaryOperator +) (IntLit 2) (BinaryOperator *) (IntLit 3))"},
		{"-x", "(Prefix - (Ident x))"},
		{"!a.b", "(Prefix ! (Member (Ident a) . b))"},
		{"a?.b", "(Member (OptionalChain (Ident a) ?) . b)"},
		{"a!.b", "(Member (ForceUnwrap (Ident a) !) . b)"},
		{"obj.method(x)", "(Call (Member (Ident obj) . method) ( (ArgList (Arg (Ident x))) ))"},
		{"f(x: 1, 2)", "(Call (Ident f) ( (ArgList (Arg x : (IntLit 1)) , (Arg (IntLit 2))) ))"},
		{"a[0]", "(Subscript (Ident a) [ (ArgList (Arg (IntLit 0))) ])"},
		{"t.0", "(Member (Ident t) . 0)"},
		{"(a)", "(Tuple ( (ArgList (Arg (Ident a))) ))"},
		{"[1, 2]", "(Array [ (ArgList (Arg (IntLit 1)) , (Arg (IntLit 2))) ])"},
		{"[]", "(Array [ (ArgList) ])"},
		{`["a": 1]`, `(Dictionary [ (ArgList (DictElement (StringLit "a") : (IntLit 1))) ])`},
		{"[:]", "(Dictionary [ : ])"},
		{`\.name`, `(KeyPath \ . name)`},
		{`\Person.name`, `(KeyPath \ Person . name)`},
		{"#file", "(MacroExpansion # file)"},
		{"#max(a, b)", "(MacroExpansion # max ( (ArgList (Arg (Ident a)) , (Arg (Ident b))) ))"},
		{"c ? x : y", "(Sequence (Ident c) (TernaryOperator ? (Ident x) :) (Ident y))"},
		{".red", "(Member . red)"},
		{"reduce(0, +)", "(Call (Ident reduce) ( (ArgList (Arg (IntLit 0)) , (Arg (Ident +))) ))"},
		{"a + - b", "(Sequence (Ident a) (BinaryOperator +) (BinaryOperator -) (Ident b))"},
		{"xs.map { $0 * 2 }", "(Call (Member (Ident xs) . map) (Closure { $0 * 2 }))"},
		{"f(1) { x in x }", "(Call (Ident f) ( (ArgList (Arg (IntLit 1))) ) (Closure { x in x }))"},
		{"T.self", "(Member (Ident T) . self)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n := mustParse(t, tt.src)
			if got := syntax.Dump(n); got != tt.want {
				t.Errorf("Dump(%q)\n got: %s\nwant: %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	seeds := []string{
		"a == b",
		"  1 + 2 * 3  ",
		"foo.bar(x, y: 2)?.baz[0]! != nil // trailing comment\n",
		"/* lead */ c ? [1, 2] : [:]",
		"xs.filter { $0 > 1 }.count == 2",
		"\n\tdict[\"k\"] ?? .none\n\n",
		`\.name == #keyPath(a)`,
		"a\n  .b\n  .c",
	}
	for _, src := range seeds {
		n := mustParse(t, src)
		if got := format.Print(n); got != src {
			t.Errorf("round trip:\n got: %q\nwant: %q", got, src)
		}
	}
}

func TestNestedClosureBodyKeptRaw(t *testing.T) {
	n := mustParse(t, "f { { inner } + 1 }")
	closure := syntax.FindDescendant(n, syntax.Closure)
	if closure == nil {
		t.Fatal("closure not found")
	}
	if got := syntax.Text(closure); got != "{ { inner } + 1 }" {
		t.Fatalf("closure text = %q", got)
	}
	for _, c := range closure.Children {
		if !c.IsLeaf() {
			t.Fatalf("closure body must stay raw tokens, got %s", c.Kind)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"f(a", diag.SynUnclosedParen},
		{"a[0", diag.SynUnclosedBracket},
		{"[1, 2", diag.SynUnclosedBracket},
		{"xs.map { $0", diag.SynUnclosedBrace},
		{"c ? a", diag.SynExpectColon},
		{"a + ", diag.SynExpectExpression},
		{"a b", diag.SynTrailingInput},
		{"", diag.SynExpectExpression},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, bag := parseExpr(t, tt.src)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestParseArguments(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("args.swift", []byte(`x == 1, "message"`)))
	bag := diag.NewBag(8)
	list, ok := parser.ParseArguments(f, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !ok {
		t.Fatalf("ParseArguments failed: %s", diagnosticsSummary(bag))
	}
	args := list.Args()
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if got := syntax.Text(args[0].Value()); got != "x == 1" {
		t.Errorf("first arg = %q", got)
	}
	if got := format.Print(list); got != `x == 1, "message"` {
		t.Errorf("print = %q", got)
	}
}
