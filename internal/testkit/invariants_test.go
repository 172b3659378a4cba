package testkit_test

import (
	"testing"

	"powerassert/internal/lexer"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/testkit"
)

func TestInvariantsOnParsedTrees(t *testing.T) {
	inputs := []string{
		"a + b * c",
		"  foo.bar(x, y: 2)?.baz[0]!  ",
		"/* lead */ 値 == 名前 // tail\n",
		"xs.map { $0 * 2 }.count > 0",
		`"sum: \(a + b)" == s`,
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("t.swift", []byte(input)))
		if err := testkit.CheckTokenInvariants(lexer.New(f, lexer.Options{}).All(), f); err != nil {
			t.Errorf("%q tokens: %v", input, err)
		}
		n, ok := parser.ParseExpr(f, parser.Options{})
		if !ok {
			t.Fatalf("parse %q failed", input)
		}
		if err := testkit.CheckTreeInvariants(n, f); err != nil {
			t.Errorf("%q tree: %v", input, err)
		}
	}
}

func TestCheckColumns(t *testing.T) {
	if err := testkit.CheckColumns([]int{8, 12}, "xs.count == 4", 8); err != nil {
		t.Error(err)
	}
	if err := testkit.CheckColumns([]int{3}, "xs", 8); err == nil {
		t.Error("expected error for column before offset")
	}
}
