package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"powerassert/internal/diag"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
)

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseExpr(t *testing.T, src string) (*syntax.Node, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("expr.swift", []byte(src)))
	bag := diag.NewBag(32)
	n, _ := parser.ParseExpr(f, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return n, bag
}

func mustParse(t *testing.T, src string) *syntax.Node {
	t.Helper()
	n, bag := parseExpr(t, src)
	if bag.HasErrors() {
		t.Fatalf("parse %q: %s", src, diagnosticsSummary(bag))
	}
	return n
}
