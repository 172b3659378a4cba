package driver

import (
	"fmt"

	"powerassert/internal/capture"
	"powerassert/internal/diag"
	"powerassert/internal/fold"
	"powerassert/internal/format"
	"powerassert/internal/lexer"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// TokenizeResult holds the tokens of one input.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a file from disk.
func Tokenize(filePath string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return tokenize(fs, fs.Get(id), maxDiagnostics), nil
}

// TokenizeString lexes src as a virtual file.
func TokenizeString(src string, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<expr>", []byte(src)))
	return tokenize(fs, f, maxDiagnostics)
}

func tokenize(fs *source.FileSet, f *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(max(maxDiagnostics, 1))
	toks := lexer.New(f, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()
	return &TokenizeResult{FileSet: fs, File: f, Tokens: toks, Bag: bag}
}

// ExprResult is the outcome of rewriting a standalone expression.
type ExprResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Folded   *syntax.Node
	Output   *syntax.Node
	Text     string
	Captures []capture.Site
	Bag      *diag.Bag
}

// ParseExpr parses and folds src. The node is nil when nothing could be
// parsed; diagnostics are in the bag either way.
func ParseExpr(src string, table *fold.Table, maxDiagnostics int) (*source.FileSet, *source.File, *syntax.Node, *diag.Bag) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<expr>", []byte(src)))
	bag := diag.NewBag(max(maxDiagnostics, 1))
	n, _ := parser.ParseExpr(f, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if n == nil {
		return fs, f, nil, bag
	}
	if table == nil {
		table = fold.DefaultTable()
	}
	folded, _ := fold.FoldAll(n, table)
	return fs, f, folded, bag
}

// RewriteExpr rewrites a standalone expression. Columns are relative to the
// start of src plus opts.Capture.StartColumnOffset.
func RewriteExpr(src string, opts Options) (*ExprResult, error) {
	fs, f, n, bag := ParseExpr(src, opts.Capture.Table, opts.MaxDiagnostics)
	if n == nil || bag.HasErrors() {
		return &ExprResult{FileSet: fs, File: f, Bag: bag}, fmt.Errorf("cannot parse expression %q", src)
	}
	copts := opts.Capture
	copts.File = f.ID
	copts.Reporter = diag.BagReporter{Bag: bag}
	if copts.Tracer == nil {
		copts.Tracer = opts.tracer()
	}
	rw := capture.New(f.Content, copts)
	out := rw.Rewrite(n)
	return &ExprResult{
		FileSet:  fs,
		File:     f,
		Folded:   n,
		Output:   out,
		Text:     format.Print(out),
		Captures: rw.Captures(),
		Bag:      bag,
	}, nil
}
