// Package capture instruments an expression tree so that evaluating it
// records the value and display column of every meaningful subexpression.
//
// Each captured node is replaced with a call of the form
//
//	capture(<node>, column: <n>)
//
// where capture is an external sink returning its first argument unchanged.
package capture

import (
	"strings"

	"powerassert/internal/diag"
	"powerassert/internal/fold"
	"powerassert/internal/source"
	"powerassert/internal/trace"
)

const (
	DefaultCallee      = "capture"
	DefaultColumnLabel = "column"
)

// Options configures a Rewriter.
type Options struct {
	// StartColumnOffset is added to every computed column, so columns are
	// relative to the full source line rather than to the expression text.
	StartColumnOffset int
	// Callee is the capture sink, possibly dotted ("recorder.capture").
	Callee string
	// ColumnLabel is the argument label of the column argument.
	ColumnLabel string
	// TypeSelf wraps type-like identifiers (upper-case first letter) as
	// `T.self` so the argument stays a value expression.
	TypeSelf bool
	// Table is the operator table used to fold sequences.
	Table *fold.Table
	// File is used for diagnostic spans.
	File source.FileID

	Reporter diag.Reporter // может быть nil
	Tracer   trace.Tracer  // может быть nil
}

// DefaultOptions returns the options used by the CLI when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Callee:      DefaultCallee,
		ColumnLabel: DefaultColumnLabel,
		TypeSelf:    true,
	}
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Callee) == "" {
		o.Callee = DefaultCallee
	}
	if o.ColumnLabel == "" {
		o.ColumnLabel = DefaultColumnLabel
	}
	if o.Table == nil {
		o.Table = fold.DefaultTable()
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}
