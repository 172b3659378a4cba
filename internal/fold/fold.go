// Package fold resolves flat operator sequences into nested operator trees.
package fold

import (
	"fmt"

	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// Result is the outcome of folding one sequence. When Folded is false, Node
// is the original sequence and Err says why folding gave up.
type Result struct {
	Node   *syntax.Node
	Folded bool
	Err    error
}

// Fold turns a flat Sequence into Infix, Prefix and Ternary nodes following
// table. Nodes that are not sequences are returned unchanged. Children are
// not folded; see FoldAll.
func Fold(seq *syntax.Node, table *Table) Result {
	if seq == nil || seq.Kind != syntax.Sequence {
		return Result{Node: seq, Folded: true}
	}
	f := folder{table: table}
	if err := f.split(seq.Children); err != nil {
		return Result{Node: seq, Err: err}
	}
	n, err := f.expr(f.next(), 0)
	if err == nil && f.pos != len(f.ops) {
		err = fmt.Errorf("operator %q cannot follow here", opText(f.ops[f.pos]))
	}
	if err != nil {
		return Result{Node: seq, Err: err}
	}
	return Result{Node: n, Folded: true}
}

// FoldAll folds every Sequence under root bottom-up. A sequence that fails
// to fold is kept (with its operands folded) and counted in failures.
func FoldAll(root *syntax.Node, table *Table) (n *syntax.Node, failures int) {
	var visit func(n *syntax.Node) *syntax.Node
	visit = func(n *syntax.Node) *syntax.Node {
		if n == nil || n.Kind == syntax.Token || n.Kind == syntax.Closure {
			return n
		}
		n = n.Replace(visit)
		if n.Kind != syntax.Sequence {
			return n
		}
		res := Fold(n, table)
		if !res.Folded {
			failures++
		}
		return res.Node
	}
	return visit(root), failures
}

type folder struct {
	table    *Table
	operands []*syntax.Node
	ops      []*syntax.Node // BinaryOperator | TernaryOperator
	pos      int            // следующий оператор
	opnd     int            // следующий операнд
}

// split разделяет последовательность на операнды и операторы, попутно
// сворачивая префиксные операторы в позиции операнда.
func (f *folder) split(elems []*syntax.Node) error {
	var prefixes []*syntax.Node
	wantOperand := true
	for _, e := range elems {
		isOp := e.Kind == syntax.BinaryOperator || e.Kind == syntax.TernaryOperator
		switch {
		case wantOperand && e.Kind == syntax.BinaryOperator:
			if !f.table.IsPrefix(opText(e)) {
				return fmt.Errorf("unknown prefix operator %q", opText(e))
			}
			prefixes = append(prefixes, e)
		case wantOperand && isOp:
			return fmt.Errorf("expected operand before %q", opText(e))
		case wantOperand:
			for i := len(prefixes) - 1; i >= 0; i-- {
				e = syntax.NewPrefix(prefixes[i].Operator(), e)
			}
			prefixes = prefixes[:0]
			f.operands = append(f.operands, e)
			wantOperand = false
		case isOp:
			f.ops = append(f.ops, e)
			wantOperand = true
		default:
			return fmt.Errorf("missing operator between operands")
		}
	}
	if wantOperand {
		return fmt.Errorf("sequence ends with an operator")
	}
	return nil
}

func (f *folder) next() *syntax.Node {
	n := f.operands[f.opnd]
	f.opnd++
	return n
}

func (f *folder) lookup(op *syntax.Node) (Operator, error) {
	if op.Kind == syntax.TernaryOperator {
		return f.table.Ternary(), nil
	}
	info, ok := f.table.Infix(opText(op))
	if !ok {
		return Operator{}, fmt.Errorf("unknown operator %q", opText(op))
	}
	return info, nil
}

// expr — precedence climbing: поглощает операторы с приоритетом >= minPrec.
func (f *folder) expr(lhs *syntax.Node, minPrec int) (*syntax.Node, error) {
	for f.pos < len(f.ops) {
		op := f.ops[f.pos]
		info, err := f.lookup(op)
		if err != nil {
			return nil, err
		}
		if info.Precedence < minPrec {
			return lhs, nil
		}
		f.pos++
		rhs := f.next()

	climb:
		for f.pos < len(f.ops) {
			nextInfo, err := f.lookup(f.ops[f.pos])
			if err != nil {
				return nil, err
			}
			switch {
			case nextInfo.Precedence > info.Precedence:
				rhs, err = f.expr(rhs, info.Precedence+1)
			case nextInfo.Precedence == info.Precedence && info.Assoc == AssocRight:
				rhs, err = f.expr(rhs, info.Precedence)
			case nextInfo.Precedence == info.Precedence && info.Assoc == AssocNone:
				return nil, fmt.Errorf("adjacent non-associative operators %q and %q", opText(op), opText(f.ops[f.pos]))
			default:
				break climb
			}
			if err != nil {
				return nil, err
			}
		}
		lhs = combine(lhs, op, rhs)
	}
	return lhs, nil
}

func combine(lhs, op, rhs *syntax.Node) *syntax.Node {
	if op.Kind == syntax.TernaryOperator {
		var colon *token.Token
		if len(op.Children) == 3 {
			colon = op.Children[2].Tok
		}
		return syntax.NewTernary(lhs, op.Children[0].Tok, op.Middle(), colon, rhs)
	}
	return syntax.NewInfix(lhs, op, rhs)
}

func opText(op *syntax.Node) string {
	if op.Kind == syntax.TernaryOperator {
		return "?:"
	}
	if t := op.Token(); t != nil {
		return t.Text
	}
	return ""
}
