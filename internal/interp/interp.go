// Package interp is a reference evaluator for expression trees.
//
// It evaluates both original and instrumented trees against an environment
// of host values, which makes value transparency and evaluation order of
// the rewrite directly testable. Recorder is a capture sink for it.
package interp

import (
	"errors"
	"fmt"
	"strings"

	"powerassert/internal/fold"
	"powerassert/internal/parser"
	"powerassert/internal/source"
	"powerassert/internal/syntax"
	"powerassert/internal/token"
)

// ErrUnwrapNil is returned when a force unwrap meets nil.
var ErrUnwrapNil = errors.New("unexpectedly found nil while unwrapping an optional value")

// errNilChain обрывает optional-цепочку до ближайшей границы
var errNilChain = errors.New("optional chain short-circuited")

// Interp evaluates expressions.
type Interp struct {
	env   *Env
	table *fold.Table
	fs    *source.FileSet
}

// New creates an evaluator over env. Sequences in evaluated trees are folded
// with table (DefaultTable when nil).
func New(env *Env, table *fold.Table) *Interp {
	if env == nil {
		env = Builtins()
	}
	if table == nil {
		table = fold.DefaultTable()
	}
	return &Interp{env: env, table: table, fs: source.NewFileSet()}
}

// Env returns the global scope.
func (in *Interp) Env() *Env {
	return in.env
}

// Eval evaluates n in the global scope.
func (in *Interp) Eval(n *syntax.Node) (Value, error) {
	n, _ = fold.FoldAll(n, in.table)
	return in.eval(n, in.env)
}

// EvalString parses, folds and evaluates src.
func (in *Interp) EvalString(src string) (Value, error) {
	return in.evalSource(src, in.env)
}

func (in *Interp) evalSource(src string, env *Env) (Value, error) {
	f := in.fs.Get(in.fs.AddVirtual("eval.swift", []byte(src)))
	n, ok := parser.ParseExpr(f, parser.Options{})
	if !ok || n == nil {
		return nil, fmt.Errorf("cannot parse %q", src)
	}
	n, _ = fold.FoldAll(n, in.table)
	return in.eval(n, env)
}

// eval — граница optional-цепочки: обрыв превращается в nil
func (in *Interp) eval(n *syntax.Node, env *Env) (Value, error) {
	v, err := in.evalNode(n, env)
	if errors.Is(err, errNilChain) {
		return nil, nil
	}
	return v, err
}

func (in *Interp) evalNode(n *syntax.Node, env *Env) (Value, error) {
	switch n.Kind {
	case syntax.IntLit:
		return parseInt(n.Token().Text)
	case syntax.FloatLit:
		return parseFloat(n.Token().Text)
	case syntax.BoolLit:
		return n.Token().Kind == token.KwTrue, nil
	case syntax.NilLit:
		return nil, nil
	case syntax.StringLit:
		return unquote(n.Token().Text, func(src string) (string, error) {
			v, err := in.evalSource(src, env)
			if err != nil {
				return "", err
			}
			if s, ok := v.(string); ok {
				return s, nil
			}
			return Format(v), nil
		})

	case syntax.Ident:
		name := n.Token().Text
		if v, ok := env.Get(name); ok {
			return v, nil
		}
		if k := n.Token().Kind; k == token.BinaryOp || k == token.PrefixOp || k == token.PostfixOp {
			// ссылка на оператор: reduce(0, +)
			return Func(func(args ...Value) (Value, error) {
				if len(args) != 2 {
					return nil, errArity(name, 2, len(args))
				}
				return binary(name, args[0], args[1])
			}), nil
		}
		return nil, fmt.Errorf("undefined identifier %q", name)

	case syntax.Member:
		return in.evalMember(n, env)

	case syntax.OptionalChain:
		v, err := in.evalNode(n.Base(), env)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, errNilChain
		}
		return v, nil

	case syntax.ForceUnwrap:
		v, err := in.evalNode(n.Base(), env)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, ErrUnwrapNil
		}
		return v, nil

	case syntax.Subscript:
		return in.evalSubscript(n, env)

	case syntax.Call:
		return in.evalCall(n, env)

	case syntax.Prefix:
		v, err := in.eval(n.Value(), env)
		if err != nil {
			return nil, err
		}
		return unary(n.Operator().Text, v, false)

	case syntax.Infix:
		return in.evalInfix(n, env)

	case syntax.Ternary:
		cond, then, els := n.TernaryParts()
		if cond == nil {
			return nil, fmt.Errorf("incomplete conditional expression")
		}
		c, err := in.eval(cond, env)
		if err != nil {
			return nil, err
		}
		b, err := truthy(c)
		if err != nil {
			return nil, err
		}
		if b {
			return in.eval(then, env)
		}
		return in.eval(els, env)

	case syntax.Tuple:
		labels, elems, err := in.evalArgs(n.Args(), env)
		if err != nil {
			return nil, err
		}
		if len(elems) == 1 && labels[0] == "" {
			return elems[0], nil
		}
		return Tuple{Labels: labels, Elems: elems}, nil

	case syntax.Array:
		_, elems, err := in.evalArgs(n.Args(), env)
		if err != nil {
			return nil, err
		}
		if elems == nil {
			elems = []Value{}
		}
		return elems, nil

	case syntax.Dictionary:
		out := make(map[any]Value)
		for _, el := range n.Args() {
			k, err := in.eval(el.Key(), env)
			if err != nil {
				return nil, err
			}
			v, err := in.eval(el.Value(), env)
			if err != nil {
				return nil, err
			}
			out[normalize(k)] = v
		}
		return out, nil

	case syntax.KeyPath:
		return syntax.Text(n), nil

	case syntax.MacroExpansion:
		return in.evalMacro(n, env)

	case syntax.Closure:
		return newClosure(in, n, env)

	case syntax.Sequence:
		return nil, fmt.Errorf("cannot evaluate unfolded operator sequence %q", syntax.Text(n))

	default:
		return nil, fmt.Errorf("cannot evaluate %s", n.Kind)
	}
}

func (in *Interp) evalInfix(n *syntax.Node, env *Env) (Value, error) {
	op := n.Operator().Text
	lhs, err := in.eval(n.Lhs(), env)
	if err != nil {
		return nil, err
	}
	switch op {
	case "&&", "||":
		b, err := truthy(lhs)
		if err != nil {
			return nil, err
		}
		if b == (op == "||") {
			return b, nil
		}
		rhs, err := in.eval(n.Rhs(), env)
		if err != nil {
			return nil, err
		}
		return truthy(rhs)
	case "??":
		if lhs != nil {
			return lhs, nil
		}
		return in.eval(n.Rhs(), env)
	}
	rhs, err := in.eval(n.Rhs(), env)
	if err != nil {
		return nil, err
	}
	// пользовательский оператор из окружения
	if fn, ok := env.Get(op); ok {
		return call(fn, []Value{lhs, rhs})
	}
	return binary(op, lhs, rhs)
}

func (in *Interp) evalArgs(args []*syntax.Node, env *Env) (labels []string, vals []Value, err error) {
	for _, a := range args {
		v, err := in.eval(a.Value(), env)
		if err != nil {
			return nil, nil, err
		}
		label := ""
		if l := a.Label(); l != nil {
			label = l.Text
		}
		labels = append(labels, label)
		vals = append(vals, v)
	}
	return labels, vals, nil
}

func (in *Interp) evalSubscript(n *syntax.Node, env *Env) (Value, error) {
	base, err := in.evalNode(n.Base(), env)
	if err != nil {
		return nil, err
	}
	_, idx, err := in.evalArgs(n.Args(), env)
	if err != nil {
		return nil, err
	}
	if len(idx) != 1 {
		return nil, fmt.Errorf("subscript expects one index, got %d", len(idx))
	}
	return index(normalize(base), normalize(idx[0]))
}

func index(base, key Value) (Value, error) {
	switch b := base.(type) {
	case []Value:
		i, ok := key.(int64)
		if !ok {
			return nil, fmt.Errorf("array index must be Int, got %s", typeName(key))
		}
		if i < 0 || i >= int64(len(b)) {
			return nil, fmt.Errorf("index %d out of range", i)
		}
		return b[i], nil
	case map[any]Value:
		return b[key], nil
	case map[string]Value:
		s, _ := key.(string)
		return b[s], nil
	}
	return nil, fmt.Errorf("%s cannot be subscripted", typeName(base))
}

func (in *Interp) evalCall(n *syntax.Node, env *Env) (Value, error) {
	callee := n.Callee()
	var fn Value
	var err error
	if callee.Kind == syntax.Member && callee.Base() != nil {
		fn, err = in.evalMember(callee, env)
	} else {
		fn, err = in.evalNode(callee, env)
	}
	if err != nil {
		return nil, err
	}

	_, args, err := in.evalArgs(n.Args(), env)
	if err != nil {
		return nil, err
	}
	if tc := n.TrailingClosure(); tc != nil {
		c, err := newClosure(in, tc, env)
		if err != nil {
			return nil, err
		}
		args = append(args, c)
	}
	return call(fn, args)
}

func (in *Interp) evalMacro(n *syntax.Node, env *Env) (Value, error) {
	name := "#" + n.Children[1].Tok.Text
	v, ok := env.Get(name)
	if !ok {
		return nil, fmt.Errorf("undefined macro %s", name)
	}
	if n.ArgList() == nil {
		return v, nil
	}
	_, args, err := in.evalArgs(n.Args(), env)
	if err != nil {
		return nil, err
	}
	return call(v, args)
}

// call вызывает функцию хоста или замыкание
func call(fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case Func:
		return f(args...)
	case func(args ...Value) (Value, error):
		return f(args...)
	case *Closure:
		return f.Call(args...)
	case nil:
		return nil, fmt.Errorf("cannot call nil")
	}
	return nil, fmt.Errorf("value of type %s is not callable", strings.ToLower(typeName(fn)))
}
