package interp

import (
	"fmt"
	"math"
	"strings"
)

// binary применяет инфиксный оператор к уже вычисленным операндам.
// && || ?? вычисляются лениво в evalInfix.
func binary(op string, a, b Value) (Value, error) {
	a, b = normalize(a), normalize(b)
	switch op {
	case "==", "===":
		return Equal(a, b), nil
	case "!=", "!==":
		return !Equal(a, b), nil
	case "<", "<=", ">", ">=":
		c, err := compare(a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return c < 0, nil
		case "<=":
			return c <= 0, nil
		case ">":
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case "...", "..<":
		lo, ok1 := a.(int64)
		hi, ok2 := b.(int64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("range bounds must be Int, got %s and %s", typeName(a), typeName(b))
		}
		if op == "..<" {
			hi--
		}
		out := make([]Value, 0, max(hi-lo+1, 0))
		for i := lo; i <= hi; i++ {
			out = append(out, i)
		}
		return out, nil
	case "~=":
		if r, ok := a.([]Value); ok {
			for _, e := range r {
				if Equal(e, b) {
					return true, nil
				}
			}
			return false, nil
		}
		return Equal(a, b), nil
	}

	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok && op == "+" {
			return x + y, nil
		}
	}
	if x, ok := a.([]Value); ok {
		if y, ok := b.([]Value); ok && op == "+" {
			return append(append([]Value{}, x...), y...), nil
		}
	}

	xi, aInt := a.(int64)
	yi, bInt := b.(int64)
	if aInt && bInt {
		return intOp(op, xi, yi)
	}
	if fa, fb, ok := bothNumeric(a, b); ok {
		return floatOp(op, fa, fb)
	}
	return nil, fmt.Errorf("operator %s cannot be applied to %s and %s", op, typeName(a), typeName(b))
}

func intOp(op string, x, y int64) (Value, error) {
	switch op {
	case "+", "&+":
		return x + y, nil
	case "-", "&-":
		return x - y, nil
	case "*", "&*":
		return x * y, nil
	case "/", "%":
		if y == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		if op == "/" {
			return x / y, nil
		}
		return x % y, nil
	case "&":
		return x & y, nil
	case "|":
		return x | y, nil
	case "^":
		return x ^ y, nil
	case "<<":
		return x << uint64(y), nil
	case ">>":
		return x >> uint64(y), nil
	}
	return nil, fmt.Errorf("unsupported operator %s for Int", op)
}

func floatOp(op string, x, y float64) (Value, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		return x / y, nil
	case "%":
		return math.Mod(x, y), nil
	}
	return nil, fmt.Errorf("unsupported operator %s for Double", op)
}

func compare(a, b Value) (int, error) {
	if fa, fb, ok := bothNumeric(a, b); ok {
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		}
		return 0, nil
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s and %s", typeName(a), typeName(b))
}

// unary применяет префиксный оператор; abs=true — модуль числа
func unary(op string, v Value, abs bool) (Value, error) {
	v = normalize(v)
	switch x := v.(type) {
	case int64:
		switch {
		case abs:
			if x < 0 {
				return -x, nil
			}
			return x, nil
		case op == "-":
			return -x, nil
		case op == "+":
			return x, nil
		case op == "~":
			return ^x, nil
		}
	case float64:
		switch {
		case abs:
			return math.Abs(x), nil
		case op == "-":
			return -x, nil
		case op == "+":
			return x, nil
		}
	case bool:
		if op == "!" && !abs {
			return !x, nil
		}
	}
	return nil, fmt.Errorf("prefix operator %s cannot be applied to %s", op, typeName(v))
}

func errArity(name string, want, got int) error {
	return fmt.Errorf("%s expects %d argument(s), got %d", name, want, got)
}
