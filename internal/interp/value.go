package interp

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Value is a runtime value. The evaluator produces int64, float64, string,
// bool, nil (an absent optional), []Value, map[any]Value, Tuple, Func and
// *Closure; environments may also bind arbitrary Go values, read through
// reflection.
type Value = any

// Tuple is a tuple value with optional element labels.
type Tuple struct {
	Labels []string
	Elems  []Value
}

// Func is a callable host function.
type Func func(args ...Value) (Value, error)

// Format renders v the way the diagram shows values.
func Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatFloat(x, 'f', 1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []Value:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = Format(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[any]Value:
		if len(x) == 0 {
			return "[:]"
		}
		parts := make([]string, 0, len(x))
		for k, e := range x {
			parts = append(parts, Format(k)+": "+Format(e))
		}
		slices.Sort(parts)
		return "[" + strings.Join(parts, ", ") + "]"
	case Tuple:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			if i < len(x.Labels) && x.Labels[i] != "" {
				parts[i] = x.Labels[i] + ": " + Format(e)
			} else {
				parts[i] = Format(e)
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Func, *Closure:
		return "(Function)"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalize приводит целые и вещественные хоста к int64/float64
func normalize(v Value) Value {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case []any:
		return x
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]Value, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// Equal compares two values structurally; integers and floats compare by
// numeric value.
func Equal(a, b Value) bool {
	a, b = normalize(a), normalize(b)
	if fa, fb, ok := bothNumeric(a, b); ok {
		return fa == fb
	}
	switch x := a.(type) {
	case []Value:
		y, ok := b.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[any]Value:
		y, ok := b.(map[any]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case Tuple:
		y, ok := b.(Tuple)
		return ok && Equal(x.Elems, y.Elems)
	}
	return reflect.DeepEqual(a, b)
}

func bothNumeric(a, b Value) (float64, float64, bool) {
	fa, ok := toFloat(a)
	if !ok {
		return 0, 0, false
	}
	fb, ok := toFloat(b)
	return fa, fb, ok
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func truthy(v Value) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected Bool, got %s", typeName(v))
	}
	return b, nil
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int64:
		return "Int"
	case float64:
		return "Double"
	case string:
		return "String"
	case bool:
		return "Bool"
	case []Value:
		return "Array"
	case map[any]Value:
		return "Dictionary"
	case Tuple:
		return "Tuple"
	case Func, *Closure:
		return "Function"
	default:
		return reflect.TypeOf(v).String()
	}
}
