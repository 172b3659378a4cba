package interp

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"powerassert/internal/syntax"
)

func (in *Interp) evalMember(n *syntax.Node, env *Env) (Value, error) {
	name := n.Name().Text
	base := n.Base()
	if base == nil {
		// неявный член .red: значение из окружения или имя кейса
		if v, ok := env.Get("." + name); ok {
			return v, nil
		}
		return name, nil
	}
	if name == "self" && base.Kind == syntax.Ident {
		if _, ok := env.Get(base.Token().Text); !ok {
			return base.Token().Text, nil
		}
	}
	v, err := in.evalNode(base, env)
	if err != nil {
		return nil, err
	}
	return member(v, name)
}

// member возвращает свойство или связанный метод значения
func member(v Value, name string) (Value, error) {
	if name == "self" {
		return v, nil
	}
	v = normalize(v)
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("value of optional type must be unwrapped to refer to member %q", name)
	case string:
		return stringMember(x, name)
	case []Value:
		return arrayMember(x, name)
	case map[any]Value:
		return dictMember(x, name)
	case map[string]Value:
		if e, ok := x[name]; ok {
			return normalize(e), nil
		}
	case Tuple:
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(x.Elems) {
			return x.Elems[i], nil
		}
		if i := slices.Index(x.Labels, name); i >= 0 {
			return x.Elems[i], nil
		}
	case int64, float64, bool:
		return scalarMember(x, name)
	}
	return reflectMember(v, name)
}

func scalarMember(v Value, name string) (Value, error) {
	switch name {
	case "description":
		return Format(v), nil
	case "magnitude":
		return unary("-", v, true)
	case "isMultiple":
		return method(name, 1, func(args []Value) (Value, error) {
			x, ok1 := v.(int64)
			y, ok2 := normalize(args[0]).(int64)
			if !ok1 || !ok2 || y == 0 {
				return nil, fmt.Errorf("isMultiple(of:) expects non-zero Int operands")
			}
			return x%y == 0, nil
		}), nil
	}
	return nil, noMember(v, name)
}

func stringMember(s string, name string) (Value, error) {
	switch name {
	case "count":
		return int64(utf8.RuneCountInString(s)), nil
	case "isEmpty":
		return s == "", nil
	case "description":
		return s, nil
	case "first", "last":
		if s == "" {
			return nil, nil
		}
		if name == "first" {
			r, _ := utf8.DecodeRuneInString(s)
			return string(r), nil
		}
		r, _ := utf8.DecodeLastRuneInString(s)
		return string(r), nil
	case "uppercased":
		return method(name, 0, func([]Value) (Value, error) { return strings.ToUpper(s), nil }), nil
	case "lowercased":
		return method(name, 0, func([]Value) (Value, error) { return strings.ToLower(s), nil }), nil
	case "hasPrefix", "hasSuffix", "contains":
		return method(name, 1, func(args []Value) (Value, error) {
			sub, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%s expects a String, got %s", name, typeName(args[0]))
			}
			switch name {
			case "hasPrefix":
				return strings.HasPrefix(s, sub), nil
			case "hasSuffix":
				return strings.HasSuffix(s, sub), nil
			}
			return strings.Contains(s, sub), nil
		}), nil
	}
	return nil, noMember(s, name)
}

func arrayMember(a []Value, name string) (Value, error) {
	switch name {
	case "count":
		return int64(len(a)), nil
	case "isEmpty":
		return len(a) == 0, nil
	case "description":
		return Format(a), nil
	case "first", "last":
		if len(a) == 0 {
			return nil, nil
		}
		if name == "first" {
			return a[0], nil
		}
		return a[len(a)-1], nil
	case "contains":
		return method(name, 1, func(args []Value) (Value, error) {
			for _, e := range a {
				if Equal(e, args[0]) {
					return true, nil
				}
			}
			return false, nil
		}), nil
	case "reversed":
		return method(name, 0, func([]Value) (Value, error) {
			out := slices.Clone(a)
			slices.Reverse(out)
			return out, nil
		}), nil
	case "sorted":
		return method(name, 0, func([]Value) (Value, error) {
			out := slices.Clone(a)
			var cmpErr error
			slices.SortStableFunc(out, func(x, y Value) int {
				c, err := compare(normalize(x), normalize(y))
				if err != nil && cmpErr == nil {
					cmpErr = err
				}
				return c
			})
			return out, cmpErr
		}), nil
	case "map", "filter":
		return method(name, 1, func(args []Value) (Value, error) {
			out := make([]Value, 0, len(a))
			for _, e := range a {
				r, err := call(args[0], []Value{e})
				if err != nil {
					return nil, err
				}
				if name == "map" {
					out = append(out, r)
					continue
				}
				keep, err := truthy(r)
				if err != nil {
					return nil, err
				}
				if keep {
					out = append(out, e)
				}
			}
			return out, nil
		}), nil
	case "reduce":
		return method(name, 2, func(args []Value) (Value, error) {
			acc := args[0]
			for _, e := range a {
				r, err := call(args[1], []Value{acc, e})
				if err != nil {
					return nil, err
				}
				acc = r
			}
			return acc, nil
		}), nil
	}
	return nil, noMember(a, name)
}

func dictMember(d map[any]Value, name string) (Value, error) {
	switch name {
	case "count":
		return int64(len(d)), nil
	case "isEmpty":
		return len(d) == 0, nil
	case "description":
		return Format(d), nil
	case "keys", "values":
		keys := make([]any, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(x, y any) int { return strings.Compare(Format(x), Format(y)) })
		out := make([]Value, len(keys))
		for i, k := range keys {
			if name == "keys" {
				out[i] = k
			} else {
				out[i] = d[k]
			}
		}
		return out, nil
	}
	return nil, noMember(d, name)
}

// reflectMember читает поле структуры, ключ map[string]T или метод значения
// хоста. Swift-имя name сопоставляется экспортированному Go-имени Name.
func reflectMember(v Value, name string) (Value, error) {
	goName := exported(name)
	rv := reflect.ValueOf(v)
	if m := rv.MethodByName(goName); m.IsValid() {
		return hostMethod(m), nil
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("member %q of nil", name)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		if f := rv.FieldByName(goName); f.IsValid() && f.CanInterface() {
			return normalize(f.Interface()), nil
		}
		if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
			return normalize(f.Interface()), nil
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			e := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if e.IsValid() {
				return normalize(e.Interface()), nil
			}
			return nil, nil
		}
	}
	return nil, noMember(v, name)
}

func hostMethod(m reflect.Value) Func {
	return func(args ...Value) (Value, error) {
		t := m.Type()
		if !t.IsVariadic() && t.NumIn() != len(args) {
			return nil, errArity("method", t.NumIn(), len(args))
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			pt := t.In(min(i, t.NumIn()-1))
			if t.IsVariadic() && i >= t.NumIn()-1 {
				pt = pt.Elem()
			}
			av := reflect.ValueOf(a)
			if !av.IsValid() {
				in[i] = reflect.Zero(pt)
				continue
			}
			if !av.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf("argument %d: cannot use %s as %s", i, typeName(a), pt)
			}
			in[i] = av.Convert(pt)
		}
		out := m.Call(in)
		if len(out) == 0 {
			return nil, nil
		}
		last := out[len(out)-1]
		if last.Type().Implements(reflect.TypeFor[error]()) {
			if !last.IsNil() {
				return nil, last.Interface().(error)
			}
			out = out[:len(out)-1]
		}
		if len(out) == 0 {
			return nil, nil
		}
		return normalize(out[0].Interface()), nil
	}
}

func method(name string, arity int, fn func(args []Value) (Value, error)) Func {
	return func(args ...Value) (Value, error) {
		if len(args) != arity {
			return nil, errArity(name, arity, len(args))
		}
		return fn(args)
	}
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func noMember(v Value, name string) error {
	return fmt.Errorf("value of type %s has no member %q", typeName(v), name)
}
