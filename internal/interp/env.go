package interp

// Env is a lexical scope of named values.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates a scope; parent may be nil.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]Value), parent: parent}
}

// Set binds name in this scope.
func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

// Get looks name up through enclosing scopes.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Builtins returns a scope with a few global functions.
func Builtins() *Env {
	env := NewEnv(nil)
	env.Set("min", Func(func(args ...Value) (Value, error) { return extremum(args, -1) }))
	env.Set("max", Func(func(args ...Value) (Value, error) { return extremum(args, 1) }))
	env.Set("abs", Func(func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, errArity("abs", 1, len(args))
		}
		return unary("-", args[0], true)
	}))
	env.Set("String", Func(func(args ...Value) (Value, error) {
		if len(args) != 1 {
			return nil, errArity("String", 1, len(args))
		}
		if s, ok := args[0].(string); ok {
			return s, nil
		}
		return Format(args[0]), nil
	}))
	return env
}

func extremum(args []Value, sign int) (Value, error) {
	if len(args) == 0 {
		return nil, errArity("min/max", 1, 0)
	}
	best := normalize(args[0])
	for _, a := range args[1:] {
		a = normalize(a)
		c, err := compare(a, best)
		if err != nil {
			return nil, err
		}
		if c*sign > 0 {
			best = a
		}
	}
	return best, nil
}
