package interp

import (
	"fmt"
	"strings"
	"sync"
)

// Record is one captured value.
type Record struct {
	Value  Value
	Column int
}

// Recorder is a capture sink: capture(value, column: n) appends a record and
// returns value unchanged.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// Capture records v at column and returns v.
func (r *Recorder) Capture(v Value, column int) Value {
	r.mu.Lock()
	r.records = append(r.records, Record{Value: v, Column: column})
	r.mu.Unlock()
	return v
}

// Records returns a copy of the records in capture order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Reset drops all records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = r.records[:0]
	r.mu.Unlock()
}

// Func returns the capture function.
func (r *Recorder) Func() Func {
	return func(args ...Value) (Value, error) {
		if len(args) != 2 {
			return nil, errArity("capture", 2, len(args))
		}
		col, ok := normalize(args[1]).(int64)
		if !ok {
			return nil, fmt.Errorf("capture column must be Int, got %s", typeName(args[1]))
		}
		return r.Capture(args[0], int(col)), nil
	}
}

// Bind makes the recorder callable as callee in env. A dotted callee such as
// "recorder.capture" binds a dictionary-like value under the first component.
func (r *Recorder) Bind(env *Env, callee string) {
	parts := strings.Split(callee, ".")
	var v Value = r.Func()
	for i := len(parts) - 1; i > 0; i-- {
		v = map[string]Value{parts[i]: v}
	}
	env.Set(parts[0], v)
}
