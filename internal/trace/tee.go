package trace

import "errors"

// teeTracer раздаёт события нескольким трейсерам (stream + ring)
type teeTracer struct {
	leveled
	tracers []Tracer
}

// Tee returns a tracer that forwards every event to each of tracers.
// Nil and disabled tracers are dropped and nested tees are flattened;
// with a single survivor that tracer is returned as is.
func Tee(level Level, tracers ...Tracer) Tracer {
	var flat []Tracer
	for _, t := range tracers {
		switch t := t.(type) {
		case nil:
		case *teeTracer:
			flat = append(flat, t.tracers...)
		default:
			if t.Enabled() {
				flat = append(flat, t)
			}
		}
	}
	switch len(flat) {
	case 0:
		return Nop
	case 1:
		return flat[0]
	}
	return &teeTracer{leveled: leveled{level}, tracers: flat}
}

func (t *teeTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *teeTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *teeTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Ring returns the first ring buffer among the tee'd tracers.
func (t *teeTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r
		}
	}
	return nil
}

// RingOf finds the in-memory ring behind t, if any.
func RingOf(t Tracer) *RingTracer {
	switch t := t.(type) {
	case *RingTracer:
		return t
	case *teeTracer:
		return t.Ring()
	}
	return nil
}
