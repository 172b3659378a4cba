package trace

import "context"

type (
	tracerKey struct{}
	parentKey struct{}
)

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok && t != nil {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil tracer detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithParent делает s родителем спанов, открытых под возвращённым ctx.
// Выключенный спан (ID 0) контекст не меняет.
func WithParent(ctx context.Context, s *Span) context.Context {
	if s.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, parentKey{}, s.ID())
}

// ParentID returns the innermost span attached with WithParent, 0 at the root.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
