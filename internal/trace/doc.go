// Package trace provides the tracing subsystem of powerassert.
//
// Tracing follows a rewrite from the driver down to individual syntax
// nodes: which sites were found, which nodes were wrapped and at which
// column, and where the rewriter had to degrade.
//
// # Usage
//
//	powerassert rewrite --trace=- --trace-level=debug 'a + b == c'
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a writer (file/stderr)
//   - RingTracer: last N events in memory, used by tests and dumps
//   - Tee: fan-out to several tracers (stream + ring in "both" mode)
//
// # Levels and scopes
//
// LevelPhase emits driver and pass boundaries, LevelDetail adds one span
// per assertion site, LevelDebug adds node-level point events.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "rewrite", trace.ParentID(ctx))
//	ctx = trace.WithParent(ctx, span)
//	defer span.End("")
package trace
