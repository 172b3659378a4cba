package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq numbers events in arrival order across all tracers.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a process-unique span ID; 0 is never issued.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin/end pair. A span whose scope the tracer filters out
// is inert: its ID is 0 and End emits nothing.
type Span struct {
	tracer  Tracer
	begin   Event
	extra   map[string]string
	started time.Time
}

func emits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin opens a span named name under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !emits(t, scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		started: time.Now(),
		begin: Event{
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			Name:     name,
		},
	}
	ev := s.begin
	ev.Time = s.started
	t.Emit(&ev)
	return s
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	ev := s.begin
	ev.Time, ev.Kind, ev.Detail, ev.Extra = now, KindSpanEnd, detail, s.extra
	s.tracer.Emit(&ev)
	return now.Sub(s.started)
}

// ID is the span's ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	if !emits(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}
