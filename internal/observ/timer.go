// Package observ measures named phases of a CLI run.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration and metadata of one phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), now: time.Now}
}

// Track starts a phase and returns the function that ends it.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			p := &t.phases[idx]
			p.Dur = t.now().Sub(p.Start)
			p.Note = note
		})
	}
}

// PhaseReport представляет сжатую информацию о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns phases in start order. Total is wall time from the first
// start to the last end, so overlapping phases are not double counted.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	first, last := t.phases[0].Start, t.phases[0].Start
	for i, p := range t.phases {
		if end := p.Start.Add(p.Dur); end.After(last) {
			last = end
		}
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: durationToMillis(p.Dur), Note: p.Note}
	}
	report.TotalMS = durationToMillis(last.Sub(first))
	return report
}

// Summary returns a human-readable table of all phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
