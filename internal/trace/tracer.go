package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events from the driver and the rewriter. Emit must be
// safe for concurrent use: sites of one file are rewritten in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// leveled — общая часть трейсеров: уровень и фильтр по scope
type leveled struct{ level Level }

func (l leveled) Level() Level          { return l.level }
func (l leveled) Enabled() bool         { return l.level > LevelOff }
func (l leveled) admits(ev *Event) bool { return ev != nil && l.level.ShouldEmit(ev.Scope) }
func (leveled) Flush() error            { return nil }
func (leveled) Close() error            { return nil }

type nopTracer struct{ leveled }

func (nopTracer) Emit(*Event) {}

// Nop drops everything; it is what FromContext returns without a tracer.
var Nop Tracer = nopTracer{}

// StorageMode selects where events go: straight to the output, into an
// in-memory ring dumped on exit, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode accepts stream, ring or both in any case.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name != "" && name == s {
			return StorageMode(m), nil //nolint:gosec // index of a four-element table
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New from the --trace* flags.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto: NDJSON for *.ndjson / *.jsonl, text otherwise
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int       // 4096 when not positive
}

// New builds the tracer described by cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			cfg.Format = FormatNDJSON
		}
	}

	var stream, ring Tracer
	if cfg.Mode == 0 || cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream = NewStreamTracer(w, cfg.Level, cfg.Format)
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		ring = NewRingTracer(cfg.RingSize, cfg.Level)
	}
	if stream == nil && ring == nil {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	return Tee(cfg.Level, stream, ring), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		// stderr закрывать нельзя: без io.Closer
		return struct{ io.Writer }{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
