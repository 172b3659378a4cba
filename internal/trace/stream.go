package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer formats each event as it arrives. Writes are buffered and
// never fail a rewrite; the first write error is reported by Flush.
type StreamTracer struct {
	leveled
	mu     sync.Mutex
	out    io.Writer
	buf    *bufio.Writer
	format Format
	err    error
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{leveled: leveled{level}, out: w, buf: bufio.NewWriter(w), format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.admits(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = NextSeq()
	if _, err := t.buf.Write(FormatEvent(ev, t.format)); err != nil && t.err == nil {
		t.err = err
	}
	// точечные события идут пачками, границы спанов сбрасываем сразу
	if ev.Kind != KindPoint {
		t.flushLocked()
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flushLocked()
	return t.err
}

func (t *StreamTracer) flushLocked() {
	if err := t.buf.Flush(); err != nil && t.err == nil {
		t.err = err
	}
}

// Close flushes and closes the output when it is an io.Closer.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	if c, ok := t.out.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
