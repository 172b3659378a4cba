package trace

import (
	"bufio"
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. The CLI dumps it on
// exit in ring mode; tests read it with Snapshot.
type RingTracer struct {
	leveled
	mu    sync.Mutex
	buf   []Event
	total uint64 // сколько событий записано за всё время
}

// NewRingTracer creates a ring holding up to capacity events (4096 when
// capacity is not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{leveled: leveled{level}, buf: make([]Event, capacity)}
}

// Emit stores a copy of ev, overwriting the oldest entry when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.admits(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.total%uint64(len(t.buf))] = stored
	t.total++
	t.mu.Unlock()
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := uint64(len(t.buf)); t.total > n {
		return t.total - n
	}
	return 0
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := uint64(len(t.buf))
	n := min(t.total, size)
	out := make([]Event, 0, n)
	for i := t.total - n; i < t.total; i++ {
		out = append(out, t.buf[i%size])
	}
	return out
}

// Dump writes the snapshot to w in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	bw := bufio.NewWriter(w)
	for _, ev := range t.Snapshot() {
		if _, err := bw.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
