package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock выдаёт время с шагом в одну миллисекунду
func fakeClock() func() time.Time {
	var mu sync.Mutex
	t := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock()

	endLoad := timer.Track("load") // t=1
	endLoad("2 files")              // t=2
	endLoad("ignored")
	endRewrite := timer.Track("rewrite") // t=3
	endRewrite("")                       // t=4

	rep := timer.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.Phases[0].Name != "load" || rep.Phases[0].DurationMS != 1 || rep.Phases[0].Note != "2 files" {
		t.Errorf("load = %+v", rep.Phases[0])
	}
	if rep.TotalMS != 3 {
		t.Errorf("total = %v, want 3", rep.TotalMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "load", "// 2 files", "rewrite", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary lacks %q:\n%s", want, summary)
		}
	}
}

func TestTimerConcurrentTrack(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Track("site")("")
		}()
	}
	wg.Wait()
	if n := len(timer.Report().Phases); n != 16 {
		t.Errorf("phases = %d, want 16", n)
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Track("x")("done")
}
