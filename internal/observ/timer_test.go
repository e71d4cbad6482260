package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	idx := tm.Begin("parse")
	tm.End(idx, "3 files")
	if err := tm.Measure("compile", func() error { return errors.New("boom") }); err == nil {
		t.Fatalf("Measure must return fn's error")
	}
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases: %+v", r.Phases)
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].DurationMS != 2 || r.Phases[0].Note != "3 files" {
		t.Errorf("parse phase: %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "error: boom" {
		t.Errorf("compile note: %q", r.Phases[1].Note)
	}
	if r.TotalMS != 4 {
		t.Errorf("total: got %v want 4", r.TotalMS)
	}
}

func TestTimerCountersConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("files", 1)
		}()
	}
	wg.Wait()
	tm.Add("classes", 3)

	if got := tm.Count("files"); got != 8 {
		t.Errorf("files: got %d want 8", got)
	}
	r := tm.Report()
	if len(r.Counters) != 2 || r.Counters[0].Name != "classes" || r.Counters[1].Name != "files" {
		t.Errorf("counters not sorted: %+v", r.Counters)
	}
	if s := tm.Summary(); !strings.Contains(s, "classes") || !strings.HasPrefix(s, "timings:\n") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("files", 1)
	if tm.Count("files") != 0 || len(tm.Report().Phases) != 0 {
		t.Errorf("nil timer must be inert")
	}
}
