package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "2 files")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Name != "load" || rep.Phases[0].Note != "2 files" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if !strings.Contains(tm.Summary(), "// 2 files") {
		t.Fatalf("summary missing note:\n%s", tm.Summary())
	}
}

func TestTimerAddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()

	rep := tm.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	p := rep.Phases[0]
	if p.Count != 8 || p.DurationMS != 8 {
		t.Fatalf("parse = %+v, want 8 calls totalling 8ms", p)
	}
	if rep.TotalMS != 8 {
		t.Fatalf("total = %v", rep.TotalMS)
	}
	if !strings.Contains(tm.Summary(), "x8") {
		t.Fatalf("summary missing count:\n%s", tm.Summary())
	}
}

func TestEmptyReport(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Fatalf("empty timer report = %+v", rep)
	}
	var nilTimer *Timer
	nilTimer.Add("x", time.Second)
	ran := false
	nilTimer.Track("y", func() { ran = true })
	if !ran {
		t.Fatalf("Track on nil timer skipped fn")
	}
}
