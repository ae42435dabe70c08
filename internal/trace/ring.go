package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the most recent events of a run in memory. It exists for
// post-mortems: when a lint or fix run fails, the CLI dumps the ring so the
// passes, files and rules that led up to the failure are visible without
// having streamed the whole trace.
type RingTracer struct {
	mu      sync.Mutex
	events  []Event
	next    int    // slot the next event goes to
	emitted uint64 // events ever stored; beyond len(events) the oldest were overwritten
	level   Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
// Heartbeats pass any level filter.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
	t.emitted++
	t.mu.Unlock()
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *RingTracer) snapshotLocked() []Event {
	if t.emitted < uint64(len(t.events)) {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Overwritten reports how many events were lost to wrap-around.
func (t *RingTracer) Overwritten() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := uint64(len(t.events)); t.emitted > n {
		return t.emitted - n
	}
	return 0
}

// Dump writes the retained events to w in format, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if format == FormatAuto {
		format = FormatText
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// DumpFailure writes a text post-mortem for a run that failed with reason:
// a header naming the reason and any overwritten events, the spans that were
// still open (innermost last, i.e. the file and rule in progress), then the
// retained events.
func (t *RingTracer) DumpFailure(w io.Writer, reason error) error {
	t.mu.Lock()
	events := t.snapshotLocked()
	lost := uint64(0)
	if n := uint64(len(t.events)); t.emitted > n {
		lost = t.emitted - n
	}
	t.mu.Unlock()

	msg := "unknown failure"
	if reason != nil {
		msg = reason.Error()
	}
	if _, err := fmt.Fprintf(w, "=== trace dump: %s (%d events, %d overwritten) ===\n", msg, len(events), lost); err != nil {
		return err
	}
	for _, ev := range OpenSpans(events) {
		if _, err := fmt.Fprintf(w, "open %s %s #%d\n", ev.Scope, ev.Name, ev.SpanID); err != nil {
			return err
		}
	}
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], FormatText)); err != nil {
			return err
		}
	}
	return nil
}

// OpenSpans returns the begin events in events that have no matching end,
// in the order they began.
func OpenSpans(events []Event) []Event {
	ended := make(map[uint64]bool)
	for _, ev := range events {
		if ev.Kind == KindSpanEnd {
			ended[ev.SpanID] = true
		}
	}
	var open []Event
	for _, ev := range events {
		if ev.Kind == KindSpanBegin && !ended[ev.SpanID] {
			open = append(open, ev)
		}
	}
	return open
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
