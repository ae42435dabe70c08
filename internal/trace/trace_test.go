package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"Phase", LevelPhase, false},
		{"DETAIL", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	pass := Begin(tr, ScopePass, "parse", 0)
	file := Begin(tr, ScopeFile, "file:a.jsx", pass.ID()).WithExtra("bytes", "12")
	rule := Begin(tr, ScopeNode, "rule:useValidTypeof", file.ID())
	rule.End("")
	file.End("ok")
	pass.End("")

	out := buf.String()
	for _, want := range []string{"→ parse", "→ file:a.jsx", "← file:a.jsx (ok) {bytes=12}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "rule:") {
		t.Fatalf("node span emitted at detail level:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", n, out)
	}
}

func TestStreamChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatChrome)
	Begin(tr, ScopeDriver, "lint", 0).End("")
	Begin(tr, ScopePass, "analyze", 0).WithExtra("files", "3").End("done")
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 4 {
		t.Fatalf("got %d events, want 4", len(doc.TraceEvents))
	}
	if ph := doc.TraceEvents[3]["ph"]; ph != "E" {
		t.Fatalf("last phase = %v, want E", ph)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s, want c,d,e", got)
	}
}

func TestDumpRingThroughMulti(t *testing.T) {
	var stream bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &stream, Format: FormatNDJSON})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopePass, "fix", 0).End("")

	var dump bytes.Buffer
	ok, err := DumpRing(tr, &dump, errors.New("exit status 1"))
	if err != nil || !ok {
		t.Fatalf("DumpRing = %v, %v", ok, err)
	}
	if !strings.Contains(dump.String(), "← fix") || !strings.Contains(dump.String(), "=== trace dump: exit status 1") {
		t.Fatalf("ring dump missing header or span end:\n%s", dump.String())
	}
	if strings.Count(stream.String(), "\n") != 2 {
		t.Fatalf("ndjson stream:\n%s", stream.String())
	}
	if ok, _ := DumpRing(Nop, &dump, nil); ok {
		t.Fatalf("nop tracer has no ring")
	}
}

func TestOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer enabled")
	}
	if d := Begin(tr, ScopeDriver, "lint", 0).End(""); d != 0 {
		t.Fatalf("nop span measured %v", d)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	r := NewRingTracer(8, LevelDebug)
	ctx = WithTracer(ctx, r)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
	if CurrentSpan(ctx).SpanID != 7 {
		t.Fatalf("span context not propagated")
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat started for disabled tracer")
	}
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatalf("no heartbeat recorded")
	}
}

func TestStartNestsUnderCurrentSpan(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), r)

	ctx, pass := Start(ctx, ScopePass, "lint")
	fileCtx, file := Start(ctx, ScopeFile, "file:a.jsx")
	if CurrentSpan(fileCtx).SpanID != file.ID() {
		t.Fatalf("file span is not current in its context")
	}

	// node scope is filtered at detail level; the context must not change
	ruleCtx, rule := Start(fileCtx, ScopeNode, "rule:useValidTypeof")
	if rule.ID() != 0 || CurrentSpan(ruleCtx).SpanID != file.ID() {
		t.Fatalf("filtered span changed the current span: id=%d current=%d", rule.ID(), CurrentSpan(ruleCtx).SpanID)
	}
	rule.End("")
	file.EndErr(nil)
	pass.End("")

	events := r.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[1].ParentID != pass.ID() {
		t.Fatalf("file span parent = %d, want %d", events[1].ParentID, pass.ID())
	}
}

func TestSpanEndIsIdempotent(t *testing.T) {
	r := NewRingTracer(8, LevelPhase)
	s := Begin(r, ScopePass, "fix", 0)
	s.End("first")
	if d := s.End("second"); d != 0 {
		t.Fatalf("second End measured %v", d)
	}
	s.WithExtra("late", "x")

	events := r.Snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d events, want begin and one end", len(events))
	}
	if events[1].Detail != "first" || events[1].Extra["late"] != "" {
		t.Fatalf("unexpected end event %+v", events[1])
	}
}

func TestPointHonoursLevelAndParent(t *testing.T) {
	r := NewRingTracer(8, LevelDetail)
	ctx := WithSpanContext(WithTracer(context.Background(), r), SpanContext{SpanID: 3})

	Point(ctx, ScopeFile, "fix-round:1", "2 applied")
	Point(ctx, ScopeNode, "fix-skipped:x", "overlaps")

	events := r.Snapshot()
	if len(events) != 1 {
		t.Fatalf("got %d events, want only the file-scope point", len(events))
	}
	if ev := events[0]; ev.Kind != KindPoint || ev.ParentID != 3 || ev.Detail != "2 applied" {
		t.Fatalf("unexpected point %+v", ev)
	}
}

func TestDumpFailureShowsOpenSpans(t *testing.T) {
	r := NewRingTracer(4, LevelDebug)
	lint := Begin(r, ScopePass, "lint", 0)
	Begin(r, ScopeFile, "file:a.jsx", lint.ID()).End("")
	file := Begin(r, ScopeFile, "file:b.jsx", lint.ID())
	Begin(r, ScopeNode, "rule:useValidTypeof", file.ID())

	if got := r.Overwritten(); got != 1 {
		t.Fatalf("overwritten = %d, want 1", got)
	}
	var buf bytes.Buffer
	if err := r.DumpFailure(&buf, errors.New("rule crashed")); err != nil {
		t.Fatalf("DumpFailure: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"=== trace dump: rule crashed (4 events, 1 overwritten) ===\n",
		"open file file:b.jsx #",
		"open node rule:useValidTypeof #",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "open file file:a.jsx") {
		t.Fatalf("finished span listed as open:\n%s", out)
	}
	if strings.Index(out, "open file file:b.jsx") > strings.Index(out, "open node rule:useValidTypeof") {
		t.Fatalf("open spans out of order:\n%s", out)
	}
}
