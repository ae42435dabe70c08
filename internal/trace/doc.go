// Package trace records where the linter spends its time and where it hangs.
//
// Spans are opened per driver command, per pipeline pass (load, parse,
// analyze, fix), per file and per rule invocation. A tracer decides which
// of them are kept based on its Level.
//
//	cstlint lint --trace=- --trace-level=detail src/
//
// Tracer implementations:
//
//   - Nop: disabled tracing, no allocation on the hot path
//   - StreamTracer: writes each event as it happens (text, ndjson or chrome)
//   - RingTracer: keeps the last N events for a crash dump
//   - MultiTracer: fans out to several tracers
//
// Levels map onto scopes: phase keeps driver and pass spans, detail adds
// per-file spans and debug adds per-rule node spans.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
