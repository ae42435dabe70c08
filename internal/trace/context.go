package trace

import "context"

type (
	tracerKey  struct{}
	spanCtxKey struct{}
)

// Nop is the tracer used when tracing is off or no tracer was attached.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// WithTracer attaches t to ctx. A nil t attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// Emits reports whether a span of the given scope started under ctx would
// be recorded. Hot paths use it to skip building span names.
func Emits(ctx context.Context, scope Scope) bool {
	t := FromContext(ctx)
	return t.Enabled() && t.Level().ShouldEmit(scope)
}

// SpanContext identifies the span new work should nest under.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// WithSpanContext makes sc the current span of the returned context.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// CurrentSpan returns the current span of ctx, or the zero SpanContext
// for a root.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}
