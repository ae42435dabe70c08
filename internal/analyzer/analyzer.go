package analyzer

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"cstlint/internal/diag"
	"cstlint/internal/syntax"
	"cstlint/internal/trace"
)

// cancelCheckEvery is the number of visited nodes between context checks.
const cancelCheckEvery = 256

type active struct {
	runner   Runner
	meta     RuleMetadata
	severity diag.Severity
}

// Analyzer holds the enabled rules and an index from node kind to the
// rules querying it. It is immutable and safe for concurrent use.
type Analyzer struct {
	opts   Options
	rules  []active
	byKind map[syntax.Kind][]int
}

// New selects the rules enabled by opts. Duplicate rule names are a
// programming error.
func New(rules []Runner, opts Options) *Analyzer {
	a := &Analyzer{
		opts:   opts,
		byKind: make(map[syntax.Kind][]int),
	}
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		meta := r.Metadata()
		if seen[meta.Name] {
			panic(fmt.Errorf("analyzer: duplicate rule %q", meta.Name))
		}
		seen[meta.Name] = true
		sev, ok := a.opts.resolve(&meta)
		if !ok {
			continue
		}
		idx := len(a.rules)
		a.rules = append(a.rules, active{runner: r, meta: meta, severity: sev})
		for _, k := range r.Query() {
			if !slices.Contains(a.byKind[k], idx) {
				a.byKind[k] = append(a.byKind[k], idx)
			}
		}
	}
	return a
}

// Rules returns the metadata of the enabled rules in registration order.
func (a *Analyzer) Rules() []RuleMetadata {
	out := make([]RuleMetadata, len(a.rules))
	for i := range a.rules {
		out[i] = a.rules[i].meta
	}
	return out
}

// Options returns the options the analyzer was built with.
func (a *Analyzer) Options() Options { return a.opts }

// Result is the outcome of analyzing one tree.
type Result struct {
	Tree    *syntax.Tree
	Signals []Signal
	// Failures holds one AnaRuleFailed diagnostic per rule panic.
	Failures   []diag.Diagnostic
	Matches    int
	Suppressed int
}

// Diagnostics converts signals and failures into reportable diagnostics,
// signals first, in document order. Fixes are not attached.
func (r *Result) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(r.Signals)+len(r.Failures))
	for i := range r.Signals {
		out = append(out, r.Signals[i].ToDiagnostic())
	}
	return append(out, r.Failures...)
}

// Actionable returns the signals that carry a fix.
func (r *Result) Actionable() []*Signal {
	var out []*Signal
	for i := range r.Signals {
		if r.Signals[i].HasAction() {
			out = append(out, &r.Signals[i])
		}
	}
	return out
}

// Run walks tree once and runs every enabled rule on the nodes it queries.
// It returns early with ctx.Err() when the context is cancelled; the partial
// result is still returned.
func (a *Analyzer) Run(ctx context.Context, tree *syntax.Tree) (*Result, error) {
	res := &Result{Tree: tree}
	if len(a.rules) == 0 {
		return res, nil
	}
	var tracer trace.Tracer
	if trace.Emits(ctx, trace.ScopeNode) {
		tracer = trace.FromContext(ctx)
	}
	parent := trace.CurrentSpan(ctx).SpanID
	ids := make(map[string]int)

	visited := 0
	for n := range tree.Root().Preorder() {
		visited++
		if visited%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		matched := a.byKind[n.Kind()]
		if len(matched) == 0 {
			continue
		}
		var ignored []string
		ignoredDone := false
		for _, idx := range matched {
			r := &a.rules[idx]
			res.Matches++
			rc := &RuleContext{ctx: ctx, query: n, tree: tree, quote: a.opts.PreferredQuote}
			sigs, errs := check(tracer, parent, r, rc)
			for _, err := range errs {
				res.Failures = append(res.Failures, failure(r, n, err))
			}
			if len(sigs) == 0 {
				continue
			}
			if !ignoredDone {
				ignored, ignoredDone = suppressions(n), true
			}
			if slices.Contains(ignored, r.meta.Name) {
				res.Suppressed += len(sigs)
				continue
			}
			for _, s := range sigs {
				s.Severity = r.severity
				key := s.Rule + "-" + strconv.FormatUint(uint64(s.Range().Start), 10)
				s.ID = key + "-" + strconv.Itoa(ids[key])
				ids[key]++
				res.Signals = append(res.Signals, s)
			}
		}
	}
	return res, nil
}

// check runs one rule on one match. A panic in Run or Diagnostic drops the
// match's signals and becomes an error; action failures come back alongside
// the signals they belong to. A nil tracer skips the node span.
func check(tracer trace.Tracer, parent uint64, r *active, rc *RuleContext) (sigs []Signal, errs []error) {
	var span *trace.Span
	if tracer != nil {
		span = trace.Begin(tracer, trace.ScopeNode, "rule:"+r.meta.Name, parent)
	}
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			sigs, errs = nil, []error{err}
			span.WithExtra("error", err.Error())
		} else if len(errs) > 0 {
			span.WithExtra("error", errs[0].Error())
		}
		if span != nil {
			span.End(rc.query.Kind().String())
		}
	}()
	return r.runner.Check(rc)
}

func failure(r *active, n *syntax.Node, err error) diag.Diagnostic {
	d := diag.NewError(diag.AnaRuleFailed, n.TextTrimmedRange(),
		fmt.Sprintf("rule %s failed on %s: %v", r.meta.Name, n.Kind(), err))
	d.Category = r.meta.Category()
	return d
}
