package diag

import "cstlint/internal/source"

// DedupReporter forwards each distinct (code, severity, span, message) once.
// Parser recovery can report the same missing token from two productions;
// notes and fixes do not take part in the comparison.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}

// Forwarded reports how many distinct diagnostics have been passed on.
func (r *DedupReporter) Forwarded() int { return len(r.seen) }
