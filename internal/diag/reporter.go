package diag

// Reporter receives diagnostics from a producer (lexer, parser). A producer
// must not retain or mutate a Diagnostic after reporting it.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// BagReporter adapts a *Bag to Reporter. Reports beyond the bag's capacity
// are dropped.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Collect returns a Reporter that appends to *dst.
func Collect(dst *[]Diagnostic) Reporter {
	return ReporterFunc(func(d Diagnostic) { *dst = append(*dst, d) })
}
