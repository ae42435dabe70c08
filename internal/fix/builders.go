package fix

import (
	"fmt"

	"cstlint/internal/analyzer"
	"cstlint/internal/diag"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// WithKind overrides fix classification.
func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) {
		f.Kind = kind
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// ReplaceSpan creates a fix replacing the text covered by span with newText.
// A non-empty expect guards the edit against stale input.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	edit := diag.TextEdit{
		Span:    span,
		NewText: newText,
		OldText: expect,
	}
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         []diag.TextEdit{edit},
	}
	return applyOptions(fix, opts)
}

// FromEdits creates a fix out of the text edits of a mutation batch, each
// guarded by the text it replaces.
func FromEdits(title string, edits []syntax.Edit, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         make([]diag.TextEdit, 0, len(edits)),
	}
	for _, e := range edits {
		fix.Edits = append(fix.Edits, ReplaceSpan(title, e.Span, e.NewText, e.OldText).Edits...)
	}
	return applyOptions(fix, opts)
}

// FromSignal renders the action of sig as a diag.Fix. It fails when the
// signal has no action or its batch cannot be committed.
func FromSignal(sig *analyzer.Signal) (diag.Fix, error) {
	if !sig.HasAction() {
		return diag.Fix{}, fmt.Errorf("%s: %w", sig.ID, ErrNoFixes)
	}
	edits, err := sig.Action.Mutation.Edits()
	if err != nil {
		return diag.Fix{}, fmt.Errorf("%s: %w", sig.ID, err)
	}
	return FromEdits(sig.Action.Message, edits,
		WithID(sig.ID),
		WithKind(sig.Action.Category),
		WithApplicability(sig.Action.Applicability),
		Preferred(),
	), nil
}

// Diagnostics converts an analysis result into diagnostics with their fixes
// attached. A fix whose batch fails to commit is withdrawn; its diagnostic
// stands.
func Diagnostics(res *analyzer.Result) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(res.Signals)+len(res.Failures))
	for i := range res.Signals {
		sig := &res.Signals[i]
		d := sig.ToDiagnostic()
		if sig.HasAction() {
			if f, err := FromSignal(sig); err == nil {
				d = d.WithFixSuggestion(f)
			}
		}
		out = append(out, d)
	}
	return append(out, res.Failures...)
}
