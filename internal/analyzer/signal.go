package analyzer

import (
	"cstlint/internal/diag"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
)

// RuleDiagnostic is what a rule reports for one state.
type RuleDiagnostic struct {
	Range       source.Span
	Message     string
	Description string
	Notes       []diag.Note
}

func NewRuleDiagnostic(rng source.Span, msg string) *RuleDiagnostic {
	return &RuleDiagnostic{Range: rng, Message: msg}
}

// Note attaches a note to the primary range.
func (d *RuleDiagnostic) Note(msg string) *RuleDiagnostic {
	d.Notes = append(d.Notes, diag.Note{Span: d.Range, Msg: msg})
	return d
}

// Detail attaches a note to another range.
func (d *RuleDiagnostic) Detail(rng source.Span, msg string) *RuleDiagnostic {
	d.Notes = append(d.Notes, diag.Note{Span: rng, Msg: msg})
	return d
}

func (d *RuleDiagnostic) WithDescription(desc string) *RuleDiagnostic {
	d.Description = desc
	return d
}

// RuleAction is a proposed fix: an uncommitted batch plus how much to trust
// it.
type RuleAction struct {
	Category      diag.FixKind
	Applicability diag.FixApplicability
	Message       string
	Mutation      *syntax.BatchMutation
}

func NewRuleAction(category diag.FixKind, applicability diag.FixApplicability, msg string, mutation *syntax.BatchMutation) *RuleAction {
	return &RuleAction{
		Category:      category,
		Applicability: applicability,
		Message:       msg,
		Mutation:      mutation,
	}
}

// IsSafe reports whether the action may be applied without review.
func (a *RuleAction) IsSafe() bool {
	return a != nil && a.Applicability == diag.FixApplicabilityAlwaysSafe
}

// Signal is one diagnostic produced by a rule, with its optional action.
type Signal struct {
	Rule     string
	Category string
	Code     diag.Code
	Severity diag.Severity
	// ID identifies the signal's fix within one analysis run:
	// <rule>-<start>-<n>.
	ID         string
	Diagnostic *RuleDiagnostic
	Action     *RuleAction
}

// Range returns the primary range of the diagnostic.
func (s *Signal) Range() source.Span { return s.Diagnostic.Range }

// HasAction reports whether the signal carries a fix.
func (s *Signal) HasAction() bool { return s.Action != nil && s.Action.Mutation != nil && !s.Action.Mutation.IsEmpty() }

// ToDiagnostic converts the signal into a reportable diagnostic without
// fixes; fix.Diagnostics attaches those.
func (s *Signal) ToDiagnostic() diag.Diagnostic {
	d := diag.New(s.Severity, s.Code, s.Diagnostic.Range, s.Diagnostic.Message)
	d.Category = s.Category
	d.Description = s.Diagnostic.Description
	for _, n := range s.Diagnostic.Notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	return d
}
