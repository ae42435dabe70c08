package diag

import "cstlint/internal/source"

// FixKind classifies a fix the way editors group code actions.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	}
	return "unknown"
}

// FixApplicability is the confidence that applying a fix preserves the
// meaning of the program.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe fixes may be applied without review.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilityMaybeIncorrect fixes need a human to confirm them.
	FixApplicabilityMaybeIncorrect
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilityMaybeIncorrect:
		return "maybe-incorrect"
	}
	return "unknown"
}

// TextEdit replaces Span with NewText. OldText, when set, guards the edit:
// it is skipped unless the current text under Span matches.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}
