package analyzer

import (
	"cstlint/internal/diag"
)

// Group is the lint category a rule belongs to.
type Group string

const (
	GroupStyle      Group = "style"
	GroupSuspicious Group = "suspicious"
)

// FixKind tells whether a rule can offer fixes and how trustworthy they are.
type FixKind uint8

const (
	FixNone FixKind = iota
	FixSafe
	FixUnsafe
)

func (k FixKind) String() string {
	switch k {
	case FixNone:
		return "none"
	case FixSafe:
		return "safe"
	case FixUnsafe:
		return "unsafe"
	}
	return "unknown"
}

// SourceKind names the linter a rule was ported from.
type SourceKind uint8

const (
	SourceEslint SourceKind = iota
	SourceEslintStylistic
)

// RuleSource points at the upstream rule a rule is equivalent to.
type RuleSource struct {
	Kind SourceKind
	Name string
}

func (s RuleSource) String() string {
	switch s.Kind {
	case SourceEslint:
		return "eslint/" + s.Name
	case SourceEslintStylistic:
		return "@stylistic/" + s.Name
	}
	return s.Name
}

// URL returns the documentation page of the upstream rule.
func (s RuleSource) URL() string {
	switch s.Kind {
	case SourceEslint:
		return "https://eslint.org/docs/latest/rules/" + s.Name
	case SourceEslintStylistic:
		return "https://eslint.style/rules/jsx/" + s.Name
	}
	return ""
}

// RuleMetadata describes a rule independently of any tree.
type RuleMetadata struct {
	Name        string
	Group       Group
	Version     string
	Code        diag.Code
	Recommended bool
	FixKind     FixKind
	// Severity applies when configuration leaves the rule at its default.
	Severity diag.Severity
	Sources  []RuleSource
	Docs     string
	Valid    []string
	Invalid  []string
}

// Category returns the diagnostic category, e.g. "lint/style/useSelfClosingElements".
func (m *RuleMetadata) Category() string {
	return "lint/" + string(m.Group) + "/" + m.Name
}
