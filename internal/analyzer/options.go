package analyzer

import (
	"fmt"
	"slices"
	"strings"

	"cstlint/internal/diag"
)

// QuoteStyle is the preferred delimiter for string literals a rule creates.
type QuoteStyle uint8

const (
	QuoteDouble QuoteStyle = iota
	QuoteSingle
)

func (q QuoteStyle) String() string {
	if q == QuoteSingle {
		return "single"
	}
	return "double"
}

func (q QuoteStyle) IsDouble() bool { return q == QuoteDouble }

// ParseQuoteStyle accepts "double" and "single".
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch strings.ToLower(s) {
	case "double":
		return QuoteDouble, nil
	case "single":
		return QuoteSingle, nil
	}
	return QuoteDouble, fmt.Errorf("invalid quote style: %q (expected: double|single)", s)
}

// Level is the configured state of a rule.
type Level uint8

const (
	// LevelDefault enables recommended rules at their own severity.
	LevelDefault Level = iota
	LevelOff
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDefault:
		return "default"
	case LevelOff:
		return "off"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// ParseLevel accepts off, info, warn and error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelOff, fmt.Errorf("invalid rule level: %q (expected: off|info|warn|error)", s)
}

// Options configure an Analyzer.
type Options struct {
	PreferredQuote QuoteStyle
	// Rules overrides the level of individual rules by name. Missing
	// entries mean LevelDefault.
	Rules map[string]Level
	// Only, when non-empty, restricts the run to the named rules.
	Only []string
}

// resolve decides whether a rule runs and at which severity.
func (o *Options) resolve(m *RuleMetadata) (diag.Severity, bool) {
	if len(o.Only) > 0 && !slices.Contains(o.Only, m.Name) {
		return 0, false
	}
	switch o.Rules[m.Name] {
	case LevelOff:
		return 0, false
	case LevelInfo:
		return diag.SevInfo, true
	case LevelWarn:
		return diag.SevWarning, true
	case LevelError:
		return diag.SevError, true
	}
	if !m.Recommended && len(o.Only) == 0 {
		return 0, false
	}
	return m.Severity, true
}
