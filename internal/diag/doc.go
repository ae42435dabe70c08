// Package diag defines the diagnostic model shared by the lexer, the parser,
// the analyzer and the fix engine.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by parsing and by lint rules.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured text edits that the driver or CLI can
//     print or apply.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering lives in internal/diagfmt; choosing and
// applying fixes lives in internal/fix.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier (codes.go) with a stable string form.
//   - Category: the rule name for lint findings, empty for syntax errors.
//   - Message and Description: a one-line summary and optional longer text.
//   - Primary span: the source.Span pointing to the issue.
//   - Notes: optional secondary spans/messages for additional context.
//   - Fixes: optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Fix suggestions
//
// Fix is the serialisable form of a rule action. Each fix carries:
//
//   - ID: stable identifier used by `cstlint fix --id`.
//   - Title: short label used in UI listings.
//   - Kind: quick fix or refactor.
//   - Applicability: AlwaysSafe or MaybeIncorrect.
//   - IsPreferred: marks the most relevant fix when several exist.
//   - Edits: text edits in source coordinates. OldText acts as a guard that
//     the fix engine checks before applying an edit.
//
// # Emitting diagnostics
//
// The lexer and parser emit through a Reporter. The driver wraps a
// BagReporter in a DedupReporter so recovery does not repeat itself; the Bag
// then supports sorting, deduplication and filtering. The analyzer builds
// full Diagnostic values itself and adds them to the bag directly.
package diag
