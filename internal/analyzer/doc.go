// Package analyzer runs lint rules over a syntax tree.
//
// A rule is a value implementing Rule[S] for its own state type S. The
// analyzer walks the tree once in document order and, for every node whose
// kind a rule queries, asks the rule for states, then for a diagnostic per
// state and, when a diagnostic exists, for an optional action. Actions carry
// an uncommitted syntax.BatchMutation; committing it is the business of the
// fix engine.
//
// # Lifecycle of a match
//
//	Matched -> Analyzed(state) -> Diagnosed? -> Action-built?
//
// A panic inside a rule is absorbed for that match and reported as
// diag.AnaRuleFailed. The tree is never modified.
package analyzer
