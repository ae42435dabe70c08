package analyzer

import (
	"fmt"

	"cstlint/internal/syntax"
)

// Rule is implemented by every lint rule. S is the rule's private state,
// typically a small sum type the rule switches over exhaustively.
type Rule[S any] interface {
	Metadata() RuleMetadata
	// Query lists the node kinds the rule is matched against.
	Query() []syntax.Kind
	// Run inspects the matched node and returns zero or more states. A
	// malformed node (absent slots, Bogus children) yields none.
	Run(ctx *RuleContext) []S
	// Diagnostic turns a state into a diagnostic, or nil to stay silent.
	Diagnostic(ctx *RuleContext, state S) *RuleDiagnostic
	// Action builds a fix for a state. Only called when Diagnostic returned
	// non-nil; nil means no fix is available.
	Action(ctx *RuleContext, state S) *RuleAction
}

// Runner is the type-erased form of a Rule, as stored in a registry.
type Runner interface {
	Metadata() RuleMetadata
	Query() []syntax.Kind
	// Check runs the whole match lifecycle and returns the signals in the
	// order the rule produced its states. A panic while building an action
	// withdraws only that fix: the signal is kept without an action and the
	// panic is returned in actionErrs.
	Check(ctx *RuleContext) (sigs []Signal, actionErrs []error)
}

// Wrap erases the state type of r.
func Wrap[S any](r Rule[S]) Runner {
	return &runner[S]{rule: r, meta: r.Metadata()}
}

type runner[S any] struct {
	rule Rule[S]
	meta RuleMetadata
}

func (r *runner[S]) Metadata() RuleMetadata { return r.meta }
func (r *runner[S]) Query() []syntax.Kind   { return r.rule.Query() }

func (r *runner[S]) Check(ctx *RuleContext) ([]Signal, []error) {
	states := r.rule.Run(ctx)
	if len(states) == 0 {
		return nil, nil
	}
	var actionErrs []error
	out := make([]Signal, 0, len(states))
	for _, st := range states {
		d := r.rule.Diagnostic(ctx, st)
		if d == nil {
			continue
		}
		sig := Signal{
			Rule:       r.meta.Name,
			Category:   r.meta.Category(),
			Code:       r.meta.Code,
			Severity:   r.meta.Severity,
			Diagnostic: d,
		}
		act, err := r.action(ctx, st)
		if err != nil {
			actionErrs = append(actionErrs, err)
		} else if act != nil && act.Mutation != nil {
			sig.Action = act
		}
		out = append(out, sig)
	}
	return out, actionErrs
}

func (r *runner[S]) action(ctx *RuleContext, st S) (act *RuleAction, err error) {
	defer func() {
		if p := recover(); p != nil {
			act, err = nil, fmt.Errorf("action panic: %v", p)
		}
	}()
	return r.rule.Action(ctx, st), nil
}
