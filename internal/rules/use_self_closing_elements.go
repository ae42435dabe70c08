package rules

import (
	"cstlint/internal/analyzer"
	"cstlint/internal/ast"
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// UseSelfClosingElements flags JSX elements that have a closing tag but no
// children.
type UseSelfClosingElements struct{}

type selfClosingState struct {
	element ast.JsxElement
}

func (UseSelfClosingElements) Metadata() analyzer.RuleMetadata {
	return analyzer.RuleMetadata{
		Name:        "useSelfClosingElements",
		Group:       analyzer.GroupStyle,
		Version:     "1.0.0",
		Code:        diag.StyleUseSelfClosingElement,
		Recommended: true,
		FixKind:     analyzer.FixUnsafe,
		Severity:    diag.SevWarning,
		Sources:     []analyzer.RuleSource{{Kind: analyzer.SourceEslintStylistic, Name: "jsx-self-closing-comp"}},
		Docs:        "Prevent extra closing tags for components without children.",
		Invalid: []string{
			"<div></div>",
			"<Component></Component>",
			"<Foo.bar></Foo.bar>",
		},
		Valid: []string{
			"<div />",
			"<div>child</div>",
			"<Component />",
			"<Component>child</Component>",
			"<Foo.bar />",
			"<Foo.bar>child</Foo.bar>",
		},
	}
}

func (UseSelfClosingElements) Query() []syntax.Kind { return []syntax.Kind{syntax.JsxElement} }

func (UseSelfClosingElements) Run(ctx *analyzer.RuleContext) []selfClosingState {
	el, ok := ast.CastJsxElement(ctx.Query())
	if !ok {
		return nil
	}
	// An element missing either tag is a parse error, not a style issue.
	if _, ok := el.OpeningElement(); !ok {
		return nil
	}
	if _, ok := el.ClosingElement(); !ok {
		return nil
	}
	if children, ok := el.Children(); ok && children.Len() > 0 {
		return nil
	}
	return []selfClosingState{{element: el}}
}

func (UseSelfClosingElements) Diagnostic(_ *analyzer.RuleContext, st selfClosingState) *analyzer.RuleDiagnostic {
	return analyzer.NewRuleDiagnostic(st.element.Range(),
		"JSX elements without children should be marked as self-closing. In JSX, it is valid for any element to be self-closing.")
}

// Action rewrites <name ...></name> into <name ... />. The leading trivia of
// the opening '>' moves onto the new '/', and a single space is inserted
// before '/' only when nothing separates it from the previous token yet.
func (UseSelfClosingElements) Action(ctx *analyzer.RuleContext, st selfClosingState) *analyzer.RuleAction {
	opening, ok := st.element.OpeningElement()
	if !ok {
		return nil
	}
	closing, ok := st.element.ClosingElement()
	if !ok {
		return nil
	}
	lAngle, ok := opening.LAngle()
	if !ok {
		return nil
	}
	name, ok := opening.Name()
	if !ok {
		return nil
	}
	rAngle, ok := opening.RAngle()
	if !ok {
		return nil
	}

	stripped, moved := token.MoveLeadingTrivia(rAngle.Green())
	prev := rAngle.PrevToken()
	needSpace := prev == nil || !prev.Green().HasTrailingWhitespace()
	if len(moved) == 0 && needSpace {
		moved = []token.Trivia{token.Space(1)}
	}
	slash := factory.Token(token.Slash, "/", moved, nil)

	// The element's trailing trivia sits on the closing '>'; keep it.
	if last := closing.Syntax().LastToken(); last != nil {
		stripped = stripped.WithTrailing(append(stripped.Trailing, last.Trailing()...))
	}

	var attrs *syntax.GreenNode
	if list, ok := opening.Attributes(); ok {
		attrs = list.Syntax().Green()
	}
	b := factory.JsxSelfClosingElement(lAngle.Green(), name.Green(), attrs, slash, stripped)
	if args, ok := opening.TypeArguments(); ok {
		b = b.WithTypeArguments(args.Syntax().Green())
	}

	m := ctx.Begin()
	m.ReplaceNode(st.element.Syntax(), b.Build())
	return analyzer.NewRuleAction(diag.FixKindQuickFix, diag.FixApplicabilityMaybeIncorrect,
		"Use a SelfClosingElement instead", m)
}
