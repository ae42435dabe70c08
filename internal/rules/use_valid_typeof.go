package rules

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cstlint/internal/analyzer"
	"cstlint/internal/ast"
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// UseValidTypeof checks that the result of typeof is compared with a valid
// type name or with another typeof expression.
type UseValidTypeof struct{}

// TypeName is one of the strings typeof can evaluate to.
type TypeName uint8

const (
	TypeUndefined TypeName = iota
	TypeObject
	TypeBoolean
	TypeNumber
	TypeString
	TypeFunction
	TypeSymbol
	TypeBigInt
)

var typeNames = [...]string{
	TypeUndefined: "undefined",
	TypeObject:    "object",
	TypeBoolean:   "boolean",
	TypeNumber:    "number",
	TypeString:    "string",
	TypeFunction:  "function",
	TypeSymbol:    "symbol",
	TypeBigInt:    "bigint",
}

func (t TypeName) String() string { return typeNames[t] }

// ParseTypeName matches s exactly against the known type names.
func ParseTypeName(s string) (TypeName, bool) {
	for i, n := range typeNames {
		if n == s {
			return TypeName(i), true
		}
	}
	return 0, false
}

// maxTypoDistance bounds the edit distance of a misspelling we still fix.
const maxTypoDistance = 2

// suggestTypeName guesses the type name meant by s: first by case folding,
// then by a unique closest match within maxTypoDistance edits.
func suggestTypeName(s string) (TypeName, bool) {
	lower := cases.Lower(language.Und).String(s)
	if t, ok := ParseTypeName(lower); ok {
		return t, true
	}
	best, bestDist, unique := TypeName(0), maxTypoDistance+1, false
	for i, n := range typeNames {
		d := levenshtein.ComputeDistance(lower, n)
		switch {
		case d < bestDist:
			best, bestDist, unique = TypeName(i), d, true
		case d == bestDist:
			unique = false
		}
	}
	return best, unique && bestDist <= maxTypoDistance
}

// typeofState is implemented by invalidLiteral and invalidExpression.
type typeofState interface {
	suggestion() *typeofFix
}

type typeofFix struct {
	operand *syntax.Node
	name    TypeName
}

// invalidLiteral is a string literal that is not a type name.
type invalidLiteral struct {
	rng     source.Span
	literal string
	fix     *typeofFix
}

// invalidExpression is an operand that is not a string literal at all.
type invalidExpression struct {
	rng source.Span
	fix *typeofFix
}

func (s invalidLiteral) suggestion() *typeofFix    { return s.fix }
func (s invalidExpression) suggestion() *typeofFix { return s.fix }

func (UseValidTypeof) Metadata() analyzer.RuleMetadata {
	return analyzer.RuleMetadata{
		Name:        "useValidTypeof",
		Group:       analyzer.GroupSuspicious,
		Version:     "1.0.0",
		Code:        diag.SuspiciousUseValidTypeof,
		Recommended: true,
		FixKind:     analyzer.FixUnsafe,
		Severity:    diag.SevError,
		Sources:     []analyzer.RuleSource{{Kind: analyzer.SourceEslint, Name: "valid-typeof"}},
		Docs: "This rule verifies the result of `typeof $expr` unary expressions is being compared " +
			"to valid values, either string literals containing valid type names or other `typeof` expressions.",
		Invalid: []string{
			`typeof foo === "strnig"`,
			`typeof foo == "undefimed"`,
			`typeof bar != "nunber"`,
			`typeof bar !== "fucntion"`,
			`typeof foo === undefined`,
			`typeof bar == Object`,
			`typeof foo === baz`,
			`typeof foo == 5`,
			`typeof foo == -5`,
		},
		Valid: []string{
			`typeof foo === "string"`,
			`typeof bar == "undefined"`,
			`typeof bar === typeof qux`,
		},
	}
}

func (UseValidTypeof) Query() []syntax.Kind { return []syntax.Kind{syntax.BinaryExpression} }

func isTypeof(x ast.Expr) bool {
	u, ok := x.(ast.UnaryExpression)
	return ok && u.OperatorKind() == token.KwTypeof
}

func isLiteral(x ast.Expr) bool {
	switch x.(type) {
	case ast.StringLiteralExpression, ast.NumberLiteralExpression,
		ast.BooleanLiteralExpression, ast.NullLiteralExpression:
		return true
	}
	return false
}

func (UseValidTypeof) Run(ctx *analyzer.RuleContext) []typeofState {
	bin, ok := ast.CastBinaryExpression(ctx.Query())
	if !ok {
		return nil
	}
	switch bin.OperatorKind() {
	case token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq:
	default:
		return nil
	}
	left, ok := bin.Left()
	if !ok {
		return nil
	}
	right, ok := bin.Right()
	if !ok {
		return nil
	}
	if st := classify(left, right); st != nil {
		return []typeofState{st}
	}
	return nil
}

// classify checks one comparison. Shapes are tried in order: typeof against
// a literal, typeof against typeof, typeof against an identifier, and
// typeof against anything else, each in both operand orders.
func classify(left, right ast.Expr) typeofState {
	_, leftUnary := left.(ast.UnaryExpression)
	_, rightUnary := right.(ast.UnaryExpression)

	switch {
	case leftUnary && isLiteral(right), rightUnary && isLiteral(left):
		unary, lit := left, right
		if !leftUnary {
			unary, lit = right, left
		}
		if !isTypeof(unary) {
			return nil
		}
		if s, ok := lit.(ast.StringLiteralExpression); ok {
			return checkLiteral(s)
		}
		return invalidExpression{rng: lit.Range()}

	case leftUnary && rightUnary:
		switch l, r := isTypeof(left), isTypeof(right); {
		case l && !r:
			return invalidExpression{rng: right.Range()}
		case r && !l:
			return invalidExpression{rng: left.Range()}
		}
		return nil
	}

	unary, other := left, right
	if !leftUnary {
		unary, other = right, left
	}
	if !isTypeof(unary) {
		return nil
	}
	if id, ok := other.(ast.IdentifierExpression); ok {
		st := invalidExpression{rng: id.Range()}
		if t, ok := ParseTypeName(cases.Lower(language.Und).String(id.Text())); ok {
			st.fix = &typeofFix{operand: id.Syntax(), name: t}
		}
		return st
	}
	return invalidExpression{rng: other.Range()}
}

func checkLiteral(s ast.StringLiteralExpression) typeofState {
	value, ok := s.Value()
	if !ok {
		return nil
	}
	text := s.InnerString()
	if _, ok := ParseTypeName(text); ok {
		return nil
	}
	st := invalidLiteral{rng: value.TextTrimmedRange(), literal: text}
	if t, ok := suggestTypeName(text); ok {
		st.fix = &typeofFix{operand: s.Syntax(), name: t}
	}
	return st
}

const typeofTitle = "Invalid `typeof` comparison value"

func (UseValidTypeof) Diagnostic(_ *analyzer.RuleContext, st typeofState) *analyzer.RuleDiagnostic {
	switch st := st.(type) {
	case invalidLiteral:
		return analyzer.NewRuleDiagnostic(st.rng, typeofTitle).
			Note("not a valid type name").
			WithDescription(fmt.Sprintf("%s: %q is not a valid type name", typeofTitle, st.literal))
	case invalidExpression:
		return analyzer.NewRuleDiagnostic(st.rng, typeofTitle).
			Note("not a string literal").
			WithDescription(typeofTitle + ": this expression is not a string literal")
	}
	panic(fmt.Errorf("useValidTypeof: unexpected state %T", st))
}

// Action replaces the offending operand with the suggested type name,
// quoted in the preferred style.
func (UseValidTypeof) Action(ctx *analyzer.RuleContext, st typeofState) *analyzer.RuleAction {
	fix := st.suggestion()
	if fix == nil {
		return nil
	}
	var lit *token.Token
	if ctx.PreferredQuote().IsDouble() {
		lit = factory.StringLiteral(fix.name.String())
	} else {
		lit = factory.StringLiteralSingleQuotes(fix.name.String())
	}
	m := ctx.Begin()
	m.ReplaceNode(fix.operand, factory.StringLiteralExpression(keepTrivia(fix.operand, lit)))
	return analyzer.NewRuleAction(diag.FixKindQuickFix, diag.FixApplicabilityMaybeIncorrect,
		"Compare the result of `typeof` with a valid type name", m)
}
