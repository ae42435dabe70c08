package ast

import (
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// view is the shared base of every typed node view.
type view struct {
	node *syntax.Node
}

// Syntax returns the underlying red node.
func (v view) Syntax() *syntax.Node { return v.node }

// Range returns the trimmed source range of the node.
func (v view) Range() source.Span { return v.node.TextTrimmedRange() }

func (v view) token(i int) (*syntax.Token, bool) {
	t := v.node.ChildToken(i)
	return t, t != nil
}

func (v view) child(i int) (*syntax.Node, bool) {
	n := v.node.ChildNode(i)
	return n, n != nil
}

func (v view) expr(i int) (Expr, bool) {
	n, ok := v.child(i)
	if !ok {
		return nil, false
	}
	return CastExpr(n)
}

func cast[T any](n *syntax.Node, kind syntax.Kind, wrap func(view) T) (T, bool) {
	if n == nil || n.Kind() != kind {
		var zero T
		return zero, false
	}
	return wrap(view{node: n}), true
}

// Expr is a typed expression view. The set of implementations is closed.
type Expr interface {
	Syntax() *syntax.Node
	Range() source.Span
	isExpr()
}

// CastExpr views n as an expression. It fails for non-expression kinds,
// Bogus included.
func CastExpr(n *syntax.Node) (Expr, bool) {
	if n == nil {
		return nil, false
	}
	v := view{node: n}
	switch n.Kind() {
	case syntax.IdentifierExpression:
		return IdentifierExpression{v}, true
	case syntax.StringLiteralExpression:
		return StringLiteralExpression{v}, true
	case syntax.NumberLiteralExpression:
		return NumberLiteralExpression{v}, true
	case syntax.BooleanLiteralExpression:
		return BooleanLiteralExpression{v}, true
	case syntax.NullLiteralExpression:
		return NullLiteralExpression{v}, true
	case syntax.UnaryExpression:
		return UnaryExpression{v}, true
	case syntax.BinaryExpression:
		return BinaryExpression{v}, true
	case syntax.LogicalExpression:
		return LogicalExpression{v}, true
	case syntax.ConditionalExpression:
		return ConditionalExpression{v}, true
	case syntax.ParenthesizedExpression:
		return ParenthesizedExpression{v}, true
	case syntax.StaticMemberExpression:
		return StaticMemberExpression{v}, true
	case syntax.CallExpression:
		return CallExpression{v}, true
	case syntax.JsxTagExpression:
		return JsxTagExpression{v}, true
	}
	return nil, false
}

// operatorKind returns the kind of the operator token held in slot i, or
// token.Invalid when the slot is empty.
func operatorKind(v view, i int) token.Kind {
	if t, ok := v.token(i); ok {
		return t.Kind()
	}
	return token.Invalid
}
