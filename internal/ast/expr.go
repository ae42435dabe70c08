package ast

import (
	"strings"

	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

type (
	IdentifierExpression     struct{ view }
	StringLiteralExpression  struct{ view }
	NumberLiteralExpression  struct{ view }
	BooleanLiteralExpression struct{ view }
	NullLiteralExpression    struct{ view }
	UnaryExpression          struct{ view }
	BinaryExpression         struct{ view }
	LogicalExpression        struct{ view }
	ConditionalExpression    struct{ view }
	ParenthesizedExpression  struct{ view }
	StaticMemberExpression   struct{ view }
	CallExpression           struct{ view }
	JsxTagExpression         struct{ view }
)

func (IdentifierExpression) isExpr()     {}
func (StringLiteralExpression) isExpr()  {}
func (NumberLiteralExpression) isExpr()  {}
func (BooleanLiteralExpression) isExpr() {}
func (NullLiteralExpression) isExpr()    {}
func (UnaryExpression) isExpr()          {}
func (BinaryExpression) isExpr()         {}
func (LogicalExpression) isExpr()        {}
func (ConditionalExpression) isExpr()    {}
func (ParenthesizedExpression) isExpr()  {}
func (StaticMemberExpression) isExpr()   {}
func (CallExpression) isExpr()           {}
func (JsxTagExpression) isExpr()         {}

func CastIdentifierExpression(n *syntax.Node) (IdentifierExpression, bool) {
	return cast(n, syntax.IdentifierExpression, func(v view) IdentifierExpression { return IdentifierExpression{v} })
}

func CastStringLiteralExpression(n *syntax.Node) (StringLiteralExpression, bool) {
	return cast(n, syntax.StringLiteralExpression, func(v view) StringLiteralExpression { return StringLiteralExpression{v} })
}

func CastUnaryExpression(n *syntax.Node) (UnaryExpression, bool) {
	return cast(n, syntax.UnaryExpression, func(v view) UnaryExpression { return UnaryExpression{v} })
}

func CastBinaryExpression(n *syntax.Node) (BinaryExpression, bool) {
	return cast(n, syntax.BinaryExpression, func(v view) BinaryExpression { return BinaryExpression{v} })
}

// Name returns the identifier token.
func (e IdentifierExpression) Name() (*syntax.Token, bool) { return e.token(0) }

// Text returns the identifier, or "" when it is missing.
func (e IdentifierExpression) Text() string {
	if t, ok := e.Name(); ok {
		return t.Text()
	}
	return ""
}

// Value returns the literal token including its quotes.
func (e StringLiteralExpression) Value() (*syntax.Token, bool) { return e.token(0) }

// InnerString returns the literal text between the quotes. Escapes are left
// as written.
func (e StringLiteralExpression) InnerString() string {
	t, ok := e.Value()
	if !ok {
		return ""
	}
	return Unquote(t.Text())
}

// Unquote strips one pair of matching quotes from text.
func Unquote(text string) string {
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	return strings.TrimLeft(text, `"'`)
}

func (e NumberLiteralExpression) Value() (*syntax.Token, bool)  { return e.token(0) }
func (e BooleanLiteralExpression) Value() (*syntax.Token, bool) { return e.token(0) }
func (e NullLiteralExpression) Value() (*syntax.Token, bool)    { return e.token(0) }

func (e UnaryExpression) Operator() (*syntax.Token, bool) { return e.token(0) }
func (e UnaryExpression) OperatorKind() token.Kind        { return operatorKind(e.view, 0) }
func (e UnaryExpression) Argument() (Expr, bool)          { return e.expr(1) }

func (e BinaryExpression) Left() (Expr, bool)              { return e.expr(0) }
func (e BinaryExpression) Operator() (*syntax.Token, bool) { return e.token(1) }
func (e BinaryExpression) OperatorKind() token.Kind        { return operatorKind(e.view, 1) }
func (e BinaryExpression) Right() (Expr, bool)             { return e.expr(2) }

func (e LogicalExpression) Left() (Expr, bool)       { return e.expr(0) }
func (e LogicalExpression) OperatorKind() token.Kind { return operatorKind(e.view, 1) }
func (e LogicalExpression) Right() (Expr, bool)      { return e.expr(2) }

func (e ConditionalExpression) Test() (Expr, bool)       { return e.expr(0) }
func (e ConditionalExpression) Consequent() (Expr, bool) { return e.expr(2) }
func (e ConditionalExpression) Alternate() (Expr, bool)  { return e.expr(4) }

func (e ParenthesizedExpression) Expression() (Expr, bool) { return e.expr(1) }

func (e StaticMemberExpression) Object() (Expr, bool)          { return e.expr(0) }
func (e StaticMemberExpression) Member() (*syntax.Token, bool) { return e.token(2) }

func (e CallExpression) Callee() (Expr, bool) { return e.expr(0) }

// Arguments yields the present argument expressions.
func (e CallExpression) Arguments() []Expr {
	args, ok := e.child(1)
	if !ok {
		return nil
	}
	list := args.ChildNode(1)
	if list == nil {
		return nil
	}
	var out []Expr
	for c := range list.Children() {
		if x, ok := CastExpr(c); ok {
			out = append(out, x)
		}
	}
	return out
}

// Tag returns the element or self-closing element wrapped by the
// expression.
func (e JsxTagExpression) Tag() (*syntax.Node, bool) { return e.child(0) }

// OmitParentheses unwraps any number of parenthesized layers around x.
func OmitParentheses(x Expr) (Expr, bool) {
	for {
		p, ok := x.(ParenthesizedExpression)
		if !ok {
			return x, true
		}
		inner, ok := p.Expression()
		if !ok {
			return nil, false
		}
		x = inner
	}
}
