package factory

import (
	"fmt"

	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

func n(g *syntax.GreenNode) syntax.Element { return syntax.NodeElement(g) }
func t(tk *token.Token) syntax.Element     { return syntax.TokenElement(tk) }

func Module(items *syntax.GreenNode, eof *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.Module, n(items), t(eof))
}

func ModuleItemList(items ...*syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.ModuleItemList, nodes(items)...)
}

func ExpressionStatement(expr *syntax.GreenNode, semicolon *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.ExpressionStatement, n(expr), t(semicolon))
}

func VariableStatement(kind, name, eq *token.Token, init *syntax.GreenNode, semicolon *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.VariableStatement, t(kind), t(name), t(eq), n(init), t(semicolon))
}

func IdentifierExpression(name *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.IdentifierExpression, t(name))
}

func StringLiteralExpression(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.StringLiteralExpression, t(value))
}

func NumberLiteralExpression(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.NumberLiteralExpression, t(value))
}

func BooleanLiteralExpression(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.BooleanLiteralExpression, t(value))
}

func NullLiteralExpression(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.NullLiteralExpression, t(value))
}

func UnaryExpression(op *token.Token, arg *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.UnaryExpression, t(op), n(arg))
}

func BinaryExpression(left *syntax.GreenNode, op *token.Token, right *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.BinaryExpression, n(left), t(op), n(right))
}

func LogicalExpression(left *syntax.GreenNode, op *token.Token, right *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.LogicalExpression, n(left), t(op), n(right))
}

func ConditionalExpression(test *syntax.GreenNode, question *token.Token, cons *syntax.GreenNode, colon *token.Token, alt *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.ConditionalExpression, n(test), t(question), n(cons), t(colon), n(alt))
}

func ParenthesizedExpression(l *token.Token, expr *syntax.GreenNode, r *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.ParenthesizedExpression, t(l), n(expr), t(r))
}

func StaticMemberExpression(object *syntax.GreenNode, dot, member *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.StaticMemberExpression, n(object), t(dot), t(member))
}

func CallExpression(callee, args *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.CallExpression, n(callee), n(args))
}

func CallArguments(l *token.Token, list *syntax.GreenNode, r *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.CallArguments, t(l), n(list), t(r))
}

// CallArgumentList interleaves args with separators. There must be one
// separator fewer than arguments, or as many when the list ends in a
// trailing comma.
func CallArgumentList(args []*syntax.GreenNode, separators []*token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.CallArgumentList, separated(args, separators)...)
}

func JsxTagExpression(tag *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxTagExpression, n(tag))
}

func JsxElement(opening, children, closing *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxElement, n(opening), n(children), n(closing))
}

func JsxClosingElement(l, slash *token.Token, name *syntax.GreenNode, r *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxClosingElement, t(l), t(slash), n(name), t(r))
}

func JsxName(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxName, t(value))
}

func JsxMemberName(object *syntax.GreenNode, dot, member *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxMemberName, n(object), t(dot), t(member))
}

func JsxAttributeList(attrs ...*syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxAttributeList, nodes(attrs)...)
}

func JsxAttribute(name, init *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxAttribute, n(name), n(init))
}

func JsxAttributeInitializer(eq *token.Token, value *syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxAttributeInitializer, t(eq), n(value))
}

func JsxString(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxString, t(value))
}

func JsxExpressionAttributeValue(l *token.Token, expr *syntax.GreenNode, r *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxExpressionAttributeValue, t(l), n(expr), t(r))
}

func JsxChildList(children ...*syntax.GreenNode) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxChildList, nodes(children)...)
}

func JsxText(value *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxText, t(value))
}

func JsxExpressionChild(l *token.Token, expr *syntax.GreenNode, r *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxExpressionChild, t(l), n(expr), t(r))
}

func TypeArguments(l *token.Token, list *syntax.GreenNode, r *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.TypeArguments, t(l), n(list), t(r))
}

func TypeArgumentList(args []*syntax.GreenNode, separators []*token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.TypeArgumentList, separated(args, separators)...)
}

func TypeReference(name *token.Token) *syntax.GreenNode {
	return syntax.NewNode(syntax.TypeReference, t(name))
}

// Bogus wraps arbitrary elements the parser could not place.
func Bogus(elems ...syntax.Element) *syntax.GreenNode {
	return syntax.NewNode(syntax.Bogus, elems...)
}

func nodes(gs []*syntax.GreenNode) []syntax.Element {
	out := make([]syntax.Element, len(gs))
	for i, g := range gs {
		out[i] = n(g)
	}
	return out
}

func separated(items []*syntax.GreenNode, seps []*token.Token) []syntax.Element {
	if len(seps) != len(items) && len(seps)+1 != len(items) && !(len(items) == 0 && len(seps) == 0) {
		panic(fmt.Sprintf("factory: %d separators for %d list items", len(seps), len(items)))
	}
	out := make([]syntax.Element, 0, len(items)+len(seps))
	for i, it := range items {
		out = append(out, n(it))
		if i < len(seps) {
			out = append(out, t(seps[i]))
		}
	}
	return out
}
