package syntax

import (
	"slices"

	"cstlint/internal/token"
)

// slotSpec describes what may occupy one child slot.
type slotSpec struct {
	name   string
	tokens []token.Kind
	nodes  []Kind
}

func tok(name string, kinds ...token.Kind) slotSpec {
	return slotSpec{name: name, tokens: kinds}
}

func node(name string, kinds ...Kind) slotSpec {
	return slotSpec{name: name, nodes: kinds}
}

// shape is the grammar of one node kind: either fixed slots or a list.
type shape struct {
	slots []slotSpec
	list  *slotSpec
	// separator is the token kind alternating with list elements, or
	// token.Invalid for lists without separators.
	separator token.Kind
}

func list(elem slotSpec, separator token.Kind) shape {
	return shape{list: &elem, separator: separator}
}

var (
	binaryOperators = []token.Kind{
		token.EqEq, token.EqEqEq, token.BangEq, token.BangEqEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
	}
	logicalOperators = []token.Kind{token.AndAnd, token.OrOr, token.QuestionQuestion}
	unaryOperators   = []token.Kind{
		token.KwTypeof, token.KwVoid, token.KwDelete,
		token.Bang, token.Minus, token.Plus, token.Tilde,
	}
	jsxChildren = []Kind{JsxText, JsxElement, JsxSelfClosingElement, JsxExpressionChild}
	jsxNames    = []Kind{JsxName, JsxMemberName}
)

var grammar [kindCount]shape

func init() {
	expr := func(name string) slotSpec { return node(name, Expressions...) }

	grammar = [kindCount]shape{
		Bogus:  {},
		Module: {slots: []slotSpec{node("items", ModuleItemList), tok("eof", token.EOF)}},
		ModuleItemList: list(
			node("item", ExpressionStatement, VariableStatement), token.Invalid),
		ExpressionStatement: {slots: []slotSpec{
			expr("expression"), tok("semicolon", token.Semicolon),
		}},
		VariableStatement: {slots: []slotSpec{
			tok("kind", token.KwConst, token.KwLet, token.KwVar),
			tok("name", token.Ident),
			tok("eq", token.Assign),
			expr("initializer"),
			tok("semicolon", token.Semicolon),
		}},

		IdentifierExpression:     {slots: []slotSpec{tok("name", token.Ident)}},
		StringLiteralExpression:  {slots: []slotSpec{tok("value", token.StringLit)}},
		NumberLiteralExpression:  {slots: []slotSpec{tok("value", token.NumberLit)}},
		BooleanLiteralExpression: {slots: []slotSpec{tok("value", token.KwTrue, token.KwFalse)}},
		NullLiteralExpression:    {slots: []slotSpec{tok("value", token.KwNull)}},
		UnaryExpression: {slots: []slotSpec{
			tok("operator", unaryOperators...), expr("argument"),
		}},
		BinaryExpression: {slots: []slotSpec{
			expr("left"), tok("operator", binaryOperators...), expr("right"),
		}},
		LogicalExpression: {slots: []slotSpec{
			expr("left"), tok("operator", logicalOperators...), expr("right"),
		}},
		ConditionalExpression: {slots: []slotSpec{
			expr("test"), tok("question", token.Question),
			expr("consequent"), tok("colon", token.Colon), expr("alternate"),
		}},
		ParenthesizedExpression: {slots: []slotSpec{
			tok("l_paren", token.LParen), expr("expression"), tok("r_paren", token.RParen),
		}},
		StaticMemberExpression: {slots: []slotSpec{
			expr("object"), tok("dot", token.Dot), tok("member", token.Ident),
		}},
		CallExpression: {slots: []slotSpec{expr("callee"), node("arguments", CallArguments)}},
		CallArguments: {slots: []slotSpec{
			tok("l_paren", token.LParen), node("args", CallArgumentList), tok("r_paren", token.RParen),
		}},
		CallArgumentList: list(expr("arg"), token.Comma),

		JsxTagExpression: {slots: []slotSpec{node("tag", JsxTags...)}},
		JsxElement: {slots: []slotSpec{
			node("opening_element", JsxOpeningElement),
			node("children", JsxChildList),
			node("closing_element", JsxClosingElement),
		}},
		JsxOpeningElement: {slots: []slotSpec{
			tok("l_angle", token.Lt),
			node("name", jsxNames...),
			node("type_arguments", TypeArguments),
			node("attributes", JsxAttributeList),
			tok("r_angle", token.Gt),
		}},
		JsxClosingElement: {slots: []slotSpec{
			tok("l_angle", token.Lt),
			tok("slash", token.Slash),
			node("name", jsxNames...),
			tok("r_angle", token.Gt),
		}},
		JsxSelfClosingElement: {slots: []slotSpec{
			tok("l_angle", token.Lt),
			node("name", jsxNames...),
			node("type_arguments", TypeArguments),
			node("attributes", JsxAttributeList),
			tok("slash", token.Slash),
			tok("r_angle", token.Gt),
		}},
		JsxName: {slots: []slotSpec{tok("value", token.Ident)}},
		JsxMemberName: {slots: []slotSpec{
			node("object", jsxNames...), tok("dot", token.Dot), tok("member", token.Ident),
		}},
		JsxAttributeList: list(node("attribute", JsxAttribute), token.Invalid),
		JsxAttribute: {slots: []slotSpec{
			node("name", JsxName), node("initializer", JsxAttributeInitializer),
		}},
		JsxAttributeInitializer: {slots: []slotSpec{
			tok("eq", token.Assign), node("value", JsxString, JsxExpressionAttributeValue),
		}},
		JsxString: {slots: []slotSpec{tok("value", token.StringLit)}},
		JsxExpressionAttributeValue: {slots: []slotSpec{
			tok("l_curly", token.LBrace), expr("expression"), tok("r_curly", token.RBrace),
		}},
		JsxChildList: list(node("child", jsxChildren...), token.Invalid),
		JsxText:      {slots: []slotSpec{tok("value", token.JsxText)}},
		JsxExpressionChild: {slots: []slotSpec{
			tok("l_curly", token.LBrace), expr("expression"), tok("r_curly", token.RBrace),
		}},

		TypeArguments: {slots: []slotSpec{
			tok("l_angle", token.Lt), node("arguments", TypeArgumentList), tok("r_angle", token.Gt),
		}},
		TypeArgumentList: list(node("argument", TypeReference), token.Comma),
		TypeReference:    {slots: []slotSpec{tok("name", token.Ident)}},
	}
}

func (s *slotSpec) accepts(e Element) bool {
	switch {
	case e.IsAbsent():
		return true
	case e.token != nil:
		return slices.Contains(s.tokens, e.token.Kind)
	default:
		return len(s.nodes) > 0 && (e.node.kind == Bogus || slices.Contains(s.nodes, e.node.kind))
	}
}

// SlotCount returns the number of fixed slots of kind, or -1 for lists and
// Bogus.
func SlotCount(kind Kind) int {
	if kind == Bogus || kind.IsList() {
		return -1
	}
	return len(grammar[kind].slots)
}

// SlotName returns the grammar name of slot i of kind.
func SlotName(kind Kind, i int) string {
	sh := &grammar[kind]
	switch {
	case sh.list != nil:
		if sh.separator != token.Invalid && i%2 == 1 {
			return "separator"
		}
		return sh.list.name
	case i >= 0 && i < len(sh.slots):
		return sh.slots[i].name
	}
	return ""
}

// Accepts reports whether e may occupy slot i of a node of the given kind.
// Absent elements are accepted everywhere except in lists; recovery trees
// leave required slots empty.
func Accepts(kind Kind, i int, e Element) bool {
	if kind >= kindCount {
		return false
	}
	if kind == Bogus {
		return !e.IsAbsent()
	}
	sh := &grammar[kind]
	if sh.list != nil {
		if e.IsAbsent() {
			return false
		}
		if sh.separator != token.Invalid && i%2 == 1 {
			return e.token != nil && e.token.Kind == sh.separator
		}
		return sh.list.accepts(e)
	}
	if i < 0 || i >= len(sh.slots) {
		return false
	}
	return sh.slots[i].accepts(e)
}
