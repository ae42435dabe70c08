package ast

import (
	"iter"

	"cstlint/internal/syntax"
)

type (
	JsxElement            struct{ view }
	JsxOpeningElement     struct{ view }
	JsxClosingElement     struct{ view }
	JsxSelfClosingElement struct{ view }
	JsxAttributeList      struct{ view }
	JsxChildList          struct{ view }
	TypeArguments         struct{ view }
)

func CastJsxElement(n *syntax.Node) (JsxElement, bool) {
	return cast(n, syntax.JsxElement, func(v view) JsxElement { return JsxElement{v} })
}

func CastJsxSelfClosingElement(n *syntax.Node) (JsxSelfClosingElement, bool) {
	return cast(n, syntax.JsxSelfClosingElement, func(v view) JsxSelfClosingElement { return JsxSelfClosingElement{v} })
}

func (e JsxElement) OpeningElement() (JsxOpeningElement, bool) {
	n, _ := e.child(0)
	return cast(n, syntax.JsxOpeningElement, func(v view) JsxOpeningElement { return JsxOpeningElement{v} })
}

// Children returns the child list. A missing list counts as empty.
func (e JsxElement) Children() (JsxChildList, bool) {
	n, _ := e.child(1)
	return cast(n, syntax.JsxChildList, func(v view) JsxChildList { return JsxChildList{v} })
}

func (e JsxElement) ClosingElement() (JsxClosingElement, bool) {
	n, _ := e.child(2)
	return cast(n, syntax.JsxClosingElement, func(v view) JsxClosingElement { return JsxClosingElement{v} })
}

func (e JsxOpeningElement) LAngle() (*syntax.Token, bool) { return e.token(0) }

// Name returns a JsxName or JsxMemberName node.
func (e JsxOpeningElement) Name() (*syntax.Node, bool) { return e.child(1) }

func (e JsxOpeningElement) TypeArguments() (TypeArguments, bool) {
	n, _ := e.child(2)
	return cast(n, syntax.TypeArguments, func(v view) TypeArguments { return TypeArguments{v} })
}

func (e JsxOpeningElement) Attributes() (JsxAttributeList, bool) {
	n, _ := e.child(3)
	return cast(n, syntax.JsxAttributeList, func(v view) JsxAttributeList { return JsxAttributeList{v} })
}

func (e JsxOpeningElement) RAngle() (*syntax.Token, bool) { return e.token(4) }

func (e JsxClosingElement) Name() (*syntax.Node, bool) { return e.child(2) }

func (e JsxSelfClosingElement) Name() (*syntax.Node, bool)    { return e.child(1) }
func (e JsxSelfClosingElement) Slash() (*syntax.Token, bool)  { return e.token(4) }
func (e JsxSelfClosingElement) RAngle() (*syntax.Token, bool) { return e.token(5) }

func (e JsxSelfClosingElement) Attributes() (JsxAttributeList, bool) {
	n, _ := e.child(3)
	return cast(n, syntax.JsxAttributeList, func(v view) JsxAttributeList { return JsxAttributeList{v} })
}

// Len returns the number of children, whitespace-only text included.
func (l JsxChildList) Len() int { return l.node.SlotCount() }

// Items yields the child nodes in order.
func (l JsxChildList) Items() iter.Seq[*syntax.Node] { return l.node.Children() }

func (l JsxAttributeList) Len() int                      { return l.node.SlotCount() }
func (l JsxAttributeList) Items() iter.Seq[*syntax.Node] { return l.node.Children() }

// JsxNameText returns the source text of a JSX tag name, members joined by
// dots.
func JsxNameText(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	return n.TrimmedText()
}
