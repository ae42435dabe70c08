package factory

import (
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// JsxSelfClosingElementBuilder assembles a self-closing element. Optional
// slots are attached with the With methods before Build.
type JsxSelfClosingElementBuilder struct {
	lAngle, slash, rAngle *token.Token
	name, typeArgs        *syntax.GreenNode
	attrs                 *syntax.GreenNode
}

// JsxSelfClosingElement starts a builder from the required slots.
func JsxSelfClosingElement(lAngle *token.Token, name, attrs *syntax.GreenNode, slash, rAngle *token.Token) *JsxSelfClosingElementBuilder {
	return &JsxSelfClosingElementBuilder{lAngle: lAngle, name: name, attrs: attrs, slash: slash, rAngle: rAngle}
}

func (b *JsxSelfClosingElementBuilder) WithTypeArguments(args *syntax.GreenNode) *JsxSelfClosingElementBuilder {
	b.typeArgs = args
	return b
}

func (b *JsxSelfClosingElementBuilder) Build() *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxSelfClosingElement,
		t(b.lAngle), n(b.name), n(b.typeArgs), n(b.attrs), t(b.slash), t(b.rAngle))
}

// JsxOpeningElementBuilder assembles an opening tag.
type JsxOpeningElementBuilder struct {
	lAngle, rAngle        *token.Token
	name, typeArgs, attrs *syntax.GreenNode
}

func JsxOpeningElement(lAngle *token.Token, name, attrs *syntax.GreenNode, rAngle *token.Token) *JsxOpeningElementBuilder {
	return &JsxOpeningElementBuilder{lAngle: lAngle, name: name, attrs: attrs, rAngle: rAngle}
}

func (b *JsxOpeningElementBuilder) WithTypeArguments(args *syntax.GreenNode) *JsxOpeningElementBuilder {
	b.typeArgs = args
	return b
}

func (b *JsxOpeningElementBuilder) Build() *syntax.GreenNode {
	return syntax.NewNode(syntax.JsxOpeningElement,
		t(b.lAngle), n(b.name), n(b.typeArgs), n(b.attrs), t(b.rAngle))
}
