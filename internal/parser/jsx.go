package parser

import (
	"cstlint/internal/ast"
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/lexer"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// parseJsxTag parses an element or a self-closing element starting at '<'.
// inChildren tells whether the tag sits in a child list, which decides how
// the token after its final '>' is scanned.
func (p *Parser) parseJsxTag(inChildren bool) *syntax.GreenNode {
	p.switchCtx(lexer.JsxTag)
	lAngle := p.bump()
	name := p.parseJsxName()
	var typeArgs *syntax.GreenNode
	if p.at(token.Lt) {
		typeArgs = p.parseTypeArguments()
	}
	attrs := p.parseJsxAttributes()

	if p.at(token.Slash) {
		slash := p.bump()
		rAngle := p.closeTag(inChildren)
		return factory.JsxSelfClosingElement(lAngle, name, attrs, slash, rAngle).
			WithTypeArguments(typeArgs).
			Build()
	}

	var rAngle *token.Token
	if p.at(token.Gt) {
		rAngle = p.bumpNoTrailingInto(lexer.JsxChild)
	} else {
		p.err(diag.SynUnexpectedToken, "expected '>' to end the opening tag")
		p.switchCtx(lexer.JsxChild)
	}
	opening := factory.JsxOpeningElement(lAngle, name, attrs, rAngle).
		WithTypeArguments(typeArgs).
		Build()

	children := p.parseJsxChildren()
	closing := p.parseJsxClosing(name, inChildren)
	return factory.JsxElement(opening, children, closing)
}

// closeTag consumes the final '>' of a tag and scans on in the context of
// whatever encloses the tag.
func (p *Parser) closeTag(inChildren bool) *token.Token {
	if !p.at(token.Gt) {
		p.err(diag.SynUnexpectedToken, "expected '>'")
		if inChildren {
			p.switchCtx(lexer.JsxChild)
		} else {
			p.switchCtx(lexer.Regular)
		}
		return nil
	}
	if inChildren {
		return p.bumpNoTrailingInto(lexer.JsxChild)
	}
	return p.bumpInto(lexer.Regular)
}

func (p *Parser) parseJsxName() *syntax.GreenNode {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectJsxName, "expected element name")
		return nil
	}
	name := factory.JsxName(p.bump())
	for p.at(token.Dot) {
		dot := p.bump()
		member := p.expect(token.Ident, diag.SynExpectJsxName, "expected member name after '.'")
		name = factory.JsxMemberName(name, dot, member)
	}
	return name
}

func (p *Parser) parseTypeArguments() *syntax.GreenNode {
	lAngle := p.bump()
	var refs []*syntax.GreenNode
	var seps []*token.Token
	for p.at(token.Ident) {
		refs = append(refs, factory.TypeReference(p.bump()))
		comma := p.eat(token.Comma)
		if comma == nil {
			break
		}
		seps = append(seps, comma)
	}
	if len(refs) == 0 {
		p.err(diag.SynExpectIdentifier, "expected type argument")
	}
	rAngle := p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type arguments")
	return factory.TypeArguments(lAngle, factory.TypeArgumentList(refs, seps), rAngle)
}

func (p *Parser) parseJsxAttributes() *syntax.GreenNode {
	var attrs []*syntax.GreenNode
	for {
		switch p.kind() {
		case token.Slash, token.Gt, token.EOF:
			return factory.JsxAttributeList(attrs...)
		case token.Ident:
			attrs = append(attrs, p.parseJsxAttribute())
		default:
			attrs = append(attrs, p.bogusToken("unexpected '"+p.cur.Tok.Text+"' in tag"))
		}
	}
}

func (p *Parser) parseJsxAttribute() *syntax.GreenNode {
	name := factory.JsxName(p.bump())
	if !p.at(token.Assign) {
		return factory.JsxAttribute(name, nil)
	}
	eq := p.bump()
	var value *syntax.GreenNode
	switch p.kind() {
	case token.StringLit:
		value = factory.JsxString(p.bump())
	case token.LBrace:
		lCurly := p.bumpInto(lexer.Regular)
		expr := p.parseExpressionOrReport()
		p.switchCtx(lexer.JsxTag)
		rCurly := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' after attribute expression")
		value = factory.JsxExpressionAttributeValue(lCurly, expr, rCurly)
	default:
		p.err(diag.SynUnexpectedToken, "expected attribute value")
	}
	return factory.JsxAttribute(name, factory.JsxAttributeInitializer(eq, value))
}

// parseJsxChildren runs in the JsxChild context and stops at '</' or EOF.
func (p *Parser) parseJsxChildren() *syntax.GreenNode {
	var children []*syntax.GreenNode
	for {
		switch p.kind() {
		case token.EOF:
			return factory.JsxChildList(children...)
		case token.JsxText:
			children = append(children, factory.JsxText(p.bump()))
		case token.LBrace:
			children = append(children, p.parseJsxExpressionChild())
		case token.Lt:
			if p.peekSecond(lexer.JsxTag) == token.Slash {
				return factory.JsxChildList(children...)
			}
			children = append(children, p.parseJsxTag(true))
		default:
			// Only reachable after recovery left a token from another context.
			children = append(children, p.bogusChild())
		}
	}
}

func (p *Parser) bogusChild() *syntax.GreenNode {
	n := p.bogusToken("unexpected '" + p.cur.Tok.Text + "' in element body")
	p.switchCtx(lexer.JsxChild)
	return n
}

func (p *Parser) parseJsxExpressionChild() *syntax.GreenNode {
	lCurly := p.bumpInto(lexer.Regular)
	var expr *syntax.GreenNode
	if !p.at(token.RBrace) {
		expr = p.parseExpressionOrReport()
	}
	var rCurly *token.Token
	if p.at(token.RBrace) {
		rCurly = p.bumpNoTrailingInto(lexer.JsxChild)
	} else {
		p.err(diag.SynUnexpectedToken, "expected '}' to close expression child")
		p.switchCtx(lexer.JsxChild)
	}
	return factory.JsxExpressionChild(lCurly, expr, rCurly)
}

func (p *Parser) parseJsxClosing(openName *syntax.GreenNode, inChildren bool) *syntax.GreenNode {
	if p.at(token.EOF) {
		p.err(diag.SynUnclosedJsxElement, "unclosed element <"+greenText(openName)+">")
		p.switchCtx(lexer.Regular)
		return nil
	}
	p.switchCtx(lexer.JsxTag)
	lAngle := p.bump()
	slash := p.bump()
	name := p.parseJsxName()
	if openName != nil && name != nil && greenText(name) != greenText(openName) {
		p.report(diag.SynMismatchedJsxTag, diag.SevError, p.lastSpan,
			"expected </"+greenText(openName)+">, found </"+greenText(name)+">")
	}
	rAngle := p.closeTag(inChildren)
	return factory.JsxClosingElement(lAngle, slash, name, rAngle)
}

// greenText returns the name text without trivia.
func greenText(name *syntax.GreenNode) string {
	if name == nil {
		return ""
	}
	return ast.JsxNameText(syntax.NewTree(name, 0).Root())
}
