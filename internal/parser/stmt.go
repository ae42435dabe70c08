package parser

import (
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

func (p *Parser) parseStatement() *syntax.GreenNode {
	switch p.kind() {
	case token.KwConst, token.KwLet, token.KwVar:
		return p.parseVariableStatement()
	}
	if p.at(token.Semicolon) {
		return factory.ExpressionStatement(nil, p.bump())
	}
	expr := p.parseExpression()
	if expr == nil {
		// A stray closing token at statement level.
		return p.bogusToken("unexpected '" + p.cur.Tok.Text + "'")
	}
	return factory.ExpressionStatement(expr, p.eat(token.Semicolon))
}

func (p *Parser) parseVariableStatement() *syntax.GreenNode {
	kw := p.bump()
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	eq := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in declaration")
	var init *syntax.GreenNode
	if eq != nil {
		init = p.parseExpressionOrReport()
	}
	return factory.VariableStatement(kw, name, eq, init, p.eat(token.Semicolon))
}
