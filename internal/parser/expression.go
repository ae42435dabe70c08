package parser

import (
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// parseExpression returns nil when no expression starts at cur and nothing
// was consumed.
func (p *Parser) parseExpression() *syntax.GreenNode {
	test := p.parseBinary(1)
	if test == nil || !p.at(token.Question) {
		return test
	}
	question := p.bump()
	cons := p.parseExpressionOrReport()
	colon := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression")
	alt := p.parseExpressionOrReport()
	return factory.ConditionalExpression(test, question, cons, colon, alt)
}

func (p *Parser) parseExpressionOrReport() *syntax.GreenNode {
	expr := p.parseExpression()
	if expr == nil {
		p.err(diag.SynExpectExpression, "expected expression")
	}
	return expr
}

// parseBinary is precedence climbing over left-associative operators.
func (p *Parser) parseBinary(minPrec int) *syntax.GreenNode {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		prec, logical := binaryPrec(p.kind())
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.bump()
		right := p.parseBinary(prec + 1)
		if right == nil {
			p.err(diag.SynExpectExpression, "expected expression after '"+op.Text+"'")
		}
		if logical {
			left = factory.LogicalExpression(left, op, right)
		} else {
			left = factory.BinaryExpression(left, op, right)
		}
	}
}

func (p *Parser) parseUnary() *syntax.GreenNode {
	if !isUnaryOperator(p.kind()) {
		return p.parsePostfix()
	}
	op := p.bump()
	arg := p.parseUnary()
	if arg == nil {
		p.err(diag.SynExpectExpression, "expected expression after '"+op.Text+"'")
	}
	return factory.UnaryExpression(op, arg)
}

func (p *Parser) parsePostfix() *syntax.GreenNode {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.kind() {
		case token.Dot:
			dot := p.bump()
			member := p.expect(token.Ident, diag.SynExpectIdentifier, "expected property name after '.'")
			expr = factory.StaticMemberExpression(expr, dot, member)
		case token.LParen:
			expr = factory.CallExpression(expr, p.parseCallArguments())
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArguments() *syntax.GreenNode {
	lparen := p.bump()
	var args []*syntax.GreenNode
	var seps []*token.Token
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseExpression()
		if arg == nil {
			if p.isTerminator() {
				break
			}
			arg = p.bogusToken("unexpected token in argument list")
		}
		args = append(args, arg)
		comma := p.eat(token.Comma)
		if comma == nil {
			break
		}
		seps = append(seps, comma)
	}
	rparen := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
	return factory.CallArguments(lparen, factory.CallArgumentList(args, seps), rparen)
}

func (p *Parser) parsePrimary() *syntax.GreenNode {
	switch p.kind() {
	case token.Ident:
		return factory.IdentifierExpression(p.bump())
	case token.StringLit:
		return factory.StringLiteralExpression(p.bump())
	case token.NumberLit:
		return factory.NumberLiteralExpression(p.bump())
	case token.KwTrue, token.KwFalse:
		return factory.BooleanLiteralExpression(p.bump())
	case token.KwNull:
		return factory.NullLiteralExpression(p.bump())
	case token.LParen:
		lparen := p.bump()
		inner := p.parseExpressionOrReport()
		rparen := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return factory.ParenthesizedExpression(lparen, inner, rparen)
	case token.Lt:
		return factory.JsxTagExpression(p.parseJsxTag(false))
	}
	if p.isTerminator() {
		return nil
	}
	return p.bogusToken("expected expression, found '" + p.cur.Tok.Text + "'")
}
