package parser

import (
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// getDiagnosticSpan picks the best span for a diagnostic at cur. At EOF the
// position right after the last consumed token reads better than the end of
// the file.
func (p *Parser) getDiagnosticSpan() source.Span {
	if p.at(token.EOF) && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.cur.Span
}

// expect consumes a token of kind k. Otherwise it reports and returns nil,
// which leaves the slot absent.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *token.Token {
	if p.at(k) {
		return p.bump()
	}
	p.err(code, msg)
	return nil
}

// eat consumes a token of kind k if present.
func (p *Parser) eat(k token.Kind) *token.Token {
	if p.at(k) {
		return p.bump()
	}
	return nil
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(diag.New(sev, code, sp, msg))
	return true
}

// bogusToken wraps cur in a Bogus node. Invalid tokens were already
// reported by the lexer.
func (p *Parser) bogusToken(msg string) *syntax.GreenNode {
	if !p.at(token.Invalid) {
		p.err(diag.SynUnexpectedToken, msg)
	}
	return factory.Bogus(syntax.TokenElement(p.bump()))
}

// isTerminator reports tokens that close an enclosing construct and must not
// be swallowed by error recovery.
func (p *Parser) isTerminator() bool {
	switch p.kind() {
	case token.EOF, token.Semicolon, token.RParen, token.RBrace, token.RBracket:
		return true
	}
	return false
}
