package lexer

import (
	"cstlint/internal/diag"
	"cstlint/internal/source"
)

type Options struct {
	// Reporter receives lexical errors. May be nil; lexing continues either
	// way and the offending text becomes an Invalid token.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}
