package lexer

import (
	"cstlint/internal/diag"
	"cstlint/internal/token"
)

// scanString scans a '...' or "..." literal. Backslash escapes are skipped
// over, not decoded. JSX attribute strings have no escapes and may span
// lines. An unterminated literal is reported and becomes an Invalid token
// ending before the line break.
func (lx *Lexer) scanString(jsx bool) token.Kind {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return token.StringLit
		case b == '\\' && !jsx:
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			lx.cursor.Bump()
		case (b == '\n' || b == '\r') && !jsx:
			lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "newline in string literal")
			return token.Invalid
		default:
			lx.cursor.Bump()
		}
	}
	lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	return token.Invalid
}
