package lexer

import (
	"cstlint/internal/token"
)

// scanIdentOrKeyword scans an identifier and checks it against the keyword
// table. Keywords are case-sensitive.
func (lx *Lexer) scanIdentOrKeyword() token.Kind {
	start := lx.cursor.Mark()
	if !lx.scanIdentRunes(false) {
		return lx.scanUnknown()
	}
	sp := lx.cursor.SpanFrom(start)
	if k, ok := token.LookupKeyword(string(lx.file.Content[sp.Start:sp.End])); ok {
		return k
	}
	return token.Ident
}

// scanJsxName scans a tag or attribute name. Dashes are allowed after the
// first character and keywords are ordinary names.
func (lx *Lexer) scanJsxName() token.Kind {
	if !lx.scanIdentRunes(true) {
		return lx.scanUnknown()
	}
	return token.Ident
}

// scanIdentRunes consumes one identifier. It consumes nothing and returns
// false when the cursor is not at an identifier start.
func (lx *Lexer) scanIdentRunes(allowDash bool) bool {
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return false
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) && !(allowDash && b == '-') {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return true
		}
		lx.bumpRune()
	}
}
