package lexer

import (
	"cstlint/internal/diag"
	"cstlint/internal/token"
)

// scanOperatorOrPunct is greedy: three-byte operators first, then two-byte,
// then single bytes.
func (lx *Lexer) scanOperatorOrPunct() token.Kind {
	switch {
	case lx.tryBytes('=', '=', '='):
		return token.EqEqEq
	case lx.tryBytes('!', '=', '='):
		return token.BangEqEq
	case lx.tryBytes('=', '='):
		return token.EqEq
	case lx.tryBytes('!', '='):
		return token.BangEq
	case lx.tryBytes('<', '='):
		return token.LtEq
	case lx.tryBytes('>', '='):
		return token.GtEq
	case lx.tryBytes('&', '&'):
		return token.AndAnd
	case lx.tryBytes('|', '|'):
		return token.OrOr
	case lx.tryBytes('?', '?'):
		return token.QuestionQuestion
	}
	if k, ok := singlePunct(lx.cursor.Peek()); ok {
		lx.cursor.Bump()
		return k
	}
	return lx.scanUnknown()
}

// scanJsxPunct only knows single-byte punctuation: inside a tag `>=` is a
// closing bracket followed by text.
func (lx *Lexer) scanJsxPunct() token.Kind {
	if k, ok := singlePunct(lx.cursor.Peek()); ok {
		lx.cursor.Bump()
		return k
	}
	return lx.scanUnknown()
}

func singlePunct(b byte) (token.Kind, bool) {
	switch b {
	case '+':
		return token.Plus, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Star, true
	case '/':
		return token.Slash, true
	case '%':
		return token.Percent, true
	case '!':
		return token.Bang, true
	case '~':
		return token.Tilde, true
	case '=':
		return token.Assign, true
	case '<':
		return token.Lt, true
	case '>':
		return token.Gt, true
	case '?':
		return token.Question, true
	case ':':
		return token.Colon, true
	case ';':
		return token.Semicolon, true
	case ',':
		return token.Comma, true
	case '.':
		return token.Dot, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	}
	return token.Invalid, false
}

// scanUnknown consumes one rune and reports it.
func (lx *Lexer) scanUnknown() token.Kind {
	start := lx.cursor.Mark()
	lx.bumpRune()
	if lx.cursor.Off == uint32(start) {
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character")
	return token.Invalid
}
