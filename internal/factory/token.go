package factory

import (
	"strings"

	"cstlint/internal/token"
)

// Token builds a token with exact text and trivia.
func Token(kind token.Kind, text string, leading, trailing []token.Trivia) *token.Token {
	return token.New(kind, text, leading, trailing)
}

// Punct builds a trivia-free token of a fixed-spelling kind.
func Punct(kind token.Kind) *token.Token {
	return token.New(kind, kind.Text(), nil, nil)
}

// Ident builds a trivia-free identifier token.
func Ident(name string) *token.Token {
	return token.New(token.Ident, name, nil, nil)
}

// StringLiteral builds a double-quoted string token around text.
func StringLiteral(text string) *token.Token {
	return token.New(token.StringLit, quote(text, '"'), nil, nil)
}

// StringLiteralSingleQuotes builds a single-quoted string token around text.
func StringLiteralSingleQuotes(text string) *token.Token {
	return token.New(token.StringLit, quote(text, '\''), nil, nil)
}

func quote(text string, q byte) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte(q)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == q || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(q)
	return b.String()
}
