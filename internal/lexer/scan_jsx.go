package lexer

import (
	"cstlint/internal/token"
)

// scanJsxText consumes child text up to the next '<', '{' or EOF. The text
// keeps its whitespace and line breaks; it carries no trivia.
func (lx *Lexer) scanJsxText() *token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '<' || b == '{' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return &token.Token{Kind: token.JsxText, Text: string(lx.file.Content[sp.Start:sp.End])}
}
