package rules

import (
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

// keepTrivia returns replacement carrying the leading trivia of old's first
// token and the trailing trivia of its last token, so swapping old for a
// single token leaves the surrounding layout alone.
func keepTrivia(old *syntax.Node, replacement *token.Token) *token.Token {
	first, last := old.FirstToken(), old.LastToken()
	if first == nil || last == nil {
		return replacement
	}
	_, leading := token.MoveLeadingTrivia(first.Green())
	_, trailing := token.MoveTrailingTrivia(last.Green())
	return token.New(replacement.Kind, replacement.Text,
		append(leading, replacement.Leading...),
		append(replacement.Trailing, trailing...))
}
