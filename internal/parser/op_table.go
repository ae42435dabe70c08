package parser

import (
	"cstlint/internal/token"
)

// Binary operator precedence; higher binds tighter.
const (
	precCoalesce       = 1 // ??
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precEquality       = 4 // == != === !==
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// binaryPrec returns the precedence of kind as a binary operator and whether
// it builds a LogicalExpression. Zero means kind is not a binary operator.
func binaryPrec(kind token.Kind) (prec int, logical bool) {
	switch kind {
	case token.QuestionQuestion:
		return precCoalesce, true
	case token.OrOr:
		return precLogicalOr, true
	case token.AndAnd:
		return precLogicalAnd, true
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	}
	return 0, false
}

func isUnaryOperator(kind token.Kind) bool {
	switch kind {
	case token.KwTypeof, token.KwVoid, token.KwDelete,
		token.Bang, token.Minus, token.Plus, token.Tilde:
		return true
	}
	return false
}
