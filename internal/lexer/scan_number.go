package lexer

import (
	"cstlint/internal/diag"
	"cstlint/internal/token"
)

// scanNumber accepts 0b..., 0o..., 0x..., decimals with an optional fraction
// and exponent, leading-dot fractions (.5), '_' separators and a trailing 'n'
// for big integers. Malformed numbers are reported and still produce a
// NumberLit so the parser sees an operand.
func (lx *Lexer) scanNumber() token.Kind {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			var digit func(byte) bool
			switch b1 {
			case 'b', 'B':
				digit = func(b byte) bool { return b == '0' || b == '1' }
			case 'o', 'O':
				digit = func(b byte) bool { return b >= '0' && b <= '7' }
			case 'x', 'X':
				digit = isHex
			}
			if digit != nil {
				lx.cursor.Bump()
				lx.cursor.Bump()
				if !digit(lx.cursor.Peek()) {
					lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digits after base prefix")
				}
				for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
				}
				lx.cursor.Eat('n')
				return token.NumberLit
			}
		}
	}

	lx.scanDigits()
	fraction := false
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDigits()
		fraction = true
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if c := lx.cursor.Peek(); c == '+' || c == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digit after exponent")
			return token.NumberLit
		}
		lx.scanDigits()
		fraction = true
	}
	if !fraction {
		lx.cursor.Eat('n')
	}
	return token.NumberLit
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
