package lexer

import (
	"cstlint/internal/diag"
	"cstlint/internal/token"
)

// collectLeadingTrivia gathers the trivia in front of a significant token
// into lx.hold:
//   - runs of ' ' and '\t' become one TriviaSpace
//   - runs of line breaks ("\n", "\r\n", "\r") become one TriviaNewline
//   - //... up to the line break is a TriviaLineComment
//   - /* ... */ is a TriviaBlockComment; unterminated ones are reported and
//     run to EOF
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t':
			lx.hold = append(lx.hold, lx.scanSpaces())
		case b == '\n' || b == '\r':
			start := lx.cursor.Mark()
			for {
				c := lx.cursor.Peek()
				if c != '\n' && c != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.hold = append(lx.hold, lx.trivia(token.TriviaNewline, start))
		case b == '/':
			piece, ok := lx.scanComment()
			if !ok {
				return
			}
			lx.hold = append(lx.hold, piece)
		default:
			return
		}
	}
}

// collectTrailingTrivia gathers spaces and comments after a token up to, but
// not including, the next line break. A block comment spanning lines ends
// the trailing run and is left for the next token.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t':
			out = append(out, lx.scanSpaces())
		case b == '/':
			start := lx.cursor.Mark()
			piece, ok := lx.scanComment()
			if !ok {
				return out
			}
			if piece.Kind == token.TriviaBlockComment && containsLineBreak(piece.Text) {
				lx.cursor.Reset(start)
				return out
			}
			out = append(out, piece)
		default:
			return out
		}
	}
	return out
}

func (lx *Lexer) scanSpaces() token.Trivia {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.trivia(token.TriviaSpace, start)
}

// scanComment scans //... or /*...*/. It leaves the cursor untouched and
// returns false when the slash starts an operator.
func (lx *Lexer) scanComment() (token.Trivia, bool) {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return token.Trivia{}, false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	if b1 == '/' {
		for !lx.cursor.EOF() {
			if c := lx.cursor.Peek(); c == '\n' || c == '\r' {
				break
			}
			lx.cursor.Bump()
		}
		return lx.trivia(token.TriviaLineComment, start), true
	}
	closed := false
	for !lx.cursor.EOF() {
		if lx.tryBytes('*', '/') {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	return lx.trivia(token.TriviaBlockComment, start), true
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{Kind: kind, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func containsLineBreak(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}
