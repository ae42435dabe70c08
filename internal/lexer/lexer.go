package lexer

import (
	"cstlint/internal/source"
	"cstlint/internal/token"
)

// Context selects the scanning rules for the next token. JSX changes what
// counts as a name and turns text between tags into a single token, so the
// parser tells the lexer where it is.
type Context uint8

const (
	// Regular is plain expression syntax.
	Regular Context = iota
	// JsxTag is the inside of `<...>`: names may contain '-', keywords are
	// plain names and strings have no escapes.
	JsxTag
	// JsxChild is the content between tags: everything up to '<' or '{' is
	// one JsxText token without trivia.
	JsxChild
)

// Lexeme is a token with its position in the file.
type Lexeme struct {
	Tok *token.Token
	// Span covers the token text.
	Span source.Span
	// Full covers leading trivia, text and trailing trivia.
	Full source.Span
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // leading trivia of the token being scanned
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Offset returns the position the next token starts at.
func (lx *Lexer) Offset() uint32 { return lx.cursor.Off }

// Rewind moves the lexer back to off, which must be a token boundary
// previously returned in a Lexeme's Full span. The parser uses it to re-scan
// a token under a different Context.
func (lx *Lexer) Rewind(off uint32) {
	lx.cursor.Reset(Mark(off))
	lx.hold = lx.hold[:0]
}

// Next scans the next token under ctx, with leading trivia and trailing
// trivia up to the end of the line. After EOF it keeps returning EOF.
func (lx *Lexer) Next(ctx Context) Lexeme {
	return lx.next(ctx, true)
}

// NextNoTrailing is Next without trailing trivia. It is used for the '>' and
// '}' that open JSX children: the whitespace after them is child text.
func (lx *Lexer) NextNoTrailing(ctx Context) Lexeme {
	return lx.next(ctx, false)
}

func (lx *Lexer) next(ctx Context, trailing bool) Lexeme {
	full := lx.cursor.Mark()

	if ctx == JsxChild && !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b != '<' && b != '{' {
			tok := lx.scanJsxText()
			sp := lx.cursor.SpanFrom(full)
			return Lexeme{Tok: tok, Span: sp, Full: sp}
		}
	}

	lx.collectLeadingTrivia()
	leading := cloneHold(lx.hold)
	lx.hold = lx.hold[:0]

	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		sp := lx.cursor.SpanFrom(start)
		return Lexeme{
			Tok:  &token.Token{Kind: token.EOF, Leading: leading},
			Span: sp,
			Full: lx.cursor.SpanFrom(full),
		}
	}

	var kind token.Kind
	ch := lx.cursor.Peek()
	switch {
	case ctx == JsxTag && (isIdentStartByte(ch) || ch >= utf8RuneSelf):
		kind = lx.scanJsxName()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		kind = lx.scanIdentOrKeyword()
	case isDec(ch), ch == '.' && lx.isNumberAfterDot():
		kind = lx.scanNumber()
	case ch == '"' || ch == '\'':
		kind = lx.scanString(ctx == JsxTag)
	case ctx == JsxTag:
		kind = lx.scanJsxPunct()
	default:
		kind = lx.scanOperatorOrPunct()
	}
	sp := lx.cursor.SpanFrom(start)

	tok := &token.Token{
		Kind:    kind,
		Text:    string(lx.file.Content[sp.Start:sp.End]),
		Leading: leading,
	}
	if trailing {
		tok.Trailing = lx.collectTrailingTrivia()
	}
	return Lexeme{Tok: tok, Span: sp, Full: lx.cursor.SpanFrom(full)}
}

// Tokenize scans the whole file in the Regular context, EOF included.
func Tokenize(file *source.File, opts Options) []Lexeme {
	lx := New(file, opts)
	var out []Lexeme
	for {
		lm := lx.Next(Regular)
		out = append(out, lm)
		if lm.Tok.Kind == token.EOF {
			return out
		}
	}
}

func cloneHold(pieces []token.Trivia) []token.Trivia {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]token.Trivia, len(pieces))
	copy(out, pieces)
	return out
}
