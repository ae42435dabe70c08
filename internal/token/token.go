package token

import "strings"

// Token is an immutable leaf of the syntax tree. Tokens are shared by pointer
// between tree versions; never modify one after construction.
type Token struct {
	Kind     Kind
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// New builds a detached token. The trivia slices are copied.
func New(kind Kind, text string, leading, trailing []Trivia) *Token {
	return &Token{
		Kind:     kind,
		Text:     text,
		Leading:  cloneTrivia(leading),
		Trailing: cloneTrivia(trailing),
	}
}

// Width returns the full length of the token including its trivia.
func (t *Token) Width() int {
	return triviaLen(t.Leading) + len(t.Text) + triviaLen(t.Trailing)
}

// LeadingLen returns the byte length of the leading trivia.
func (t *Token) LeadingLen() int { return triviaLen(t.Leading) }

// TrailingLen returns the byte length of the trailing trivia.
func (t *Token) TrailingLen() int { return triviaLen(t.Trailing) }

// FullText returns leading trivia, text and trailing trivia concatenated.
func (t *Token) FullText() string {
	var b strings.Builder
	b.Grow(t.Width())
	t.WriteTo(&b)
	return b.String()
}

// WriteTo appends the full text of the token to b.
func (t *Token) WriteTo(b *strings.Builder) {
	for _, p := range t.Leading {
		b.WriteString(p.Text)
	}
	b.WriteString(t.Text)
	for _, p := range t.Trailing {
		b.WriteString(p.Text)
	}
}

// WithLeading returns a copy of t with its leading trivia replaced.
func (t *Token) WithLeading(pieces []Trivia) *Token {
	return New(t.Kind, t.Text, pieces, t.Trailing)
}

// WithTrailing returns a copy of t with its trailing trivia replaced.
func (t *Token) WithTrailing(pieces []Trivia) *Token {
	return New(t.Kind, t.Text, t.Leading, pieces)
}

// MoveLeadingTrivia detaches the leading trivia of t. It returns the token
// without leading trivia together with the pieces that were removed; the
// caller must attach moved to exactly one new token.
func MoveLeadingTrivia(t *Token) (stripped *Token, moved []Trivia) {
	return t.WithLeading(nil), cloneTrivia(t.Leading)
}

// MoveTrailingTrivia is the trailing-edge counterpart of MoveLeadingTrivia.
func MoveTrailingTrivia(t *Token) (stripped *Token, moved []Trivia) {
	return t.WithTrailing(nil), cloneTrivia(t.Trailing)
}

// HasTrailingWhitespace reports whether the trailing trivia ends in a space
// or tab.
func (t *Token) HasTrailingWhitespace() bool {
	n := len(t.Trailing)
	return n > 0 && t.Trailing[n-1].Kind == TriviaSpace
}

func cloneTrivia(pieces []Trivia) []Trivia {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]Trivia, len(pieces))
	copy(out, pieces)
	return out
}
