package token

import "strings"

// TriviaKind tags a trivia piece.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota // spaces and tabs
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	}
	return "Unknown"
}

// Trivia is a non-semantic fragment attached to a token edge.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Len returns the byte length of the piece.
func (t Trivia) Len() int { return len(t.Text) }

// Space builds a whitespace piece of n spaces.
func Space(n int) Trivia {
	return Trivia{Kind: TriviaSpace, Text: strings.Repeat(" ", n)}
}

// Newline builds a single "\n" piece.
func Newline() Trivia {
	return Trivia{Kind: TriviaNewline, Text: "\n"}
}

// TriviaText concatenates the text of pieces.
func TriviaText(pieces []Trivia) string {
	switch len(pieces) {
	case 0:
		return ""
	case 1:
		return pieces[0].Text
	}
	var b strings.Builder
	for _, p := range pieces {
		b.WriteString(p.Text)
	}
	return b.String()
}

func triviaLen(pieces []Trivia) int {
	n := 0
	for _, p := range pieces {
		n += len(p.Text)
	}
	return n
}
