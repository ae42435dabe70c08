package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cstlint/internal/lexer"
	"cstlint/internal/source"
	"cstlint/internal/token"
)

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type TokenOutput struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Span     source.Span    `json:"span"`
	Leading  []TriviaOutput `json:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty"`
}

func triviaOutput(pieces []token.Trivia) []TriviaOutput {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]TriviaOutput, len(pieces))
	for i, p := range pieces {
		out[i] = TriviaOutput{Kind: p.Kind.String(), Text: p.Text}
	}
	return out
}

func triviaKinds(pieces []token.Trivia) string {
	kinds := make([]string, len(pieces))
	for i, p := range pieces {
		kinds[i] = p.Kind.String()
	}
	return strings.Join(kinds, ", ")
}

// FormatTokensPretty writes one line per token with its position and the
// kinds of its leading and trailing trivia.
func FormatTokensPretty(w io.Writer, lexemes []lexer.Lexeme, fs *source.FileSet) error {
	for i, lm := range lexemes {
		startPos, endPos := fs.Resolve(lm.Span)
		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, lm.Tok.Kind.String())
		if lm.Tok.Text != "" {
			fmt.Fprintf(&sb, " %q", lm.Tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if len(lm.Tok.Leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", triviaKinds(lm.Tok.Leading))
		}
		if len(lm.Tok.Trailing) > 0 {
			fmt.Fprintf(&sb, " (trailing: %s)", triviaKinds(lm.Tok.Trailing))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens with their trivia as a JSON array.
func FormatTokensJSON(w io.Writer, lexemes []lexer.Lexeme) error {
	output := make([]TokenOutput, 0, len(lexemes))
	for _, lm := range lexemes {
		output = append(output, TokenOutput{
			Kind:     lm.Tok.Kind.String(),
			Text:     lm.Tok.Text,
			Span:     lm.Span,
			Leading:  triviaOutput(lm.Tok.Leading),
			Trailing: triviaOutput(lm.Tok.Trailing),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
