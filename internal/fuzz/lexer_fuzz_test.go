package fuzztests

import (
	"strings"
	"testing"

	"cstlint/internal/diag"
	"cstlint/internal/lexer"
	"cstlint/internal/source"
)

func FuzzLexerRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.jsx", input))
		bag := diag.NewBag(64)
		lexemes := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var buf strings.Builder
		var prevEnd uint32
		for _, lm := range lexemes {
			if lm.Full.Start != prevEnd {
				t.Fatalf("gap before %s at %d (previous end %d)", lm.Tok.Kind, lm.Full.Start, prevEnd)
			}
			if lm.Span.Start < lm.Full.Start || lm.Span.End > lm.Full.End {
				t.Fatalf("token span %s outside full span %s", lm.Span, lm.Full)
			}
			prevEnd = lm.Full.End
			lm.Tok.WriteTo(&buf)
		}
		if buf.String() != string(input) {
			t.Fatalf("round trip mismatch\ninput: %q\ngot:   %q", truncateForLog(input, 200), truncateForLog([]byte(buf.String()), 200))
		}
	})
}
