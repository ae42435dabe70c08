package fuzztests

import (
	"context"
	"testing"
	"time"

	"cstlint/internal/testkit"
)

// parseTimeout bounds a single parse; exceeding it means error recovery
// stopped consuming input.
const parseTimeout = 5 * time.Second

func FuzzParserRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		tree, file, _ := testkit.Parse("fuzz.jsx", string(input))
		if err := testkit.CheckRoundTrip(tree, string(input)); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
		if err := testkit.CheckSpanInvariants(tree, file); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang fails when parsing does not finish in time.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("<a><b><c></a>"))
	f.Add([]byte("typeof typeof typeof"))
	f.Add([]byte("((((((((((x"))
	f.Add([]byte("</>"))
	f.Add([]byte("<div attr={}></div"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			testkit.Parse("fuzz.jsx", string(input))
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
