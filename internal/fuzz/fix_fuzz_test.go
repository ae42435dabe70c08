package fuzztests

import (
	"context"
	"errors"
	"testing"

	"cstlint/internal/config"
	"cstlint/internal/driver"
	"cstlint/internal/fix"
	"cstlint/internal/testkit"
)

// FuzzFixAll applies every fix, unsafe ones included, and checks that the
// result still parses losslessly and that a second pass finds nothing to do.
func FuzzFixAll(f *testing.F) {
	addCorpusSeeds(f)
	an, err := driver.NewAnalyzer(config.Default())
	if err != nil {
		f.Fatalf("NewAnalyzer: %v", err)
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		tree, _, _ := testkit.Parse("fuzz.jsx", string(input))

		res, err := fix.FixAll(context.Background(), an, tree, fix.FixAllOptions{AllowUnsafe: true})
		if errors.Is(err, fix.ErrNotConverged) {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
		if err != nil {
			t.Fatalf("FixAll: %v", err)
		}

		fixed := res.Tree.Text()
		reparsed, _, _ := testkit.Parse("fixed.jsx", fixed)
		if err := testkit.CheckRoundTrip(reparsed, fixed); err != nil {
			t.Fatalf("fixed text does not round trip: %v", err)
		}

		again, err := fix.FixAll(context.Background(), an, reparsed, fix.FixAllOptions{AllowUnsafe: true})
		if err != nil {
			t.Fatalf("second FixAll: %v", err)
		}
		if len(again.Applied) != 0 {
			t.Fatalf("fixes not idempotent: %q still had %d fixes", fixed, len(again.Applied))
		}
	})
}
