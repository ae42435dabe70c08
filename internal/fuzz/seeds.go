package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"cstlint/internal/rules"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
	maxFuzzInput = 1 << 16
)

var baseSeeds = []string{
	"",
	"typeof foo === \"strnig\";\n",
	"<div></div>;\n",
	"<Foo<T>></Foo>;\n",
	"<Foo.bar  ></Foo.bar>; // tail\n",
	"/* lead */ typeof a == typeof b\n",
	"typeof x !== Object ? <a></a> : <b>text</b>\n",
	"'unterminated\n<div",
	"\ufefftypeof y == 'number'\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range baseSeeds {
		f.Add([]byte(s))
	}
	addRuleExampleSeeds(f)
	addTestdataSeeds(f)
}

// addRuleExampleSeeds uses the documented examples of every rule.
func addRuleExampleSeeds(f *testing.F) {
	for _, r := range rules.All() {
		m := r.Metadata()
		for _, ex := range m.Valid {
			f.Add([]byte(ex))
		}
		for _, ex := range m.Invalid {
			f.Add([]byte(ex))
		}
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".js", ".jsx", ".ts", ".tsx":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog shortens input for failure messages.
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
