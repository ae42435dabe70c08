package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cstlint/internal/config"
	"cstlint/internal/diag"
	"cstlint/internal/observ"
	"cstlint/internal/source"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestLintDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.jsx":                "<div></div>;\n",
		"b.js":                 "typeof x === \"strnig\";\n",
		"notes.txt":            "<div></div>",
		"node_modules/dep.js":  "typeof x === \"nope\";\n",
		"vendor/bundle.min.js": "typeof x === \"nope\";\n",
	})
	cfg := config.Default()
	cfg.Path = filepath.Join(dir, config.FileName)
	cfg.Linter.Ignore = []string{"*.min.js"}

	var (
		mu   sync.Mutex
		done int
	)
	timer := observ.NewTimer()
	_, results, err := LintDir(context.Background(), dir, Options{
		Config: cfg,
		Jobs:   2,
		Timer:  timer,
		Observer: func(ev FileEvent) {
			if ev.Status == FileDone {
				mu.Lock()
				done++
				mu.Unlock()
			}
		},
	})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if done != 2 {
		t.Fatalf("observer saw %d finished files, want 2", done)
	}

	a, b := results[0], results[1]
	if filepath.Base(a.Path) != "a.jsx" || filepath.Base(b.Path) != "b.js" {
		t.Fatalf("results out of order: %s, %s", a.Path, b.Path)
	}
	if got := codes(a.Bag); len(got) != 1 || got[0] != diag.StyleUseSelfClosingElement {
		t.Fatalf("a.jsx codes = %v", got)
	}
	if d := a.Bag.Items()[0]; d.Severity != diag.SevWarning || len(d.Fixes) != 1 {
		t.Fatalf("a.jsx diagnostic = %+v", d)
	}
	if got := codes(b.Bag); len(got) != 1 || got[0] != diag.SuspiciousUseValidTypeof {
		t.Fatalf("b.js codes = %v", got)
	}
	if b.Analysis == nil || b.Tree == nil || b.Cached {
		t.Fatalf("b.js should carry a fresh analysis")
	}

	phases := map[string]int{}
	for _, p := range timer.Report().Phases {
		phases[p.Name] = p.Count
	}
	if phases["load"] != 1 || phases["parse"] != 2 || phases["analyze"] != 2 {
		t.Fatalf("timer phases = %v", phases)
	}
}

func TestLintRespectsRuleLevels(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.jsx": "<div></div>;\ntypeof x === \"strnig\";\n"})
	cfg := config.Default()
	cfg.Linter.Rules = map[string]string{"useSelfClosingElements": "off", "useValidTypeof": "warn"}

	_, res, err := LintFile(context.Background(), filepath.Join(dir, "a.jsx"), Options{Config: cfg})
	if err != nil {
		t.Fatalf("LintFile: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SuspiciousUseValidTypeof || items[0].Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostics %+v", items)
	}
}

func TestLintCache(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.jsx": "<div></div>;\ntypeof x === \"strnig\";\n"})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	path := filepath.Join(dir, "a.jsx")

	_, first, err := LintFile(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Cached {
		t.Fatalf("first run cannot be cached")
	}

	_, second, err := LintFile(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Cached || second.Analysis != nil {
		t.Fatalf("second run should be served from the cache")
	}
	want, got := first.Bag.Items(), second.Bag.Items()
	if len(want) != len(got) {
		t.Fatalf("cached %d diagnostics, want %d", len(got), len(want))
	}
	for i := range want {
		if want[i].Message != got[i].Message || want[i].Primary != got[i].Primary || len(want[i].Fixes) != len(got[i].Fixes) {
			t.Fatalf("cached diagnostic %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	cfg := config.Default()
	cfg.Formatter.QuoteStyle = "single"
	_, third, err := LintFile(context.Background(), path, Options{Config: cfg, Cache: cache})
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Cached {
		t.Fatalf("a different configuration must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	_, fourth, err := LintFile(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("fourth run: %v", err)
	}
	if fourth.Cached {
		t.Fatalf("dropped cache still hit")
	}
}

func TestLintPathsReportsLoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ok.js": "a;\n"})
	paths := []string{filepath.Join(dir, "missing.js"), filepath.Join(dir, "ok.js")}

	results, err := LintPaths(context.Background(), source.NewFileSetWithBase(dir), paths, Options{})
	if err != nil {
		t.Fatalf("LintPaths: %v", err)
	}
	if results[0].File != nil || codes(results[0].Bag)[0] != diag.IOLoadFileError {
		t.Fatalf("missing file result = %+v", results[0])
	}
	if results[1].File == nil || results[1].Bag.Len() != 0 {
		t.Fatalf("ok.js result = %+v", results[1].Bag.Items())
	}
}

func TestLintFileTimings(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "a;\n"})
	_, res, err := LintFile(context.Background(), filepath.Join(dir, "a.js"), Options{FileTimings: true})
	if err != nil {
		t.Fatalf("LintFile: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.AnaTimings || len(items[0].Notes) != 1 {
		t.Fatalf("expected one timings diagnostic, got %+v", items)
	}
}

func TestLintCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "a;\n", "b.js": "b;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := LintDir(ctx, dir, Options{Jobs: 1}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.tsx":          "",
		"a.JS":           "",
		"c.css":          "",
		".git/hook.js":   "",
		"sub/d.mjs":      "",
		"sub/e.cjs":      "",
		"node_modules/x": "",
	})
	files, err := ListSourceFiles(dir, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		names = append(names, filepath.ToSlash(rel))
	}
	want := []string{"a.JS", "b.tsx", "sub/d.mjs", "sub/e.cjs"}
	if len(names) != len(want) {
		t.Fatalf("files = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("files = %v, want %v", names, want)
		}
	}
}
