package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cstlint/internal/fix"
)

const fixInput = "<div></div>;\ntypeof x === \"strnig\";\n"

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestFixFileAll(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.jsx": fixInput})
	path := filepath.Join(dir, "a.jsx")

	res, err := FixFile(context.Background(), path, FixOptions{Mode: fix.ApplyModeAll, AllowUnsafe: true})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	want := "<div />;\ntypeof x === \"string\";\n"
	if res.After != want || !res.Written {
		t.Fatalf("after = %q (written %v), want %q", res.After, res.Written, want)
	}
	if got := readFile(t, path); got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
	if len(res.Applied) != 2 || res.Iterations != 1 || len(res.Remaining) != 0 {
		t.Fatalf("applied %d in %d rounds, %d remaining", len(res.Applied), res.Iterations, len(res.Remaining))
	}
}

func TestFixFileDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.jsx": fixInput})
	path := filepath.Join(dir, "a.jsx")

	res, err := FixFile(context.Background(), path, FixOptions{Mode: fix.ApplyModeOnce, AllowUnsafe: true, DryRun: true})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if !res.Changed() || res.Written {
		t.Fatalf("dry run: changed %v written %v", res.Changed(), res.Written)
	}
	if res.After != "<div />;\ntypeof x === \"strnig\";\n" {
		t.Fatalf("after = %q", res.After)
	}
	if len(res.Edits) != 1 {
		t.Fatalf("edits = %+v", res.Edits)
	}
	if got := readFile(t, path); got != fixInput {
		t.Fatalf("dry run modified the file: %q", got)
	}
}

func TestFixFileSkipsUnsafeByDefault(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.jsx": fixInput})

	res, err := FixFile(context.Background(), filepath.Join(dir, "a.jsx"), FixOptions{Mode: fix.ApplyModeOnce})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if res.Changed() || len(res.Skipped) != 2 {
		t.Fatalf("changed %v, skipped %+v", res.Changed(), res.Skipped)
	}
}

func TestFixFileByID(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.jsx": fixInput})
	path := filepath.Join(dir, "a.jsx")

	_, linted, err := LintFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("LintFile: %v", err)
	}
	var id string
	for _, d := range linted.Bag.Items() {
		if d.Category == "lint/suspicious/useValidTypeof" {
			id = d.Fixes[0].ID
		}
	}
	if id == "" {
		t.Fatalf("no typeof fix in %+v", linted.Bag.Items())
	}

	res, err := FixFile(context.Background(), path, FixOptions{Mode: fix.ApplyModeID, TargetID: id})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if got := readFile(t, path); got != "<div></div>;\ntypeof x === \"string\";\n" {
		t.Fatalf("file = %q", got)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != id {
		t.Fatalf("applied %+v", res.Applied)
	}

	_, err = FixFile(context.Background(), path, FixOptions{Mode: fix.ApplyModeID, TargetID: "nope-0-0"})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestFixFileKeepsBOMAndMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jsx")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF<p></p>;\n"), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := FixFile(context.Background(), path, FixOptions{Mode: fix.ApplyModeAll, AllowUnsafe: true}); err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if got := readFile(t, path); got != "\xEF\xBB\xBF<p />;\n" {
		t.Fatalf("file = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestFixDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.jsx":     "<a></a>;\n",
		"sub/b.jsx": "<b></b>;\n",
		"clean.js":  "x;\n",
	})
	results, err := FixDir(context.Background(), dir, FixOptions{Mode: fix.ApplyModeAll, AllowUnsafe: true, Options: Options{Jobs: 2}})
	if err != nil {
		t.Fatalf("FixDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	changed := 0
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Path, r.Err)
		}
		if r.Changed() {
			changed++
		}
	}
	if changed != 2 {
		t.Fatalf("changed %d files, want 2", changed)
	}
	if got := readFile(t, filepath.Join(dir, "sub", "b.jsx")); got != "<b />;\n" {
		t.Fatalf("sub/b.jsx = %q", got)
	}
}
