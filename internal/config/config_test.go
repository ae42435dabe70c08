package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cstlint/internal/analyzer"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[formatter]
quote_style = "single"

[linter]
max_diagnostics = 20
ignore = ["vendor/*", "*.min.js"]

[linter.rules]
useSelfClosingElements = "off"
useValidTypeof = "warn"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Path != path || cfg.Linter.MaxDiagnostics != 20 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	opts, err := cfg.AnalyzerOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.PreferredQuote != analyzer.QuoteSingle {
		t.Fatalf("quote %v", opts.PreferredQuote)
	}
	if opts.Rules["useSelfClosingElements"] != analyzer.LevelOff || opts.Rules["useValidTypeof"] != analyzer.LevelWarn {
		t.Fatalf("levels %v", opts.Rules)
	}
	if !cfg.Ignored(filepath.Join(dir, "vendor", "lib.js")) || !cfg.Ignored(filepath.Join(dir, "a", "app.min.js")) {
		t.Fatalf("ignore patterns not applied")
	}
	if cfg.Ignored(filepath.Join(dir, "src", "app.js")) {
		t.Fatalf("src/app.js must not be ignored")
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[linter.rules]\nuseValidTypeof = \"error\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Formatter.QuoteStyle != "double" || cfg.Linter.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"quote style", "[formatter]\nquote_style = \"backtick\"\n", "quote_style"},
		{"level", "[linter.rules]\nuseValidTypeof = \"loud\"\n", "invalid rule level"},
		{"unknown rule", "[linter.rules]\nuseValidTypof = \"warn\"\n", `did you mean "useValidTypeof"`},
		{"unknown key", "[linter]\nmax_diagnostic = 3\n", "unknown keys linter.max_diagnostic"},
		{"negative max", "[linter]\nmax_diagnostics = -1\n", "must not be negative"},
		{"bad pattern", "[linter]\nignore = [\"[\"]\n", "bad pattern"},
	}
	for _, tt := range tests {
		path := writeConfig(t, t.TempDir(), tt.content)
		_, err := Load(path)
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}

	path := writeConfig(t, t.TempDir(), "[formatter\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[formatter]\nquote_style = \"single\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file := filepath.Join(nested, "app.jsx")
	if err := os.WriteFile(file, []byte("<div />"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Discover(file)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if cfg.Formatter.QuoteStyle != "single" {
		t.Fatalf("config not found from %s", file)
	}
}

func TestFingerprintTracksRuleSettings(t *testing.T) {
	a, b := Default(), Default()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("equal configs must share a fingerprint")
	}
	b.Linter.Rules = map[string]string{"useValidTypeof": "off"}
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("rule levels must change the fingerprint")
	}
	b = Default()
	b.Formatter.QuoteStyle = "single"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("quote style must change the fingerprint")
	}
}
