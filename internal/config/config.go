package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cstlint/internal/analyzer"
	"cstlint/internal/rules"
)

// FileName is the configuration file looked up next to the linted files.
const FileName = "cstlint.toml"

// DefaultMaxDiagnostics caps the diagnostics reported per file.
const DefaultMaxDiagnostics = 100

// ErrInvalid wraps every validation failure of a configuration file.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Path is the file the configuration was read from, "" for defaults.
	Path      string          `toml:"-"`
	Formatter FormatterConfig `toml:"formatter"`
	Linter    LinterConfig    `toml:"linter"`
}

type FormatterConfig struct {
	QuoteStyle string `toml:"quote_style"`
}

type LinterConfig struct {
	MaxDiagnostics int               `toml:"max_diagnostics"`
	Rules          map[string]string `toml:"rules"`
	// Ignore holds glob patterns, matched against slash-separated paths
	// relative to the configuration directory, of files a directory lint
	// skips.
	Ignore []string `toml:"ignore"`
}

// Default returns the configuration used when no file is found: every
// recommended rule at its own severity and double quotes.
func Default() *Config {
	return &Config{
		Formatter: FormatterConfig{QuoteStyle: analyzer.QuoteDouble.String()},
		Linter:    LinterConfig{MaxDiagnostics: DefaultMaxDiagnostics},
	}
}

// Find walks up from start looking for FileName. start may be a file or a
// directory.
func Find(start string) (string, bool, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the configuration governing start, or the defaults when
// there is none.
func Discover(start string) (*Config, error) {
	path, ok, err := Find(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads and validates a configuration file. Missing keys keep their
// defaults; unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the quote style, the rule names and their levels.
func (c *Config) Validate() error {
	if _, err := analyzer.ParseQuoteStyle(c.Formatter.QuoteStyle); err != nil {
		return fmt.Errorf("%w: [formatter].quote_style: %w", ErrInvalid, err)
	}
	if c.Linter.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: [linter].max_diagnostics must not be negative", ErrInvalid)
	}
	for _, name := range c.ruleNames() {
		if _, ok := rules.Lookup(name); !ok {
			hint := ""
			if s := rules.Suggest(name); s != "" {
				hint = fmt.Sprintf(" (did you mean %q?)", s)
			}
			return fmt.Errorf("%w: [linter.rules]: unknown rule %q%s", ErrInvalid, name, hint)
		}
		if _, err := analyzer.ParseLevel(c.Linter.Rules[name]); err != nil {
			return fmt.Errorf("%w: [linter.rules].%s: %w", ErrInvalid, name, err)
		}
	}
	for _, pattern := range c.Linter.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: [linter].ignore: bad pattern %q", ErrInvalid, pattern)
		}
	}
	return nil
}

func (c *Config) ruleNames() []string {
	names := make([]string, 0, len(c.Linter.Rules))
	for name := range c.Linter.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnalyzerOptions converts a validated configuration into analyzer options.
func (c *Config) AnalyzerOptions() (analyzer.Options, error) {
	quote, err := analyzer.ParseQuoteStyle(c.Formatter.QuoteStyle)
	if err != nil {
		return analyzer.Options{}, err
	}
	opts := analyzer.Options{PreferredQuote: quote, Rules: make(map[string]analyzer.Level, len(c.Linter.Rules))}
	for _, name := range c.ruleNames() {
		level, err := analyzer.ParseLevel(c.Linter.Rules[name])
		if err != nil {
			return analyzer.Options{}, err
		}
		r, ok := rules.Lookup(name)
		if !ok {
			return analyzer.Options{}, fmt.Errorf("unknown rule %q", name)
		}
		opts.Rules[r.Metadata().Name] = level
	}
	return opts, nil
}

// Ignored reports whether path matches one of the ignore patterns. Paths
// are taken relative to the directory of the configuration file.
func (c *Config) Ignored(path string) bool {
	if len(c.Linter.Ignore) == 0 {
		return false
	}
	rel := path
	if c.Path != "" {
		if r, err := filepath.Rel(filepath.Dir(c.Path), path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pattern := range c.Linter.Ignore {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Fingerprint identifies the settings that influence lint results, for
// cache keys.
func (c *Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "quote=%s\n", c.Formatter.QuoteStyle)
	for _, name := range c.ruleNames() {
		fmt.Fprintf(h, "rule=%s:%s\n", name, c.Linter.Rules[name])
	}
	return hex.EncodeToString(h.Sum(nil))
}
