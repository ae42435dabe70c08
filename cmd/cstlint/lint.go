package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cstlint/internal/diag"
	"cstlint/internal/diagfmt"
	"cstlint/internal/driver"
	"cstlint/internal/source"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <file|directory>",
	Short: "Report lint diagnostics for a file or directory",
	Long: `Lint parses the given file, or every .js/.jsx/.mjs/.cjs/.ts/.tsx file under the
given directory, and reports syntax errors and rule diagnostics. The exit status
is 1 when any error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	lintCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	lintCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	lintCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	lintCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	lintCmd.Flags().Bool("preview", false, "show the lines each fix would produce")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	lintCmd.Flags().Bool("file-timings", false, "attach a timing diagnostic to every file")
}

type lintOutputOptions struct {
	format    string
	withNotes bool
	suggest   bool
	preview   bool
	fullPath  bool
	color     bool
}

func runLint(cmd *cobra.Command, args []string) error {
	target := args[0]

	var out lintOutputOptions
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", out.format)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if out.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if out.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	if out.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if out.color, err = useColor(cmd, os.Stdout); err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	opts, err := driverOptions(cmd, target)
	if err != nil {
		return err
	}
	if opts.FileTimings, err = cmd.Flags().GetBool("file-timings"); err != nil {
		return fmt.Errorf("failed to get file-timings flag: %w", err)
	}
	if !noCache {
		cache, cerr := driver.OpenDiskCache("cstlint")
		if cerr != nil && !quiet(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache disabled: %v\n", cerr)
		}
		opts.Cache = cache
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if st.IsDir() {
		fileSet, results, err = lintDir(cmd, target, opts, shouldUseTUI(mode) && out.format != "json")
	} else {
		var res *driver.FileResult
		fileSet, res, err = driver.LintFile(cmd.Context(), target, opts)
		if res != nil {
			results = []driver.FileResult{*res}
		}
	}
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	stdout := cmd.OutOrStdout()
	if err := writeLintResults(stdout, fileSet, results, out, st.IsDir()); err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)

	summary := summarize(results)
	if !quiet(cmd) && out.format != "json" {
		fmt.Fprintln(cmd.ErrOrStderr(), summary.String())
	}
	if summary.errors > 0 {
		return exitError{code: 1}
	}
	return nil
}

func lintDir(cmd *cobra.Command, dir string, opts driver.Options, tui bool) (*source.FileSet, []driver.FileResult, error) {
	if !tui {
		return driver.LintDir(cmd.Context(), dir, opts)
	}
	paths, err := driver.ListSourceFiles(dir, opts.Config)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := runLintWithUI(cmd.Context(), "lint "+dir, fileSet, paths, opts)
	return fileSet, results, err
}

func writeLintResults(w io.Writer, fileSet *source.FileSet, results []driver.FileResult, out lintOutputOptions, isDir bool) error {
	pathMode := pathModeFor(out.fullPath)
	showFixes := out.suggest || out.preview

	switch out.format {
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:       out.color,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   out.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: out.preview,
		}
		first := true
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			if isDir {
				fmt.Fprintf(w, "== %s ==\n", displayPath(fileSet, &r, pathMode))
			}
			diagfmt.Pretty(w, r.Bag, fileSet, opts)
		}
		return nil

	case "short":
		return diagfmt.Short(w, mergeBags(results), fileSet, out.withNotes)

	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     out.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  out.preview,
		}
		if !isDir {
			var bag *diag.Bag
			if len(results) > 0 {
				bag = results[0].Bag
			}
			return diagfmt.JSON(w, bag, fileSet, opts)
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for i := range results {
			output[displayPath(fileSet, &results[i], pathMode)] = diagfmt.BuildDiagnosticsOutput(results[i].Bag, fileSet, opts)
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", out.format)
}

func displayPath(fileSet *source.FileSet, r *driver.FileResult, mode diagfmt.PathMode) string {
	if r.File == nil {
		if mode == diagfmt.PathModeAbsolute {
			if abs, err := filepath.Abs(r.Path); err == nil {
				return filepath.ToSlash(abs)
			}
		}
		return r.Path
	}
	if mode == diagfmt.PathModeAbsolute {
		return r.File.FormatPath("absolute", "")
	}
	return r.File.FormatPath("relative", fileSet.BaseDir())
}

// mergeBags joins the per-file bags into one. Cancelled files have no bag.
func mergeBags(results []driver.FileResult) *diag.Bag {
	total := 0
	for i := range results {
		total += results[i].Bag.Len()
	}
	merged := diag.NewBag(max(total, 1))
	for i := range results {
		merged.Merge(results[i].Bag)
	}
	return merged
}

type lintSummary struct {
	files, errors, warnings, infos int
}

func summarize(results []driver.FileResult) lintSummary {
	s := lintSummary{files: len(results)}
	for i := range results {
		for _, d := range results[i].Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				s.errors++
			case diag.SevWarning:
				s.warnings++
			default:
				s.infos++
			}
		}
	}
	return s
}

func (s lintSummary) String() string {
	if s.errors+s.warnings+s.infos == 0 {
		return fmt.Sprintf("no problems in %s", plural(s.files, "file"))
	}
	return fmt.Sprintf("%s (%s, %s) in %s",
		plural(s.errors+s.warnings+s.infos, "problem"),
		plural(s.errors, "error"),
		plural(s.warnings, "warning"),
		plural(s.files, "file"))
}
