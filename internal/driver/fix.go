package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"cstlint/internal/analyzer"
	"cstlint/internal/diag"
	"cstlint/internal/fix"
	"cstlint/internal/parser"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/trace"
)

// FixOptions configures FixFile and FixDir. Cache and FileTimings of the
// embedded Options are not used: fixing always re-analyzes.
type FixOptions struct {
	Options
	// Mode once applies the first admissible fix, all repeats analysis and
	// application until nothing changes, id applies TargetID only.
	Mode          fix.ApplyMode
	TargetID      string
	AllowUnsafe   bool
	MaxIterations int
	// DryRun computes the result without writing the file.
	DryRun bool
}

// FixResult is the outcome of fixing one file.
type FixResult struct {
	Path          string
	File          *source.File
	Before, After string
	Applied       []fix.AppliedFix
	Skipped       []fix.SkippedFix
	// Edits are the changes against Before. Only set in once and id modes;
	// in all mode each round's edits refer to that round's text.
	Edits      []syntax.Edit
	Iterations int
	// Remaining holds what is still reported on After, in all mode.
	Remaining []diag.Diagnostic
	Written   bool
	// Err is the per-file failure in FixDir results.
	Err error
}

// Changed reports whether any fix altered the text.
func (r *FixResult) Changed() bool { return r.Before != r.After }

// FixFile applies fixes to one file and writes it back unless DryRun is
// set. In id mode a missing fix yields an error wrapping fix.ErrNoFixes;
// in the other modes having nothing to fix is not an error.
func FixFile(ctx context.Context, path string, opts FixOptions) (*FixResult, error) {
	an, err := NewAnalyzer(opts.config())
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	return fixOne(ctx, an, fileSet.Get(id), &opts)
}

// FixDir fixes every source file under dir in parallel. Per-file failures,
// non-convergence included, are recorded in FixResult.Err; only
// cancellation aborts the run.
func FixDir(ctx context.Context, dir string, opts FixOptions) ([]FixResult, error) {
	an, err := NewAnalyzer(opts.config())
	if err != nil {
		return nil, err
	}
	paths, err := ListSourceFiles(dir, opts.config())
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results := make([]FixResult, len(paths))
	files := make([]*source.File, len(paths))
	for i, path := range paths {
		results[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].Err = err
			continue
		}
		files[i] = fileSet.Get(id)
	}
	if len(paths) == 0 {
		return results, nil
	}

	ctx, pass := trace.Start(ctx, trace.ScopePass, "fix")
	pass.WithExtra("files", strconv.Itoa(len(paths)))
	defer pass.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(paths)))
	for i, file := range files {
		if file == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Observer.emit(FileEvent{Path: file.Path, Status: FileStarted, Index: i, Total: len(paths)})
			start := time.Now()
			res, err := fixOne(gctx, an, file, &opts)
			results[i] = *res
			results[i].Err = err
			opts.Observer.emit(FileEvent{
				Path:        file.Path,
				Status:      FileDone,
				Index:       i,
				Total:       len(paths),
				Diagnostics: len(res.Applied),
				Elapsed:     time.Since(start),
				Err:         err,
			})
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	return results, g.Wait()
}

// fixOne always returns a non-nil result, describing the partial outcome
// when err is set.
func fixOne(ctx context.Context, an *analyzer.Analyzer, file *source.File, opts *FixOptions) (*FixResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "fix:"+file.Path)

	out := &FixResult{Path: file.Path, File: file, Before: string(file.Content)}
	out.After = out.Before

	var tree *syntax.Tree
	opts.Timer.Track("parse", func() {
		tree = parser.ParseFile(file, parser.Options{}).Tree
	})

	err := applyFixes(ctx, an, tree, opts, out)
	if err == nil && out.Changed() && !opts.DryRun {
		if werr := writeFileAtomic(file.Path, file.Restore([]byte(out.After))); werr != nil {
			err = fmt.Errorf("%s: %w", file.Path, werr)
		} else {
			out.Written = true
		}
	}

	span.WithExtra("applied", strconv.Itoa(len(out.Applied))).
		WithExtra("iterations", strconv.Itoa(out.Iterations)).
		EndErr(err)
	return out, err
}

func applyFixes(ctx context.Context, an *analyzer.Analyzer, tree *syntax.Tree, opts *FixOptions, out *FixResult) error {
	if opts.Mode == fix.ApplyModeAll {
		var (
			res *fix.FixAllResult
			err error
		)
		opts.Timer.Track("fix", func() {
			res, err = fix.FixAll(ctx, an, tree, fix.FixAllOptions{
				AllowUnsafe:   opts.AllowUnsafe,
				MaxIterations: opts.MaxIterations,
			})
		})
		out.Applied = res.Applied
		out.Skipped = res.Skipped
		out.Iterations = res.Iterations
		out.After = res.Tree.Text()
		if res.Remaining != nil {
			out.Remaining = fix.Diagnostics(res.Remaining)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", out.Path, err)
		}
		return nil
	}

	var analysis *analyzer.Result
	var err error
	opts.Timer.Track("analyze", func() { analysis, err = an.Run(ctx, tree) })
	if err != nil {
		return err
	}
	var applied *fix.ApplyResult
	opts.Timer.Track("fix", func() {
		applied, err = fix.Apply(analysis, fix.ApplyOptions{
			Mode:        opts.Mode,
			TargetID:    opts.TargetID,
			AllowUnsafe: opts.AllowUnsafe,
		})
	})
	out.Skipped = applied.Skipped
	if errors.Is(err, fix.ErrNoFixes) {
		if opts.Mode == fix.ApplyModeID {
			return fmt.Errorf("%s: fix %q: %w", out.Path, opts.TargetID, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", out.Path, err)
	}
	out.Applied = applied.Applied
	out.Edits = applied.Edits()
	out.After = applied.Tree.Text()
	out.Iterations = 1
	return nil
}

// writeFileAtomic replaces path through a temp file in the same directory,
// keeping the original permissions.
func writeFileAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".cstlint-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(mode); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
