package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"cstlint/internal/analyzer"
	"cstlint/internal/config"
	"cstlint/internal/diag"
	"cstlint/internal/fix"
	"cstlint/internal/observ"
	"cstlint/internal/parser"
	"cstlint/internal/rules"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/trace"
)

// Options configures a lint run.
type Options struct {
	// Config supplies rule levels, quote style and ignore patterns. Nil
	// means config.Default().
	Config *config.Config
	// MaxDiagnostics overrides Config.Linter.MaxDiagnostics when positive.
	MaxDiagnostics int
	// Jobs bounds the files processed at once; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, skips files whose results are already stored.
	Cache *DiskCache
	// Timer accumulates load, parse and analyze durations across files.
	Timer *observ.Timer
	// FileTimings appends an AnaTimings diagnostic to every linted file.
	FileTimings bool
	Observer    Observer
}

func (o *Options) config() *config.Config {
	if o.Config == nil {
		o.Config = config.Default()
	}
	return o.Config
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	if n := o.config().Linter.MaxDiagnostics; n > 0 {
		return n
	}
	return config.DefaultMaxDiagnostics
}

func (o *Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path string
	// File is nil when the file could not be loaded.
	File *source.File
	// Tree and Analysis are nil when the file failed to load or the
	// diagnostics came from the cache.
	Tree     *syntax.Tree
	Analysis *analyzer.Result
	// Bag holds lexer, parser and rule diagnostics sorted by position, with
	// fixes attached.
	Bag    *diag.Bag
	Cached bool
}

// NewAnalyzer builds an analyzer running every registered rule under cfg.
func NewAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	opts, err := cfg.AnalyzerOptions()
	if err != nil {
		return nil, err
	}
	return analyzer.New(rules.All(), opts), nil
}

// LintFile lints a single file.
func LintFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	results, err := LintPaths(ctx, fileSet, []string{path}, opts)
	if len(results) == 0 {
		return fileSet, nil, err
	}
	return fileSet, &results[0], err
}

// LintDir lints every source file under dir that the configuration does
// not ignore. Results are in path order.
func LintDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	paths, err := ListSourceFiles(dir, opts.config())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := LintPaths(ctx, fileSet, paths, opts)
	return fileSet, results, err
}

// LintPaths loads paths into fileSet and lints them in parallel. A file
// that cannot be read yields a result with an IOLoadFileError diagnostic
// instead of failing the run.
func LintPaths(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	ids := make([]source.FileID, 0, len(paths))
	slots := make([]int, 0, len(paths))

	// FileSet is not safe for concurrent use; load everything up front.
	_, span := trace.Start(ctx, trace.ScopePass, "load")
	opts.Timer.Track("load", func() {
		for i, path := range paths {
			id, err := fileSet.Load(path)
			if err != nil {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				continue
			}
			ids = append(ids, id)
			slots = append(slots, i)
		}
	})
	span.WithExtra("files", strconv.Itoa(len(ids))).End("")

	linted, err := LintFiles(ctx, fileSet, ids, opts)
	for j := range linted {
		results[slots[j]] = linted[j]
	}
	return results, err
}

// LintFiles lints already loaded files in parallel. Each worker writes
// only its own slot of the result slice.
func LintFiles(ctx context.Context, fileSet *source.FileSet, ids []source.FileID, opts Options) ([]FileResult, error) {
	an, err := NewAnalyzer(opts.config())
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	ctx, pass := trace.Start(ctx, trace.ScopePass, "lint")
	pass.WithExtra("files", strconv.Itoa(len(ids)))
	defer pass.End("")

	files := make([]*source.File, len(ids))
	for i, id := range ids {
		files[i] = fileSet.Get(id)
		opts.Observer.emit(FileEvent{Path: files[i].Path, Status: FileQueued, Index: i, Total: len(ids)})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(ids)))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Observer.emit(FileEvent{Path: file.Path, Status: FileStarted, Index: i, Total: len(ids)})
			start := time.Now()
			res, err := lintOne(gctx, an, file, &opts)
			results[i] = res
			opts.Observer.emit(FileEvent{
				Path:        file.Path,
				Status:      FileDone,
				Index:       i,
				Total:       len(ids),
				Diagnostics: res.Bag.Len(),
				Cached:      res.Cached,
				Elapsed:     time.Since(start),
				Err:         err,
			})
			return err
		})
	}
	return results, g.Wait()
}

func lintOne(ctx context.Context, an *analyzer.Analyzer, file *source.File, opts *Options) (FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)

	maxDiags := opts.maxDiagnostics()
	out := FileResult{Path: file.Path, File: file, Bag: diag.NewBag(maxDiags)}

	var key Digest
	if opts.Cache != nil {
		key = Key(file, opts.config().Fingerprint()+"|max="+strconv.Itoa(maxDiags), an.Rules())
		// an unreadable entry is treated as a miss and overwritten
		if diags, ok, err := opts.Cache.Get(key, file); err == nil && ok {
			for _, d := range diags {
				out.Bag.Add(d)
			}
			out.Cached = true
			span.WithExtra("cached", "true").End("")
			return out, nil
		}
	}

	maxErrors, err := safecast.Conv[uint](maxDiags)
	if err != nil {
		span.End(err.Error())
		return out, fmt.Errorf("max diagnostics: %w", err)
	}

	local := observ.NewTimer()
	var parsed parser.Result
	opts.Timer.Add("parse", local.Track("parse", func() {
		parsed = parser.ParseFile(file, parser.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: out.Bag}), MaxErrors: maxErrors})
	}))
	out.Tree = parsed.Tree

	var res *analyzer.Result
	opts.Timer.Add("analyze", local.Track("analyze", func() {
		res, err = an.Run(ctx, parsed.Tree)
	}))
	if err != nil {
		span.End(err.Error())
		return out, fmt.Errorf("%s: %w", file.Path, err)
	}
	out.Analysis = res
	for _, d := range fix.Diagnostics(res) {
		if !out.Bag.Add(d) {
			break
		}
	}
	out.Bag.Sort()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, file, out.Bag.Items()); err != nil {
			span.WithExtra("cache_error", err.Error())
		}
	}
	if opts.FileTimings {
		report := local.Report()
		appendTimingDiagnostic(out.Bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	span.WithExtra("diagnostics", strconv.Itoa(out.Bag.Len())).
		WithExtra("parse_errors", strconv.FormatUint(uint64(parsed.Errors), 10)).
		End("")
	return out, nil
}
