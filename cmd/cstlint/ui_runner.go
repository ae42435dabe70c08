package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"cstlint/internal/driver"
	"cstlint/internal/source"
	"cstlint/internal/ui"
)

type lintOutcome struct {
	results []driver.FileResult
	err     error
}

// runLintWithUI lints paths while a Bubble Tea program renders per-file
// progress on stderr. Events stop being delivered once the program exits.
func runLintWithUI(ctx context.Context, title string, fileSet *source.FileSet, paths []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.FileEvent, 256)
	uiDone := make(chan struct{})
	outcomeCh := make(chan lintOutcome, 1)

	opts.Observer = func(ev driver.FileEvent) {
		select {
		case events <- ev:
		case <-uiDone:
		}
	}
	go func() {
		res, err := driver.LintPaths(ctx, fileSet, paths, opts)
		outcomeCh <- lintOutcome{results: res, err: err}
		close(events)
	}()

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.ToSlash(filepath.Clean(p))
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	close(uiDone)

	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
