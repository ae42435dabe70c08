package driver

import (
	"fortio.org/safecast"

	"cstlint/internal/diag"
	"cstlint/internal/parser"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *syntax.Tree
	Bag     *diag.Bag
}

// Parse loads and parses one file, collecting lexer and parser diagnostics.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	limit := diagnosticLimit(maxDiagnostics)
	bag := diag.NewBag(limit)

	maxErrors, err := safecast.Conv[uint](limit)
	if err != nil {
		return nil, err
	}

	result := parser.ParseFile(file, parser.Options{
		Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		MaxErrors: maxErrors,
	})

	bag.Sort()
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    result.Tree,
		Bag:     bag,
	}, nil
}
