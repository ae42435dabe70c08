package driver

import (
	"cstlint/internal/config"
	"cstlint/internal/diag"
	"cstlint/internal/lexer"
	"cstlint/internal/source"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lexemes []lexer.Lexeme
	Bag     *diag.Bag
}

// Tokenize scans path in the regular context. JSX text is not recognised
// without the parser, so this is a view of the raw token and trivia stream.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(diagnosticLimit(maxDiagnostics))

	lexemes := lexer.Tokenize(file, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Lexemes: lexemes,
		Bag:     bag,
	}, nil
}

// diagnosticLimit maps a non-positive limit to the configured default.
func diagnosticLimit(n int) int {
	if n <= 0 {
		return config.DefaultMaxDiagnostics
	}
	return n
}
