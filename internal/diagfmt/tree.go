package diagfmt

import (
	"io"

	"cstlint/internal/syntax"
)

// FormatTree writes the concrete syntax tree, one element per line.
func FormatTree(w io.Writer, tree *syntax.Tree) error {
	_, err := io.WriteString(w, syntax.Dump(tree.Root()))
	return err
}
