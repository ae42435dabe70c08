package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"cstlint/internal/diag"
	"cstlint/internal/source"
)

// Short writes one line per diagnostic:
//
//	<severity> <label> <path>:<line>:<col> <message>
//
// Diagnostics without a location come first, without the position column.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil {
		return nil
	}
	items := bag.Items()
	placed := make([]*diag.Diagnostic, 0, len(items))
	for i := range items {
		d := &items[i]
		if located(d) {
			placed = append(placed, d)
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", strings.ToLower(d.Severity.String()), d.Label(), d.Message); err != nil {
			return err
		}
	}
	out := diag.FormatShortDiagnostics(placed, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
