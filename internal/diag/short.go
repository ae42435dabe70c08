package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"cstlint/internal/source"
)

// shortLine is one rendered entry of the short format.
type shortLine struct {
	sev   string
	label string
	path  string
	pos   source.LineCol
	msg   string
}

// FormatShortDiagnostics renders located diagnostics one per line:
//
//	<severity> <label> <path>:<line>:<col> <message>
//
// Paths are relative to the file set's base directory, messages are folded
// onto one line and entries are sorted by path, position, severity, label and
// message, so the output is stable enough for golden tests. Notes become
// "note" lines under the diagnostic's label when includeNotes is set.
// Spans in unknown files are skipped.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	add := func(sev, label string, sp source.Span, msg string) {
		file := fs.Get(sp.File)
		if file == nil {
			return
		}
		pos, _ := fs.Resolve(sp)
		lines = append(lines, shortLine{
			sev:   sev,
			label: label,
			path:  shortPath(file.FormatPath("relative", fs.BaseDir())),
			pos:   pos,
			msg:   oneLine(msg),
		})
	}
	for _, d := range diags {
		label := d.Label()
		add(strings.ToLower(d.Severity.String()), label, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", label, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.label, b.label),
			cmp.Compare(a.msg, b.msg),
		)
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", l.sev, l.label, l.path, l.pos.Line, l.pos.Col, l.msg)
	}
	return b.String()
}

func shortPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
