package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cstlint/internal/diag"
	"cstlint/internal/source"
)

const tabWidth = 4

type palette struct {
	on                        bool
	err, warn, info           *color.Color
	note, path, gutter, caret *color.Color
	fix, added, removed       *color.Color
}

// newPalette builds colors local to one call. When on, colors are forced
// even if fatih/color decided the output is not a terminal: the caller
// already resolved --color.
func newPalette(on bool) *palette {
	p := &palette{
		on:      on,
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgMagenta, color.Bold),
		fix:     color.New(color.FgGreen, color.Bold),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}
	if on {
		for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret, p.fix, p.added, p.removed} {
			c.EnableColor()
		}
	}
	return p
}

func (p *palette) paint(c *color.Color, s string) string {
	if !p.on {
		return s
	}
	return c.Sprint(s)
}

func (p *palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics for humans, in bag order (call bag.Sort first).
// Each entry is
//
//	<path>:<line>:<col>: <SEV> <CODE> [<category>]: <message>
//
// followed by the source line with the primary span underlined ^~~~, and
// optionally notes, the description, fixes and fix previews.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal *palette) {
	header := d.Severity.String() + " " + d.Code.ID()
	if d.Category != "" {
		header += " " + d.Category
	}
	header = pal.paint(pal.severity(d.Severity), header)

	loc, ok := "", false
	if located(d) {
		loc, ok = locate(fs, d.Primary, opts.PathMode)
	}
	if !ok {
		fmt.Fprintf(w, "%s: %s\n", header, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", pal.paint(pal.path, loc), header, d.Message)
		writeSnippet(w, fs, d.Primary, inlineLabel(d), opts, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			tag := pal.paint(pal.note, "note")
			if nloc, ok := locate(fs, n.Span, opts.PathMode); ok && located(d) {
				fmt.Fprintf(w, "  %s: %s: %s\n", tag, nloc, n.Msg)
			} else {
				fmt.Fprintf(w, "  %s: %s\n", tag, n.Msg)
			}
		}
		if d.Description != "" {
			for _, line := range strings.Split(d.Description, "\n") {
				fmt.Fprintf(w, "  = %s\n", line)
			}
		}
	}

	if opts.ShowFixes {
		writeFixes(w, d.Fixes, fs, opts, pal)
	}
}

// located reports whether the primary span of d points into a file. Load
// failures and timing reports carry a zero span that would otherwise
// resolve to whichever file has ID 0.
func located(d *diag.Diagnostic) bool {
	return d.Code != diag.IOLoadFileError && d.Code != diag.AnaTimings
}

// inlineLabel is the first note attached to the primary span itself; it is
// printed after the underline.
func inlineLabel(d *diag.Diagnostic) string {
	for _, n := range d.Notes {
		if n.Span == d.Primary {
			return n.Msg
		}
	}
	return ""
}

func locate(fs *source.FileSet, sp source.Span, mode PathMode) (string, bool) {
	if fs == nil {
		return "", false
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "", false
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col), true
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if mode == PathModeRelative {
		return f.FormatPath(mode.String(), fs.BaseDir())
	}
	return f.FormatPath(mode.String(), "")
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, label string, opts PrettyOpts, pal *palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	context := uint32(max(opts.Context, 0))
	lastLine := uint32(len(f.LineIdx)) + 1
	first := start.Line - min(start.Line-1, context)
	last := min(start.Line+context, lastLine)

	gutterWidth := len(strconv.FormatUint(uint64(last), 10))
	blank := strings.Repeat(" ", gutterWidth)
	bar := pal.paint(pal.gutter, "|")

	fmt.Fprintf(w, "%s %s\n", blank, bar)
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		num := pal.paint(pal.gutter, fmt.Sprintf("%*d", gutterWidth, ln))
		fmt.Fprintf(w, "%s %s %s\n", num, bar, clip(expandTabs(text), opts.Width))
		if ln != start.Line {
			continue
		}
		from := min(int(start.Col-1), len(text))
		to := len(text)
		if end.Line == start.Line {
			to = min(max(int(end.Col-1), from), len(text))
		}
		pad := displayWidth(text[:from])
		width := max(1, displayWidth(text[from:to]))
		marker := pal.paint(pal.caret, "^"+strings.Repeat("~", width-1))
		if label != "" {
			marker += " " + pal.paint(pal.caret, label)
		}
		fmt.Fprintf(w, "%s %s %s%s\n", blank, bar, strings.Repeat(" ", pad), marker)
	}
}

func writeFixes(w io.Writer, fixes []diag.Fix, fs *source.FileSet, opts PrettyOpts, pal *palette) {
	for i := range fixes {
		f := &fixes[i]
		meta := []string{f.Kind.String(), f.Applicability.String()}
		if f.IsPreferred {
			meta = append(meta, "preferred")
		}
		line := fmt.Sprintf("  %s %s [%s]", pal.paint(pal.fix, fmt.Sprintf("fix #%d:", i+1)), f.Title, strings.Join(meta, ", "))
		if f.ID != "" {
			line += " id=" + f.ID
		}
		fmt.Fprintln(w, line)

		for _, e := range f.Edits {
			loc, ok := locate(fs, e.Span, opts.PathMode)
			if !ok {
				loc = e.Span.String()
			}
			fmt.Fprintf(w, "      edit %s apply=%q", loc, e.NewText)
			if e.OldText != "" {
				fmt.Fprintf(w, " expect=%q", e.OldText)
			}
			fmt.Fprintln(w)
		}

		if !opts.ShowPreview {
			continue
		}
		preview, err := buildFixPreview(fs, f.Edits)
		if err != nil {
			continue
		}
		fmt.Fprintln(w, "      preview:")
		for _, l := range preview.before {
			fmt.Fprintf(w, "        %s\n", pal.paint(pal.removed, "- "+expandTabs(l)))
		}
		for _, l := range preview.after {
			fmt.Fprintf(w, "        %s\n", pal.paint(pal.added, "+ "+expandTabs(l)))
		}
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
