package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"cstlint/internal/diag"
	"cstlint/internal/source"
)

// LocationJSON is a span in a file.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
	BeforeLines   []string      `json:"before_lines,omitempty"`
	AfterLines    []string      `json:"after_lines,omitempty"`
}

type DiagnosticJSON struct {
	Severity    string        `json:"severity"`
	Code        string        `json:"code"`
	Category    string        `json:"category,omitempty"`
	Message     string        `json:"message"`
	Description string        `json:"description,omitempty"`
	Location    *LocationJSON `json:"location,omitempty"`
	Notes       []NoteJSON    `json:"notes,omitempty"`
	Fixes       []FixJSON     `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) *LocationJSON {
	f := fs.Get(span.File)
	if f == nil {
		return nil
	}
	loc := &LocationJSON{
		File:      formatPath(f, fs, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput builds the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)

	for i := range n {
		d := &items[i]
		dj := DiagnosticJSON{
			Severity:    d.Severity.String(),
			Code:        d.Code.ID(),
			Category:    d.Category,
			Message:     d.Message,
			Description: d.Description,
		}
		if located(d) {
			dj.Location = makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions)
		}

		// timing payloads live in the note, so they are always kept
		if (opts.IncludeNotes || d.Code == diag.AnaTimings) && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: note.Msg}
				if located(d) {
					dj.Notes[j].Location = makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions)
				}
			}
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			dj.Fixes = buildFixes(d.Fixes, fs, opts)
		}
		diagnostics = append(diagnostics, dj)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// buildFixes lists preferred fixes first, then safer ones.
func buildFixes(fixes []diag.Fix, fs *source.FileSet, opts JSONOpts) []FixJSON {
	sorted := append([]diag.Fix(nil), fixes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		fi, fj := &sorted[i], &sorted[j]
		if fi.IsPreferred != fj.IsPreferred {
			return fi.IsPreferred
		}
		if fi.Applicability != fj.Applicability {
			return fi.Applicability < fj.Applicability
		}
		if fi.Title != fj.Title {
			return fi.Title < fj.Title
		}
		return fi.ID < fj.ID
	})

	out := make([]FixJSON, 0, len(sorted))
	for _, f := range sorted {
		fj := FixJSON{
			ID:            f.ID,
			Title:         f.Title,
			Kind:          f.Kind.String(),
			Applicability: f.Applicability.String(),
			IsPreferred:   f.IsPreferred,
			Edits:         make([]FixEditJSON, 0, len(f.Edits)),
		}
		for _, e := range f.Edits {
			ej := FixEditJSON{NewText: e.NewText, OldText: e.OldText}
			if loc := makeLocation(e.Span, fs, opts.PathMode, opts.IncludePositions); loc != nil {
				ej.Location = *loc
			}
			fj.Edits = append(fj.Edits, ej)
		}
		if opts.IncludePreviews {
			if preview, err := buildFixPreview(fs, f.Edits); err == nil {
				fj.BeforeLines = preview.before
				fj.AfterLines = preview.after
			}
		}
		out = append(out, fj)
	}
	return out
}

// JSON writes the diagnostics of bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
