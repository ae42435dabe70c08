package diagfmt

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"cstlint/internal/diag"
	"cstlint/internal/source"
)

type fixPreview struct {
	before []string
	after  []string
}

// buildFixPreview applies every edit of a fix to the whole lines they touch
// and returns those lines before and after. Edits must be in one file and
// must not overlap.
func buildFixPreview(fs *source.FileSet, edits []diag.TextEdit) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, fmt.Errorf("nil FileSet")
	}
	if len(edits) == 0 {
		return fixPreview{}, fmt.Errorf("fix has no edits")
	}
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b diag.TextEdit) int { return int(a.Span.Start) - int(b.Span.Start) })

	fileID := sorted[0].Span.File
	file := fs.Get(fileID)
	if file == nil {
		return fixPreview{}, fmt.Errorf("file %d not found in FileSet", fileID)
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}

	first, _ := fs.Resolve(sorted[0].Span)
	_, last := fs.Resolve(sorted[len(sorted)-1].Span)
	blockStart := lineStartOffset(file, first.Line, lenContent)
	blockEnd := min(max(lineEndOffset(file, max(last.Line, first.Line), lenContent), blockStart), lenContent)

	var after strings.Builder
	cursor := blockStart
	for _, edit := range sorted {
		if edit.Span.File != fileID {
			return fixPreview{}, fmt.Errorf("fix spans several files")
		}
		if edit.Span.Start < cursor || edit.Span.End > blockEnd || edit.Span.End < edit.Span.Start {
			return fixPreview{}, fmt.Errorf("edit %s out of range for preview block", edit.Span)
		}
		after.Write(file.Content[cursor:edit.Span.Start])
		after.WriteString(edit.NewText)
		cursor = edit.Span.End
	}
	after.Write(file.Content[cursor:blockEnd])

	return fixPreview{
		before: splitPreviewLines(string(file.Content[blockStart:blockEnd])),
		after:  splitPreviewLines(after.String()),
	}, nil
}

// splitPreviewLines drops the final line terminator so a block that ends
// at a newline has no trailing empty line.
func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func lineStartOffset(f *source.File, line, lenContent uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := line - 2; int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return lenContent
}

// lineEndOffset is the offset just past the terminator of line.
func lineEndOffset(f *source.File, line, lenContent uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := line - 1; int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return lenContent
}
