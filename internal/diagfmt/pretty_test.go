package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cstlint/internal/diag"
	"cstlint/internal/fix"
	"cstlint/internal/source"
)

const typeofSrc = "typeof x === \"strnig\";\n"

func typeofDiagnostic(file source.FileID) diag.Diagnostic {
	primary := source.Span{File: file, Start: 13, End: 21}
	d := diag.New(diag.SevError, diag.SuspiciousUseValidTypeof, primary, "Invalid `typeof` comparison value")
	d.Category = "lint/suspicious/useValidTypeof"
	d.Description = "Invalid `typeof` comparison value: \"strnig\" is not a valid type name"
	return d.WithNote(primary, "not a valid type name")
}

func prettyString(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/app.js", []byte(typeofSrc))
	bag := diag.NewBag(10)
	bag.Add(typeofDiagnostic(fileID))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/app.js:1:14: "},
		{"relative", PathModeRelative, "\nsrc/app.js:1:14: "},
		{"basename", PathModeBasename, "app.js:1:14: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := "\n" + prettyString(bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.Contains(output, tt.contains) {
				t.Fatalf("expected %q in:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SUS4001 lint/suspicious/useValidTypeof: Invalid `typeof` comparison value") {
				t.Fatalf("missing header in:\n%s", output)
			}
		})
	}
}

func TestPrettyPathModeAuto(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"app.js", "app.js:1:14"},
		{"/very/long/absolute/path/to/some/nested/directory/app.js", "\napp.js:1:14"},
	}
	for _, tt := range tests {
		fs := source.NewFileSet()
		fileID := fs.AddVirtual(tt.path, []byte(typeofSrc))
		bag := diag.NewBag(1)
		bag.Add(typeofDiagnostic(fileID))
		output := "\n" + prettyString(bag, fs, PrettyOpts{PathMode: PathModeAuto})
		if !strings.Contains(output, tt.expected) {
			t.Fatalf("expected %q in:\n%s", tt.expected, output)
		}
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.js", []byte(typeofSrc))
	bag := diag.NewBag(1)
	bag.Add(typeofDiagnostic(fileID))

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "  |\n" +
		"1 | typeof x === \"strnig\";\n" +
		"  | " + strings.Repeat(" ", 13) + "^~~~~~~~ not a valid type name\n"
	if !strings.Contains(output, want) {
		t.Fatalf("expected snippet\n%s\nin:\n%s", want, output)
	}
	if strings.Contains(output, "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", output)
	}
}

func TestPrettyUnderlineWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := "\"日本\"; typeof a === \"xx\";\n"
	fileID := fs.AddVirtual("wide.js", []byte(content))
	start := uint32(strings.Index(content, "typeof"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.SuspiciousUseValidTypeof, source.Span{File: fileID, Start: start, End: start + 6}, "wide"))

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	// "日本" occupies four columns but six bytes
	if !strings.Contains(output, "  | "+strings.Repeat(" ", 8)+"^~~~~~\n") {
		t.Fatalf("caret misaligned:\n%s", output)
	}
}

func TestPrettyContextAndWidth(t *testing.T) {
	fs := source.NewFileSet()
	content := "a;\nb;\ntypeof x === \"strnig\";\nc;\n"
	fileID := fs.AddVirtual("ctx.js", []byte(content))
	primary := source.Span{File: fileID, Start: 19, End: 27}
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SuspiciousUseValidTypeof, primary, "bad"))

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1, Width: 10})
	for _, want := range []string{"2 | b;\n", "3 | typeof x …\n", "4 | c;\n"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
	if strings.Contains(output, "1 | a;") {
		t.Fatalf("context too wide:\n%s", output)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.js", []byte(typeofSrc))
	d := typeofDiagnostic(fileID)
	d = d.WithFixSuggestion(fix.ReplaceSpan(
		"Compare the result of `typeof` with a valid type name",
		source.Span{File: fileID, Start: 14, End: 20},
		"string",
		"strnig",
		fix.WithID("useValidTypeof-13-0"),
		fix.WithApplicability(diag.FixApplicabilityMaybeIncorrect),
		fix.Preferred(),
	))
	bag := diag.NewBag(1)
	bag.Add(d)

	output := prettyString(bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	for _, want := range []string{
		"note: app.js:1:14: not a valid type name",
		"= Invalid `typeof` comparison value: \"strnig\" is not a valid type name",
		"fix #1: Compare the result of `typeof` with a valid type name [quickfix, maybe-incorrect, preferred] id=useValidTypeof-13-0",
		"edit app.js:1:15 apply=\"string\" expect=\"strnig\"",
		"preview:",
		"- typeof x === \"strnig\";",
		"+ typeof x === \"string\";",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
}

func TestPrettyFixPreviewSelfClosing(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.jsx", []byte("<div></div>;\n"))
	d := diag.New(diag.SevWarning, diag.StyleUseSelfClosingElement, source.Span{File: fileID, Start: 0, End: 11}, "self-closing").
		WithFix("Use a SelfClosingElement instead", diag.TextEdit{Span: source.Span{File: fileID, Start: 4, End: 10}, NewText: " /"})
	bag := diag.NewBag(1)
	bag.Add(d)

	output := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	if !strings.Contains(output, "- <div></div>;\n") || !strings.Contains(output, "+ <div />;\n") {
		t.Fatalf("unexpected preview:\n%s", output)
	}
}

func TestPrettyUnlocatedDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("other.js", []byte("x;\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: missing.js"))

	output := prettyString(bag, fs, PrettyOpts{})
	if output != "ERROR IO5001: failed to load file: missing.js\n" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.js", []byte(typeofSrc))
	bag := diag.NewBag(1)
	bag.Add(typeofDiagnostic(fileID))

	if out := prettyString(bag, fs, PrettyOpts{Color: true}); !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes:\n%q", out)
	}
	if out := prettyString(bag, fs, PrettyOpts{}); strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ANSI escapes:\n%q", out)
	}
}
