package diag

import (
	"testing"

	"cstlint/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/testdata/golden/sample.jsx", []byte("a\nb\n"), 0)
	other := fs.Add("/workspace/a.js", []byte("x\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevWarning,
			Code:     SuspiciousUseValidTypeof,
			Category: "lint/suspicious/useValidTypeof",
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\r\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: 99, Start: 0, End: 0}, Msg: "unknown file"},
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevInfo,
			Code:     SynUnexpectedToken,
			Message:  "elsewhere",
			Primary:  source.Span{File: other, Start: 0, End: 1},
		},
	}

	cases := []struct {
		name  string
		notes bool
		want  string
	}{
		{
			name: "without notes",
			want: "info SYN2001 a.js:1:1 elsewhere\n" +
				"error SYN2001 testdata/golden/sample.jsx:1:1 first line second\n" +
				"warning lint/suspicious/useValidTypeof testdata/golden/sample.jsx:2:1 another",
		},
		{
			name:  "with notes",
			notes: true,
			want: "info SYN2001 a.js:1:1 elsewhere\n" +
				"error SYN2001 testdata/golden/sample.jsx:1:1 first line second\n" +
				"note SYN2001 testdata/golden/sample.jsx:2:1 note line\n" +
				"warning lint/suspicious/useValidTypeof testdata/golden/sample.jsx:2:1 another",
		},
	}
	for _, tc := range cases {
		if got := FormatShortDiagnostics(diags, fs, tc.notes); got != tc.want {
			t.Fatalf("%s:\nwant:\n%s\n\ngot:\n%s", tc.name, tc.want, got)
		}
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	if got := FormatShortDiagnostics(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("got %q", got)
	}
}
