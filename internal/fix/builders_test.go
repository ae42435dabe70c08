package fix

import (
	"errors"
	"testing"

	"cstlint/internal/diag"
	"cstlint/internal/rules"
	"cstlint/internal/source"
)

func TestReplaceSpanOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte("let x = 1"))

	span := source.Span{File: fileID, Start: 0, End: 3}
	fix := ReplaceSpan("Replace let with const", span, "const", "let",
		WithID("let-const"), WithKind(diag.FixKindRefactor), WithApplicability(diag.FixApplicabilityMaybeIncorrect), Preferred())

	if fix.ID != "let-const" || fix.Kind != diag.FixKindRefactor || !fix.IsPreferred {
		t.Fatalf("options not applied: %+v", fix)
	}
	if fix.Applicability != diag.FixApplicabilityMaybeIncorrect {
		t.Errorf("expected maybe-incorrect, got %s", fix.Applicability)
	}
	if len(fix.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(fix.Edits))
	}
	edit := fix.Edits[0]
	if edit.NewText != "const" || edit.OldText != "let" {
		t.Errorf("unexpected edit %+v", edit)
	}
}

func TestFromSignal(t *testing.T) {
	res := analyze(t, rules.All(), "x;\n<div foo=\"1\"></div>")
	if len(res.Signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(res.Signals))
	}
	f, err := FromSignal(&res.Signals[0])
	if err != nil {
		t.Fatalf("from signal: %v", err)
	}
	if f.ID != res.Signals[0].ID || f.Applicability != diag.FixApplicabilityMaybeIncorrect || f.Kind != diag.FixKindQuickFix {
		t.Fatalf("unexpected fix metadata %+v", f)
	}
	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %+v", f.Edits)
	}
	e := f.Edits[0]
	// Shared prefix "<div foo=\"1\"" and suffix ">" are left out.
	if e.OldText != "></div" || e.NewText != " /" || e.Span.Start != 15 || e.Span.End != 21 {
		t.Fatalf("unexpected edit %+v", e)
	}
}

func TestDiagnosticsAttachFixes(t *testing.T) {
	res := analyze(t, rules.All(), "typeof a == \"nunber\";\ntypeof b == c;")
	diags := Diagnostics(res)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if len(diags[0].Fixes) != 1 || len(diags[1].Fixes) != 0 {
		t.Fatalf("fixes: %d, %d", len(diags[0].Fixes), len(diags[1].Fixes))
	}
	if diags[0].Severity != diag.SevError || diags[0].Category != "lint/suspicious/useValidTypeof" {
		t.Fatalf("unexpected diagnostic %+v", diags[0])
	}

	if _, err := FromSignal(&res.Signals[1]); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes for a signal without action, got %v", err)
	}
}
