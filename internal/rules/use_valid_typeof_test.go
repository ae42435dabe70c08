package rules

import (
	"strings"
	"testing"

	"cstlint/internal/analyzer"
	"cstlint/internal/testkit"
)

const validTypeof = "useValidTypeof"

func TestValidTypeofAcceptsValidComparisons(t *testing.T) {
	for _, in := range []string{
		`typeof foo === "string"`,
		`typeof bar == "undefined"`,
		`typeof bar === typeof qux`,
		`typeof foo !== 'object'`,
		`"bigint" != typeof x`,
		`typeof a < "strnig"`,
		`a === "strnig"`,
		`-a == "strnig"`,
		`!a === b`,
		`typeof a && "strnig"`,
	} {
		if res := lint(t, validTypeof, in, analyzer.QuoteDouble); len(res.Signals) != 0 {
			t.Errorf("%q: expected no signals, got %d", in, len(res.Signals))
		}
	}
}

func TestValidTypeofFixes(t *testing.T) {
	tests := []struct {
		input string
		quote analyzer.QuoteStyle
		start uint32
		end   uint32
		want  string
	}{
		{`typeof foo === "strnig"`, analyzer.QuoteDouble, 15, 23, `typeof foo === "string"`},
		{`typeof foo == "undefimed"`, analyzer.QuoteDouble, 14, 25, `typeof foo == "undefined"`},
		{`typeof bar != "nunber"`, analyzer.QuoteDouble, 14, 22, `typeof bar != "number"`},
		{`typeof bar !== "fucntion"`, analyzer.QuoteDouble, 15, 25, `typeof bar !== "function"`},
		{`typeof foo === undefined`, analyzer.QuoteDouble, 15, 24, `typeof foo === "undefined"`},
		{`typeof bar == Object`, analyzer.QuoteDouble, 14, 20, `typeof bar == "object"`},
		{`"String" === typeof x`, analyzer.QuoteDouble, 0, 8, `"string" === typeof x`},
		{`typeof foo === 'strnig'`, analyzer.QuoteSingle, 15, 23, `typeof foo === 'string'`},
		{`typeof foo === 'strnig'`, analyzer.QuoteDouble, 15, 23, `typeof foo === "string"`},
		{`typeof foo === undefined;`, analyzer.QuoteSingle, 15, 24, `typeof foo === 'undefined';`},
		{"typeof foo ===   /* why */ Undefined   ;\n", analyzer.QuoteDouble, 27, 36, "typeof foo ===   /* why */ \"undefined\"   ;\n"},
	}
	for _, tt := range tests {
		res := lint(t, validTypeof, tt.input, tt.quote)
		if len(res.Signals) != 1 {
			t.Errorf("%q: expected 1 signal, got %d", tt.input, len(res.Signals))
			continue
		}
		sig := &res.Signals[0]
		if rng := sig.Range(); rng.Start != tt.start || rng.End != tt.end {
			t.Errorf("%q: range %v, want %d..%d", tt.input, rng, tt.start, tt.end)
		}
		after := apply(t, sig)
		if err := testkit.CheckRoundTrip(after, tt.want); err != nil {
			t.Errorf("%q: %v", tt.input, err)
			continue
		}
		if again := lint(t, validTypeof, tt.want, tt.quote); len(again.Signals) != 0 {
			t.Errorf("%q: fixed output still flagged", tt.input)
		}
	}
}

func TestValidTypeofWithoutFix(t *testing.T) {
	tests := []struct {
		input string
		start uint32
		end   uint32
		note  string
	}{
		{`typeof foo === baz`, 15, 18, "not a string literal"},
		{`typeof foo == 5`, 14, 15, "not a string literal"},
		{`typeof foo == -5`, 14, 16, "not a string literal"},
		{`-5 == typeof foo`, 0, 2, "not a string literal"},
		{`typeof foo == null`, 14, 18, "not a string literal"},
		{`typeof a == b.c`, 12, 15, "not a string literal"},
		{`f() === typeof a`, 0, 3, "not a string literal"},
		{`typeof foo === "xyzzy"`, 15, 22, "not a valid type name"},
		{`typeof foo === "obj"`, 15, 20, "not a valid type name"},
	}
	for _, tt := range tests {
		res := lint(t, validTypeof, tt.input, analyzer.QuoteDouble)
		if len(res.Signals) != 1 {
			t.Errorf("%q: expected 1 signal, got %d", tt.input, len(res.Signals))
			continue
		}
		sig := &res.Signals[0]
		if rng := sig.Range(); rng.Start != tt.start || rng.End != tt.end {
			t.Errorf("%q: range %v, want %d..%d", tt.input, rng, tt.start, tt.end)
		}
		if sig.HasAction() {
			t.Errorf("%q: unexpected fix", tt.input)
		}
		d := sig.ToDiagnostic()
		if len(d.Notes) != 1 || d.Notes[0].Msg != tt.note {
			t.Errorf("%q: notes %+v, want %q", tt.input, d.Notes, tt.note)
		}
	}
}

func TestValidTypeofDiagnosticText(t *testing.T) {
	res := lint(t, validTypeof, `typeof foo === "strnig"`, analyzer.QuoteDouble)
	if len(res.Signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(res.Signals))
	}
	d := res.Signals[0].ToDiagnostic()
	if d.Message != "Invalid `typeof` comparison value" {
		t.Fatalf("message %q", d.Message)
	}
	if !strings.Contains(d.Description, `"strnig" is not a valid type name`) {
		t.Fatalf("description %q", d.Description)
	}
	if d.Label() != "lint/suspicious/useValidTypeof" {
		t.Fatalf("label %q", d.Label())
	}
	edits, err := res.Signals[0].Action.Mutation.Edits()
	if err != nil || len(edits) != 1 {
		t.Fatalf("edits %+v, err %v", edits, err)
	}
	in := res.Tree.Text()
	e := edits[0]
	if got := in[:e.Span.Start] + e.NewText + in[e.Span.End:]; got != `typeof foo === "string"` {
		t.Fatalf("edit produced %q", got)
	}
}

func TestValidTypeofDocumentOrder(t *testing.T) {
	in := "typeof a === \"x1\";\ntypeof b == c;\n\"y\" != typeof d;"
	res := lint(t, validTypeof, in, analyzer.QuoteDouble)
	if len(res.Signals) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(res.Signals))
	}
	for i := 1; i < len(res.Signals); i++ {
		if res.Signals[i-1].Range().Start >= res.Signals[i].Range().Start {
			t.Fatalf("signals out of order at %d", i)
		}
	}
}

func TestSuggestTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"String", "string", true},
		{"UNDEFINED", "undefined", true},
		{"strnig", "string", true},
		{"undefimed", "undefined", true},
		{"nunber", "number", true},
		{"fucntion", "function", true},
		{"bigInt", "bigint", true},
		{"xyzzy", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := suggestTypeName(tt.in)
		if ok != tt.ok || (ok && got.String() != tt.want) {
			t.Errorf("suggestTypeName(%q) = %v, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
