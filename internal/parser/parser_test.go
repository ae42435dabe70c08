package parser_test

import (
	"strings"
	"testing"

	"cstlint/internal/ast"
	"cstlint/internal/diag"
	"cstlint/internal/parser"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

func parse(t *testing.T, input string) (*syntax.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(input))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Tree, bag
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n\n// only a comment\n",
		"typeof foo === \"string\";\ntypeof bar == 'undefined'\n",
		"const x = a ? b : c.d(1, 2,);",
		"<div></div>",
		"<div>\n  <span  />\n  {value}\n</div>;",
		"<Foo<T> bar=\"1\" baz={qux} data-x></Foo>",
		"<a.b.c   ></a.b.c>",
		"a === ;",
		") oops (",
		"<div><p></div>",
		"<div attr={>",
		"x = = 1 # 'open",
	}
	for _, in := range inputs {
		tree, _ := parse(t, in)
		if got := tree.Text(); got != in {
			t.Fatalf("round trip of %q produced %q", in, got)
		}
		var sb strings.Builder
		for tok := range tree.Root().Tokens() {
			tok.Green().WriteTo(&sb)
		}
		if sb.String() != in {
			t.Fatalf("token walk of %q produced %q", in, sb.String())
		}
	}
}

func TestTypeofComparisonShape(t *testing.T) {
	tree, bag := parse(t, `typeof foo === "strnig"`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var bins []*syntax.Node
	for n := range tree.Root().Descendants(syntax.BinaryExpression) {
		bins = append(bins, n)
	}
	if len(bins) != 1 {
		t.Fatalf("found %d binary expressions", len(bins))
	}
	bin, _ := ast.CastBinaryExpression(bins[0])
	if bin.OperatorKind() != token.EqEqEq {
		t.Fatalf("operator = %s", bin.OperatorKind())
	}
	left, _ := bin.Left()
	unary, ok := left.(ast.UnaryExpression)
	if !ok || unary.OperatorKind() != token.KwTypeof {
		t.Fatalf("left = %T", left)
	}
	right, _ := bin.Right()
	lit, ok := right.(ast.StringLiteralExpression)
	if !ok || lit.InnerString() != "strnig" {
		t.Fatalf("right = %T", right)
	}
}

func TestPrecedence(t *testing.T) {
	tree, _ := parse(t, "a || b === c + d * e")
	root := tree.Root()
	var logical *syntax.Node
	for n := range root.Descendants(syntax.LogicalExpression) {
		logical = n
		break
	}
	if logical == nil {
		t.Fatalf("no logical expression:\n%s", syntax.Dump(root))
	}
	if logical.ChildNode(2).Kind() != syntax.BinaryExpression {
		t.Fatalf("right of || = %s", logical.ChildNode(2).Kind())
	}
	eq := logical.ChildNode(2)
	if eq.ChildToken(1).Kind() != token.EqEqEq || eq.ChildNode(2).ChildToken(1).Kind() != token.Plus {
		t.Fatalf("unexpected nesting:\n%s", syntax.Dump(root))
	}
}

func TestJsxWhitespaceBelongsToChildren(t *testing.T) {
	tree, bag := parse(t, "<div >  </div>")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var el ast.JsxElement
	for n := range tree.Root().Descendants(syntax.JsxElement) {
		el, _ = ast.CastJsxElement(n)
	}
	open, _ := el.OpeningElement()
	name, _ := open.Name()
	if got := token.TriviaText(name.LastToken().Trailing()); got != " " {
		t.Fatalf("trailing trivia of name = %q", got)
	}
	rAngle, _ := open.RAngle()
	if len(rAngle.Trailing()) != 0 {
		t.Fatalf("'>' kept trailing trivia %q", token.TriviaText(rAngle.Trailing()))
	}
	children, _ := el.Children()
	if children.Len() != 1 {
		t.Fatalf("children = %d, want the whitespace text", children.Len())
	}
}

func TestEmptyElementHasNoChildren(t *testing.T) {
	tree, _ := parse(t, "<Foo<T> a=\"1\"></Foo>")
	for n := range tree.Root().Descendants(syntax.JsxElement) {
		el, _ := ast.CastJsxElement(n)
		children, ok := el.Children()
		if !ok || children.Len() != 0 {
			t.Fatalf("children present:\n%s", syntax.Dump(n))
		}
		open, _ := el.OpeningElement()
		if _, ok := open.TypeArguments(); !ok {
			t.Fatalf("type arguments missing:\n%s", syntax.Dump(n))
		}
		if attrs, _ := open.Attributes(); attrs.Len() != 1 {
			t.Fatalf("attributes = %d", attrs.Len())
		}
		return
	}
	t.Fatalf("no element parsed")
}

func TestRecoveryReportsErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"a === ;", diag.SynExpectExpression},
		{"(a", diag.SynUnclosedParen},
		{"<div>", diag.SynUnclosedJsxElement},
		{"<a></b>", diag.SynMismatchedJsxTag},
		{"const = 1", diag.SynExpectIdentifier},
		{")", diag.SynUnexpectedToken},
	}
	for _, tc := range cases {
		_, bag := parse(t, tc.input)
		found := false
		for _, d := range bag.Items() {
			if d.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Fatalf("%q: missing %s in %v", tc.input, tc.code.ID(), bag.Items())
		}
	}
}

func TestErrorLimit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte(") ) ) ) )"))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs.Get(id), parser.Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 1 || res.Errors != 5 {
		t.Fatalf("reported %d, counted %d", bag.Len(), res.Errors)
	}
}
