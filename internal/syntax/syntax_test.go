package syntax_test

import (
	"errors"
	"strings"
	"testing"

	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

func tk(kind token.Kind, text string, leading, trailing string) syntax.Element {
	var lead, trail []token.Trivia
	if leading != "" {
		lead = []token.Trivia{{Kind: token.TriviaSpace, Text: leading}}
	}
	if trailing != "" {
		trail = []token.Trivia{{Kind: token.TriviaSpace, Text: trailing}}
	}
	return syntax.TokenElement(token.New(kind, text, lead, trail))
}

func ident(name, trailing string) syntax.Element {
	return syntax.NodeElement(syntax.NewNode(syntax.IdentifierExpression, tk(token.Ident, name, "", trailing)))
}

func str(text string) syntax.Element {
	return syntax.NodeElement(syntax.NewNode(syntax.StringLiteralExpression, tk(token.StringLit, text, "", "")))
}

func stmt(expr syntax.Element) syntax.Element {
	return syntax.NodeElement(syntax.NewNode(syntax.ExpressionStatement, expr, tk(token.Semicolon, ";", "", "")))
}

func binary(left syntax.Element, op token.Kind, right syntax.Element) syntax.Element {
	return syntax.NodeElement(syntax.NewNode(syntax.BinaryExpression, left, tk(op, op.Text(), "", " "), right))
}

// sample builds `a === b;c == "x";`.
func sample() *syntax.Tree {
	items := syntax.NewNode(syntax.ModuleItemList,
		stmt(binary(ident("a", " "), token.EqEqEq, ident("b", ""))),
		stmt(binary(ident("c", " "), token.EqEq, str(`"x"`))),
	)
	root := syntax.NewNode(syntax.Module, syntax.NodeElement(items), tk(token.EOF, "", "", ""))
	return syntax.NewTree(root, 1)
}

func TestTextRoundTrip(t *testing.T) {
	tree := sample()
	if got, want := tree.Text(), `a === b;c == "x";`; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	var sb strings.Builder
	for tok := range tree.Root().Tokens() {
		tok.Green().WriteTo(&sb)
	}
	if sb.String() != tree.Text() {
		t.Fatalf("token concatenation = %q", sb.String())
	}
}

func TestNewNodeRejectsWrongSlot(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, syntax.ErrIncompatibleSlot) {
			t.Fatalf("expected incompatible slot panic, got %v", r)
		}
	}()
	syntax.NewNode(syntax.IdentifierExpression, tk(token.NumberLit, "1", "", ""))
}

func TestNewNodeAllowsAbsentAndBogus(t *testing.T) {
	bogus := syntax.NodeElement(syntax.NewNode(syntax.Bogus, tk(token.Star, "*", "", "")))
	n := syntax.NewNode(syntax.BinaryExpression, bogus, tk(token.Plus, "+", "", ""), syntax.Absent)
	if n.Text() != "*+" {
		t.Fatalf("text = %q", n.Text())
	}
}

func TestPreorderAndParents(t *testing.T) {
	tree := sample()
	var kinds []string
	for n := range tree.Root().Preorder() {
		kinds = append(kinds, n.Kind().String())
	}
	want := []string{
		"MODULE", "MODULE_ITEM_LIST",
		"EXPRESSION_STATEMENT", "BINARY_EXPRESSION", "IDENTIFIER_EXPRESSION", "IDENTIFIER_EXPRESSION",
		"EXPRESSION_STATEMENT", "BINARY_EXPRESSION", "IDENTIFIER_EXPRESSION", "STRING_LITERAL_EXPRESSION",
	}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Fatalf("preorder = %v", kinds)
	}
	for lit := range tree.Root().Descendants(syntax.StringLiteralExpression) {
		p := lit.Parent()
		if p.Kind() != syntax.BinaryExpression || !p.ChildNode(2).Same(lit) {
			t.Fatalf("parent of literal = %s", p.Kind())
		}
		r := lit.TextTrimmedRange()
		if r.Start != 13 || r.End != 16 {
			t.Fatalf("literal range = %v", r)
		}
	}
}

func TestPrevNextToken(t *testing.T) {
	tree := sample()
	var toks []*syntax.Token
	for tok := range tree.Root().Tokens() {
		toks = append(toks, tok)
	}
	for i, tok := range toks {
		prev := tok.PrevToken()
		if i == 0 {
			if prev != nil {
				t.Fatalf("first token has prev %q", prev.Text())
			}
			continue
		}
		if !prev.Same(toks[i-1]) {
			t.Fatalf("prev of %d = %q, want %q", i, prev.Text(), toks[i-1].Text())
		}
		if !toks[i-1].NextToken().Same(tok) {
			t.Fatalf("next of %d mismatch", i-1)
		}
	}
}

func TestCommitSharesUntouchedSubtrees(t *testing.T) {
	tree := sample()
	var target *syntax.Node
	for lit := range tree.Root().Descendants(syntax.StringLiteralExpression) {
		target = lit
	}
	batch := tree.Begin()
	batch.ReplaceNode(target, str(`"string"`).Node())
	next, err := batch.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got, want := next.Text(), `a === b;c == "string";`; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	if tree.Text() != `a === b;c == "x";` {
		t.Fatalf("base tree changed: %q", tree.Text())
	}
	oldItems := tree.Green().Slot(0).Node()
	newItems := next.Green().Slot(0).Node()
	if oldItems == newItems {
		t.Fatalf("item list on the edit path was not copied")
	}
	if oldItems.Slot(0).Node() != newItems.Slot(0).Node() {
		t.Fatalf("untouched statement not shared")
	}
	if tree.Green().Slot(1).Token() != next.Green().Slot(1).Token() {
		t.Fatalf("EOF token not shared")
	}
}

func TestCommitRejectsOverlappingEdits(t *testing.T) {
	tree := sample()
	var lit, bin *syntax.Node
	for n := range tree.Root().Descendants(syntax.StringLiteralExpression) {
		lit = n
		bin = n.Parent()
	}
	batch := tree.Begin()
	batch.ReplaceNode(lit, str(`"y"`).Node())
	batch.ReplaceNode(bin, ident("z", "").Node())
	if _, err := batch.Commit(); !errors.Is(err, syntax.ErrOverlappingEdits) {
		t.Fatalf("err = %v, want overlapping", err)
	}
	if _, err := batch.Edits(); !errors.Is(err, syntax.ErrOverlappingEdits) {
		t.Fatalf("edits err = %v", err)
	}
}

func TestCommitRejectsUnreachableNode(t *testing.T) {
	tree := sample()
	other := sample()
	var foreign *syntax.Node
	for n := range other.Root().Descendants(syntax.StringLiteralExpression) {
		foreign = n
	}
	batch := tree.Begin()
	batch.ReplaceNode(foreign, str(`"y"`).Node())
	if _, err := batch.Commit(); !errors.Is(err, syntax.ErrNodeNotReachable) {
		t.Fatalf("err = %v, want not reachable", err)
	}
}

func TestCommitRejectsIncompatibleSlot(t *testing.T) {
	tree := sample()
	var stmtNode *syntax.Node
	for n := range tree.Root().Descendants(syntax.ExpressionStatement) {
		stmtNode = n
		break
	}
	batch := tree.Begin()
	// An expression cannot stand where a statement is expected.
	batch.ReplaceNode(stmtNode, ident("q", "").Node())
	if _, err := batch.Commit(); !errors.Is(err, syntax.ErrIncompatibleSlot) {
		t.Fatalf("err = %v, want incompatible slot", err)
	}
}

func TestEditsAndMerge(t *testing.T) {
	tree := sample()
	var lits []*syntax.Node
	for n := range tree.Root().Descendants(syntax.IdentifierExpression) {
		lits = append(lits, n)
	}
	first := tree.Begin()
	first.ReplaceNode(lits[0], ident("aa", " ").Node())
	second := tree.Begin()
	second.ReplaceNode(lits[2], ident("cc", " ").Node())
	if first.Conflicts(second) {
		t.Fatalf("disjoint batches reported as conflicting")
	}
	if err := first.Merge(second); err != nil {
		t.Fatalf("merge: %v", err)
	}
	edits, err := first.Edits()
	if err != nil {
		t.Fatalf("edits: %v", err)
	}
	if len(edits) != 2 || edits[0].Span.Start != 1 || edits[0].NewText != "a" {
		t.Fatalf("edits = %+v", edits)
	}
	next, err := first.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := syntax.ApplyEdits(tree.Text(), edits); got != next.Text() {
		t.Fatalf("applied edits %q != committed %q", got, next.Text())
	}
	dup := tree.Begin()
	dup.ReplaceNode(lits[0], ident("x", " ").Node())
	if !first.Conflicts(dup) {
		t.Fatalf("same target not reported as conflict")
	}
}

func TestAncestorsAndChildTokens(t *testing.T) {
	tree := sample()
	var lit *syntax.Node
	for n := range tree.Root().Descendants(syntax.StringLiteralExpression) {
		lit = n
	}
	if lit == nil {
		t.Fatalf("no string literal")
	}

	var kinds []string
	for a := range lit.Ancestors() {
		kinds = append(kinds, a.Kind().String())
	}
	want := []string{
		syntax.BinaryExpression.String(),
		syntax.ExpressionStatement.String(),
		syntax.ModuleItemList.String(),
		syntax.Module.String(),
	}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Fatalf("ancestors = %v, want %v", kinds, want)
	}

	bin := lit.Parent()
	var texts []string
	for tok := range bin.ChildTokens() {
		texts = append(texts, tok.Text())
	}
	if len(texts) != 1 || texts[0] != "==" {
		t.Fatalf("direct tokens of binary = %q", texts)
	}
}
