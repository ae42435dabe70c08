package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cstlint/internal/diag"
	"cstlint/internal/parser"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
)

// Parse parses input as a virtual file named name and returns the tree,
// the file and the parse diagnostics.
func Parse(name, input string) (*syntax.Tree, *source.File, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(input))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Tree, fs.Get(id), bag
}

// CheckRoundTrip verifies that the tree text and the concatenation of its
// tokens both equal want.
func CheckRoundTrip(tree *syntax.Tree, want string) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	if got := tree.Text(); got != want {
		return fmt.Errorf("tree text %q, want %q", got, want)
	}
	var text []byte
	for tok := range tree.Root().Tokens() {
		text = append(text, tok.Green().FullText()...)
	}
	if string(text) != want {
		return fmt.Errorf("token text %q, want %q", text, want)
	}
	return nil
}

// CheckSpanInvariants runs the span invariants of a tree parsed from sf:
// 1) the root covers the whole file content
// 2) every child range lies within its parent's range
// 3) sibling ranges are ordered and do not overlap
// 4) trimmed ranges lie within full ranges
func CheckSpanInvariants(tree *syntax.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := tree.Root().TextRange()
	if root.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.File, sf.ID)
	}
	if root.Start != 0 || root.End != lenContent {
		return fmt.Errorf("root span %v does not cover content of length %d", root, lenContent)
	}
	for n := range tree.Root().Preorder() {
		full := n.TextRange()
		if trimmed := n.TextTrimmedRange(); !full.Contains(trimmed) {
			return fmt.Errorf("%s: trimmed range %v outside %v", n.Kind(), trimmed, full)
		}
		prevEnd := full.Start
		for c := range n.Children() {
			sp := c.TextRange()
			if !full.Contains(sp) {
				return fmt.Errorf("%s range %v is outside parent %s %v", c.Kind(), sp, n.Kind(), full)
			}
			if sp.Start < prevEnd {
				return fmt.Errorf("%s range %v overlaps its previous sibling", c.Kind(), sp)
			}
			prevEnd = sp.End
		}
	}
	return nil
}

// CheckSharing verifies that after was derived from before by replacing
// only the element at path: every slot off the path must hold the very same
// element in both trees.
func CheckSharing(before, after *syntax.Tree, path []int) error {
	b, a := before.Green(), after.Green()
	for depth, idx := range path {
		if b.SlotCount() != a.SlotCount() {
			return fmt.Errorf("depth %d: slot count changed from %d to %d", depth, b.SlotCount(), a.SlotCount())
		}
		for i := range b.SlotCount() {
			if i == idx {
				continue
			}
			if !sameElement(b.Slot(i), a.Slot(i)) {
				return fmt.Errorf("depth %d: untouched slot %d was copied", depth, i)
			}
		}
		if depth == len(path)-1 {
			break
		}
		b, a = b.Slot(idx).Node(), a.Slot(idx).Node()
		if b == nil || a == nil {
			return fmt.Errorf("depth %d: path leaves the tree", depth)
		}
	}
	return nil
}

func sameElement(x, y syntax.Element) bool {
	return x.Node() == y.Node() && x.Token() == y.Token()
}
