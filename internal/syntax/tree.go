package syntax

import (
	"fortio.org/safecast"

	"cstlint/internal/source"
)

// Tree pairs a green root with the file it was parsed from. Trees are
// immutable values; a committed mutation yields a new Tree.
type Tree struct {
	root *GreenNode
	file source.FileID
}

// NewTree wraps root. The tree does not copy root; green nodes are shared.
func NewTree(root *GreenNode, file source.FileID) *Tree {
	return &Tree{root: root, file: file}
}

// Root returns a red handle for the root node.
func (t *Tree) Root() *Node {
	return &Node{tree: t, green: t.root, index: -1}
}

// Green returns the green root.
func (t *Tree) Green() *GreenNode { return t.root }

// File returns the identifier of the file the tree covers.
func (t *Tree) File() source.FileID { return t.file }

// Text reconstructs the source text, trivia included.
func (t *Tree) Text() string { return t.root.Text() }

// Begin starts an empty mutation batch against t.
func (t *Tree) Begin() *BatchMutation {
	return &BatchMutation{tree: t}
}

func (t *Tree) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(err)
	}
	return source.Span{File: t.file, Start: s, End: e}
}
