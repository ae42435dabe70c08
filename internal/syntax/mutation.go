package syntax

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cstlint/internal/source"
	"cstlint/internal/token"
)

// BatchMutation records replacements against one base tree. Nothing is
// applied until Commit, and Commit never touches the base tree.
type BatchMutation struct {
	tree    *Tree
	changes []change
	err     error
}

type change struct {
	path []int
	old  Element
	new  Element
}

// resolved is a change located in the base tree.
type resolved struct {
	change
	parent *GreenNode // nil when replacing the root
	offset int
}

// Edit is the textual effect of one replacement.
type Edit struct {
	Span    source.Span
	OldText string
	NewText string
}

// Tree returns the base tree.
func (b *BatchMutation) Tree() *Tree { return b.tree }

// Len returns the number of recorded replacements.
func (b *BatchMutation) Len() int { return len(b.changes) }

// IsEmpty reports whether nothing has been recorded.
func (b *BatchMutation) IsEmpty() bool { return len(b.changes) == 0 }

// ReplaceNode records that old is to be replaced by replacement.
func (b *BatchMutation) ReplaceNode(old *Node, replacement *GreenNode) {
	if old == nil {
		b.fail(fmt.Errorf("%w: nil node", ErrNodeNotReachable))
		return
	}
	b.record(old.Path(), old.Element(), NodeElement(replacement))
}

// ReplaceToken records that old is to be replaced by replacement.
func (b *BatchMutation) ReplaceToken(old *Token, replacement *token.Token) {
	if old == nil {
		b.fail(fmt.Errorf("%w: nil token", ErrNodeNotReachable))
		return
	}
	b.record(old.Path(), old.Element(), TokenElement(replacement))
}

func (b *BatchMutation) record(path []int, old, replacement Element) {
	if replacement.IsAbsent() {
		b.fail(fmt.Errorf("%w: nil replacement for %s", ErrIncompatibleSlot, old))
		return
	}
	b.changes = append(b.changes, change{path: path, old: old, new: replacement})
}

func (b *BatchMutation) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Validate checks every recorded replacement against the base tree without
// building anything.
func (b *BatchMutation) Validate() error {
	_, err := b.resolve()
	return err
}

func (b *BatchMutation) resolve() ([]resolved, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]resolved, 0, len(b.changes))
	for _, c := range b.changes {
		r, err := b.locate(c)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(x, y resolved) int { return slices.Compare(x.path, y.path) })
	for i := 1; i < len(out); i++ {
		if isPrefix(out[i-1].path, out[i].path) {
			return nil, fmt.Errorf("%w: %s at %v and %s at %v",
				ErrOverlappingEdits, out[i-1].old, out[i-1].path, out[i].old, out[i].path)
		}
	}
	return out, nil
}

// locate walks c.path from the root and checks that it still leads to the
// recorded element.
func (b *BatchMutation) locate(c change) (resolved, error) {
	var parent *GreenNode
	cur := NodeElement(b.tree.root)
	offset := 0
	for _, slot := range c.path {
		if cur.node == nil || slot < 0 || slot >= len(cur.node.slots) {
			return resolved{}, fmt.Errorf("%w: %s", ErrNodeNotReachable, c.old)
		}
		parent = cur.node
		for j := range slot {
			offset += parent.slots[j].Width()
		}
		cur = parent.slots[slot]
	}
	if !cur.same(c.old) {
		return resolved{}, fmt.Errorf("%w: %s", ErrNodeNotReachable, c.old)
	}
	switch {
	case parent == nil && c.new.node == nil:
		return resolved{}, fmt.Errorf("%w: root replaced by token %s", ErrIncompatibleSlot, c.new)
	case parent != nil && !Accepts(parent.kind, c.path[len(c.path)-1], c.new):
		slot := c.path[len(c.path)-1]
		return resolved{}, fmt.Errorf("%w: %s in slot %q of %s",
			ErrIncompatibleSlot, c.new, SlotName(parent.kind, slot), parent.kind)
	}
	return resolved{change: c, parent: parent, offset: offset}, nil
}

func isPrefix(prefix, path []int) bool {
	return len(prefix) <= len(path) && slices.Equal(prefix, path[:len(prefix)])
}

// Commit validates the batch and builds the new tree. Either every
// replacement is applied or none is; on error the base tree is the only
// tree.
func (b *BatchMutation) Commit() (*Tree, error) {
	changes, err := b.resolve()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return b.tree, nil
	}
	if len(changes[0].path) == 0 {
		return NewTree(changes[0].new.node, b.tree.file), nil
	}
	return NewTree(rebuild(b.tree.root, 0, changes), b.tree.file), nil
}

// rebuild copies g with the changes below it applied. changes are sorted by
// path, share the first depth indices, and are disjoint.
func rebuild(g *GreenNode, depth int, changes []resolved) *GreenNode {
	slots := make([]Element, len(g.slots))
	copy(slots, g.slots)
	for len(changes) > 0 {
		slot := changes[0].path[depth]
		n := 1
		for n < len(changes) && changes[n].path[depth] == slot {
			n++
		}
		group := changes[:n]
		changes = changes[n:]
		if len(group[0].path) == depth+1 {
			slots[slot] = group[0].new
			continue
		}
		slots[slot] = NodeElement(rebuild(slots[slot].node, depth+1, group))
	}
	return newNodeUnchecked(g.kind, slots)
}

// Conflicts reports whether any replacement in b overlaps one in other.
// Batches over different trees always conflict.
func (b *BatchMutation) Conflicts(other *BatchMutation) bool {
	if b.tree != other.tree {
		return true
	}
	for _, x := range b.changes {
		for _, y := range other.changes {
			if isPrefix(x.path, y.path) || isPrefix(y.path, x.path) {
				return true
			}
		}
	}
	return false
}

// Merge appends the replacements of other to b.
func (b *BatchMutation) Merge(other *BatchMutation) error {
	if b.tree != other.tree {
		return ErrForeignTree
	}
	if other.err != nil {
		return other.err
	}
	if b.Conflicts(other) {
		return ErrOverlappingEdits
	}
	b.changes = append(b.changes, other.changes...)
	return nil
}

// Edits describes the batch as text replacements against the base tree's
// text, sorted by position. Text shared by the old and new element at
// either end is left out of each edit.
func (b *BatchMutation) Edits() ([]Edit, error) {
	changes, err := b.resolve()
	if err != nil {
		return nil, err
	}
	edits := make([]Edit, 0, len(changes))
	for _, c := range changes {
		oldText, newText := c.old.Text(), c.new.Text()
		pre := commonPrefix(oldText, newText)
		suf := commonSuffix(oldText[pre:], newText[pre:])
		start := c.offset + pre
		edits = append(edits, Edit{
			Span:    b.tree.span(start, c.offset+len(oldText)-suf),
			OldText: oldText[pre : len(oldText)-suf],
			NewText: newText[pre : len(newText)-suf],
		})
	}
	slices.SortFunc(edits, func(x, y Edit) int { return cmp.Compare(x.Span.Start, y.Span.Start) })
	return edits, nil
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

// ApplyEdits rewrites text with edits, which must be sorted and disjoint.
func ApplyEdits(text string, edits []Edit) string {
	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, e := range edits {
		sb.WriteString(text[last:e.Span.Start])
		sb.WriteString(e.NewText)
		last = int(e.Span.End)
	}
	sb.WriteString(text[last:])
	return sb.String()
}
