package syntax

import (
	"fmt"
	"strings"

	"cstlint/internal/token"
)

// Element is one child slot of a green node: a node, a token, or absent.
// The zero value is the absent element.
type Element struct {
	node  *GreenNode
	token *token.Token
}

// NodeElement wraps n; a nil n yields the absent element.
func NodeElement(n *GreenNode) Element { return Element{node: n} }

// TokenElement wraps t; a nil t yields the absent element.
func TokenElement(t *token.Token) Element { return Element{token: t} }

// Absent is the empty slot.
var Absent = Element{}

func (e Element) IsAbsent() bool { return e.node == nil && e.token == nil }

// Node returns the wrapped node or nil.
func (e Element) Node() *GreenNode { return e.node }

// Token returns the wrapped token or nil.
func (e Element) Token() *token.Token { return e.token }

// Width returns the full text length of the element.
func (e Element) Width() int {
	switch {
	case e.node != nil:
		return e.node.width
	case e.token != nil:
		return e.token.Width()
	}
	return 0
}

// Text returns the full text of the element.
func (e Element) Text() string {
	switch {
	case e.node != nil:
		return e.node.Text()
	case e.token != nil:
		return e.token.FullText()
	}
	return ""
}

func (e Element) same(o Element) bool { return e.node == o.node && e.token == o.token }

func (e Element) String() string {
	switch {
	case e.node != nil:
		return e.node.kind.String()
	case e.token != nil:
		return e.token.Kind.String()
	}
	return "<absent>"
}

// GreenNode is an immutable interior node. Green nodes carry no position or
// parent; the same node may appear in several tree versions.
type GreenNode struct {
	kind  Kind
	slots []Element
	width int
}

// NewNode builds a green node after checking every child against the
// grammar. A child whose kind does not fit its slot is a programming error
// and panics.
func NewNode(kind Kind, children ...Element) *GreenNode {
	if err := checkSlots(kind, children); err != nil {
		panic(err)
	}
	return newNodeUnchecked(kind, children)
}

func newNodeUnchecked(kind Kind, children []Element) *GreenNode {
	slots := make([]Element, len(children))
	copy(slots, children)
	width := 0
	for _, c := range slots {
		width += c.Width()
	}
	return &GreenNode{kind: kind, slots: slots, width: width}
}

func checkSlots(kind Kind, children []Element) error {
	if kind >= kindCount {
		return fmt.Errorf("syntax: unknown node kind %d", kind)
	}
	if n := SlotCount(kind); n >= 0 && len(children) != n {
		return fmt.Errorf("syntax: %s takes %d slots, got %d", kind, n, len(children))
	}
	for i, c := range children {
		if !Accepts(kind, i, c) {
			return fmt.Errorf("%w: %s in slot %q of %s", ErrIncompatibleSlot, c, SlotName(kind, i), kind)
		}
	}
	return nil
}

func (n *GreenNode) Kind() Kind { return n.kind }

// Width returns the full text length of the subtree.
func (n *GreenNode) Width() int { return n.width }

// SlotCount returns the number of slots, absent ones included.
func (n *GreenNode) SlotCount() int { return len(n.slots) }

// Slot returns slot i, or Absent when out of range.
func (n *GreenNode) Slot(i int) Element {
	if i < 0 || i >= len(n.slots) {
		return Absent
	}
	return n.slots[i]
}

// Text returns the full source text of the subtree.
func (n *GreenNode) Text() string {
	var b strings.Builder
	b.Grow(n.width)
	n.writeTo(&b)
	return b.String()
}

func (n *GreenNode) writeTo(b *strings.Builder) {
	for _, c := range n.slots {
		switch {
		case c.node != nil:
			c.node.writeTo(b)
		case c.token != nil:
			c.token.WriteTo(b)
		}
	}
}

// withSlot returns a copy of n with slot i replaced.
func (n *GreenNode) withSlot(i int, e Element) *GreenNode {
	slots := make([]Element, len(n.slots))
	copy(slots, n.slots)
	slots[i] = e
	return newNodeUnchecked(n.kind, slots)
}
