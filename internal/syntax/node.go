package syntax

import (
	"iter"
	"slices"

	"cstlint/internal/source"
	"cstlint/internal/token"
)

// Node is a positioned view of a green node inside one Tree. Handles are
// created on demand and compared with Same, never by pointer.
type Node struct {
	tree   *Tree
	green  *GreenNode
	parent *Node
	index  int // slot in parent, -1 for the root
	offset int
}

// Token is a positioned view of a token inside one Tree.
type Token struct {
	tree   *Tree
	green  *token.Token
	parent *Node
	index  int
	offset int
}

func (n *Node) Kind() Kind        { return n.green.kind }
func (n *Node) Green() *GreenNode { return n.green }
func (n *Node) Tree() *Tree       { return n.tree }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Index() int        { return n.index }
func (n *Node) SlotCount() int    { return len(n.green.slots) }
func (n *Node) Text() string      { return n.green.Text() }
func (n *Node) Offset() int       { return n.offset }
func (n *Node) Element() Element  { return NodeElement(n.green) }
func (n *Node) IsList() bool      { return n.green.kind.IsList() }

func (n *Node) slotOffset(i int) int {
	off := n.offset
	for j := range i {
		off += n.green.slots[j].Width()
	}
	return off
}

// Same reports whether both handles denote the same position in the same
// tree.
func (n *Node) Same(o *Node) bool {
	return n != nil && o != nil && n.tree == o.tree && n.green == o.green && n.offset == o.offset
}

// ChildNode returns slot i as a node, or nil when the slot is absent or
// holds a token.
func (n *Node) ChildNode(i int) *Node {
	e := n.green.Slot(i)
	if e.node == nil {
		return nil
	}
	return &Node{tree: n.tree, green: e.node, parent: n, index: i, offset: n.slotOffset(i)}
}

// ChildToken returns slot i as a token, or nil when the slot is absent or
// holds a node.
func (n *Node) ChildToken(i int) *Token {
	e := n.green.Slot(i)
	if e.token == nil {
		return nil
	}
	return &Token{tree: n.tree, green: e.token, parent: n, index: i, offset: n.slotOffset(i)}
}

// Children yields the present child nodes in slot order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		off := n.offset
		for i, e := range n.green.slots {
			if e.node != nil {
				if !yield(&Node{tree: n.tree, green: e.node, parent: n, index: i, offset: off}) {
					return
				}
			}
			off += e.Width()
		}
	}
}

// ChildTokens yields the tokens held directly in n's slots.
func (n *Node) ChildTokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		off := n.offset
		for i, e := range n.green.slots {
			if e.token != nil {
				if !yield(&Token{tree: n.tree, green: e.token, parent: n, index: i, offset: off}) {
					return
				}
			}
			off += e.Width()
		}
	}
}

// Preorder yields n and every descendant node, parents before children and
// siblings in source order.
func (n *Node) Preorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.preorder(yield)
	}
}

func (n *Node) preorder(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.Children() {
		if !c.preorder(yield) {
			return false
		}
	}
	return true
}

// Descendants yields the nodes below n whose kind is one of kinds, in
// document order. With no kinds every descendant is yielded.
func (n *Node) Descendants(kinds ...Kind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for d := range n.Preorder() {
			if d == n {
				continue
			}
			if len(kinds) > 0 && !slices.Contains(kinds, d.Kind()) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Tokens yields every token of the subtree in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.tokens(yield)
	}
}

func (n *Node) tokens(yield func(*Token) bool) bool {
	off := n.offset
	for i, e := range n.green.slots {
		switch {
		case e.token != nil:
			if !yield(&Token{tree: n.tree, green: e.token, parent: n, index: i, offset: off}) {
				return false
			}
		case e.node != nil:
			c := &Node{tree: n.tree, green: e.node, parent: n, index: i, offset: off}
			if !c.tokens(yield) {
				return false
			}
		}
		off += e.Width()
	}
	return true
}

// FirstToken returns the first token of the subtree, or nil when it holds
// none.
func (n *Node) FirstToken() *Token {
	for t := range n.Tokens() {
		return t
	}
	return nil
}

// LastToken returns the last token of the subtree, or nil when it holds
// none.
func (n *Node) LastToken() *Token {
	for i := len(n.green.slots) - 1; i >= 0; i-- {
		if t := n.lastTokenIn(i); t != nil {
			return t
		}
	}
	return nil
}

// lastTokenIn returns the last token inside slot i.
func (n *Node) lastTokenIn(i int) *Token {
	e := n.green.slots[i]
	switch {
	case e.token != nil:
		return n.ChildToken(i)
	case e.node != nil:
		return n.ChildNode(i).LastToken()
	}
	return nil
}

// firstTokenIn returns the first token inside slot i.
func (n *Node) firstTokenIn(i int) *Token {
	e := n.green.slots[i]
	switch {
	case e.token != nil:
		return n.ChildToken(i)
	case e.node != nil:
		return n.ChildNode(i).FirstToken()
	}
	return nil
}

// Ancestors yields the parent chain of n, nearest first.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// Path returns the slot indices leading from the root to n.
func (n *Node) Path() []int {
	return pathOf(n.parent, n.index)
}

func pathOf(parent *Node, index int) []int {
	var path []int
	if parent != nil {
		path = append(path, index)
		for p := parent; p.parent != nil; p = p.parent {
			path = append(path, p.index)
		}
	}
	slices.Reverse(path)
	return path
}

// TextRange covers the subtree including leading and trailing trivia.
func (n *Node) TextRange() source.Span {
	return n.tree.span(n.offset, n.offset+n.green.width)
}

// TextTrimmedRange covers the subtree without the leading trivia of its
// first token and the trailing trivia of its last token.
func (n *Node) TextTrimmedRange() source.Span {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return n.tree.span(n.offset, n.offset)
	}
	return first.TextTrimmedRange().Cover(last.TextTrimmedRange())
}

// TrimmedText returns the subtree text without its outer trivia.
func (n *Node) TrimmedText() string {
	r := n.TextTrimmedRange()
	full := n.Text()
	start := int(r.Start) - n.offset
	return full[start : start+int(r.Len())]
}

func (t *Token) Kind() token.Kind         { return t.green.Kind }
func (t *Token) Green() *token.Token      { return t.green }
func (t *Token) Text() string             { return t.green.Text }
func (t *Token) Leading() []token.Trivia  { return t.green.Leading }
func (t *Token) Trailing() []token.Trivia { return t.green.Trailing }
func (t *Token) Parent() *Node            { return t.parent }
func (t *Token) Index() int               { return t.index }
func (t *Token) Element() Element         { return TokenElement(t.green) }

// Same reports whether both handles denote the same token position.
func (t *Token) Same(o *Token) bool {
	return t != nil && o != nil && t.tree == o.tree && t.green == o.green && t.offset == o.offset
}

// TextRange covers the token with its trivia.
func (t *Token) TextRange() source.Span {
	return t.tree.span(t.offset, t.offset+t.green.Width())
}

// TextTrimmedRange covers the token text only.
func (t *Token) TextTrimmedRange() source.Span {
	start := t.offset + t.green.LeadingLen()
	return t.tree.span(start, start+len(t.green.Text))
}

// Path returns the slot indices leading from the root to t.
func (t *Token) Path() []int {
	return pathOf(t.parent, t.index)
}

// PrevToken returns the token immediately before t in source order, or nil
// for the first token of the tree.
func (t *Token) PrevToken() *Token {
	index := t.index
	for p := t.parent; p != nil; p = p.parent {
		for i := index - 1; i >= 0; i-- {
			if tok := p.lastTokenIn(i); tok != nil {
				return tok
			}
		}
		index = p.index
	}
	return nil
}

// NextToken returns the token immediately after t in source order, or nil
// for the last token of the tree.
func (t *Token) NextToken() *Token {
	index := t.index
	for p := t.parent; p != nil; p = p.parent {
		for i := index + 1; i < len(p.green.slots); i++ {
			if tok := p.firstTokenIn(i); tok != nil {
				return tok
			}
		}
		index = p.index
	}
	return nil
}
