package syntax

import (
	"fmt"
	"strings"
)

// Dump renders the subtree rooted at n one element per line, with ranges
// and quoted token text. Absent slots are shown so recovery trees stay
// readable.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	r := n.TextRange()
	fmt.Fprintf(sb, "%s%s@%d..%d\n", strings.Repeat("  ", depth), n.Kind(), r.Start, r.End)
	for i := range n.SlotCount() {
		if c := n.ChildNode(i); c != nil {
			dump(sb, c, depth+1)
			continue
		}
		indent := strings.Repeat("  ", depth+1)
		t := n.ChildToken(i)
		if t == nil {
			fmt.Fprintf(sb, "%s(missing %s)\n", indent, SlotName(n.Kind(), i))
			continue
		}
		tr := t.TextTrimmedRange()
		fmt.Fprintf(sb, "%s%s@%d..%d %q\n", indent, t.Kind(), tr.Start, tr.End, t.Text())
	}
}
