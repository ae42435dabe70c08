package analyzer

import (
	"strings"

	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

const ignoreDirective = "cstlint-ignore"

// suppressions returns the rule names silenced for n by "// cstlint-ignore"
// comments in the leading trivia of its first token or of the first token of
// its enclosing statement. Names may be given bare or as full categories,
// separated by spaces or commas; anything after a ':' is an explanation.
func suppressions(n *syntax.Node) []string {
	names := ignoredIn(n.FirstToken(), nil)
	if stmt := statementOf(n); stmt != nil && !stmt.Same(n) {
		names = ignoredIn(stmt.FirstToken(), names)
	}
	return names
}

func statementOf(n *syntax.Node) *syntax.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if p := cur.Parent(); p != nil && p.Kind() == syntax.ModuleItemList {
			return cur
		}
	}
	return nil
}

func ignoredIn(first *syntax.Token, names []string) []string {
	if first == nil {
		return names
	}
	for _, piece := range first.Leading() {
		if piece.Kind != token.TriviaLineComment {
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(piece.Text, "//"))
		rest, ok := strings.CutPrefix(body, ignoreDirective)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		if i := strings.IndexByte(rest, ':'); i >= 0 {
			rest = rest[:i]
		}
		for _, f := range strings.FieldsFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' || r == ',' }) {
			if i := strings.LastIndexByte(f, '/'); i >= 0 {
				f = f[i+1:]
			}
			names = append(names, f)
		}
	}
	return names
}
