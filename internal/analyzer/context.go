package analyzer

import (
	"context"

	"cstlint/internal/syntax"
)

// RuleContext is handed to every rule callback for a single match.
type RuleContext struct {
	ctx   context.Context
	query *syntax.Node
	tree  *syntax.Tree
	quote QuoteStyle
}

// NewRuleContext builds a context for running one rule on node outside of
// an Analyzer, mostly for tests.
func NewRuleContext(ctx context.Context, node *syntax.Node, quote QuoteStyle) *RuleContext {
	return &RuleContext{ctx: ctx, query: node, tree: node.Tree(), quote: quote}
}

// Query returns the matched node.
func (c *RuleContext) Query() *syntax.Node { return c.query }

// Root returns the root of the tree being analyzed.
func (c *RuleContext) Root() *syntax.Node { return c.tree.Root() }

func (c *RuleContext) Tree() *syntax.Tree { return c.tree }

// PreferredQuote is the quote style synthesized string literals should use.
func (c *RuleContext) PreferredQuote() QuoteStyle { return c.quote }

// Begin opens an empty mutation batch on the analyzed tree.
func (c *RuleContext) Begin() *syntax.BatchMutation { return c.tree.Begin() }

func (c *RuleContext) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}
