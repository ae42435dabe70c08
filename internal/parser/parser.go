package parser

import (
	"cstlint/internal/diag"
	"cstlint/internal/factory"
	"cstlint/internal/lexer"
	"cstlint/internal/source"
	"cstlint/internal/syntax"
	"cstlint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree   *syntax.Tree
	Errors uint
}

// Parser holds the state for one file. Every token the lexer hands out ends
// up in the tree, wrapped in a Bogus node when it fits nowhere, so the tree
// text always equals the file content.
type Parser struct {
	lx   *lexer.Lexer
	file *source.File
	opts Options

	cur    lexer.Lexeme
	curCtx lexer.Context // context cur was scanned in
	ctx    lexer.Context // context for the token after cur

	lastSpan source.Span // span of the last consumed token, for diagnostics
}

// ParseFile parses one file into a syntax tree. It never fails: malformed
// input yields Bogus nodes and absent slots, reported through opts.Reporter.
func ParseFile(file *source.File, opts Options) Result {
	p := Parser{
		lx:       lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	p.cur = p.lx.Next(lexer.Regular)

	root := p.parseModule()
	return Result{
		Tree:   syntax.NewTree(root, file.ID),
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) parseModule() *syntax.GreenNode {
	var items []*syntax.GreenNode
	for !p.at(token.EOF) {
		items = append(items, p.parseStatement())
	}
	eof := p.cur.Tok
	return factory.Module(factory.ModuleItemList(items...), eof)
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur.Tok.Kind == k
}

func (p *Parser) kind() token.Kind {
	return p.cur.Tok.Kind
}

// bump consumes cur and scans the next token in the current context.
func (p *Parser) bump() *token.Token {
	tok := p.cur.Tok
	if tok.Kind != token.EOF {
		p.lastSpan = p.cur.Span
	}
	p.cur = p.lx.Next(p.ctx)
	p.curCtx = p.ctx
	return tok
}

// bumpInto consumes cur and switches to ctx for the tokens after it.
func (p *Parser) bumpInto(ctx lexer.Context) *token.Token {
	p.ctx = ctx
	return p.bump()
}

// bumpNoTrailingInto consumes cur without its trailing trivia, which is
// scanned again under ctx. Used for the '>' and '}' that precede JSX
// children.
func (p *Parser) bumpNoTrailingInto(ctx lexer.Context) *token.Token {
	if len(p.cur.Tok.Trailing) > 0 {
		p.lx.Rewind(p.cur.Full.Start)
		p.cur = p.lx.NextNoTrailing(p.curCtx)
	}
	return p.bumpInto(ctx)
}

// switchCtx makes ctx the current context, scanning cur again if it was
// produced under another one.
func (p *Parser) switchCtx(ctx lexer.Context) {
	p.ctx = ctx
	if p.curCtx == ctx {
		return
	}
	p.lx.Rewind(p.cur.Full.Start)
	p.cur = p.lx.Next(ctx)
	p.curCtx = ctx
}

// peekSecond returns the kind of the token after cur under ctx without
// consuming anything.
func (p *Parser) peekSecond(ctx lexer.Context) token.Kind {
	off := p.lx.Offset()
	next := p.lx.Next(ctx)
	p.lx.Rewind(off)
	return next.Tok.Kind
}
