// Package parser turns a Miren token sequence into the flat syntax tree in
// internal/ast. Parsing is single-threaded and never aborts on the first
// error: committed errors are accumulated and the parser resynchronizes at
// item and list granularity. Speculative parsing is done with O(1)
// snapshot/restore over the tree, the error log, and the cursor.
package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/diag"
	"github.com/miren-lang/miren/internal/lexer"
	"github.com/miren-lang/miren/internal/token"
)

// Parser holds all state for one parse. A Parser owns its tree and error log
// exclusively until ParseModule returns; nothing is shared across parses.
type Parser struct {
	filename string
	toks     []token.Token
	pos      int

	tree   *ast.Tree
	errors []ParseError

	context   Context
	minIndent int // active indentation threshold (1-based column), 0 = none

	// expected accumulates token kinds from failed expect() calls at the
	// current position; any successful consume clears it.
	expected token.Set

	// generation is bumped by every advance; cached disambiguation results
	// are stamped with it and discarded when stale.
	generation uint64
	lookahead  lookaheadCache

	// indentErrLine dedupes insufficient-indentation errors so one
	// misindented line produces one error, not one per token.
	indentErrLine uint32

	// suppressIndent disables the indentation check while a recovery scan
	// is skipping tokens it will not keep.
	suppressIndent bool

	// nonUseSeen flips once a non-use item parses; use declarations after
	// that point are misplaced.
	nonUseSeen bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithFilename attaches a filename to every diagnostic span.
func WithFilename(name string) Option {
	return func(p *Parser) { p.filename = name }
}

// New creates a parser over an EOF-terminated token sequence. The sequence
// must come from the lexer; sourceLen sizes the tree arena.
func New(toks []token.Token, sourceLen int, opts ...Option) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		panic("parser: token sequence must be EOF-terminated")
	}
	p := &Parser{
		toks: toks,
		tree: ast.NewTree(sourceLen),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseOutput is the immutable result of one parse: the finalized tree, the
// module root, the token sequence the tree's token payloads index into, and
// every accumulated error.
type ParseOutput struct {
	Tree   *ast.Tree
	Root   ast.NodeId
	Tokens []token.Token
	Errors []ParseError
}

// Parse lexes and parses src in one step.
func Parse(filename, src string) ParseOutput {
	toks, lexErrs := lexer.Lex(filename, src)
	p := New(toks, len(src), WithFilename(filename))
	for _, d := range lexErrs {
		p.errors = append(p.errors, ParseError{
			Kind:     ErrLexical,
			Message:  d.Message,
			Span:     d.Span,
			Severity: d.Severity,
		})
	}
	return p.ParseModule()
}

// ParseModule parses the whole token sequence as a module and finalizes the
// tree. The module node's children are the item NodeIds in source order;
// malformed items degrade to error nodes and parsing continues at the next
// synchronization point.
func (p *Parser) ParseModule() ParseOutput {
	var items []ast.NodeId
	p.skipNewlines()

	for !p.atEnd() {
		before := p.pos
		res := p.parseItem()
		switch {
		case res.ok():
			items = append(items, res.node)
		case res.madeProgress():
			p.commit(res)
			p.synchronize(itemStartSet)
			items = append(items, p.errorNode(p.spanAt(before)))
		default:
			p.commit(p.expectedItemError(res))
			p.synchronize(itemStartSet)
			if p.pos == before && !p.atEnd() {
				// The offending token is itself in the sync set or the
				// cap was hit at it; skip it or the loop cannot progress.
				p.advance()
			}
			items = append(items, p.errorNode(p.spanAt(before)))
		}
		p.skipNewlines()
	}

	span := ast.Span{}
	if len(p.toks) > 0 {
		span = ast.Span{Start: p.toks[0].Start, End: p.toks[len(p.toks)-1].End}
	}
	r := p.tree.AllocExtraNodes(items)
	root := p.tree.Alloc(ast.TagModule, span, ast.RangePayload(r))
	p.tree.Finalize()

	return ParseOutput{Tree: p.tree, Root: root, Tokens: p.toks, Errors: p.errors}
}

// Errors returns the error log accumulated so far.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// errorNode allocates a placeholder node covering span.
func (p *Parser) errorNode(span ast.Span) ast.NodeId {
	return p.tree.Alloc(ast.TagError, span, ast.Payload{})
}

// expectedItemError turns an exhausted item dispatch into a diagnostic. If
// expect() recorded candidate kinds they are listed, otherwise the offending
// token is named directly.
func (p *Parser) expectedItemError(res result) result {
	if !p.expected.IsEmpty() {
		return p.failExpectedOneOf()
	}
	cur := p.current()
	err := p.newError(ErrExpectedItem,
		"expected an item, found "+cur.Kind.String(), p.tokenSpan(p.pos))
	switch {
	case cur.Kind == token.Ident && cur.Text == "return":
		err.Help = "`return` is reserved; a function body is a single expression, so the last expression is the result"
	case cur.Kind == token.Ident:
		err.Help = "items start with `@` (function), `$` (constant), `type`, `trait`, `impl`, or `use`"
	}
	return consumedErr(err)
}

// ToDiagnostics converts the error log for rendering.
func (out ParseOutput) ToDiagnostics() []diag.Diagnostic {
	ds := make([]diag.Diagnostic, len(out.Errors))
	for i, e := range out.Errors {
		ds[i] = e.ToDiagnostic()
	}
	return ds
}
