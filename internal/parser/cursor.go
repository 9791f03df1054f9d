package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// Context is the bitset of mutually-independent parse modes. Flags are only
// mutated through withContext, which restores them on every exit path.
type Context uint8

const (
	ctxInPattern Context = 1 << iota
	ctxInType
	ctxNoStructLit
	ctxInConstExpr
	ctxInLoop
	ctxInFunction
	ctxYieldAllowed
)

func (c Context) has(flag Context) bool { return c&flag != 0 }

// current returns the token under the cursor. The EOF sentinel makes this
// safe at any position.
func (p *Parser) current() token.Token {
	return p.toks[p.pos]
}

// currentKind returns the kind under the cursor.
func (p *Parser) currentKind() token.Kind {
	return p.toks[p.pos].Kind
}

// peekKind returns the kind n tokens ahead, saturating at EOF.
func (p *Parser) peekKind(n int) token.Kind {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i].Kind
}

// peekAt returns the token n ahead, saturating at EOF.
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

// at reports whether the cursor is on kind.
func (p *Parser) at(kind token.Kind) bool {
	return p.currentKind() == kind
}

func (p *Parser) atEnd() bool {
	return p.currentKind() == token.EOF
}

// advance consumes the current token. It clears the expected-token
// accumulator, bumps the lookahead generation, and enforces the active
// indentation threshold on the consumed token.
func (p *Parser) advance() {
	p.checkIndent()
	p.expected = 0
	p.generation++
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

// expect consumes the current token when it matches kind. On mismatch the
// kind is recorded into the expected-token set for a later "expected one of"
// diagnostic and the cursor does not move.
func (p *Parser) expect(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	p.expected = p.expected.With(kind)
	return false
}

// expectIdent consumes an identifier (soft keywords included) and returns
// its token index.
func (p *Parser) expectIdent() (uint32, bool) {
	if p.at(token.Ident) {
		idx := uint32(p.pos)
		p.advance()
		return idx, true
	}
	p.expected = p.expected.With(token.Ident)
	return 0, false
}

// skipNewlines advances over layout tokens.
func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// Position returns the current (line, column, offset).
func (p *Parser) Position() (line, column, offset int) {
	t := p.current()
	return int(t.Line), int(t.Column), int(t.Start)
}

// tokenSpan returns the byte span of the token at index i.
func (p *Parser) tokenSpan(i int) ast.Span {
	t := p.toks[i]
	return ast.Span{Start: t.Start, End: t.End}
}

// spanAt returns a zero-width span anchored at token index i, used for
// placeholder nodes.
func (p *Parser) spanAt(i int) ast.Span {
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return ast.Span{Start: p.toks[i].Start, End: p.toks[i].Start}
}

// spanFrom merges the spans of tokens [start, p.pos), falling back to a
// zero-width span when nothing was consumed.
func (p *Parser) spanFrom(start int) ast.Span {
	if p.pos <= start {
		return p.spanAt(start)
	}
	return ast.Span{Start: p.toks[start].Start, End: p.toks[p.pos-1].End}
}

// snapshot captures every piece of growable and scalar parse state needed
// for an O(1) rollback.
type snapshot struct {
	pos            int
	nodeLen        int
	extraLen       int
	errLen         int
	context        Context
	minIndent      int
	expected       token.Set
	indentErrLine  uint32
	suppressIndent bool
}

func (p *Parser) snapshot() snapshot {
	return snapshot{
		pos:            p.pos,
		nodeLen:        p.tree.Len(),
		extraLen:       p.tree.ExtraLen(),
		errLen:         len(p.errors),
		context:        p.context,
		minIndent:      p.minIndent,
		expected:       p.expected,
		indentErrLine:  p.indentErrLine,
		suppressIndent: p.suppressIndent,
	}
}

// restore rolls the parse back to s: the tree and error log are truncated,
// the cursor and scalars copied back. NodeIds handed out after s was taken
// are invalid from here on.
func (p *Parser) restore(s snapshot) {
	p.pos = s.pos
	p.tree.TruncateTo(s.nodeLen, s.extraLen)
	p.errors = p.errors[:s.errLen]
	p.context = s.context
	p.minIndent = s.minIndent
	p.expected = s.expected
	p.indentErrLine = s.indentErrLine
	p.suppressIndent = s.suppressIndent
	p.generation++
}

// withContext runs body with extra context flags, restoring the previous
// context on every exit path.
func (p *Parser) withContext(flags Context, body func() result) result {
	saved := p.context
	p.context |= flags
	defer func() { p.context = saved }()
	return body()
}

// withoutContext runs body with the given flags cleared.
func (p *Parser) withoutContext(flags Context, body func() result) result {
	saved := p.context
	p.context &^= flags
	defer func() { p.context = saved }()
	return body()
}
