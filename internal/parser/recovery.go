package parser

import "github.com/miren-lang/miren/internal/token"

// maxRecoverySkips bounds one synchronization scan. Pathological input such
// as an unbounded run of open delimiters must terminate the skip loop even
// when no sync token ever appears.
const maxRecoverySkips = 256

// itemStartSet are the safe resumption points at module level.
var itemStartSet = token.NewSet(
	token.At,
	token.Dollar,
	token.KwType,
	token.KwTrait,
	token.KwImpl,
	token.KwUse,
	token.KwPub,
	token.EOF,
)

// stmtStartSet are the safe resumption points inside an indented body.
var stmtStartSet = token.NewSet(
	token.KwLet,
	token.KwIf,
	token.KwMatch,
	token.KwFor,
	token.KwBreak,
	token.KwContinue,
	token.Newline,
	token.EOF,
).Union(itemStartSet)

// closerSet are closing delimiters; list recovery stops at whichever closer
// the caller is waiting for, and any closer is a reasonable fence.
var closerSet = token.NewSet(
	token.RParen,
	token.RBracket,
	token.RBrace,
	token.EOF,
)

// synchronize skips tokens until one in sync is reached, bounded by
// maxRecoverySkips. Reports whether a sync token was found before the cap
// or end of input.
func (p *Parser) synchronize(sync token.Set) bool {
	saved := p.suppressIndent
	p.suppressIndent = true
	defer func() { p.suppressIndent = saved }()

	for skips := 0; skips < maxRecoverySkips; skips++ {
		if sync.Contains(p.currentKind()) {
			return true
		}
		if p.atEnd() {
			return false
		}
		p.advance()
	}
	return false
}

// recoverPast synchronizes and then consumes the sync token itself when it
// matches kind, for delimiter recovery.
func (p *Parser) recoverPast(kind token.Kind, sync token.Set) {
	if p.synchronize(sync) && p.at(kind) {
		p.advance()
	}
}
