package parser

import "github.com/miren-lang/miren/internal/token"

// tristate is the three-valued answer of a disambiguation routine. yes/no
// come from one- or two-token lookahead and cost nothing; inconclusive makes
// the caller snapshot and try the more specific interpretation.
type tristate uint8

const (
	inconclusive tristate = iota
	yes
	no
)

// lookaheadCache memoizes the most recent paren-form classification. The
// result is only valid at the exact cursor generation it was computed at;
// advance() bumps the generation, so a stale entry can never be reused after
// the cursor moves.
type lookaheadCache struct {
	generation uint64
	pos        int
	parenForm  tristate
	valid      bool
}

// classifyParenLambda decides, at a `(`, whether what follows is a lambda
// parameter list.
//
//	( )  ->            yes
//	( ident : ...      yes (typed parameter)
//	( ident ) ->       yes
//	( ident ) not->    no  (grouped expression)
//	( non-ident ...    no  (grouped expression or tuple)
//	( ident , ...      inconclusive (untyped parameters or tuple)
func (p *Parser) classifyParenLambda() tristate {
	if p.lookahead.valid && p.lookahead.generation == p.generation && p.lookahead.pos == p.pos {
		return p.lookahead.parenForm
	}
	t := p.classifyParenLambdaUncached()
	p.lookahead = lookaheadCache{
		generation: p.generation,
		pos:        p.pos,
		parenForm:  t,
		valid:      true,
	}
	return t
}

func (p *Parser) classifyParenLambdaUncached() tristate {
	// cursor is on `(`.
	switch p.peekKind(1) {
	case token.RParen:
		if p.peekKind(2) == token.Arrow {
			return yes
		}
		return no
	case token.Ident:
		switch p.peekKind(2) {
		case token.Colon:
			return yes
		case token.RParen:
			if p.peekKind(3) == token.Arrow {
				return yes
			}
			return no
		case token.Comma:
			return inconclusive
		default:
			return no
		}
	default:
		return no
	}
}

// classifyStructLit decides, at a `{` in postfix position after an
// identifier, whether it opens a struct literal.
//
//	{ }            yes
//	{ ident :      yes
//	anything else  no — the brace belongs to the surrounding construct
func (p *Parser) classifyStructLit() tristate {
	if p.context.has(ctxNoStructLit) {
		return no
	}
	switch p.peekKind(1) {
	case token.RBrace:
		return yes
	case token.Ident:
		if p.peekKind(2) == token.Colon {
			return yes
		}
		return no
	default:
		return no
	}
}

// classifyCtorPattern decides, on a soft keyword in pattern position,
// whether it is a constructor taking a sub-pattern or a plain binding.
//
//	some <pattern-start>   yes
//	some => | , ) ...      no (binding named `some`)
//	otherwise              inconclusive
func (p *Parser) classifyCtorPattern() tristate {
	next := p.peekKind(1)
	switch next {
	case token.Ident, token.Int, token.Float, token.String, token.Char,
		token.KwTrue, token.KwFalse, token.Under, token.LParen:
		return yes
	case token.FatArrow, token.Pipe, token.Comma, token.RParen, token.Newline, token.EOF:
		return no
	default:
		return inconclusive
	}
}

// speculate takes a snapshot, runs the specific interpretation, and asks
// confirm whether the attempt ended where that interpretation must end. On
// confirmation the attempt is committed; otherwise every effect (cursor,
// nodes, errors) is rolled back and the zero result is returned with ok ==
// false so the caller can fall back to the general interpretation.
func (p *Parser) speculate(attempt func() result, confirm func(result) bool) (result, bool) {
	s := p.snapshot()
	res := attempt()
	if res.ok() && confirm(res) {
		return res, true
	}
	p.restore(s)
	return result{}, false
}
