package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parsePattern parses a match or binding pattern. Or-patterns associate to
// the left and bind loosest, so `some x | none` groups the constructor first.
func (p *Parser) parsePattern() result {
	left := p.parsePatternAtom()
	if !left.ok() {
		return left
	}
	for p.at(token.Pipe) {
		p.advance()
		p.skipNewlines()
		right := p.parsePatternAtom()
		if !right.ok() {
			if right.err != nil {
				return right.withProgress()
			}
			err := p.newError(ErrInvalidPattern,
				"expected a pattern after `|`", p.spanAt(p.pos))
			return consumedErr(err)
		}
		span := p.tree.Span(left.node).Merge(p.tree.Span(right.node))
		left = consumedOk(p.tree.Alloc(ast.TagPatOr, span,
			ast.Nodes(left.node, right.node)))
	}
	return left
}

func (p *Parser) parsePatternAtom() result {
	switch p.currentKind() {
	case token.Under:
		tok := p.pos
		p.advance()
		return consumedOk(p.tree.Alloc(ast.TagPatWildcard, p.tokenSpan(tok), ast.Payload{}))

	case token.Int, token.Float, token.String, token.Char,
		token.KwTrue, token.KwFalse:
		return p.literalPattern(p.pos)

	case token.Minus:
		return p.negatedLiteralPattern()

	case token.Ident:
		return p.parseIdentPattern()

	case token.LParen:
		return p.parseTuplePattern()

	default:
		p.expected = p.expected.
			With(token.Ident).With(token.Under).With(token.LParen).
			With(token.Int).With(token.String)
		return emptyErr()
	}
}

func (p *Parser) literalPattern(startTok int) result {
	litTok := p.pos
	p.advance()
	return consumedOk(p.tree.Alloc(ast.TagPatLiteral, p.spanFrom(startTok),
		ast.Tokens(uint32(litTok), 0)))
}

// negatedLiteralPattern handles `-1` and `-2.5`. Only numeric literals may
// follow the sign in pattern position.
func (p *Parser) negatedLiteralPattern() result {
	startTok := p.pos
	p.advance()
	if !p.at(token.Int) && !p.at(token.Float) {
		err := p.newError(ErrInvalidPattern,
			"expected a numeric literal after `-` in a pattern", p.tokenSpan(startTok))
		return consumedErr(err)
	}
	return p.literalPattern(startTok)
}

// parseIdentPattern decides between a plain binding and a constructor
// pattern. The constructor names are ordinary identifiers, so `some x`
// versus a binding named `some` is settled by what follows: when the
// classifier is inconclusive the constructor reading is attempted
// speculatively and the binding reading is the fallback.
func (p *Parser) parseIdentPattern() result {
	nameTok := p.pos
	switch p.current().Text {
	case "none":
		// Nullary constructor, never a binding.
		p.advance()
		return consumedOk(p.tree.Alloc(ast.TagPatCtor, p.tokenSpan(nameTok),
			ast.NodeToken(ast.NoNode, uint32(nameTok))))
	case "some", "ok", "err":
	default:
		p.advance()
		return consumedOk(p.tree.Alloc(ast.TagPatBind, p.tokenSpan(nameTok),
			ast.Tokens(uint32(nameTok), 0)))
	}

	switch p.classifyCtorPattern() {
	case yes:
		return p.parseCtorPattern(nameTok)
	case no:
		p.advance()
		return consumedOk(p.tree.Alloc(ast.TagPatBind, p.tokenSpan(nameTok),
			ast.Tokens(uint32(nameTok), 0)))
	default:
		res, confirmed := p.speculate(
			func() result { return p.parseCtorPattern(nameTok) },
			func(result) bool { return true },
		)
		if confirmed {
			return res
		}
		p.advance()
		return consumedOk(p.tree.Alloc(ast.TagPatBind, p.tokenSpan(nameTok),
			ast.Tokens(uint32(nameTok), 0)))
	}
}

func (p *Parser) parseCtorPattern(nameTok int) result {
	p.advance() // ctor name
	sub := p.parsePatternAtom()
	if !sub.ok() {
		if sub.err != nil {
			return sub.withProgress()
		}
		err := p.newError(ErrPatternArgument,
			"constructor `"+p.toks[nameTok].Text+"` takes a pattern argument",
			p.tokenSpan(nameTok))
		return consumedErr(err)
	}
	return consumedOk(p.tree.Alloc(ast.TagPatCtor, p.spanFrom(nameTok),
		ast.NodeToken(sub.node, uint32(nameTok))))
}

func (p *Parser) parseTuplePattern() result {
	openTok := p.pos
	subs, listRes := p.parseSeries(seriesConfig{
		open: token.LParen, sep: token.Comma, close: token.RParen,
		newlines: true, what: "a pattern",
	}, func(int) result { return p.parsePattern() })
	if !listRes.ok() {
		return listRes
	}
	span := p.spanFrom(openTok)
	if len(subs) == 1 {
		// Parenthesized pattern, not a tuple.
		return consumedOk(subs[0])
	}
	r := p.tree.AllocExtraNodes(subs)
	return consumedOk(p.tree.Alloc(ast.TagPatTuple, span, ast.RangePayload(r)))
}
