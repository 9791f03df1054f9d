package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parseType parses a type expression: named types, generic application
// `list[int]`, tuple and function types built from a paren group, and the
// optional suffix `?`. The whole type runs in inside-type mode.
func (p *Parser) parseType() result {
	return p.withContext(ctxInType, p.parseTypeBare)
}

func (p *Parser) parseTypeBare() result {
	var res result
	switch p.currentKind() {
	case token.Ident:
		res = p.parseNamedType()
	case token.LParen:
		res = p.parseParenType()
	default:
		p.expected = p.expected.With(token.Ident).With(token.LParen)
		err := p.newError(ErrExpectedType,
			"expected a type, found "+p.currentKind().String(), p.spanAt(p.pos))
		return emptyErrWith(err)
	}
	if !res.ok() {
		return res
	}

	for p.at(token.Question) {
		tok := p.pos
		p.advance()
		span := p.tree.Span(res.node).Merge(p.tokenSpan(tok))
		res = consumedOk(p.tree.Alloc(ast.TagTypeOptional, span,
			ast.Nodes(res.node, ast.NoNode)))
	}
	return res
}

func (p *Parser) parseNamedType() result {
	nameTok := p.pos
	p.advance()
	head := consumedOk(p.tree.Alloc(ast.TagTypeName, p.tokenSpan(nameTok),
		ast.Tokens(uint32(nameTok), 0)))
	if !p.at(token.LBracket) {
		return head
	}

	openTok := p.pos
	args, listRes := p.parseSeries(seriesConfig{
		open: token.LBracket, sep: token.Comma, close: token.RBracket,
		newlines: true, what: "a type argument",
	}, func(int) result { return p.parseType() })
	if !listRes.ok() {
		return listRes
	}
	span := p.tokenSpan(nameTok).Merge(p.spanFrom(openTok))
	r := p.tree.AllocExtraNodes(args)
	container := p.tree.Alloc(ast.TagTypeTuple, p.spanFrom(openTok), ast.RangePayload(r))
	return consumedOk(p.tree.Alloc(ast.TagTypeApp, span,
		ast.Nodes(head.node, container)))
}

// parseParenType parses `(T, U)` and, when an arrow follows, reinterprets
// the group as the parameter list of a function type. The two readings share
// the same element grammar, so no backtracking is needed.
func (p *Parser) parseParenType() result {
	openTok := p.pos
	elems, listRes := p.parseSeries(seriesConfig{
		open: token.LParen, sep: token.Comma, close: token.RParen,
		allowEmpty: true, newlines: true, what: "a type",
	}, func(int) result { return p.parseType() })
	if !listRes.ok() {
		return listRes
	}
	groupSpan := p.spanFrom(openTok)

	if p.at(token.Arrow) {
		p.advance()
		ret := p.parseType()
		if !ret.ok() {
			if ret.err != nil {
				return ret.withProgress()
			}
			err := p.newError(ErrExpectedType,
				"expected a result type after `->`", p.spanAt(p.pos))
			return consumedErr(err)
		}
		r := p.tree.AllocExtraNodes(elems)
		params := p.tree.Alloc(ast.TagTypeTuple, groupSpan, ast.RangePayload(r))
		span := groupSpan.Merge(p.tree.Span(ret.node))
		return consumedOk(p.tree.Alloc(ast.TagTypeFunc, span,
			ast.Nodes(params, ret.node)))
	}

	if len(elems) == 1 {
		// Parenthesized type, not a tuple.
		return consumedOk(elems[0])
	}
	r := p.tree.AllocExtraNodes(elems)
	return consumedOk(p.tree.Alloc(ast.TagTypeTuple, groupSpan, ast.RangePayload(r)))
}
