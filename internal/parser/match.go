package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parseMatchExpr parses
//
//	match scrutinee
//	    pattern => expr
//	    pattern => expr
//
// Arms form an aligned list: the first arm's column is pinned and every
// following arm must start at that exact column. A drifted arm gets one
// "inconsistent indentation" error and is still collected, so downstream
// phases see all arms.
func (p *Parser) parseMatchExpr() result {
	matchTok := p.pos
	matchCol := int(p.current().Column)
	p.advance()

	scrutinee := p.withContext(ctxNoStructLit, p.parseExpr)
	if !scrutinee.ok() {
		if scrutinee.err != nil {
			return scrutinee.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a value to match on", p.tokenSpan(matchTok))
		return consumedErr(err)
	}
	p.skipNewlines()

	if !p.atArmStart() || int(p.current().Column) <= matchCol {
		err := p.newError(ErrExpectedOneOf,
			"expected at least one match arm", p.spanFrom(matchTok))
		err.Help = "arms are written `pattern => expression`, indented past `match`"
		return consumedErr(err)
	}

	var arms []ast.NodeId
	p.atColumn(func(column int) result {
		for {
			arm := p.alignedEntry(column, p.parseMatchArm)
			if arm.ok() {
				arms = append(arms, arm.node)
			} else {
				p.commit(arm)
				p.synchronize(stmtStartSet)
				arms = append(arms, p.errorNode(p.spanAt(p.pos)))
			}
			p.skipNewlines()
			if p.atEnd() || !p.atArmStart() || int(p.current().Column) <= matchCol {
				return consumedOk(ast.NoNode)
			}
		}
	})

	r := p.tree.AllocExtraNodes(arms)
	container := p.tree.Alloc(ast.TagArgs, p.spanFrom(matchTok), ast.RangePayload(r))
	return consumedOk(p.tree.Alloc(ast.TagMatch, p.spanFrom(matchTok),
		ast.Nodes(scrutinee.node, container)))
}

// atArmStart reports whether the current token can begin a match arm
// pattern.
func (p *Parser) atArmStart() bool {
	switch p.currentKind() {
	case token.Ident, token.Int, token.Float, token.String, token.Char,
		token.KwTrue, token.KwFalse, token.Under, token.LParen, token.Minus:
		return true
	}
	return false
}

// parseMatchArm parses `pattern => expr`.
func (p *Parser) parseMatchArm() result {
	start := p.pos
	pat := p.withContext(ctxInPattern, p.parsePattern)
	if !pat.ok() {
		return pat
	}
	if !p.expect(token.FatArrow) {
		err := p.newError(ErrExpectedOneOf,
			"expected `=>` after the arm pattern", p.spanFrom(start))
		return consumedErr(err)
	}
	body := p.parseExpr()
	if !body.ok() {
		if body.err != nil {
			return body.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected an expression after `=>`", p.spanFrom(start))
		return consumedErr(err)
	}
	return consumedOk(p.tree.Alloc(ast.TagMatchArm, p.spanFrom(start),
		ast.Nodes(pat.node, body.node)))
}
