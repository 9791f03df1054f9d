package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parseItem dispatches one top-level item on its leading token.
func (p *Parser) parseItem() result {
	switch p.currentKind() {
	case token.KwPub:
		return p.parsePubItem()
	case token.At:
		p.nonUseSeen = true
		return p.parseFunc(true)
	case token.Dollar:
		p.nonUseSeen = true
		return p.parseConstItem()
	case token.KwType:
		p.nonUseSeen = true
		return p.parseTypeAliasItem()
	case token.KwTrait:
		p.nonUseSeen = true
		return p.parseTraitItem()
	case token.KwImpl:
		p.nonUseSeen = true
		return p.parseImplItem()
	case token.KwUse:
		return p.parseUseItem()
	case token.RParen, token.RBracket, token.RBrace:
		tok := p.pos
		kind := p.currentKind()
		p.advance()
		err := p.newError(ErrStrayCloser,
			"stray "+kind.String()+" with no matching opener", p.tokenSpan(tok))
		return consumedErr(err)
	default:
		p.expected = p.expected.
			With(token.At).With(token.Dollar).With(token.KwType).
			With(token.KwTrait).With(token.KwImpl).With(token.KwUse).
			With(token.KwPub)
		return emptyErr()
	}
}

// parsePubItem wraps the following item. A `pub` with nothing publishable
// after it is an orphan modifier.
func (p *Parser) parsePubItem() result {
	pubTok := p.pos
	p.advance()
	switch p.currentKind() {
	case token.At, token.Dollar, token.KwType, token.KwTrait:
	default:
		err := p.newError(ErrOrphanModifier,
			"`pub` must be followed by a function, constant, type, or trait",
			p.tokenSpan(pubTok))
		return consumedErr(err)
	}
	inner := p.parseItem()
	if !inner.ok() {
		return inner.withProgress()
	}
	span := p.tokenSpan(pubTok).Merge(p.tree.Span(inner.node))
	return consumedOk(p.tree.Alloc(ast.TagPub, span, ast.Nodes(inner.node, ast.NoNode)))
}

// parseFunc parses `@name (params) -> type = body`. The parameter list, the
// return type, and (inside trait bodies, where requireBody is false) the
// body are each optional. Body lines must be indented past the column of the
// `@` sigil.
func (p *Parser) parseFunc(requireBody bool) result {
	atTok := p.pos
	fnCol := int(p.current().Column)
	p.advance()

	nameTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a function name after `@`", p.spanAt(p.pos))
		return consumedErr(err)
	}

	params := ast.NoNode
	if p.at(token.LParen) {
		openTok := p.pos
		list, listRes := p.parseSeries(seriesConfig{
			open: token.LParen, sep: token.Comma, close: token.RParen,
			allowEmpty: true, newlines: true, what: "a parameter",
		}, func(int) result { return p.parseParamDecl() })
		if !listRes.ok() {
			return listRes
		}
		params = p.paramContainer(openTok, list)
	}

	retType := ast.NoNode
	if p.at(token.Arrow) {
		p.advance()
		ty := p.parseType()
		if !ty.ok() {
			if ty.err != nil {
				return ty.withProgress()
			}
			err := p.newError(ErrExpectedType,
				"expected a return type after `->`", p.spanAt(p.pos))
			return consumedErr(err)
		}
		retType = ty.node
	}

	body := ast.NoNode
	if requireBody || p.at(token.Assign) {
		if !p.expect(token.Assign) {
			err := p.newError(ErrExpectedOneOf,
				"expected `=` before the function body", p.spanFrom(atTok))
			err.Help = "functions are written `@name (params) -> type = body`"
			return consumedErr(err)
		}
		p.skipNewlines()
		res := p.indented(fnCol, func() result {
			return p.withContext(ctxInFunction, p.parseExpr)
		})
		if !res.ok() {
			if res.err != nil {
				return res.withProgress()
			}
			err := p.newError(ErrExpectedExpression,
				"expected a function body after `=`", p.spanFrom(atTok))
			return consumedErr(err)
		}
		body = res.node
	}

	span := p.spanFrom(atTok)
	funcResult := p.tree.Alloc(ast.TagFuncResult, span, ast.Nodes(retType, body))
	sig := p.tree.Alloc(ast.TagFuncSig, span, ast.Nodes(params, funcResult))
	return consumedOk(p.tree.Alloc(ast.TagFunc, span, ast.NodeToken(sig, nameTok)))
}

// parseConstItem parses `$name = expr`.
func (p *Parser) parseConstItem() result {
	dollarTok := p.pos
	constCol := int(p.current().Column)
	p.advance()

	nameTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a constant name after `$`", p.spanAt(p.pos))
		return consumedErr(err)
	}
	if !p.expect(token.Assign) {
		err := p.newError(ErrExpectedOneOf,
			"expected `=` after the constant name", p.spanFrom(dollarTok))
		return consumedErr(err)
	}
	p.skipNewlines()
	val := p.indented(constCol, func() result {
		return p.withContext(ctxInConstExpr, p.parseExpr)
	})
	if !val.ok() {
		if val.err != nil {
			return val.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a value after `=`", p.spanFrom(dollarTok))
		return consumedErr(err)
	}
	return consumedOk(p.tree.Alloc(ast.TagConst, p.spanFrom(dollarTok),
		ast.NodeToken(val.node, nameTok)))
}

// parseTypeAliasItem parses `type Name = type`.
func (p *Parser) parseTypeAliasItem() result {
	typeTok := p.pos
	p.advance()

	nameTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a type name after `type`", p.spanAt(p.pos))
		return consumedErr(err)
	}
	if !p.expect(token.Assign) {
		err := p.newError(ErrExpectedOneOf,
			"expected `=` after the type name", p.spanFrom(typeTok))
		return consumedErr(err)
	}
	ty := p.parseType()
	if !ty.ok() {
		if ty.err != nil {
			return ty.withProgress()
		}
		err := p.newError(ErrExpectedType,
			"expected a type after `=`", p.spanFrom(typeTok))
		return consumedErr(err)
	}
	return consumedOk(p.tree.Alloc(ast.TagTypeAlias, p.spanFrom(typeTok),
		ast.NodeToken(ty.node, nameTok)))
}

// parseTraitItem parses `trait Name` followed by an optional aligned block
// of member signatures indented past the `trait` keyword.
func (p *Parser) parseTraitItem() result {
	traitTok := p.pos
	traitCol := int(p.current().Column)
	p.advance()

	nameTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a trait name after `trait`", p.spanAt(p.pos))
		return consumedErr(err)
	}
	members := p.parseMemberBlock(traitCol)
	return consumedOk(p.tree.Alloc(ast.TagTrait, p.spanFrom(traitTok),
		ast.NodeToken(members, nameTok)))
}

// parseImplItem parses `impl Trait for Type` or the inherent form
// `impl Type`, each followed by an optional aligned member block.
func (p *Parser) parseImplItem() result {
	implTok := p.pos
	implCol := int(p.current().Column)
	p.advance()

	first := p.parseType()
	if !first.ok() {
		if first.err != nil {
			return first.withProgress()
		}
		err := p.newError(ErrExpectedType,
			"expected a type after `impl`", p.spanAt(p.pos))
		return consumedErr(err)
	}

	traitType := ast.NoNode
	target := first.node
	if p.at(token.KwFor) {
		p.advance()
		second := p.parseType()
		if !second.ok() {
			if second.err != nil {
				return second.withProgress()
			}
			err := p.newError(ErrExpectedType,
				"expected a target type after `for`", p.spanAt(p.pos))
			return consumedErr(err)
		}
		traitType = first.node
		target = second.node
	}
	head := p.tree.Alloc(ast.TagImplHead, p.spanFrom(implTok),
		ast.Nodes(traitType, target))

	members := p.parseMemberBlock(implCol)
	return consumedOk(p.tree.Alloc(ast.TagImpl, p.spanFrom(implTok),
		ast.Nodes(head, members)))
}

// parseMemberBlock parses the aligned function members under a trait or
// impl header. Members must start with `@`, sit past ownerCol, and align
// with the first member. Returns NoNode when no member block follows.
func (p *Parser) parseMemberBlock(ownerCol int) ast.NodeId {
	mark := p.pos
	p.skipNewlines()
	if p.atEnd() || !p.at(token.At) || int(p.current().Column) <= ownerCol {
		p.pos = mark
		return ast.NoNode
	}

	start := p.pos
	var members []ast.NodeId
	p.atColumn(func(column int) result {
		for {
			m := p.alignedEntry(column, func() result { return p.parseFunc(false) })
			if m.ok() {
				members = append(members, m.node)
			} else {
				p.commit(m)
				p.synchronize(itemStartSet)
				members = append(members, p.errorNode(p.spanAt(p.pos)))
			}
			p.skipNewlines()
			if p.atEnd() || !p.at(token.At) || int(p.current().Column) <= ownerCol {
				return consumedOk(ast.NoNode)
			}
		}
	})

	r := p.tree.AllocExtraNodes(members)
	return p.tree.Alloc(ast.TagBlock, p.spanFrom(start), ast.RangePayload(r))
}

// parseUseItem parses `use a.b.c`. The node records the first and last path
// segment tokens; the segments between them are recovered from the token
// stream when needed.
func (p *Parser) parseUseItem() result {
	useTok := p.pos
	p.advance()

	headTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a module path after `use`", p.spanAt(p.pos))
		return consumedErr(err)
	}
	tailTok := headTok
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expectIdent()
		if !ok {
			err := p.newError(ErrExpectedIdentifier,
				"expected a path segment after `.`", p.spanAt(p.pos))
			return consumedErr(err)
		}
		tailTok = seg
	}

	if p.nonUseSeen {
		p.reportError(ErrMisplacedUse,
			"use declarations must precede all other items", p.spanFrom(useTok))
	}
	return consumedOk(p.tree.Alloc(ast.TagUse, p.spanFrom(useTok),
		ast.Tokens(headTok, tailTok)))
}
