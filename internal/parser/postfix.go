package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parsePostfixOps applies postfix operators to a fixed point: field access,
// indexing, calls, error propagation, and the struct-literal tail. Postfix
// binds tighter than any binary operator, which holds structurally because
// this loop runs to completion before parseExprAt ever looks at an infix
// token.
func (p *Parser) parsePostfixOps(receiver result) result {
	for {
		switch p.currentKind() {
		case token.Dot:
			p.advance()
			nameTok, ok := p.expectIdent()
			if !ok {
				err := p.newError(ErrExpectedIdentifier,
					"expected a field name after `.`", p.spanAt(p.pos))
				return consumedErr(err)
			}
			span := p.tree.Span(receiver.node).Merge(p.tokenSpan(int(nameTok)))
			receiver = consumedOk(p.tree.Alloc(ast.TagField, span,
				ast.NodeToken(receiver.node, nameTok)))

		case token.LBracket:
			openTok := p.pos
			p.advance()
			p.skipNewlines()
			index := p.parseExpr()
			if !index.ok() {
				if index.err != nil {
					p.commit(index)
				} else {
					err := p.newError(ErrExpectedExpression,
						"expected an index expression after `[`", p.tokenSpan(openTok))
					p.commit(consumedErr(err))
				}
				p.recoverPast(token.RBracket, closerSet)
				index = consumedOk(p.errorNode(p.spanAt(p.pos)))
			} else {
				p.skipNewlines()
				if !p.expect(token.RBracket) {
					return p.unclosedDelimiter(openTok, token.RBracket)
				}
			}
			span := p.tree.Span(receiver.node).Merge(p.spanFrom(openTok))
			receiver = consumedOk(p.tree.Alloc(ast.TagIndex, span,
				ast.Nodes(receiver.node, index.node)))

		case token.LParen:
			call := p.parseCallTail(receiver.node)
			if !call.ok() {
				return call
			}
			receiver = call

		case token.Question:
			tok := p.pos
			p.advance()
			span := p.tree.Span(receiver.node).Merge(p.tokenSpan(tok))
			receiver = consumedOk(p.tree.Alloc(ast.TagTry, span,
				ast.Nodes(receiver.node, ast.NoNode)))

		case token.LBrace:
			if p.tree.Tag(receiver.node) != ast.TagIdent || p.classifyStructLit() != yes {
				return receiver
			}
			receiver = p.parseStructLitTail(receiver.node)
			if !receiver.ok() {
				return receiver
			}

		default:
			return receiver
		}
	}
}

// parseCallTail parses `(args)` after a callee. Arguments are named
// (`name: value`) by default; a positional expression is accepted only when
// it is the sole argument (lambda arguments, conversion calls). Zero or one
// argument sits inline in the call payload, two go through an inline pair
// node, three or more always route through the extra-data buffer.
func (p *Parser) parseCallTail(callee ast.NodeId) result {
	openTok := p.pos
	var sawPositional bool
	args, listRes := p.parseSeries(seriesConfig{
		open: token.LParen, sep: token.Comma, close: token.RParen,
		allowEmpty: true, allowTrailing: true, newlines: true,
		what: "an argument",
	}, func(idx int) result {
		return p.parseCallArg(idx, &sawPositional)
	})
	if !listRes.ok() {
		return listRes
	}
	if sawPositional && len(args) > 1 {
		err := p.newError(ErrBadCallArg,
			"positional arguments cannot be mixed into a multi-argument call",
			p.spanFrom(openTok))
		err.Fix = "name each argument: `name: value`"
		p.commit(consumedErr(err))
	}

	span := p.tree.Span(callee).Merge(p.spanFrom(openTok))
	var argNode ast.NodeId
	switch len(args) {
	case 0:
		argNode = ast.NoNode
	case 1:
		argNode = args[0]
	case 2:
		argNode = p.tree.Alloc(ast.TagArgPair, span, ast.Nodes(args[0], args[1]))
	default:
		r := p.tree.AllocExtraNodes(args)
		argNode = p.tree.Alloc(ast.TagArgs, span, ast.RangePayload(r))
	}
	return consumedOk(p.tree.Alloc(ast.TagCall, span, ast.Nodes(callee, argNode)))
}

// parseCallArg parses one argument. `ident :` one-token lookahead selects
// the named form.
func (p *Parser) parseCallArg(idx int, sawPositional *bool) result {
	if p.at(token.Ident) && p.peekKind(1) == token.Colon {
		nameTok := p.pos
		p.advance() // name
		p.advance() // `:`
		val := p.parseExpr()
		if !val.ok() {
			if val.err != nil {
				return val.withProgress()
			}
			err := p.newError(ErrExpectedExpression,
				"expected a value after `"+p.toks[nameTok].Text+":`",
				p.tokenSpan(nameTok))
			return consumedErr(err)
		}
		span := p.tokenSpan(nameTok).Merge(p.tree.Span(val.node))
		return consumedOk(p.tree.Alloc(ast.TagNamedArg, span,
			ast.NodeToken(val.node, uint32(nameTok))))
	}

	res := p.parseExpr()
	if res.ok() {
		*sawPositional = true
	}
	return res
}

// parseStructLitTail parses `{ field: value, ... }` after a type name.
func (p *Parser) parseStructLitTail(name ast.NodeId) result {
	openTok := p.pos
	nameTok := p.tree.Payload(name).A
	fields, listRes := p.parseSeries(seriesConfig{
		open: token.LBrace, sep: token.Comma, close: token.RBrace,
		allowEmpty: true, allowTrailing: true, newlines: true,
		what: "a field initializer",
	}, func(int) result { return p.parseFieldInit() })
	if !listRes.ok() {
		return listRes
	}
	span := p.tree.Span(name).Merge(p.spanFrom(openTok))
	r := p.tree.AllocExtraNodes(fields)
	container := p.tree.Alloc(ast.TagFields, span, ast.RangePayload(r))
	return consumedOk(p.tree.Alloc(ast.TagStructLit, span,
		ast.NodeToken(container, nameTok)))
}

func (p *Parser) parseFieldInit() result {
	nameTok, ok := p.expectIdent()
	if !ok {
		return emptyErr()
	}
	if !p.expect(token.Colon) {
		err := p.newError(ErrMissingSeparator,
			"expected `:` after the field name", p.tokenSpan(int(nameTok)))
		return consumedErr(err)
	}
	val := p.parseExpr()
	if !val.ok() {
		if val.err != nil {
			return val.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a field value after `:`", p.tokenSpan(int(nameTok)))
		return consumedErr(err)
	}
	span := p.tokenSpan(int(nameTok)).Merge(p.tree.Span(val.node))
	return consumedOk(p.tree.Alloc(ast.TagFieldInit, span,
		ast.NodeToken(val.node, nameTok)))
}
