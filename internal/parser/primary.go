package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parsePrimary parses an atomic form: a literal, a reference, a grouped or
// composite form, or a control-flow keyword form. Failure with no tokens
// consumed (the construct never started) returns an empty failure so callers
// can try their next alternative.
func (p *Parser) parsePrimary() result {
	switch p.currentKind() {
	case token.Int:
		return p.literal(ast.TagInt)
	case token.Float:
		return p.literal(ast.TagFloat)
	case token.String:
		return p.literal(ast.TagString)
	case token.Char:
		return p.literal(ast.TagChar)
	case token.KwTrue, token.KwFalse:
		return p.literal(ast.TagBool)

	case token.Ident:
		return p.parseIdentExpr()

	case token.Dollar:
		return p.parseSigilRef(ast.TagConstRef)
	case token.At:
		return p.parseSigilRef(ast.TagFuncRef)

	case token.LParen:
		return p.parseParenForm()
	case token.LBracket:
		return p.parseListLiteral()
	case token.LBrace:
		return p.parseMapLiteral()

	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwFor:
		return p.parseForExpr()
	case token.KwLet:
		return p.parseLetExpr()

	case token.KwBreak, token.KwContinue:
		return p.parseLoopJump()

	case token.RParen, token.RBracket, token.RBrace:
		// A stray closer never starts an expression; leave it for the
		// enclosing list to consume.
		return emptyErr()

	default:
		return emptyErr()
	}
}

// literal consumes the current token into a single-token node.
func (p *Parser) literal(tag ast.Tag) result {
	tok := p.pos
	p.advance()
	return consumedOk(p.tree.Alloc(tag, p.tokenSpan(tok), ast.TokenA(uint32(tok))))
}

// parseIdentExpr handles everything an identifier can start: a lambda
// (`x -> body`), a constructor soft keyword (`some x`), a reserved word, or
// a plain reference.
func (p *Parser) parseIdentExpr() result {
	cur := p.current()

	if p.peekKind(1) == token.Arrow {
		return p.parseBareLambda()
	}

	if token.SoftKeyword(cur.Text) {
		switch cur.Text {
		case "return", "loop":
			err := p.newError(ErrReservedWord,
				"`"+cur.Text+"` is reserved and cannot be used here", p.tokenSpan(p.pos))
			if cur.Text == "return" {
				err.Help = "a function body is a single expression; its value is the result"
			}
			p.advance()
			return consumedErr(err)
		case "some", "ok", "err":
			if p.ctorArgumentFollows() {
				return p.parseCtorExpr(false)
			}
		case "none":
			return p.parseCtorExpr(true)
		}
		// self, print, panic and unapplied constructors behave as plain
		// references; calls attach through the postfix loop.
	}

	tok := p.pos
	p.advance()
	return consumedOk(p.tree.Alloc(ast.TagIdent, p.tokenSpan(tok), ast.TokenA(uint32(tok))))
}

// ctorArgumentFollows reports whether the token after a constructor soft
// keyword starts its argument on the same line. One-token lookahead; always
// conclusive in expression position.
func (p *Parser) ctorArgumentFollows() bool {
	next := p.peekAt(1)
	if next.Line != p.current().Line {
		return false
	}
	switch next.Kind {
	case token.Int, token.Float, token.String, token.Char,
		token.Ident, token.Dollar, token.At,
		token.KwTrue, token.KwFalse, token.LBracket:
		return true
	}
	return false
}

// parseCtorExpr parses `some x`, `ok x`, `err x`, or bare `none`.
func (p *Parser) parseCtorExpr(bare bool) result {
	nameTok := p.pos
	p.advance()
	if bare {
		return consumedOk(p.tree.Alloc(ast.TagCtor, p.tokenSpan(nameTok),
			ast.NodeToken(ast.NoNode, uint32(nameTok))))
	}
	arg := p.parseExprAt(precUnary)
	if !arg.ok() {
		if arg.err != nil {
			return arg.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a value after `"+p.toks[nameTok].Text+"`", p.tokenSpan(nameTok))
		return consumedErr(err)
	}
	span := p.tokenSpan(nameTok).Merge(p.tree.Span(arg.node))
	return consumedOk(p.tree.Alloc(ast.TagCtor, span, ast.NodeToken(arg.node, uint32(nameTok))))
}

// parseSigilRef parses `$name` and `@name`.
func (p *Parser) parseSigilRef(tag ast.Tag) result {
	sigilTok := p.pos
	p.advance()
	nameTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a name after "+p.toks[sigilTok].Kind.String(), p.tokenSpan(sigilTok))
		return consumedErr(err)
	}
	span := p.tokenSpan(sigilTok).Merge(p.tokenSpan(int(nameTok)))
	return consumedOk(p.tree.Alloc(tag, span, ast.TokenA(nameTok)))
}

// parseBareLambda parses the unparenthesized form `x -> body`.
func (p *Parser) parseBareLambda() result {
	nameTok := p.pos
	p.advance() // parameter name
	param := p.tree.Alloc(ast.TagParam, p.tokenSpan(nameTok),
		ast.NodeToken(ast.NoNode, uint32(nameTok)))
	p.advance() // `->`
	return p.finishLambda(nameTok, param)
}

func (p *Parser) finishLambda(startTok int, params ast.NodeId) result {
	body := p.parseExpr()
	if !body.ok() {
		if body.err != nil {
			return body.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a lambda body after `->`", p.spanFrom(startTok))
		return consumedErr(err)
	}
	span := p.spanFrom(startTok).Merge(p.tree.Span(body.node))
	return consumedOk(p.tree.Alloc(ast.TagLambda, span, ast.Nodes(params, body.node)))
}

// parseParenForm resolves the three-way ambiguity at `(`: lambda parameter
// list, tuple, or grouped expression. Lookahead decides where it can; the
// inconclusive `(x, ...` prefix is resolved by speculatively parsing a
// parameter list and committing only when `) ->` confirms it.
func (p *Parser) parseParenForm() result {
	switch p.classifyParenLambda() {
	case yes:
		return p.parseParenLambda()
	case inconclusive:
		if res, committed := p.speculate(p.parseParenLambda, func(r result) bool { return true }); committed {
			return res
		}
	}
	return p.parseGroupedOrTuple()
}

// parseParenLambda parses `(params) -> body`. It fails (with progress) when
// the parameter list does not close or the arrow is missing; under
// speculation that failure rolls the cursor back to the `(`.
func (p *Parser) parseParenLambda() result {
	startTok := p.pos
	params, listRes := p.parseSeries(seriesConfig{
		open: token.LParen, sep: token.Comma, close: token.RParen,
		allowEmpty: true, allowTrailing: false, newlines: true,
		what: "a parameter",
	}, func(int) result { return p.parseParamDecl() })
	if !listRes.ok() {
		return listRes
	}
	if !p.expect(token.Arrow) {
		err := p.newError(ErrExpectedExpression,
			"expected `->` after the parameter list", p.spanFrom(startTok))
		return consumedErr(err)
	}
	return p.finishLambda(startTok, p.paramContainer(startTok, params))
}

// paramContainer packs a parameter list into its payload node: NoNode for
// zero, the parameter itself for one, an extra-data container otherwise.
func (p *Parser) paramContainer(startTok int, params []ast.NodeId) ast.NodeId {
	switch len(params) {
	case 0:
		return ast.NoNode
	case 1:
		return params[0]
	default:
		r := p.tree.AllocExtraNodes(params)
		return p.tree.Alloc(ast.TagParams, p.spanFrom(startTok), ast.RangePayload(r))
	}
}

// parseParamDecl parses `name` or `name: type` inside a parameter list.
func (p *Parser) parseParamDecl() result {
	nameTok, ok := p.expectIdent()
	if !ok {
		return emptyErr()
	}
	ty := ast.NoNode
	if p.at(token.Colon) {
		p.advance()
		tyRes := p.parseType()
		if !tyRes.ok() {
			err := p.newError(ErrExpectedType,
				"expected a type after `:`", p.spanFrom(int(nameTok)))
			return consumedErr(err)
		}
		ty = tyRes.node
	}
	span := p.spanFrom(int(nameTok))
	return consumedOk(p.tree.Alloc(ast.TagParam, span, ast.NodeToken(ty, nameTok)))
}

// parseGroupedOrTuple parses `()`, `(expr)`, and `(a, b, ...)`.
func (p *Parser) parseGroupedOrTuple() result {
	openTok := p.pos
	p.advance() // `(`
	p.skipNewlines()

	if p.at(token.RParen) {
		p.advance()
		return consumedOk(p.tree.Alloc(ast.TagUnit, p.spanFrom(openTok), ast.Payload{}))
	}

	// Parens end the head-expression ambiguity, so `Name { ... }` is a
	// struct literal again even under an `if`/`for`/`match` head.
	first := p.withoutContext(ctxNoStructLit, p.parseExpr)
	if !first.ok() {
		if first.err != nil {
			return first.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected an expression after `(`", p.tokenSpan(openTok))
		p.commit(consumedErr(err))
		p.recoverPast(token.RParen, closerSet)
		return consumedOk(p.errorNode(p.spanFrom(openTok)))
	}
	p.skipNewlines()

	if p.at(token.Comma) {
		elems := []ast.NodeId{first.node}
		for p.at(token.Comma) {
			p.advance()
			p.skipNewlines()
			if p.at(token.RParen) {
				break
			}
			el := p.withoutContext(ctxNoStructLit, p.parseExpr)
			if !el.ok() {
				p.commit(el)
				p.synchronize(token.NewSet(token.Comma, token.RParen, token.EOF))
				elems = append(elems, p.errorNode(p.spanAt(p.pos)))
				continue
			}
			elems = append(elems, el.node)
			p.skipNewlines()
		}
		if !p.expect(token.RParen) {
			return p.unclosedDelimiter(openTok, token.RParen)
		}
		r := p.tree.AllocExtraNodes(elems)
		return consumedOk(p.tree.Alloc(ast.TagTuple, p.spanFrom(openTok), ast.RangePayload(r)))
	}

	if !p.expect(token.RParen) {
		return p.unclosedDelimiter(openTok, token.RParen)
	}
	// Grouped expression: the parens contribute span, not structure.
	return consumedOk(first.node)
}

// parseListLiteral parses `[a, b, c]`.
func (p *Parser) parseListLiteral() result {
	openTok := p.pos
	elems, listRes := p.parseSeries(seriesConfig{
		open: token.LBracket, sep: token.Comma, close: token.RBracket,
		allowEmpty: true, allowTrailing: true, newlines: true,
		what: "a list element",
	}, func(int) result { return p.withoutContext(ctxNoStructLit, p.parseExpr) })
	if !listRes.ok() {
		return listRes
	}
	r := p.tree.AllocExtraNodes(elems)
	return consumedOk(p.tree.Alloc(ast.TagList, p.spanFrom(openTok), ast.RangePayload(r)))
}

// parseMapLiteral parses `{k: v, ...}`.
func (p *Parser) parseMapLiteral() result {
	openTok := p.pos
	entries, listRes := p.parseSeries(seriesConfig{
		open: token.LBrace, sep: token.Comma, close: token.RBrace,
		allowEmpty: true, allowTrailing: true, newlines: true,
		what: "a map entry",
	}, func(int) result { return p.parseMapEntry() })
	if !listRes.ok() {
		return listRes
	}
	r := p.tree.AllocExtraNodes(entries)
	return consumedOk(p.tree.Alloc(ast.TagMap, p.spanFrom(openTok), ast.RangePayload(r)))
}

func (p *Parser) parseMapEntry() result {
	start := p.pos
	key := p.parseExprAt(precRange)
	if !key.ok() {
		return key
	}
	if !p.expect(token.Colon) {
		err := p.newError(ErrMissingSeparator,
			"expected `:` between map key and value", p.spanFrom(start))
		return consumedErr(err)
	}
	val := p.parseExpr()
	if !val.ok() {
		if val.err != nil {
			return val.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a value after `:`", p.spanFrom(start))
		return consumedErr(err)
	}
	span := p.tree.Span(key.node).Merge(p.tree.Span(val.node))
	return consumedOk(p.tree.Alloc(ast.TagMapEntry, span, ast.Nodes(key.node, val.node)))
}

// parseIfExpr parses `if cond then a` with an optional `else b`, where the
// else may sit on a following line. Struct literals are disallowed in the
// condition so `if x { ... }` cannot swallow the brace.
func (p *Parser) parseIfExpr() result {
	ifTok := p.pos
	p.advance()

	cond := p.withContext(ctxNoStructLit, p.parseExpr)
	if !cond.ok() {
		if cond.err != nil {
			return cond.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a condition after `if`", p.tokenSpan(ifTok))
		return consumedErr(err)
	}

	if !p.expect(token.KwThen) {
		err := p.newError(ErrExpectedOneOf,
			"expected `then` after the condition", p.spanFrom(ifTok))
		err.Help = "conditionals are written `if cond then value else other`"
		return consumedErr(err)
	}
	thenRes := p.parseExpr()
	if !thenRes.ok() {
		if thenRes.err != nil {
			return thenRes.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected an expression after `then`", p.spanFrom(ifTok))
		return consumedErr(err)
	}

	elseNode := ast.NoNode
	if p.elseFollows() {
		p.skipNewlines()
		p.advance() // `else`
		elseRes := p.parseExpr()
		if !elseRes.ok() {
			if elseRes.err != nil {
				return elseRes.withProgress()
			}
			err := p.newError(ErrExpectedExpression,
				"expected an expression after `else`", p.spanFrom(ifTok))
			return consumedErr(err)
		}
		elseNode = elseRes.node
	}

	branches := p.tree.Alloc(ast.TagBranchPair, p.spanFrom(ifTok),
		ast.Nodes(thenRes.node, elseNode))
	return consumedOk(p.tree.Alloc(ast.TagIf, p.spanFrom(ifTok),
		ast.Nodes(cond.node, branches)))
}

// elseFollows looks past layout for an `else` continuation.
func (p *Parser) elseFollows() bool {
	if p.at(token.KwElse) {
		return true
	}
	n := 0
	for p.peekKind(n) == token.Newline {
		n++
	}
	return n > 0 && p.peekKind(n) == token.KwElse
}

// parseLetExpr parses `let pattern = init`.
func (p *Parser) parseLetExpr() result {
	letTok := p.pos
	p.advance()

	pat := p.withContext(ctxInPattern, p.parsePattern)
	if !pat.ok() {
		if pat.err != nil {
			return pat.withProgress()
		}
		err := p.newError(ErrInvalidPattern,
			"expected a pattern after `let`", p.tokenSpan(letTok))
		return consumedErr(err)
	}
	if !p.expect(token.Assign) {
		err := p.newError(ErrExpectedOneOf,
			"expected `=` after the binding pattern", p.spanFrom(letTok))
		return consumedErr(err)
	}
	init := p.parseExpr()
	if !init.ok() {
		if init.err != nil {
			return init.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected an initializer after `=`", p.spanFrom(letTok))
		return consumedErr(err)
	}
	return consumedOk(p.tree.Alloc(ast.TagLet, p.spanFrom(letTok),
		ast.Nodes(pat.node, init.node)))
}

// parseForExpr parses `for x in iterable do body` with the body indented
// past the `for` head.
func (p *Parser) parseForExpr() result {
	forTok := p.pos
	forCol := int(p.current().Column)
	p.advance()

	bindTok, ok := p.expectIdent()
	if !ok {
		err := p.newError(ErrExpectedIdentifier,
			"expected a loop binding after `for`", p.tokenSpan(forTok))
		return consumedErr(err)
	}
	if !p.expect(token.KwIn) {
		err := p.newError(ErrExpectedOneOf,
			"expected `in` after the loop binding", p.spanFrom(forTok))
		err.Help = "loops are written `for x in xs do body`"
		return consumedErr(err)
	}
	iter := p.withContext(ctxNoStructLit, p.parseExpr)
	if !iter.ok() {
		if iter.err != nil {
			return iter.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected an iterable after `in`", p.spanFrom(forTok))
		return consumedErr(err)
	}
	if !p.expect(token.KwDo) {
		err := p.newError(ErrExpectedOneOf,
			"expected `do` before the loop body", p.spanFrom(forTok))
		return consumedErr(err)
	}
	p.skipNewlines()

	body := p.indented(forCol, func() result {
		return p.withContext(ctxInLoop, p.parseExpr)
	})
	if !body.ok() {
		if body.err != nil {
			return body.withProgress()
		}
		err := p.newError(ErrExpectedExpression,
			"expected a loop body after `do`", p.spanFrom(forTok))
		return consumedErr(err)
	}

	header := p.tree.Alloc(ast.TagForHeader, p.spanFrom(forTok),
		ast.NodeToken(iter.node, bindTok))
	return consumedOk(p.tree.Alloc(ast.TagFor, p.spanFrom(forTok),
		ast.Nodes(header, body.node)))
}

// parseLoopJump parses `break` and `continue`, which are only meaningful
// inside a loop body.
func (p *Parser) parseLoopJump() result {
	tok := p.pos
	kind := p.currentKind()
	p.advance()
	tag := ast.TagBreak
	if kind == token.KwContinue {
		tag = ast.TagContinue
	}
	if !p.context.has(ctxInLoop) {
		err := p.newError(ErrUnexpectedToken,
			kind.String()+" outside of a loop", p.tokenSpan(tok))
		err.Help = "`break` and `continue` only have meaning inside `for ... do`"
		p.commit(consumedErr(err))
	}
	return consumedOk(p.tree.Alloc(tag, p.tokenSpan(tok), ast.TokenA(uint32(tok))))
}
