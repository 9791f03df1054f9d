package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// parseExpr is the expression entry point: a full expression at the lowest
// precedence.
func (p *Parser) parseExpr() result {
	return p.parseExprAt(precAssign)
}

// parseExprAt parses prefix, primary, and postfix forms, then folds binary
// operators iteratively while their precedence is at or above min. Only the
// right operand recurses, one level tighter, so operator chains add O(1)
// stack depth per operator and every operator associates to the left.
func (p *Parser) parseExprAt(min precedence) result {
	left := p.parsePrefix()
	if !left.ok() {
		return left
	}

	for {
		op := p.currentKind()
		pr, isBinary := binaryPrecedence[op]
		if !isBinary || pr < min {
			return left
		}

		if op == token.KwAs {
			left = p.parseCastTail(left)
			if !left.ok() {
				return left
			}
			continue
		}

		opTok := p.pos
		p.advance()
		if p.at(token.Newline) && !p.continuesExpression() {
			err := p.newError(ErrTrailingOperator,
				"expected an expression after "+p.toks[opTok].Kind.String(),
				p.tokenSpan(opTok))
			p.commit(consumedErr(err))
			right := p.errorNode(p.spanAt(p.pos))
			span := p.tree.Span(left.node).Merge(p.tokenSpan(opTok))
			return consumedOk(p.tree.Alloc(binaryNodeTag(op), span,
				ast.Nodes(left.node, right)))
		}
		p.skipNewlines()

		right := p.parseExprAt(pr.next())
		if !right.ok() {
			err := p.newError(ErrTrailingOperator,
				"expected an expression after "+p.toks[opTok].Kind.String(),
				p.tokenSpan(opTok))
			p.commit(consumedErr(err))
			right = consumedOk(p.errorNode(p.spanAt(p.pos)))
		}

		span := p.tree.Span(left.node).Merge(p.tree.Span(right.node))
		tag := binaryNodeTag(op)
		left = consumedOk(p.tree.Alloc(tag, span, ast.Nodes(left.node, right.node)))
	}
}

// continuesExpression reports whether the line break under the cursor is an
// expression continuation: the next meaningful token must satisfy the
// active indentation threshold.
func (p *Parser) continuesExpression() bool {
	i := p.pos
	for p.toks[i].Kind == token.Newline {
		i++
	}
	t := p.toks[i]
	if t.Kind == token.EOF {
		return false
	}
	return p.minIndent == 0 || int(t.Column) >= p.minIndent
}

// binaryNodeTag maps an infix token to its node tag, covering the operators
// that are not in ast.BinaryTag's plain-arithmetic group.
func binaryNodeTag(op token.Kind) ast.Tag {
	switch op {
	case token.Assign:
		return ast.TagAssign
	case token.DotDot:
		return ast.TagRange
	case token.DotDotEq:
		return ast.TagRangeIncl
	}
	if tag, ok := ast.BinaryTag(op); ok {
		return tag
	}
	return ast.TagError
}

// parseCastTail parses `left as Type`.
func (p *Parser) parseCastTail(left result) result {
	p.advance() // `as`
	ty := p.parseType()
	if !ty.ok() {
		err := p.newError(ErrExpectedType, "expected a type after `as`", p.spanFrom(p.pos))
		p.commit(consumedErr(err))
		ty = consumedOk(p.errorNode(p.spanAt(p.pos)))
	}
	span := p.tree.Span(left.node).Merge(p.tree.Span(ty.node))
	return consumedOk(p.tree.Alloc(ast.TagCast, span, ast.Nodes(left.node, ty.node)))
}

// parsePrefix parses a chain of unary prefix operators around a postfix
// form. The chain recurses; depth is bounded by the number of written
// prefix operators, not by precedence levels.
func (p *Parser) parsePrefix() result {
	switch p.currentKind() {
	case token.Minus, token.Bang:
		opTok := p.pos
		p.advance()
		operand := p.parsePrefix()
		if !operand.ok() {
			if operand.err == nil {
				err := p.newError(ErrExpectedExpression,
					"expected an expression after "+p.toks[opTok].Kind.String(),
					p.tokenSpan(opTok))
				return consumedErr(err)
			}
			return operand.withProgress()
		}
		span := p.tokenSpan(opTok).Merge(p.tree.Span(operand.node))
		node := p.tree.Alloc(ast.TagUnary, span, ast.NodeToken(operand.node, uint32(opTok)))
		return consumedOk(node)
	}
	return p.parsePostfixChain()
}

// parsePostfixChain parses a primary form and applies postfix operators to
// a fixed point, so postfix always binds tighter than any binary operator.
func (p *Parser) parsePostfixChain() result {
	prim := p.parsePrimary()
	if !prim.ok() {
		return prim
	}
	return p.parsePostfixOps(prim)
}
