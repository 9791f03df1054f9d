package parser

import (
	"fmt"

	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// checkIndent enforces the active indentation threshold on the token about
// to be consumed. Layout tokens are invisible to the model, and one
// misindented line reports once regardless of how many tokens it carries.
func (p *Parser) checkIndent() {
	if p.minIndent == 0 || p.suppressIndent {
		return
	}
	t := p.current()
	switch t.Kind {
	case token.Newline, token.EOF:
		return
	}
	if int(t.Column) >= p.minIndent {
		return
	}
	if t.Line == p.indentErrLine {
		return
	}
	p.indentErrLine = t.Line
	p.reportError(ErrInsufficientIndent,
		fmt.Sprintf("insufficient indentation: expected column %d or beyond, found column %d",
			p.minIndent, t.Column),
		ast.Span{Start: t.Start, End: t.End})
}

// withMinIndent runs body with the given indentation threshold, restoring
// the previous one on every exit path.
func (p *Parser) withMinIndent(min int, body func() result) result {
	saved := p.minIndent
	p.minIndent = min
	defer func() { p.minIndent = saved }()
	return body()
}

// indented runs body with the threshold set one column past headCol, so
// body's lines must be indented strictly beyond the construct head.
func (p *Parser) indented(headCol int, body func() result) result {
	return p.withMinIndent(headCol+1, body)
}

// atColumn pins the current token's column as the alignment for an aligned
// list and runs body with it as the threshold. body receives the pinned
// column so it can flag entries that drift (see alignedEntry).
func (p *Parser) atColumn(body func(column int) result) result {
	col := int(p.current().Column)
	return p.withMinIndent(col, func() result { return body(col) })
}

// alignedEntry validates that the current token, which starts an aligned
// list entry, sits exactly at the pinned column. A drifted entry gets one
// "inconsistent indentation" error and is still parsed; the indentation
// threshold is relaxed for it so the insufficient-indentation check does not
// fire a second time on the same line.
func (p *Parser) alignedEntry(column int, body func() result) result {
	t := p.current()
	if int(t.Column) == column {
		return body()
	}
	p.reportError(ErrInconsistentIndent,
		fmt.Sprintf("inconsistent indentation: this entry starts at column %d, the list is aligned at column %d",
			t.Column, column),
		ast.Span{Start: t.Start, End: t.End})
	p.indentErrLine = t.Line
	return p.withMinIndent(int(t.Column), body)
}
