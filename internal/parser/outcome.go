package parser

import "github.com/miren-lang/miren/internal/ast"

// result is the progress-tracked outcome of a sub-parse. The four states:
//
//	ok, progress      — parsed a node after consuming input
//	ok, no progress   — parsed a node from zero tokens (empty list, etc.)
//	fail, progress    — committed interpretation went wrong; err holds the
//	                    diagnostic, callers must not try alternatives
//	fail, no progress — the construct never started; callers may try the
//	                    next alternative
//
// Failures carry their error here rather than logging immediately so that
// alternative dispatch can discard no-progress failures without polluting
// the error log; commit() is the single point that logs.
type result struct {
	node     ast.NodeId
	progress bool
	failed   bool
	err      *ParseError
}

func consumedOk(node ast.NodeId) result {
	return result{node: node, progress: true}
}

func emptyOk(node ast.NodeId) result {
	return result{node: node}
}

func consumedErr(err ParseError) result {
	return result{node: ast.NoNode, progress: true, failed: true, err: &err}
}

func emptyErr() result {
	return result{node: ast.NoNode, failed: true}
}

// emptyErrWith is an empty failure that still carries a diagnostic, used
// when exhausted alternatives synthesize an "expected one of" error for the
// caller to commit.
func emptyErrWith(err ParseError) result {
	return result{node: ast.NoNode, failed: true, err: &err}
}

func (r result) ok() bool             { return !r.failed }
func (r result) madeProgress() bool   { return r.progress }
func (r result) failedNoProgress() bool { return r.failed && !r.progress }

// withProgress marks r as having consumed input. Progress combines across
// sequential sub-parses: once any step consumes a token the whole sequence
// has progressed, even if a later step fails.
func (r result) withProgress() result {
	r.progress = true
	return r
}

// commit appends a failure's diagnostic to the error log. Committing a
// result without an error is a no-op, so callers can commit unconditionally
// before synchronizing.
func (p *Parser) commit(r result) {
	if r.err != nil {
		p.errors = append(p.errors, *r.err)
	}
}

// oneOf implements alternative selection: try alternatives in order; return
// the first success or the first failure that consumed input (that was the
// committed interpretation); skip failures with no progress. When every
// alternative fails without progress the accumulated expected-token set is
// turned into a single "expected one of" error.
func (p *Parser) oneOf(alts ...func() result) result {
	for _, alt := range alts {
		res := alt()
		if res.ok() || res.madeProgress() {
			return res
		}
	}
	return p.failExpectedOneOf()
}

// failExpectedOneOf synthesizes the exhausted-alternatives diagnostic from
// the expected-token accumulator.
func (p *Parser) failExpectedOneOf() result {
	msg := "expected one of " + p.expected.Format()
	if p.expected.IsEmpty() {
		msg = "unexpected " + p.currentKind().String()
	}
	err := p.newError(ErrExpectedOneOf, msg, p.tokenSpan(p.pos))
	err.Help = "found " + p.currentKind().String() + " here"
	return emptyErrWith(err)
}
