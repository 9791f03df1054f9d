package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/token"
)

// seriesConfig drives parseSeries, the delimited-list engine shared by call
// arguments, list/map/struct literals, tuples, parameter lists, and type
// argument lists.
type seriesConfig struct {
	open  token.Kind
	sep   token.Kind
	close token.Kind

	allowEmpty    bool
	allowTrailing bool
	newlines      bool // treat newlines inside the delimiters as layout

	what string // element description for diagnostics
}

// parseSeries parses `open elem (sep elem)* close` with per-element
// recovery: a malformed element is committed as an error and the cursor
// resynchronizes to the next separator or the closer, so one bad element
// does not abort the list. The cursor must be on the opening delimiter.
// The returned result reports whether the series closed; items holds every
// recovered element, error placeholders included.
func (p *Parser) parseSeries(cfg seriesConfig, elem func(idx int) result) (items []ast.NodeId, res result) {
	openTok := p.pos
	p.advance() // opening delimiter

	// Item starts bound the recovery scan: an unclosed list must not
	// swallow the next top-level item.
	sync := token.NewSet(cfg.sep, cfg.close, token.EOF).Union(itemStartSet)

	for {
		if cfg.newlines {
			p.skipNewlines()
		}

		if p.at(cfg.close) {
			if len(items) == 0 && !cfg.allowEmpty {
				err := p.newError(ErrExpectedOneOf,
					"expected "+cfg.what, p.tokenSpan(p.pos))
				err.Help = "this list cannot be empty"
				p.commit(consumedErr(err))
			}
			p.advance()
			return items, consumedOk(ast.NoNode)
		}
		if p.atEnd() {
			return items, p.unclosedDelimiter(openTok, cfg.close)
		}

		before := p.pos
		el := elem(len(items))
		switch {
		case el.ok():
			items = append(items, el.node)
		default:
			p.commit(el)
			if el.failedNoProgress() && el.err == nil {
				p.commit(p.failExpectedOneOf())
			}
			p.synchronize(sync)
			if p.pos == before && !p.atEnd() && !sync.Contains(p.currentKind()) {
				p.advance()
			}
			items = append(items, p.errorNode(p.spanAt(before)))
			if p.pos == before && !p.at(cfg.sep) && !p.at(cfg.close) {
				// Nothing consumable here; bail out of the list.
				return items, p.unclosedDelimiter(openTok, cfg.close)
			}
		}

		if cfg.newlines {
			p.skipNewlines()
		}

		switch {
		case p.at(cfg.sep):
			p.advance()
			if cfg.newlines {
				p.skipNewlines()
			}
			if p.at(cfg.close) {
				if !cfg.allowTrailing {
					err := p.newError(ErrTrailingSeparator,
						"trailing "+cfg.sep.String()+" before "+cfg.close.String(),
						p.tokenSpan(p.pos-1))
					p.commit(consumedErr(err))
				}
				p.advance()
				return items, consumedOk(ast.NoNode)
			}
		case p.at(cfg.close):
			p.advance()
			return items, consumedOk(ast.NoNode)
		case p.atEnd():
			return items, p.unclosedDelimiter(openTok, cfg.close)
		default:
			err := p.newError(ErrMissingSeparator,
				"expected "+cfg.sep.String()+" or "+cfg.close.String()+" after "+cfg.what,
				p.tokenSpan(p.pos))
			p.commit(consumedErr(err))
			p.synchronize(sync)
			if !p.at(cfg.sep) && !p.at(cfg.close) {
				return items, p.unclosedDelimiter(openTok, cfg.close)
			}
		}
	}
}

func (p *Parser) unclosedDelimiter(openTok int, close token.Kind) result {
	err := p.newError(ErrUnclosedDelimiter,
		"unclosed "+p.toks[openTok].Kind.String(), p.tokenSpan(openTok))
	err.Help = "expected " + close.String() + " before end of input"
	p.commit(consumedErr(err))
	return result{node: ast.NoNode, progress: true, failed: true}
}
