package parser

import "github.com/miren-lang/miren/internal/token"

// precedence levels, lowest binding first. The table is flat: every binary
// operator is left-associative, so the climbing loop always recurses at
// next().
type precedence uint8

const (
	precNone precedence = iota
	precAssign
	precRange
	precOr
	precAnd
	precEquality
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precCast
	precUnary
	precPostfix
)

// next returns the level one step tighter, which is what the right operand
// of a left-associative operator is parsed at.
func (pr precedence) next() precedence {
	return pr + 1
}

// binaryPrecedence maps an infix token to its level. Tokens not in the map
// never continue an expression.
var binaryPrecedence = map[token.Kind]precedence{
	token.Assign:   precAssign,
	token.DotDot:   precRange,
	token.DotDotEq: precRange,
	token.PipePipe: precOr,
	token.AmpAmp:   precAnd,
	token.Eq:       precEquality,
	token.NotEq:    precEquality,
	token.Lt:       precComparison,
	token.LtEq:     precComparison,
	token.Gt:       precComparison,
	token.GtEq:     precComparison,
	token.Pipe:     precBitOr,
	token.Caret:    precBitXor,
	token.Amp:      precBitAnd,
	token.Shl:      precShift,
	token.Shr:      precShift,
	token.Plus:     precAdditive,
	token.Minus:    precAdditive,
	token.Star:     precMultiplicative,
	token.Slash:    precMultiplicative,
	token.Percent:  precMultiplicative,
	token.KwAs:     precCast,
}
