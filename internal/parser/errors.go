package parser

import (
	"github.com/miren-lang/miren/internal/ast"
	"github.com/miren-lang/miren/internal/diag"
)

// ErrorKind is the closed error taxonomy, grouped per sub-domain. New
// situations get new kinds within their group rather than widening an
// existing one, so every kind keeps a situation-specific hint.
type ErrorKind int

const (
	// Carried over from the lexer when parsing starts from source text.
	ErrLexical ErrorKind = iota

	// Expression errors.
	ErrExpectedExpression
	ErrTrailingOperator
	ErrUnclosedDelimiter
	ErrBadCallArg
	ErrReservedWord

	// Pattern errors.
	ErrInvalidPattern
	ErrPatternArgument

	// Type errors.
	ErrExpectedType

	// Item errors.
	ErrExpectedItem
	ErrExpectedIdentifier
	ErrMisplacedUse
	ErrOrphanModifier
	ErrStrayCloser

	// Module and sequence errors.
	ErrUnexpectedToken
	ErrExpectedOneOf
	ErrTrailingSeparator
	ErrMissingSeparator

	// Indentation errors.
	ErrInsufficientIndent
	ErrInconsistentIndent
)

var errorCodes = map[ErrorKind]diag.Code{
	ErrExpectedExpression: diag.CodeParseExpectedExpr,
	ErrTrailingOperator:   diag.CodeParseTrailingOperator,
	ErrUnclosedDelimiter:  diag.CodeParseUnclosedDelimiter,
	ErrBadCallArg:         diag.CodeParseBadCallArg,
	ErrReservedWord:       diag.CodeParseReservedWord,
	ErrInvalidPattern:     diag.CodeParseInvalidPattern,
	ErrPatternArgument:    diag.CodeParsePatternArg,
	ErrExpectedType:       diag.CodeParseExpectedType,
	ErrExpectedItem:       diag.CodeParseExpectedItem,
	ErrExpectedIdentifier: diag.CodeParseExpectedIdent,
	ErrMisplacedUse:       diag.CodeParseMisplacedUse,
	ErrOrphanModifier:     diag.CodeParseOrphanModifier,
	ErrStrayCloser:        diag.CodeParseStrayCloser,
	ErrUnexpectedToken:    diag.CodeParseUnexpectedToken,
	ErrExpectedOneOf:      diag.CodeParseExpectedOneOf,
	ErrTrailingSeparator:  diag.CodeParseTrailingSep,
	ErrMissingSeparator:   diag.CodeParseMissingSeparator,
	ErrInsufficientIndent: diag.CodeParseInsufficientIndent,
	ErrInconsistentIndent: diag.CodeParseInconsistentIndent,
}

// hints carries the default hint per kind; constructors may override with a
// more specific one.
var hints = map[ErrorKind]string{
	ErrExpectedExpression: "operators and delimiters must be followed by an operand",
	ErrTrailingOperator:   "remove the operator or add its right operand",
	ErrUnclosedDelimiter:  "every `(`, `[`, and `{` needs a matching closer",
	ErrBadCallArg:         "call arguments are written `name: value`",
	ErrReservedWord:       "this word is reserved and cannot start an expression",
	ErrInvalidPattern:     "patterns are literals, bindings, `_`, tuples, or constructors",
	ErrPatternArgument:    "constructor patterns take at most one argument",
	ErrExpectedType:       "a type is a name, `Name[args]`, `(T, U)`, `(T) -> U`, or `T?`",
	ErrExpectedIdentifier: "a name is required here",
	ErrMisplacedUse:       "`use` items must appear before any other item",
	ErrOrphanModifier:     "`pub` must be followed by an item",
	ErrStrayCloser:        "there is no matching opening delimiter",
	ErrTrailingSeparator:  "remove the trailing separator or add another element",
	ErrInsufficientIndent: "this line must be indented past the enclosing construct",
	ErrInconsistentIndent: "all entries of an aligned list must start at the same column",
}

// ParseError is one committed diagnostic. It renders through internal/diag
// but keeps the structured kind so tests and tools can match on situations
// rather than message text.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Span     diag.Span
	Severity diag.Severity
	Help     string
	Fix      string
}

// ToDiagnostic converts the error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	code := errorCodes[e.Kind]
	severity := e.Severity
	if severity == "" {
		severity = diag.SeverityError
	}
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: severity,
		Code:     code,
		Message:  e.Message,
		Span:     e.Span,
		Help:     e.Help,
		Fix:      e.Fix,
	}
}

// newError builds a ParseError with the kind's default hint and the
// parser's filename stamped into the span.
func (p *Parser) newError(kind ErrorKind, msg string, span ast.Span) ParseError {
	return ParseError{
		Kind:     kind,
		Message:  msg,
		Span:     p.diagSpan(span),
		Severity: diag.SeverityError,
		Help:     hints[kind],
	}
}

// diagSpan converts a byte span into a located diagnostic span using the
// token at or after the span start.
func (p *Parser) diagSpan(span ast.Span) diag.Span {
	out := diag.Span{
		Filename: p.filename,
		Start:    int(span.Start),
		End:      int(span.End),
	}
	for _, t := range p.toks {
		if t.End > span.Start {
			out.Line = int(t.Line)
			out.Column = int(t.Column)
			return out
		}
	}
	if n := len(p.toks); n > 0 {
		out.Line = int(p.toks[n-1].Line)
		out.Column = int(p.toks[n-1].Column)
	}
	return out
}

// reportError commits an error immediately, outside the result flow. Used
// where parsing continues in place (indentation violations, stray tokens
// that are skipped rather than failed on).
func (p *Parser) reportError(kind ErrorKind, msg string, span ast.Span) {
	p.errors = append(p.errors, p.newError(kind, msg, span))
}
