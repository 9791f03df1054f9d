package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic. Parse codes are grouped by
// sub-domain; new situations within a sub-domain get new codes rather than
// reusing a generic one, so each can carry its own hint.
type Code string

const (
	// Lexer
	CodeLexUnterminatedString Code = "LEX_UNTERMINATED_STRING"
	CodeLexUnterminatedChar   Code = "LEX_UNTERMINATED_CHAR"
	CodeLexIllegalRune        Code = "LEX_ILLEGAL_RUNE"
	CodeLexBadEscape          Code = "LEX_BAD_ESCAPE"
	CodeLexBadNumber          Code = "LEX_BAD_NUMBER"

	// Expressions
	CodeParseExpectedExpr      Code = "PARSE_EXPECTED_EXPRESSION"
	CodeParseTrailingOperator  Code = "PARSE_TRAILING_OPERATOR"
	CodeParseUnclosedDelimiter Code = "PARSE_UNCLOSED_DELIMITER"
	CodeParseBadCallArg        Code = "PARSE_BAD_CALL_ARGUMENT"
	CodeParseReservedWord      Code = "PARSE_RESERVED_WORD"

	// Patterns
	CodeParseInvalidPattern Code = "PARSE_INVALID_PATTERN"
	CodeParsePatternArg     Code = "PARSE_PATTERN_ARGUMENT"

	// Types
	CodeParseExpectedType Code = "PARSE_EXPECTED_TYPE"

	// Items
	CodeParseExpectedItem    Code = "PARSE_EXPECTED_ITEM"
	CodeParseExpectedIdent   Code = "PARSE_EXPECTED_IDENTIFIER"
	CodeParseMisplacedUse    Code = "PARSE_MISPLACED_USE"
	CodeParseOrphanModifier  Code = "PARSE_ORPHAN_MODIFIER"
	CodeParseStrayCloser     Code = "PARSE_STRAY_CLOSING_DELIMITER"

	// Module / sequences
	CodeParseUnexpectedToken  Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseExpectedOneOf    Code = "PARSE_EXPECTED_ONE_OF"
	CodeParseTrailingSep      Code = "PARSE_TRAILING_SEPARATOR"
	CodeParseMissingSeparator Code = "PARSE_MISSING_SEPARATOR"

	// Indentation
	CodeParseInsufficientIndent Code = "PARSE_INSUFFICIENT_INDENTATION"
	CodeParseInconsistentIndent Code = "PARSE_INCONSISTENT_INDENTATION"
)

// Span represents a location in source code.
type Span struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage    `json:"stage"`
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Span     Span     `json:"span"`
	Help     string   `json:"help,omitempty"` // situation-specific hint
	Fix      string   `json:"fix,omitempty"`  // suggested replacement text, when one exists
	Notes    []string `json:"notes,omitempty"`
}

// WithHelp returns the diagnostic with the given help text attached.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithFix returns the diagnostic with a suggested textual fix attached.
func (d Diagnostic) WithFix(fix string) Diagnostic {
	d.Fix = fix
	return d
}

// WithNote appends a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}
