// Package token defines the lexical token model shared by the lexer and
// parser: a dense kind discriminant, the token record with its byte span and
// line/column position, and uint64 bitsets over kinds.
package token

import "fmt"

// Kind is a dense token discriminant. The kind space is deliberately kept at
// exactly 64 values so that a single uint64 word can represent any set of
// kinds (see Set); adding a 65th kind requires widening Set first.
type Kind uint8

const (
	// Special
	EOF Kind = iota
	Illegal
	Newline

	// Literals and identifiers
	Ident
	Int
	Float
	String
	Char

	// Sigils and delimiters
	At       // @
	Dollar   // $
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	Colon    // :
	Comma    // ,
	Dot      // .
	DotDot   // ..
	DotDotEq // ..=
	Arrow    // ->
	FatArrow // =>
	Question // ?
	Under    // _

	// Operators
	Assign   // =
	Eq       // ==
	NotEq    // !=
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	Bang     // !
	Amp      // &
	AmpAmp   // &&
	Pipe     // |
	PipePipe // ||
	Caret    // ^
	Shl      // <<
	Shr      // >>

	// Keywords
	KwIf
	KwThen
	KwElse
	KwMatch
	KwFor
	KwIn
	KwDo
	KwLet
	KwMut
	KwPub
	KwType
	KwTrait
	KwImpl
	KwUse
	KwTrue
	KwFalse
	KwBreak
	KwContinue
	KwAs

	NumKinds // must stay <= 64
)

var kindNames = [NumKinds]string{
	EOF:      "end of input",
	Illegal:  "illegal token",
	Newline:  "newline",
	Ident:    "identifier",
	Int:      "integer literal",
	Float:    "float literal",
	String:   "string literal",
	Char:     "char literal",
	At:       "`@`",
	Dollar:   "`$`",
	LParen:   "`(`",
	RParen:   "`)`",
	LBrace:   "`{`",
	RBrace:   "`}`",
	LBracket: "`[`",
	RBracket: "`]`",
	Colon:    "`:`",
	Comma:    "`,`",
	Dot:      "`.`",
	DotDot:   "`..`",
	DotDotEq: "`..=`",
	Arrow:    "`->`",
	FatArrow: "`=>`",
	Question: "`?`",
	Under:    "`_`",
	Assign:   "`=`",
	Eq:       "`==`",
	NotEq:    "`!=`",
	Lt:       "`<`",
	LtEq:     "`<=`",
	Gt:       "`>`",
	GtEq:     "`>=`",
	Plus:     "`+`",
	Minus:    "`-`",
	Star:     "`*`",
	Slash:    "`/`",
	Percent:  "`%`",
	Bang:     "`!`",
	Amp:      "`&`",
	AmpAmp:   "`&&`",
	Pipe:     "`|`",
	PipePipe: "`||`",
	Caret:    "`^`",
	Shl:      "`<<`",
	Shr:      "`>>`",
	KwIf:     "`if`",
	KwThen:   "`then`",
	KwElse:   "`else`",
	KwMatch:  "`match`",
	KwFor:    "`for`",
	KwIn:     "`in`",
	KwDo:     "`do`",
	KwLet:    "`let`",
	KwMut:    "`mut`",
	KwPub:    "`pub`",
	KwType:   "`type`",
	KwTrait:  "`trait`",
	KwImpl:   "`impl`",
	KwUse:    "`use`",
	KwTrue:   "`true`",
	KwFalse:  "`false`",
	KwBreak:  "`break`",
	KwContinue: "`continue`",
	KwAs:     "`as`",
}

// String returns the diagnostic-facing name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var keywords = map[string]Kind{
	"if":       KwIf,
	"then":     KwThen,
	"else":     KwElse,
	"match":    KwMatch,
	"for":      KwFor,
	"in":       KwIn,
	"do":       KwDo,
	"let":      KwLet,
	"mut":      KwMut,
	"pub":      KwPub,
	"type":     KwType,
	"trait":    KwTrait,
	"impl":     KwImpl,
	"use":      KwUse,
	"true":     KwTrue,
	"false":    KwFalse,
	"break":    KwBreak,
	"continue": KwContinue,
	"as":       KwAs,
}

// LookupIdent maps an identifier lexeme to its keyword kind, or Ident if the
// lexeme is not a reserved word. Soft keywords (self, print, panic, some,
// none, ok, err, loop, return) are NOT in this table: they lex as Ident and
// the parser decides from context (see SoftKeyword).
func LookupIdent(lexeme string) Kind {
	if k, ok := keywords[lexeme]; ok {
		return k
	}
	return Ident
}

// softKeywords are identifier lexemes with contextual meaning. `return` and
// `loop` are reserved for future use and get a dedicated diagnostic when used
// as an expression head.
var softKeywords = map[string]bool{
	"self":   true,
	"print":  true,
	"panic":  true,
	"some":   true,
	"none":   true,
	"ok":     true,
	"err":    true,
	"loop":   true,
	"return": true,
}

// SoftKeyword reports whether lexeme is a contextual keyword.
func SoftKeyword(lexeme string) bool {
	return softKeywords[lexeme]
}

// Token is a single lexical token. Tokens are produced once by the lexer and
// never mutated; the parser addresses them by index into the token slice.
type Token struct {
	Kind   Kind
	Text   string // lexeme as written; decoded value for String/Char
	Start  uint32 // byte offset, inclusive
	End    uint32 // byte offset, exclusive
	Line   uint32 // 1-based
	Column uint32 // 1-based
}

// IsBefore reports whether t ends at or before other begins.
func (t Token) IsBefore(other Token) bool {
	return t.End <= other.Start
}
