// Package lexer turns Miren source text into the immutable token sequence
// the parser consumes. The sequence is always terminated by an EOF sentinel
// so parser lookahead never needs a bounds check.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/miren-lang/miren/internal/diag"
	"github.com/miren-lang/miren/internal/token"
)

// Lexer scans one source buffer. Position tracking: pos is a byte offset,
// line and column are 1-based, columns count runes from the line start.
type Lexer struct {
	filename string
	src      string

	pos    int
	line   int
	column int

	tokens []token.Token
	errs   []diag.Diagnostic
}

// New creates a lexer for the given source.
func New(filename, src string) *Lexer {
	return &Lexer{
		filename: filename,
		src:      src,
		line:     1,
		column:   1,
		tokens:   make([]token.Token, 0, len(src)/8+1),
	}
}

// Lex scans src and returns the token sequence (EOF-terminated) together
// with any lexical diagnostics.
func Lex(filename, src string) ([]token.Token, []diag.Diagnostic) {
	l := New(filename, src)
	return l.Tokenize(), l.Errors()
}

// Errors returns the lexical diagnostics accumulated so far.
func (l *Lexer) Errors() []diag.Diagnostic {
	return l.errs
}

// Tokenize scans the whole input.
func (l *Lexer) Tokenize() []token.Token {
	for l.pos < len(l.src) {
		l.next()
	}
	l.emit(token.EOF, l.pos, "")
	return l.tokens
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

// advance consumes one byte. Multi-byte runes go through advanceRune.
func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) advanceRune() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	l.column++
}

// emit appends a token whose lexeme spans [start, l.pos). Line/column are
// supplied by the caller via markers captured before scanning began.
func (l *Lexer) emitAt(kind token.Kind, start int, line, column int, text string) {
	l.tokens = append(l.tokens, token.Token{
		Kind:   kind,
		Text:   text,
		Start:  uint32(start),
		End:    uint32(l.pos),
		Line:   uint32(line),
		Column: uint32(column),
	})
}

func (l *Lexer) emit(kind token.Kind, start int, text string) {
	l.emitAt(kind, start, l.line, l.column, text)
}

func (l *Lexer) errorAt(code diag.Code, msg string, start int, line, column int) {
	l.errs = append(l.errs, diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span: diag.Span{
			Filename: l.filename,
			Line:     line,
			Column:   column,
			Start:    start,
			End:      l.pos,
		},
	})
}

func (l *Lexer) next() {
	start, line, column := l.pos, l.line, l.column
	ch := l.peek()

	switch {
	case ch == ' ' || ch == '\t' || ch == '\r':
		l.advance()

	case ch == '\n':
		l.advance()
		l.emitAt(token.Newline, start, line, column, "\n")

	case ch == '/' && l.peekAt(1) == '/':
		for l.pos < len(l.src) && l.peek() != '\n' {
			l.advance()
		}

	case isDigit(ch):
		l.scanNumber(start, line, column)

	case ch == '"':
		l.scanString(start, line, column)

	case ch == '\'':
		l.scanChar(start, line, column)

	case isIdentStart(rune(ch)) || ch >= utf8.RuneSelf:
		l.scanIdent(start, line, column)

	default:
		l.scanOperator(start, line, column)
	}
}

func (l *Lexer) scanIdent(start, line, column int) {
	for l.pos < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.advanceRune()
	}
	text := l.src[start:l.pos]
	kind := token.LookupIdent(text)
	if text == "_" {
		kind = token.Under
	}
	l.emitAt(kind, start, line, column, text)
}

func (l *Lexer) scanNumber(start, line, column int) {
	kind := token.Int
	sawSeparator := false
	for l.pos < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
		if l.peek() == '_' {
			sawSeparator = true
		}
		l.advance()
	}
	// Fractional part only when a digit follows the dot, so `1..2` stays a
	// range and `xs.0` stays tuple access.
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		kind = token.Float
		l.advance()
		for l.pos < len(l.src) && (isDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			kind = token.Float
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for l.pos < len(l.src) && isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	text := l.src[start:l.pos]
	if sawSeparator {
		if strings.HasSuffix(text, "_") || strings.Contains(text, "__") {
			l.errorAt(diag.CodeLexBadNumber,
				fmt.Sprintf("malformed digit separators in `%s`", text), start, line, column)
			l.emitAt(token.Illegal, start, line, column, text)
			return
		}
		text = strings.ReplaceAll(text, "_", "")
	}
	l.emitAt(kind, start, line, column, text)
}

func (l *Lexer) scanString(start, line, column int) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) || l.peek() == '\n' {
			l.errorAt(diag.CodeLexUnterminatedString, "unterminated string literal", start, line, column)
			l.emitAt(token.Illegal, start, line, column, b.String())
			return
		}
		ch := l.peek()
		if ch == '"' {
			l.advance()
			l.emitAt(token.String, start, line, column, b.String())
			return
		}
		if ch == '\\' {
			r, ok := l.scanEscape(line)
			if ok {
				b.WriteRune(r)
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		b.WriteRune(r)
		l.pos += size
		l.column++
	}
}

func (l *Lexer) scanChar(start, line, column int) {
	l.advance() // opening quote
	var value rune
	switch {
	case l.pos >= len(l.src) || l.peek() == '\n':
		l.errorAt(diag.CodeLexUnterminatedChar, "unterminated char literal", start, line, column)
		l.emitAt(token.Illegal, start, line, column, "")
		return
	case l.peek() == '\\':
		r, ok := l.scanEscape(line)
		if !ok {
			r = utf8.RuneError
		}
		value = r
	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		value = r
		l.pos += size
		l.column++
	}
	if l.peek() != '\'' {
		l.errorAt(diag.CodeLexUnterminatedChar, "unterminated char literal", start, line, column)
		l.emitAt(token.Illegal, start, line, column, string(value))
		return
	}
	l.advance() // closing quote
	l.emitAt(token.Char, start, line, column, string(value))
}

// scanEscape consumes a backslash escape and returns the decoded rune.
func (l *Lexer) scanEscape(line int) (rune, bool) {
	escStart, escColumn := l.pos, l.column
	l.advance() // backslash
	if l.pos >= len(l.src) {
		l.errorAt(diag.CodeLexBadEscape, "incomplete escape sequence", escStart, line, escColumn)
		return 0, false
	}
	ch := l.peek()
	l.advance()
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	default:
		l.errorAt(diag.CodeLexBadEscape,
			fmt.Sprintf("unknown escape sequence `\\%c`", ch), escStart, line, escColumn)
		return 0, false
	}
}

func (l *Lexer) scanOperator(start, line, column int) {
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	three := ""
	if l.pos+2 < len(l.src) {
		three = l.src[l.pos : l.pos+3]
	}

	var kind token.Kind
	n := 1
	switch {
	case three == "..=":
		kind, n = token.DotDotEq, 3
	case two == "..":
		kind, n = token.DotDot, 2
	case two == "->":
		kind, n = token.Arrow, 2
	case two == "=>":
		kind, n = token.FatArrow, 2
	case two == "==":
		kind, n = token.Eq, 2
	case two == "!=":
		kind, n = token.NotEq, 2
	case two == "<=":
		kind, n = token.LtEq, 2
	case two == ">=":
		kind, n = token.GtEq, 2
	case two == "<<":
		kind, n = token.Shl, 2
	case two == ">>":
		kind, n = token.Shr, 2
	case two == "&&":
		kind, n = token.AmpAmp, 2
	case two == "||":
		kind, n = token.PipePipe, 2
	default:
		switch l.peek() {
		case '@':
			kind = token.At
		case '$':
			kind = token.Dollar
		case '(':
			kind = token.LParen
		case ')':
			kind = token.RParen
		case '{':
			kind = token.LBrace
		case '}':
			kind = token.RBrace
		case '[':
			kind = token.LBracket
		case ']':
			kind = token.RBracket
		case ':':
			kind = token.Colon
		case ',':
			kind = token.Comma
		case '.':
			kind = token.Dot
		case '?':
			kind = token.Question
		case '=':
			kind = token.Assign
		case '<':
			kind = token.Lt
		case '>':
			kind = token.Gt
		case '+':
			kind = token.Plus
		case '-':
			kind = token.Minus
		case '*':
			kind = token.Star
		case '/':
			kind = token.Slash
		case '%':
			kind = token.Percent
		case '!':
			kind = token.Bang
		case '&':
			kind = token.Amp
		case '|':
			kind = token.Pipe
		case '^':
			kind = token.Caret
		default:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			l.pos += size
			l.column++
			l.errorAt(diag.CodeLexIllegalRune,
				fmt.Sprintf("illegal character `%c`", r), start, line, column)
			l.emitAt(token.Illegal, start, line, column, string(r))
			return
		}
	}

	for i := 0; i < n; i++ {
		l.advance()
	}
	l.emitAt(kind, start, line, column, l.src[start:l.pos])
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
