// Package lexer scans Jot source text into a token stream.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/jot-lang/jot/internal/token"
)

// Lexer turns one source file's text into a stream of token.Token
// values, one NextToken() call at a time.
//
// # Unicode and column positions
//
// Column positions are counted in runes, not bytes: a multi-byte UTF-8
// character advances the column by exactly one, the same trade-off the
// rest of this corpus makes for simplicity and reproducibility over
// matching terminal display width.
type Lexer struct {
	fileID       int
	input        string
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
	tracing      bool
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithTracing sets the tracing flag reported by Tracing. The Lexer
// only exposes the flag; it does no printing.
func WithTracing(trace bool) Option {
	return func(l *Lexer) { l.tracing = trace }
}

// Tracing reports whether WithTracing(true) was supplied.
func (l *Lexer) Tracing() bool { return l.tracing }

// New returns a Lexer over input, attributing every position to
// fileID (as registered with a source.Manager). Strips a leading
// UTF-8 BOM if present.
func New(fileID int, input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{fileID: fileID, input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// State is a saved Lexer position, usable to backtrack after
// speculative lookahead.
type State struct {
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// SaveState captures the lexer's current position.
func (l *Lexer) SaveState() State {
	return State{l.position, l.readPosition, l.line, l.column, l.ch}
}

// RestoreState rewinds the lexer to a previously saved position.
func (l *Lexer) RestoreState(s State) {
	l.position, l.readPosition, l.line, l.column, l.ch = s.position, s.readPosition, s.line, s.column, s.ch
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{File: l.fileID, Line: l.line, Column: l.column}
}

func (l *Lexer) newToken(kind token.Kind, literal string, startCol int) token.Token {
	return token.Token{
		Kind:    kind,
		Literal: literal,
		Span: token.Span{
			File:        l.fileID,
			Line:        l.line,
			ColumnStart: startCol,
			ColumnEnd:   l.column - 1,
		},
	}
}

func isLetter(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > utf8.RuneSelf
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.line++
			l.column = 0
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

// skipBlockComment consumes a /* ... */ comment. An unterminated
// comment consumes the rest of the input; the next token is EOF and
// no Invalid token is produced for it.
func (l *Lexer) skipBlockComment() {
	l.readChar() // '/'
	l.readChar() // '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans a decimal integer or float literal. A '.' only
// starts the fractional part when followed by a digit, so that
// `3.toString()`-style member access on a literal and range
// expressions (`a..b`) are never swallowed into the number.
func (l *Lexer) readNumber() (token.Kind, string) {
	start := l.position
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	kind := token.Int
	if l.ch == '.' && isDigit(l.peekChar()) {
		kind = token.Float
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		kind = token.Float
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return kind, l.input[start:l.position]
}

// readString scans a double-quoted string literal, resolving the
// backslash escapes \n \t \r \\ \" \0. An unterminated string returns
// what was read so far with ok=false.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // opening quote
	var b strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return b.String(), false
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote
	return b.String(), true
}

// readCharLiteral scans a single-quoted character literal, returning
// the one byte it denotes. ok is false if the literal is empty,
// unterminated, or spans more than one (possibly escaped) character.
func (l *Lexer) readCharLiteral() (byte, bool) {
	l.readChar() // opening quote
	if l.ch == '\'' || l.ch == 0 {
		return 0, false
	}

	var value byte
	if l.ch == '\\' {
		l.readChar()
		switch l.ch {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		case 'r':
			value = '\r'
		case '0':
			value = 0
		case '\\':
			value = '\\'
		case '\'':
			value = '\''
		default:
			value = byte(l.ch)
		}
	} else {
		value = byte(l.ch)
	}
	l.readChar()

	if l.ch != '\'' {
		return 0, false
	}
	l.readChar() // closing quote
	return value, true
}

// twoCharOps maps a lead rune to the set of second runes that extend
// it into a two-character operator, and the resulting Kind. Checked
// before falling back to the one-character Kind for that lead rune.
type twoCharOp struct {
	second rune
	kind   token.Kind
}

var twoCharOps = map[rune][]twoCharOp{
	'+': {{'+', token.PlusPlus}, {'=', token.PlusEqual}},
	'-': {{'-', token.MinusMinus}, {'=', token.MinusEqual}, {'>', token.Arrow}},
	'*': {{'=', token.StarEqual}},
	'/': {{'=', token.SlashEqual}},
	'%': {{'=', token.PercentEqual}},
	'=': {{'=', token.EqualEqual}},
	'!': {{'=', token.BangEqual}},
	'<': {{'=', token.LessEqual}, {'<', token.LessLess}},
	'>': {{'=', token.GreaterEqual}, {'>', token.GreaterGreater}},
	'&': {{'&', token.AmpAmp}},
	'|': {{'|', token.PipePipe}},
	':': {{':', token.ColonColon}},
	'.': {{'.', token.DotDot}},
}

var oneCharKinds = map[rune]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Equal,
	'!': token.Bang,
	'<': token.Less,
	'>': token.Greater,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	':': token.Colon,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	';': token.Semicolon,
	',': token.Comma,
}

// NextToken scans and returns the next token.Token, advancing past it.
// Malformed input (unterminated literals, an unexpected byte) never
// stops the scan: it produces a token.Invalid token carrying a
// descriptive literal and the lexer continues from the following
// character, the same accumulate-and-continue discipline the parser
// and type checker use for their own diagnostics.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	startCol := l.column

	switch {
	case l.ch == 0:
		return l.newToken(token.EOF, "", startCol)

	case isLetter(l.ch):
		lit := l.readIdentifier()
		return l.newToken(token.LookupIdent(lit), lit, startCol)

	case isDigit(l.ch):
		kind, lit := l.readNumber()
		return l.newToken(kind, lit, startCol)

	case l.ch == '"':
		lit, ok := l.readString()
		if !ok {
			return l.newToken(token.Invalid, "unterminated string literal", startCol)
		}
		return l.newToken(token.String, lit, startCol)

	case l.ch == '\'':
		value, ok := l.readCharLiteral()
		if !ok {
			return l.newToken(token.Invalid, "unterminated or malformed character literal", startCol)
		}
		return l.newToken(token.Char, string(value), startCol)
	}

	if exts, ok := twoCharOps[l.ch]; ok {
		for _, ext := range exts {
			if l.peekChar() == ext.second {
				lit := string(l.ch) + string(ext.second)
				l.readChar()
				l.readChar()
				return l.newToken(ext.kind, lit, startCol)
			}
		}
	}

	if kind, ok := oneCharKinds[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return l.newToken(kind, lit, startCol)
	}

	bad := l.ch
	l.readChar()
	return l.newToken(token.Invalid, "unexpected character: "+string(bad), startCol)
}
