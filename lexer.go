package main

import (
	"strconv"
	"unicode/utf8"
)

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT   = "IDENT"   // width, background-color, LinkColor
	HASH    = "HASH"    // #ff0000, #main (literal excludes the '#')
	PIXEL   = "PIXEL"   // 10px
	PERCENT = "PERCENT" // 50%
	SCALAR  = "SCALAR"  // 3

	// Operators
	ASSIGN   = ":="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOT       = "."
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	// Keywords
	IF    = "IF"
	ELSE  = "ELSE"
	TRUE  = "TRUE"
	FALSE = "FALSE"
)

// Lexer scans ICSS source one token at a time. The current token is kept
// in the Curr* fields.
type Lexer struct {
	input []byte // always ends with a 0 byte
	pos   int
	line  int
	col   int

	CurrTokenType TokenType
	CurrLiteral   string
	CurrIntValue  int // only meaningful for PIXEL, PERCENT and SCALAR
	CurrPos       Pos

	Errors *ErrorCollection
}

// NewLexer returns a lexer over in. A terminating 0 byte is appended when
// missing.
func NewLexer(in []byte) *Lexer {
	if len(in) == 0 || in[len(in)-1] != 0 {
		buf := make([]byte, len(in), len(in)+1)
		copy(buf, in)
		in = append(buf, 0)
	}
	return &Lexer{
		input:  in,
		line:   1,
		col:    1,
		Errors: NewErrorCollection(),
	}
}

// advance moves past one byte. Columns count runes, so UTF-8
// continuation bytes do not move the column.
func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else if utf8.RuneStart(l.input[l.pos]) {
		l.col++
	}
	l.pos++
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) single(tt TokenType) {
	l.CurrTokenType = tt
	l.CurrLiteral = string(l.input[l.pos])
	l.advance()
}

// NextToken scans the next token and stores it in the Curr* fields.
// Call repeatedly until CurrTokenType == EOF.
func (l *Lexer) NextToken() {
	l.skipWhitespaceAndComments()

	c := l.input[l.pos]
	l.CurrIntValue = 0
	l.CurrPos = Pos{Line: l.line, Col: l.col}

	switch {
	case c == 0:
		l.CurrTokenType = EOF
		l.CurrLiteral = ""
	case c == ':':
		if l.peek(1) == '=' {
			l.CurrTokenType = ASSIGN
			l.CurrLiteral = ":="
			l.advance()
			l.advance()
		} else {
			l.single(COLON)
		}
	case c == '+':
		l.single(PLUS)
	case c == '-':
		l.single(MINUS)
	case c == '*':
		l.single(ASTERISK)
	case c == ',':
		l.single(COMMA)
	case c == ';':
		l.single(SEMICOLON)
	case c == '.':
		l.single(DOT)
	case c == '(':
		l.single(LPAREN)
	case c == ')':
		l.single(RPAREN)
	case c == '{':
		l.single(LBRACE)
	case c == '}':
		l.single(RBRACE)
	case c == '[':
		l.single(LBRACKET)
	case c == ']':
		l.single(RBRACKET)
	case c == '#':
		l.advance()
		name := l.readIdentifier()
		if name == "" {
			l.CurrTokenType = ILLEGAL
			l.CurrLiteral = "#"
			l.Errors.AddAt(SyntaxError, l.CurrPos, "expected name after '#'")
			return
		}
		l.CurrTokenType = HASH
		l.CurrLiteral = name
	case isDigit(c):
		lit, val := l.readNumber()
		switch {
		case l.peek(0) == 'p' && l.peek(1) == 'x' && !isIdentChar(l.peek(2)):
			l.advance()
			l.advance()
			l.CurrTokenType = PIXEL
			l.CurrLiteral = lit + "px"
		case l.peek(0) == '%':
			l.advance()
			l.CurrTokenType = PERCENT
			l.CurrLiteral = lit + "%"
		default:
			l.CurrTokenType = SCALAR
			l.CurrLiteral = lit
		}
		l.CurrIntValue = val
	case isLetter(c):
		lit := l.readIdentifier()
		switch lit {
		case "if":
			l.CurrTokenType = IF
		case "else":
			l.CurrTokenType = ELSE
		case "TRUE":
			l.CurrTokenType = TRUE
		case "FALSE":
			l.CurrTokenType = FALSE
		default:
			l.CurrTokenType = IDENT
		}
		l.CurrLiteral = lit
	default:
		r, size := utf8.DecodeRune(l.input[l.pos:])
		l.CurrTokenType = ILLEGAL
		l.CurrLiteral = string(l.input[l.pos : l.pos+size])
		if r == utf8.RuneError && size == 1 {
			l.Errors.AddAt(SyntaxError, l.CurrPos, "invalid UTF-8 byte 0x%02x", c)
		} else {
			l.Errors.AddAt(SyntaxError, l.CurrPos, "unexpected character '%c'", r)
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.advance()
		case c == '/' && l.peek(1) == '/':
			for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
				l.advance()
			}
		case c == '/' && l.peek(1) == '*':
			start := Pos{Line: l.line, Col: l.col}
			l.advance()
			l.advance()
			for l.input[l.pos] != 0 && !(l.input[l.pos] == '*' && l.peek(1) == '/') {
				l.advance()
			}
			if l.input[l.pos] == 0 {
				l.Errors.AddAt(SyntaxError, start, "unterminated comment")
				return
			}
			l.advance()
			l.advance()
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-'
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// readIdentifier reads [A-Za-z0-9_-]*; hyphens allow background-color.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentChar(l.input[l.pos]) {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a run of digits. A value that does not fit in an int
// is reported and read as 0.
func (l *Lexer) readNumber() (string, int) {
	start := l.pos
	for isDigit(l.input[l.pos]) {
		l.advance()
	}
	lit := string(l.input[start:l.pos])
	val, err := strconv.Atoi(lit)
	if err != nil {
		l.Errors.AddAt(SyntaxError, l.CurrPos, "number '%s' is too large", lit)
		return lit, 0
	}
	return lit, val
}

// IsHexColor reports whether name (without '#') is a 3 or 6 digit hex
// colour.
func IsHexColor(name string) bool {
	if len(name) != 3 && len(name) != 6 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isHexDigit(name[i]) {
			return false
		}
	}
	return true
}
