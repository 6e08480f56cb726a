// Package lexer scans source code and produces a stream of tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/internal/token"
)

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFile sets the filename attached to token positions.
func WithFile(file string) Option {
	return func(l *Lexer) {
		l.file = file
	}
}

// Lexer holds the state used while scanning one input string.
type Lexer struct {
	input     string
	file      string
	pos       int  // position of ch
	readPos   int  // position after ch
	ch        rune // current character
	line      int  // 0-indexed line of ch
	lineStart int  // byte offset of the start of the current line
}

// New returns a Lexer for the given input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Filename returns the filename attached to token positions, if any.
func (l *Lexer) Filename() string {
	return l.file
}

// GetLineText returns the full source line on which the given token starts.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start >= len(l.input) {
		return ""
	}
	rest := l.input[start:]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// Next returns the next token in the input. At the end of the input, tokens
// with type EOF are returned indefinitely.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpaces()
	for l.ch == '/' && (l.peekChar() == '/' || l.peekChar() == '*') {
		if err := l.skipComment(); err != nil {
			return token.Token{}, err
		}
		l.skipSpaces()
	}
	start := l.position()
	switch l.ch {
	case 0:
		return l.token(token.EOF, "", start), nil
	case '\n':
		tok := l.token(token.NEWLINE, "\n", start)
		l.readChar()
		return tok, nil
	case ';':
		return l.charToken(token.SEMICOLON, start), nil
	case ',':
		return l.charToken(token.COMMA, start), nil
	case '.':
		return l.charToken(token.PERIOD, start), nil
	case '(':
		return l.charToken(token.LPAREN, start), nil
	case ')':
		return l.charToken(token.RPAREN, start), nil
	case '{':
		return l.charToken(token.LBRACE, start), nil
	case '}':
		return l.charToken(token.RBRACE, start), nil
	case '[':
		return l.charToken(token.LBRACKET, start), nil
	case ']':
		return l.charToken(token.RBRACKET, start), nil
	case '+':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.PLUS_EQUALS, start), nil
		}
		return l.charToken(token.PLUS, start), nil
	case '-':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.MINUS_EQUALS, start), nil
		}
		return l.charToken(token.MINUS, start), nil
	case '*':
		if l.peekChar() == '*' {
			return l.twoCharToken(token.POW, start), nil
		}
		if l.peekChar() == '=' {
			return l.twoCharToken(token.ASTERISK_EQUALS, start), nil
		}
		return l.charToken(token.ASTERISK, start), nil
	case '/':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.SLASH_EQUALS, start), nil
		}
		return l.charToken(token.SLASH, start), nil
	case '%':
		return l.charToken(token.MOD, start), nil
	case '=':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.EQ, start), nil
		}
		return l.charToken(token.ASSIGN, start), nil
	case '!':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.NOT_EQ, start), nil
		}
		return l.charToken(token.BANG, start), nil
	case '<':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.LT_EQUALS, start), nil
		}
		return l.charToken(token.LT, start), nil
	case '>':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.GT_EQUALS, start), nil
		}
		return l.charToken(token.GT, start), nil
	case '&':
		if l.peekChar() == '&' {
			return l.twoCharToken(token.AND, start), nil
		}
		return l.illegal(start)
	case '|':
		if l.peekChar() == '|' {
			return l.twoCharToken(token.OR, start), nil
		}
		return l.illegal(start)
	case '"':
		return l.readString(start)
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		tok := token.Token{
			Type:          token.LookupIdentifier(lit),
			Literal:       lit,
			StartPosition: start,
			EndPosition:   start.Advance(len(lit) - 1),
		}
		return tok, nil
	}
	return l.illegal(start)
}

func (l *Lexer) illegal(start token.Position) (token.Token, error) {
	tok := l.charToken(token.ILLEGAL, start)
	return tok, SyntaxError{
		message:  fmt.Sprintf("unexpected character %q", tok.Literal),
		position: start,
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPos
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	l.ch = rune(l.input[l.readPos])
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	return rune(l.input[l.readPos])
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) token(typ token.Type, literal string, start token.Position) token.Token {
	end := start
	if len(literal) > 1 {
		end = start.Advance(len(literal) - 1)
	}
	return token.Token{Type: typ, Literal: literal, StartPosition: start, EndPosition: end}
}

func (l *Lexer) charToken(typ token.Type, start token.Position) token.Token {
	tok := l.token(typ, string(l.ch), start)
	l.readChar()
	return tok
}

func (l *Lexer) twoCharToken(typ token.Type, start token.Position) token.Token {
	lit := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return l.token(typ, lit, start)
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() error {
	if l.peekChar() == '/' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return nil
	}
	// Block comment
	start := l.position()
	l.readChar()
	l.readChar()
	for {
		if l.ch == 0 {
			return SyntaxError{message: "unterminated comment", position: start}
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return nil
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	begin := l.pos
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	// A period is part of the number only when followed by a digit, so that
	// attribute access on an integer-valued expression still lexes.
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			if !isDigit(l.ch) {
				return token.Token{}, SyntaxError{
					message:  "invalid number literal: missing exponent digits",
					position: start,
				}
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	lit := l.input[begin:l.pos]
	typ := token.INT
	if isFloat {
		typ = token.FLOAT
	}
	return l.token(typ, lit, start), nil
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // opening quote
	for {
		switch l.ch {
		case 0, '\n':
			return token.Token{}, SyntaxError{
				message:  "unterminated string literal",
				position: start,
			}
		case '"':
			end := l.position()
			l.readChar()
			return token.Token{
				Type:          token.STRING,
				Literal:       sb.String(),
				StartPosition: start,
				EndPosition:   end,
			}, nil
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				return token.Token{}, SyntaxError{
					message:  fmt.Sprintf("invalid escape sequence \\%c", l.ch),
					position: l.position(),
				}
			}
			l.readChar()
		default:
			// The scanner walks bytes, so write the raw byte to keep
			// multi-byte UTF-8 sequences intact.
			sb.WriteByte(byte(l.ch))
			l.readChar()
		}
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
