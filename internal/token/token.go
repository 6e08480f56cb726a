// Package token defines language keywords and tokens used when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Note: this assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AND             Type = "&&"
	ASSIGN          Type = "="
	ASTERISK        Type = "*"
	ASTERISK_EQUALS Type = "*="
	BANG            Type = "!"
	BREAK           Type = "BREAK"
	COMMA           Type = ","
	CONTINUE        Type = "CONTINUE"
	ELSE            Type = "ELSE"
	EOF             Type = "EOF"
	EQ              Type = "=="
	FALSE           Type = "FALSE"
	FLOAT           Type = "FLOAT"
	FUNC            Type = "FUNC"
	GT              Type = ">"
	GT_EQUALS       Type = ">="
	IDENT           Type = "IDENT"
	IF              Type = "IF"
	ILLEGAL         Type = "ILLEGAL"
	INT             Type = "INT"
	LBRACE          Type = "{"
	LBRACKET        Type = "["
	LPAREN          Type = "("
	LT              Type = "<"
	LT_EQUALS       Type = "<="
	MINUS           Type = "-"
	MINUS_EQUALS    Type = "-="
	MOD             Type = "%"
	NEWLINE         Type = "EOL"
	NIL             Type = "nil"
	NOT_EQ          Type = "!="
	OR              Type = "||"
	PERIOD          Type = "."
	PLUS            Type = "+"
	PLUS_EQUALS     Type = "+="
	POW             Type = "**"
	RBRACE          Type = "}"
	RBRACKET        Type = "]"
	RETURN          Type = "RETURN"
	RPAREN          Type = ")"
	SEMICOLON       Type = ";"
	SLASH           Type = "/"
	SLASH_EQUALS    Type = "/="
	STRING          Type = "STRING"
	TRUE            Type = "TRUE"
	VAR             Type = "VAR"
	WHILE           Type = "WHILE"
)

// Reserved keywords. World commands like create3d or npc are deliberately
// not reserved: the parser recognizes them contextually at statement start,
// so scripts remain free to use those words as variable names.
var keywords = map[string]Type{
	"break":    BREAK,
	"continue": CONTINUE,
	"else":     ELSE,
	"false":    FALSE,
	"func":     FUNC,
	"if":       IF,
	"nil":      NIL,
	"return":   RETURN,
	"true":     TRUE,
	"var":      VAR,
	"while":    WHILE,
}

// LookupIdentifier determines whether an identifier is a keyword or not.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
