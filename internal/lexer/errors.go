package lexer

import (
	"fmt"

	"github.com/tcc-lang/tcc/internal/token"
)

// SyntaxError is returned when the lexer encounters input it cannot tokenize.
type SyntaxError struct {
	message  string
	position token.Position
}

func (e SyntaxError) Error() string {
	if e.position.File != "" {
		return fmt.Sprintf("syntax error: %s (%s, line %d, column %d)",
			e.message, e.position.File, e.position.LineNumber(), e.position.ColumnNumber())
	}
	return fmt.Sprintf("syntax error: %s (line %d, column %d)",
		e.message, e.position.LineNumber(), e.position.ColumnNumber())
}

// Position returns the location of the error in the input.
func (e SyntaxError) Position() token.Position {
	return e.position
}

// Message returns the error description without location information.
func (e SyntaxError) Message() string {
	return e.message
}
