package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/tcc-lang/tcc/internal/token"
)

// ErrorOpts holds the data used to construct a ParserError. All fields are
// optional, although one of Cause or Message is recommended. If Cause is
// set, Message is ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// ParserError describes one syntax or parse error with its location.
type ParserError struct {
	errType       string
	message       string
	cause         error
	file          string
	startPosition token.Position
	endPosition   token.Position
	sourceCode    string
}

// NewParserError returns a ParserError populated with the given error data.
func NewParserError(opts ErrorOpts) *ParserError {
	return &ParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// NewSyntaxError returns a ParserError typed as a syntax error.
func NewSyntaxError(opts ErrorOpts) *ParserError {
	opts.ErrType = "syntax error"
	return NewParserError(opts)
}

func (e *ParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	if e.startPosition.IsValid() {
		if e.file != "" {
			return fmt.Sprintf("%s (%s:%d:%d)", msg, e.file,
				e.startPosition.LineNumber(), e.startPosition.ColumnNumber())
		}
		return fmt.Sprintf("%s (line %d)", msg, e.startPosition.LineNumber())
	}
	return msg
}

func (e *ParserError) Unwrap() error {
	return e.cause
}

func (e *ParserError) Type() string {
	return e.errType
}

func (e *ParserError) Message() string {
	return e.message
}

func (e *ParserError) File() string {
	return e.file
}

func (e *ParserError) StartPosition() token.Position {
	return e.startPosition
}

func (e *ParserError) EndPosition() token.Position {
	return e.endPosition
}

// SourceCode returns the source line the error occurred on.
func (e *ParserError) SourceCode() string {
	return e.sourceCode
}

// combineErrors aggregates parser errors into a single error value. Callers
// can recover the individual errors with errors.As or by unwrapping the
// returned *multierror.Error.
func combineErrors(errs []*ParserError) error {
	if len(errs) == 0 {
		return nil
	}
	var combined *multierror.Error
	for _, err := range errs {
		combined = multierror.Append(combined, err)
	}
	combined.ErrorFormat = func(errs []error) string {
		if len(errs) == 1 {
			return errs[0].Error()
		}
		return fmt.Sprintf("%s (and %d more errors)", errs[0], len(errs)-1)
	}
	return combined
}
