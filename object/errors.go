package object

import "fmt"

// EvalError is a runtime evaluation failure, e.g. division by zero.
type EvalError struct {
	message string
}

func (e *EvalError) Error() string { return e.message }

// TypeError indicates an operation received a value of the wrong type.
type TypeError struct {
	message string
}

func (e *TypeError) Error() string { return e.message }

// ArgsError indicates a function call with the wrong number of arguments.
type ArgsError struct {
	message string
}

func (e *ArgsError) Error() string { return e.message }

func newEvalErrorf(format string, args ...interface{}) *EvalError {
	return &EvalError{message: fmt.Sprintf(format, args...)}
}

func newTypeErrorf(format string, args ...interface{}) *TypeError {
	return &TypeError{message: fmt.Sprintf(format, args...)}
}

func newArgsErrorf(format string, args ...interface{}) *ArgsError {
	return &ArgsError{message: fmt.Sprintf(format, args...)}
}

// NewEvalError returns an EvalError with a formatted message.
func NewEvalError(format string, args ...interface{}) *EvalError {
	return newEvalErrorf(format, args...)
}

// NewTypeError returns a TypeError with a formatted message.
func NewTypeError(format string, args ...interface{}) *TypeError {
	return newTypeErrorf(format, args...)
}

// NewArgsError returns an ArgsError with a formatted message.
func NewArgsError(format string, args ...interface{}) *ArgsError {
	return newArgsErrorf(format, args...)
}

// EvalErrorf returns an Error object containing an eval error.
func EvalErrorf(format string, args ...interface{}) *Error {
	return NewError(newEvalErrorf(format, args...))
}

// TypeErrorf returns an Error object containing a type error.
func TypeErrorf(format string, args ...interface{}) *Error {
	return NewError(newTypeErrorf(format, args...))
}

// ArgsErrorf returns an Error object containing an arguments error.
func ArgsErrorf(format string, args ...interface{}) *Error {
	return NewError(newArgsErrorf(format, args...))
}
