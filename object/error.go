package object

import (
	"fmt"

	"github.com/tcc-lang/tcc/op"
)

// Error wraps a Go error interface and implements Object. Errors returned by
// builtins and VM operations halt script execution when they surface.
type Error struct {
	base
	err error
}

func (e *Error) Type() Type {
	return ERROR
}

func (e *Error) Inspect() string {
	return fmt.Sprintf("error(%s)", e.err.Error())
}

func (e *Error) String() string {
	return e.Inspect()
}

func (e *Error) Interface() interface{} {
	return e.err
}

func (e *Error) Value() error {
	return e.err
}

func (e *Error) Message() *String {
	return NewString(e.err.Error())
}

func (e *Error) Equals(other Object) bool {
	otherErr, ok := other.(*Error)
	if !ok {
		return false
	}
	return e.err.Error() == otherErr.err.Error()
}

func (e *Error) GetAttr(name string) (Object, bool) {
	switch name {
	case "message":
		return e.Message(), true
	}
	return nil, false
}

func (e *Error) IsTruthy() bool {
	return false
}

func (e *Error) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for error: %v", opType)
}

func NewError(err error) *Error {
	return &Error{err: err}
}

// Errorf returns an Error object wrapping a formatted generic error.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{err: fmt.Errorf(format, args...)}
}
