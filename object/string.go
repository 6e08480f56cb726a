package object

import (
	"context"
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/op"
)

// String wraps string and implements the Object interface.
type String struct {
	base
	value string
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Inspect() string {
	return fmt.Sprintf("%q", s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) Compare(other Object) (int, error) {
	otherStr, ok := other.(*String)
	if !ok {
		return 0, newTypeErrorf("unable to compare string and %s", other.Type())
	}
	return strings.Compare(s.value, otherStr.value), nil
}

func (s *String) Equals(other Object) bool {
	otherStr, ok := other.(*String)
	if !ok {
		return false
	}
	return s.value == otherStr.value
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) GetAttr(name string) (Object, bool) {
	switch name {
	case "upper":
		return NewBuiltin("string.upper", func(ctx context.Context, args ...Object) (Object, error) {
			if len(args) != 0 {
				return nil, newArgsErrorf("args error: string.upper() takes no arguments (%d given)", len(args))
			}
			return NewString(strings.ToUpper(s.value)), nil
		}), true
	case "lower":
		return NewBuiltin("string.lower", func(ctx context.Context, args ...Object) (Object, error) {
			if len(args) != 0 {
				return nil, newArgsErrorf("args error: string.lower() takes no arguments (%d given)", len(args))
			}
			return NewString(strings.ToLower(s.value)), nil
		}), true
	case "contains":
		return NewBuiltin("string.contains", func(ctx context.Context, args ...Object) (Object, error) {
			if len(args) != 1 {
				return nil, newArgsErrorf("args error: string.contains() takes exactly 1 argument (%d given)", len(args))
			}
			sub, err := AsString(args[0])
			if err != nil {
				return nil, err
			}
			return NewBool(strings.Contains(s.value, sub)), nil
		}), true
	}
	return nil, false
}

func (s *String) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch opType {
	case op.Add:
		switch right := right.(type) {
		case *String:
			return NewString(s.value + right.value), nil
		default:
			// String concatenation stringifies the right operand, which
			// matches how scripts build print messages.
			return NewString(s.value + fmt.Sprintf("%v", PrintableValue(right))), nil
		}
	case op.Multiply:
		count, ok := right.(*Int)
		if !ok {
			return nil, newTypeErrorf("unsupported operation for string: * on type %s", right.Type())
		}
		if count.value < 0 {
			return nil, newEvalErrorf("eval error: negative string repeat count")
		}
		return NewString(strings.Repeat(s.value, int(count.value))), nil
	default:
		return nil, newTypeErrorf("unsupported operation for string: %v", opType)
	}
}

func (s *String) GetItem(key Object) (Object, *Error) {
	index, ok := key.(*Int)
	if !ok {
		return nil, TypeErrorf("string index must be an int (got %s)", key.Type())
	}
	runes := []rune(s.value)
	idx, err := resolveIndex(index.value, int64(len(runes)))
	if err != nil {
		return nil, err
	}
	return NewString(string(runes[idx])), nil
}

func (s *String) SetItem(key, value Object) *Error {
	return TypeErrorf("strings are immutable")
}

func (s *String) Contains(item Object) *Bool {
	sub, ok := item.(*String)
	if !ok {
		return False
	}
	return NewBool(strings.Contains(s.value, sub.value))
}

func (s *String) Len() *Int {
	return NewInt(int64(len([]rune(s.value))))
}

func NewString(value string) *String {
	return &String{value: value}
}

// resolveIndex converts a possibly-negative index to an absolute offset,
// returning an error if it falls outside [0, size).
func resolveIndex(idx, size int64) (int64, *Error) {
	original := idx
	if idx < 0 {
		idx = size + idx
	}
	if idx < 0 || idx >= size {
		return 0, EvalErrorf("eval error: index out of range: %d (size %d)", original, size)
	}
	return idx, nil
}
