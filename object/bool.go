package object

import (
	"strconv"

	"github.com/tcc-lang/tcc/op"
)

// Bool wraps bool and implements the Object interface.
type Bool struct {
	base
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Inspect() string {
	return strconv.FormatBool(b.value)
}

func (b *Bool) String() string {
	return b.Inspect()
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) Compare(other Object) (int, error) {
	otherBool, ok := other.(*Bool)
	if !ok {
		return 0, newTypeErrorf("unable to compare bool and %s", other.Type())
	}
	if b.value == otherBool.value {
		return 0, nil
	}
	if b.value {
		return 1, nil
	}
	return -1, nil
}

func (b *Bool) Equals(other Object) bool {
	otherBool, ok := other.(*Bool)
	if !ok {
		return false
	}
	return b.value == otherBool.value
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

func (b *Bool) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for bool: %v", opType)
}

func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}
