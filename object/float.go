package object

import (
	"math"
	"strconv"

	"github.com/tcc-lang/tcc/op"
)

// Float wraps float64 and implements the Object interface.
type Float struct {
	base
	value float64
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

func (f *Float) String() string {
	return f.Inspect()
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Interface() interface{} {
	return f.value
}

func (f *Float) Compare(other Object) (int, error) {
	switch other := other.(type) {
	case *Float:
		if f.value == other.value {
			return 0, nil
		}
		if f.value > other.value {
			return 1, nil
		}
		return -1, nil
	case *Int:
		otherFloat := float64(other.value)
		if f.value == otherFloat {
			return 0, nil
		}
		if f.value > otherFloat {
			return 1, nil
		}
		return -1, nil
	default:
		return 0, newTypeErrorf("unable to compare float and %s", other.Type())
	}
}

func (f *Float) Equals(other Object) bool {
	switch other := other.(type) {
	case *Int:
		return f.value == float64(other.value)
	case *Float:
		return f.value == other.value
	}
	return false
}

func (f *Float) IsTruthy() bool {
	return f.value != 0.0
}

func (f *Float) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch right := right.(type) {
	case *Int:
		return f.runOperationFloat(opType, float64(right.value))
	case *Float:
		return f.runOperationFloat(opType, right.value)
	default:
		return nil, newTypeErrorf("unsupported operation for float: %v on type %s",
			opType, right.Type())
	}
}

func (f *Float) runOperationFloat(opType op.BinaryOpType, right float64) (Object, error) {
	switch opType {
	case op.Add:
		return NewFloat(f.value + right), nil
	case op.Subtract:
		return NewFloat(f.value - right), nil
	case op.Multiply:
		return NewFloat(f.value * right), nil
	case op.Divide:
		if right == 0 {
			return nil, newEvalErrorf("eval error: division by zero")
		}
		return NewFloat(f.value / right), nil
	case op.Modulo:
		if right == 0 {
			return nil, newEvalErrorf("eval error: modulo by zero")
		}
		return NewFloat(math.Mod(f.value, right)), nil
	case op.Power:
		return NewFloat(math.Pow(f.value, right)), nil
	default:
		return nil, newTypeErrorf("unsupported operation for float: %v", opType)
	}
}

func NewFloat(value float64) *Float {
	return &Float{value: value}
}
