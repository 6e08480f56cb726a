package object

import (
	"github.com/tcc-lang/tcc/op"
)

// BinaryOp applies a binary operator to the two given operands, returning the
// resulting object. Logical and/or are truthiness-based and work on any
// operand types; other operators delegate to the left operand.
func BinaryOp(opType op.BinaryOpType, a, b Object) (Object, error) {
	switch opType {
	case op.And:
		if !a.IsTruthy() {
			return a, nil
		}
		return b, nil
	case op.Or:
		if a.IsTruthy() {
			return a, nil
		}
		return b, nil
	}
	return a.RunOperation(opType, b)
}

// Compare applies a comparison operator to the two given operands. Equality
// is defined for all object types while ordering requires both operands to
// be Comparable.
func Compare(opType op.CompareOpType, a, b Object) (Object, error) {
	switch opType {
	case op.Equal:
		return NewBool(a.Equals(b)), nil
	case op.NotEqual:
		return NewBool(!a.Equals(b)), nil
	}
	comparable, ok := a.(Comparable)
	if !ok {
		return nil, newTypeErrorf("expected a comparable object (got %s)", a.Type())
	}
	value, err := comparable.Compare(b)
	if err != nil {
		return nil, err
	}
	switch opType {
	case op.LessThan:
		return NewBool(value < 0), nil
	case op.LessThanOrEqual:
		return NewBool(value <= 0), nil
	case op.GreaterThan:
		return NewBool(value > 0), nil
	case op.GreaterThanOrEqual:
		return NewBool(value >= 0), nil
	default:
		return nil, newEvalErrorf("unknown comparison operator: %d", opType)
	}
}
