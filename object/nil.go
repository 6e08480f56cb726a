package object

import (
	"github.com/tcc-lang/tcc/op"
)

// NilType is the type of the singleton Nil object.
type NilType struct {
	base
}

func (n *NilType) Type() Type {
	return NIL
}

func (n *NilType) Inspect() string {
	return "nil"
}

func (n *NilType) String() string {
	return n.Inspect()
}

func (n *NilType) Interface() interface{} {
	return nil
}

func (n *NilType) Equals(other Object) bool {
	_, ok := other.(*NilType)
	return ok
}

func (n *NilType) IsTruthy() bool {
	return false
}

func (n *NilType) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for nil: %v", opType)
}
