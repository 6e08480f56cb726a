package object

import (
	"context"
	"strings"

	"github.com/tcc-lang/tcc/op"
)

// List is an ordered, mutable sequence of objects.
type List struct {
	base
	items []Object
}

func (ls *List) Type() Type {
	return LIST
}

func (ls *List) Inspect() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, item := range ls.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.Inspect())
	}
	sb.WriteString("]")
	return sb.String()
}

func (ls *List) String() string {
	return ls.Inspect()
}

func (ls *List) Value() []Object {
	return ls.items
}

func (ls *List) Interface() interface{} {
	items := make([]interface{}, 0, len(ls.items))
	for _, item := range ls.items {
		items = append(items, item.Interface())
	}
	return items
}

func (ls *List) Equals(other Object) bool {
	otherList, ok := other.(*List)
	if !ok {
		return false
	}
	if len(ls.items) != len(otherList.items) {
		return false
	}
	for i, item := range ls.items {
		if !item.Equals(otherList.items[i]) {
			return false
		}
	}
	return true
}

func (ls *List) IsTruthy() bool {
	return len(ls.items) > 0
}

func (ls *List) GetAttr(name string) (Object, bool) {
	switch name {
	case "append":
		return NewBuiltin("list.append", func(ctx context.Context, args ...Object) (Object, error) {
			if len(args) != 1 {
				return nil, newArgsErrorf("args error: list.append() takes exactly 1 argument (%d given)", len(args))
			}
			ls.Append(args[0])
			return ls, nil
		}), true
	}
	return nil, false
}

func (ls *List) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch opType {
	case op.Add:
		otherList, ok := right.(*List)
		if !ok {
			return nil, newTypeErrorf("unsupported operation for list: + on type %s", right.Type())
		}
		combined := make([]Object, 0, len(ls.items)+len(otherList.items))
		combined = append(combined, ls.items...)
		combined = append(combined, otherList.items...)
		return NewList(combined), nil
	default:
		return nil, newTypeErrorf("unsupported operation for list: %v", opType)
	}
}

func (ls *List) GetItem(key Object) (Object, *Error) {
	index, ok := key.(*Int)
	if !ok {
		return nil, TypeErrorf("list index must be an int (got %s)", key.Type())
	}
	idx, err := resolveIndex(index.value, int64(len(ls.items)))
	if err != nil {
		return nil, err
	}
	return ls.items[idx], nil
}

func (ls *List) SetItem(key, value Object) *Error {
	index, ok := key.(*Int)
	if !ok {
		return TypeErrorf("list index must be an int (got %s)", key.Type())
	}
	idx, err := resolveIndex(index.value, int64(len(ls.items)))
	if err != nil {
		return err
	}
	ls.items[idx] = value
	return nil
}

func (ls *List) Contains(item Object) *Bool {
	for _, value := range ls.items {
		if item.Equals(value) {
			return True
		}
	}
	return False
}

func (ls *List) Len() *Int {
	return NewInt(int64(len(ls.items)))
}

func (ls *List) Append(obj Object) {
	ls.items = append(ls.items, obj)
}

func NewList(items []Object) *List {
	return &List{items: items}
}

// NewFloatList builds a list object from a slice of float64 values.
func NewFloatList(values []float64) *List {
	items := make([]Object, 0, len(values))
	for _, v := range values {
		items = append(items, NewFloat(v))
	}
	return &List{items: items}
}
