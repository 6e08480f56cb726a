// Package object provides the standard set of tcc object types.
//
// For external users of tcc, often an object.Object interface
// will be type asserted to a specific object type, such as *object.Float.
//
// For example:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// do something with obj.Value()
//	case *object.Float:
//		// do something with obj.Value()
//	}
//
// The Type() method of each object may also be used to get a string
// name of the object type, such as "string" or "float".
package object

import (
	"context"
	"fmt"
	"sort"

	"github.com/tcc-lang/tcc/op"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL     Type = "bool"
	BUILTIN  Type = "builtin"
	ERROR    Type = "error"
	FLOAT    Type = "float"
	FUNCTION Type = "function"
	INT      Type = "int"
	LIST     Type = "list"
	MODULE   Type = "module"
	NIL      Type = "nil"
	STRING   Type = "string"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all object types in tcc must implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Equals returns true if the given object is equal to this object.
	Equals(other Object) bool

	// GetAttr returns the attribute with the given name from this object.
	GetAttr(name string) (Object, bool)

	// SetAttr sets the attribute with the given name on this object.
	SetAttr(name string, value Object) error

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool

	// RunOperation runs an operation on this object with the given
	// right-hand side object.
	RunOperation(opType op.BinaryOpType, right Object) (Object, error)
}

// Callable is an interface for objects that can be invoked as functions.
type Callable interface {
	// Call invokes the callable with the given arguments and returns the result.
	Call(ctx context.Context, args ...Object) (Object, error)
}

// Comparable is an interface used to compare two objects.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

// Container is an interface for objects that hold items addressable by key.
type Container interface {
	// GetItem implements the [key] operator for a container type.
	GetItem(key Object) (Object, *Error)

	// SetItem implements the [key] = value operator for a container type.
	SetItem(key, value Object) *Error

	// Contains returns true if the given item is found in this container.
	Contains(item Object) *Bool

	// Len returns the number of items in this container.
	Len() *Int
}

func CompareTypes(a, b Object) int {
	aType := a.Type()
	bType := b.Type()
	if aType != bType {
		if aType < bType {
			return -1
		}
		return 1
	}
	return 0
}

// Keys returns the keys of an object map as a sorted slice of strings.
func Keys(m map[string]Object) []string {
	var names []string
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PrintableValue returns a value that should be used when printing an object.
func PrintableValue(obj Object) interface{} {
	switch obj := obj.(type) {
	// Primitive types have their underlying Go value passed to fmt.Printf
	// so that Go's Printf-style formatting directives work as expected.
	case *String, *Int, *Float, *Error, *Bool:
		return obj.Interface()
	}
	switch obj := obj.(type) {
	case fmt.Stringer:
		return obj.String()
	default:
		return obj.Inspect()
	}
}
