package object

import (
	"context"
	"fmt"

	"github.com/tcc-lang/tcc/op"
)

var _ Callable = (*Builtin)(nil)

// BuiltinFunction holds the type of a built-in function.
type BuiltinFunction func(ctx context.Context, args ...Object) (Object, error)

// Builtin wraps a Go function and implements the Object interface.
type Builtin struct {
	base

	// The function that this object wraps.
	fn BuiltinFunction

	// The name of the function.
	name string

	// The name of the module this function originates from (optional).
	moduleName string
}

func (b *Builtin) Type() Type {
	return BUILTIN
}

func (b *Builtin) Value() BuiltinFunction {
	return b.fn
}

func (b *Builtin) Interface() interface{} {
	return nil
}

func (b *Builtin) Call(ctx context.Context, args ...Object) (Object, error) {
	return b.fn(ctx, args...)
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.Key())
}

func (b *Builtin) String() string {
	return b.Inspect()
}

func (b *Builtin) Name() string {
	return b.name
}

// Key returns the fully-qualified name of the builtin, e.g. "math.sqrt".
func (b *Builtin) Key() string {
	if b.moduleName == "" {
		return b.name
	}
	return fmt.Sprintf("%s.%s", b.moduleName, b.name)
}

func (b *Builtin) Equals(other Object) bool {
	return b == other
}

func (b *Builtin) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for builtin: %v", opType)
}

// NewBuiltin returns a new Builtin with the given name. A name of the form
// "module.func" records the module portion for error messages.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	b := &Builtin{fn: fn, name: name}
	for i, ch := range name {
		if ch == '.' {
			b.moduleName = name[:i]
			b.name = name[i+1:]
			break
		}
	}
	return b
}
