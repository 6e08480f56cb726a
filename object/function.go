package object

import (
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/compiler"
	"github.com/tcc-lang/tcc/op"
)

// Function is a script-defined function, wrapping compiled bytecode. The VM
// knows how to activate the underlying code when a Function is called.
type Function struct {
	base
	fn *compiler.Function
}

func (f *Function) Type() Type {
	return FUNCTION
}

func (f *Function) Inspect() string {
	var sb strings.Builder
	sb.WriteString("func")
	if name := f.fn.Name(); name != "" {
		sb.WriteString(" " + name)
	}
	sb.WriteString("(")
	sb.WriteString(strings.Join(f.fn.Parameters(), ", "))
	sb.WriteString(")")
	return sb.String()
}

func (f *Function) String() string {
	return f.Inspect()
}

func (f *Function) Name() string {
	return f.fn.Name()
}

func (f *Function) Function() *compiler.Function {
	return f.fn
}

func (f *Function) Parameters() []string {
	return f.fn.Parameters()
}

func (f *Function) Code() *compiler.Code {
	return f.fn.Code()
}

func (f *Function) Interface() interface{} {
	return nil
}

func (f *Function) Equals(other Object) bool {
	return f == other
}

func (f *Function) GetAttr(name string) (Object, bool) {
	switch name {
	case "__name__":
		return NewString(f.fn.Name()), true
	}
	return nil, false
}

func (f *Function) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for function: %v", opType)
}

func NewFunction(fn *compiler.Function) *Function {
	if fn == nil {
		panic(fmt.Errorf("function is nil"))
	}
	return &Function{fn: fn}
}
