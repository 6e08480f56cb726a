package object

import (
	"fmt"

	"github.com/tcc-lang/tcc/op"
)

// Module is a named collection of builtins, e.g. the math module. Scripts
// reach module members by attribute access: math.sqrt(2).
type Module struct {
	base
	name     string
	builtins map[string]Object
}

func (m *Module) Type() Type {
	return MODULE
}

func (m *Module) Inspect() string {
	return m.String()
}

func (m *Module) String() string {
	return fmt.Sprintf("module(%s)", m.name)
}

func (m *Module) Name() *String {
	return NewString(m.name)
}

func (m *Module) Interface() interface{} {
	return nil
}

func (m *Module) GetAttr(name string) (Object, bool) {
	if name == "__name__" {
		return NewString(m.name), true
	}
	obj, found := m.builtins[name]
	return obj, found
}

func (m *Module) SetAttr(name string, value Object) error {
	return newTypeErrorf("cannot modify module attributes")
}

// Names returns the sorted attribute names defined on the module.
func (m *Module) Names() []string {
	return Keys(m.builtins)
}

func (m *Module) Equals(other Object) bool {
	otherMod, ok := other.(*Module)
	if !ok {
		return false
	}
	return m.name == otherMod.name
}

func (m *Module) Compare(other Object) (int, error) {
	otherMod, ok := other.(*Module)
	if !ok {
		return 0, newTypeErrorf("unable to compare module and %s", other.Type())
	}
	if m.name == otherMod.name {
		return 0, nil
	}
	if m.name > otherMod.name {
		return 1, nil
	}
	return -1, nil
}

func (m *Module) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, newTypeErrorf("unsupported operation for module: %v", opType)
}

// NewBuiltinsModule creates a module whose attributes are the given objects.
func NewBuiltinsModule(name string, contents map[string]Object) *Module {
	builtins := make(map[string]Object, len(contents))
	for k, v := range contents {
		if b, ok := v.(*Builtin); ok {
			builtins[k] = NewBuiltin(fmt.Sprintf("%s.%s", name, b.name), b.fn)
		} else {
			builtins[k] = v
		}
	}
	return &Module{name: name, builtins: builtins}
}
