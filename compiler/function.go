package compiler

import (
	"fmt"
	"strings"
)

// Function holds a compiled script function: its name, parameter list, and
// the bytecode for its body. Function values appear in the constants of the
// enclosing code and are wrapped into objects by the VM.
type Function struct {
	id         string
	name       string
	parameters []string
	code       *Code
}

// FunctionOpts configures a new Function.
type FunctionOpts struct {
	ID         string
	Name       string
	Parameters []string
	Code       *Code
}

// NewFunction creates a Function from compiled code.
func NewFunction(opts FunctionOpts) *Function {
	return &Function{
		id:         opts.ID,
		name:       opts.Name,
		parameters: opts.Parameters,
		code:       opts.Code,
	}
}

func (f *Function) ID() string {
	return f.id
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Parameters() []string {
	return f.parameters
}

func (f *Function) Code() *Code {
	return f.code
}

func (f *Function) LocalsCount() int {
	return f.code.LocalsCount()
}

func (f *Function) String() string {
	name := f.name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("func %s(%s)", name, strings.Join(f.parameters, ", "))
}
