package vm

import (
	"github.com/tcc-lang/tcc/object"
)

const (
	// DefaultFrameLocals is the number of local variables that can be stored
	// directly in the frame's fixed storage array, avoiding heap allocation.
	DefaultFrameLocals = 8

	// MinExtendedLocalsCapacity is the minimum capacity allocated for
	// extended locals when heap allocation is needed.
	MinExtendedLocalsCapacity = 32
)

type frame struct {
	returnAddr     int
	returnSp       int
	localsCount    uint16
	fn             *object.Function
	code           *code
	storage        [DefaultFrameLocals]object.Object
	locals         []object.Object
	extendedLocals []object.Object
}

func (f *frame) ActivateCode(c *code) {
	f.code = c
	f.fn = nil
	f.returnAddr = 0
	f.localsCount = uint16(c.LocalsCount())

	// Decide where to store local variables. If the frame storage has enough
	// space, use that. Otherwise, reuse extendedLocals if large enough, or
	// allocate a new slice. After this, f.locals always points to the
	// correct storage.
	if f.localsCount > DefaultFrameLocals {
		if cap(f.extendedLocals) >= int(f.localsCount) {
			f.extendedLocals = f.extendedLocals[:f.localsCount]
			for i := range f.extendedLocals {
				f.extendedLocals[i] = nil
			}
		} else {
			allocSize := int(f.localsCount)
			if allocSize < MinExtendedLocalsCapacity {
				allocSize = MinExtendedLocalsCapacity
			}
			f.extendedLocals = make([]object.Object, f.localsCount, allocSize)
		}
		f.locals = f.extendedLocals
	} else {
		for i := uint16(0); i < f.localsCount; i++ {
			f.storage[i] = nil
		}
		f.extendedLocals = nil
		f.locals = f.storage[:f.localsCount]
	}
}

func (f *frame) ActivateFunction(fn *object.Function, c *code, returnAddr, returnSp int, localValues []object.Object) {
	f.ActivateCode(c)
	f.fn = fn
	// Save the instruction and stack pointers of the caller
	f.returnAddr = returnAddr
	f.returnSp = returnSp
	// Initialize any local variables that were provided
	copy(f.locals, localValues)
}

func (f *frame) Locals() []object.Object {
	return f.locals
}
