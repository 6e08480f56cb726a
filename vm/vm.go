// Package vm provides a VirtualMachine that executes compiled script code.
package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tcc-lang/tcc/compiler"
	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/op"
)

const (
	MaxArgs       = 256
	MaxFrameDepth = 1024
	MaxStackDepth = 1024
	StopSignal    = -1

	// DefaultContextCheckInterval is the number of instructions between
	// deterministic checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1000
)

var ErrGlobalNotFound = errors.New("global not found")

type VirtualMachine struct {
	ip          int // instruction pointer
	sp          int // stack pointer
	fp          int // frame pointer
	halt        int32
	activeFrame *frame
	activeCode  *code
	main        *compiler.Code
	globals     map[string]object.Object
	loadedCode  map[*compiler.Code]*code
	running     bool
	runMutex    sync.Mutex
	tmp         [MaxArgs]object.Object
	stack       [MaxStackDepth]object.Object
	frames      [MaxFrameDepth]frame

	// contextCheckInterval is the number of instructions between
	// deterministic checks of ctx.Done(). A value of 0 disables the check.
	contextCheckInterval int
}

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithGlobals provides global variables to the machine by name. Values must
// already be objects, typically builtins and modules.
func WithGlobals(globals map[string]object.Object) Option {
	return func(vm *VirtualMachine) {
		for name, value := range globals {
			vm.globals[name] = value
		}
	}
}

// WithContextCheckInterval sets how often the VM checks ctx.Done() during
// execution, in number of instructions.
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}

// New creates a new Virtual Machine to run the given main code.
func New(main *compiler.Code, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		sp:                   -1,
		main:                 main,
		globals:              map[string]object.Object{},
		loadedCode:           map[*compiler.Code]*code{},
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(vm)
	}
	return vm
}

func (vm *VirtualMachine) start(ctx context.Context) error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	// Halt execution when the context is cancelled
	vm.halt = 0
	if doneChan := ctx.Done(); doneChan != nil {
		go func() {
			<-doneChan
			atomic.StoreInt32(&vm.halt, 1)
		}()
	}
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run the main code until completion. Successive calls continue from where
// the previous run left off, which supports REPL style incremental input
// where the main code is appended to between runs.
func (vm *VirtualMachine) Run(ctx context.Context) (err error) {
	// Set up some guarantees:
	// 1. It is an error to call Run on a VM that is already running
	// 2. The running flag will always be set to false when Run returns
	// 3. Any panics are translated to errors and the VM is stopped
	if err := vm.start(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		vm.stop()
	}()

	var codeObj *code
	if _, loaded := vm.loadedCode[vm.main]; loaded {
		// Refresh the wrapped main while preserving global values from the
		// previous run
		codeObj = vm.reloadCode(vm.main)
	} else {
		codeObj = vm.loadCode(vm.main)
	}

	// Load function constants ahead of time
	for i := 0; i < vm.main.ConstantsCount(); i++ {
		if fn, ok := vm.main.Constant(i).(*compiler.Function); ok {
			vm.loadCode(fn.Code())
		}
	}

	// Activate the entrypoint code in frame zero and run to completion
	vm.activateCode(0, vm.ip, codeObj)
	return vm.eval(ctx)
}

// Get a global variable by name.
func (vm *VirtualMachine) Get(name string) (object.Object, error) {
	c := vm.activeCode
	if c == nil {
		return nil, errors.New("no active code")
	}
	for i, globalName := range c.GlobalNames() {
		if globalName == name {
			return c.Globals[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrGlobalNotFound, name)
}

// TOS returns the top of stack object, if there is one.
func (vm *VirtualMachine) TOS() (object.Object, bool) {
	if vm.sp >= 0 {
		return vm.stack[vm.sp], true
	}
	return nil, false
}

// Evaluate the active code. The caller must initialize the instruction
// pointer, frame pointer, active code, and active frame before calling.
// Assuming this function returns without error, the result of the evaluation
// will be on the top of the stack.
func (vm *VirtualMachine) eval(ctx context.Context) error {
	var instructionCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()

	// Run to the end of the active code
	for vm.ip < len(vm.activeCode.Instructions) {

		if atomic.LoadInt32(&vm.halt) == 1 {
			return ctx.Err()
		}

		// Deterministic check of ctx.Done() every N instructions. This
		// guarantees responsiveness regardless of goroutine scheduling.
		if checkInterval > 0 && doneChan != nil {
			instructionCount++
			if instructionCount >= checkInterval {
				instructionCount = 0
				select {
				case <-doneChan:
					atomic.StoreInt32(&vm.halt, 1)
					return ctx.Err()
				default:
				}
			}
		}

		opcode := vm.activeCode.Instructions[vm.ip]

		// Advance the instruction pointer to the next instruction. Note that
		// this is done before we actually execute the current instruction, so
		// relative jump instructions will need to take this into account.
		vm.ip++

		switch opcode {
		case op.Nop:
		case op.Halt:
			return nil
		case op.LoadConst:
			vm.push(vm.activeCode.Constants[vm.fetch()])
		case op.LoadFast:
			vm.push(vm.activeFrame.Locals()[vm.fetch()])
		case op.LoadGlobal:
			vm.push(vm.activeCode.Globals[vm.fetch()])
		case op.LoadAttr:
			obj := vm.pop()
			name := vm.activeCode.Names[vm.fetch()]
			value, found := obj.GetAttr(name)
			if !found {
				return vm.typeError("attribute %q not found on %s object",
					name, obj.Type())
			}
			vm.push(value)
		case op.StoreFast:
			idx := vm.fetch()
			vm.activeFrame.Locals()[idx] = vm.pop()
		case op.StoreGlobal:
			idx := vm.fetch()
			vm.activeCode.Globals[idx] = vm.pop()
		case op.StoreAttr:
			name := vm.activeCode.Names[vm.fetch()]
			value := vm.pop()
			obj := vm.pop()
			if err := obj.SetAttr(name, value); err != nil {
				return vm.decorate(err)
			}
		case op.Nil:
			vm.push(object.Nil)
		case op.True:
			vm.push(object.True)
		case op.False:
			vm.push(object.False)
		case op.BinaryOp:
			opType := op.BinaryOpType(vm.fetch())
			b := vm.pop()
			a := vm.pop()
			result, err := object.BinaryOp(opType, a, b)
			if err != nil {
				return vm.decorate(err)
			}
			vm.push(result)
		case op.CompareOp:
			opType := op.CompareOpType(vm.fetch())
			b := vm.pop()
			a := vm.pop()
			result, err := object.Compare(opType, a, b)
			if err != nil {
				return vm.decorate(err)
			}
			vm.push(result)
		case op.UnaryNegative:
			obj := vm.pop()
			switch obj := obj.(type) {
			case *object.Int:
				vm.push(object.NewInt(-obj.Value()))
			case *object.Float:
				vm.push(object.NewFloat(-obj.Value()))
			default:
				return vm.typeError("unsupported operand type for -: %s",
					obj.Type())
			}
		case op.UnaryNot:
			obj := vm.pop()
			vm.push(object.NewBool(!obj.IsTruthy()))
		case op.Call:
			argc := int(vm.fetch())
			for argIndex := argc - 1; argIndex >= 0; argIndex-- {
				vm.tmp[argIndex] = vm.pop()
			}
			obj := vm.pop()
			if err := vm.callObject(ctx, obj, vm.tmp[:argc]); err != nil {
				return err
			}
		case op.ReturnValue:
			returnAddr := vm.activeFrame.returnAddr
			if returnAddr == StopSignal {
				// The eval loop for this frame was entered via callFunction,
				// which restores the caller's frame itself
				return nil
			}
			vm.resumeFrame(vm.fp-1, returnAddr, vm.activeFrame.returnSp)
		case op.PopJumpForwardIfFalse:
			tos := vm.pop()
			delta := int(vm.fetch()) - 2
			if !tos.IsTruthy() {
				vm.ip += delta
			}
		case op.PopJumpForwardIfTrue:
			tos := vm.pop()
			delta := int(vm.fetch()) - 2
			if tos.IsTruthy() {
				vm.ip += delta
			}
		case op.JumpForward:
			base := vm.ip - 1
			delta := int(vm.fetch())
			vm.ip = base + delta
		case op.JumpBackward:
			base := vm.ip - 1
			delta := int(vm.fetch())
			vm.ip = base - delta
		case op.BuildList:
			count := int(vm.fetch())
			items := make([]object.Object, count)
			for i := count - 1; i >= 0; i-- {
				items[i] = vm.pop()
			}
			vm.push(object.NewList(items))
		case op.BinarySubscr:
			idx := vm.pop()
			obj := vm.pop()
			container, ok := obj.(object.Container)
			if !ok {
				return vm.typeError("object is not subscriptable (got %s)",
					obj.Type())
			}
			result, err := container.GetItem(idx)
			if err != nil {
				return vm.decorate(err.Value())
			}
			vm.push(result)
		case op.StoreSubscr:
			idx := vm.pop()
			obj := vm.pop()
			value := vm.pop()
			container, ok := obj.(object.Container)
			if !ok {
				return vm.typeError("object does not support item assignment (got %s)",
					obj.Type())
			}
			if err := container.SetItem(idx, value); err != nil {
				return vm.decorate(err.Value())
			}
		case op.Copy:
			offset := int(vm.fetch())
			vm.push(vm.stack[vm.sp-offset])
		case op.Swap:
			vm.swap(int(vm.fetch()))
		case op.PopTop:
			vm.pop()
		default:
			return vm.evalError("unknown opcode: %d", opcode)
		}
	}
	return nil
}

func (vm *VirtualMachine) pop() object.Object {
	obj := vm.stack[vm.sp]
	vm.stack[vm.sp] = nil
	vm.sp--
	return obj
}

func (vm *VirtualMachine) push(obj object.Object) {
	vm.sp++
	vm.stack[vm.sp] = obj
}

func (vm *VirtualMachine) swap(pos int) {
	otherIndex := vm.sp - pos
	tos := vm.stack[vm.sp]
	vm.stack[vm.sp] = vm.stack[otherIndex]
	vm.stack[otherIndex] = tos
}

// Fetch the operand for the current instruction and advance the instruction
// pointer past it.
func (vm *VirtualMachine) fetch() uint16 {
	ip := vm.ip
	vm.ip++
	return uint16(vm.activeCode.Instructions[ip])
}

// Call a compiled function with the given arguments. This is used internally
// for all script function calls.
func (vm *VirtualMachine) callFunction(
	ctx context.Context,
	fn *object.Function,
	args []object.Object,
) (result object.Object, resultErr error) {
	paramsCount := len(fn.Parameters())
	argc := len(args)
	if argc > MaxArgs {
		return nil, vm.evalError("max args limit of %d exceeded (got %d)",
			MaxArgs, argc)
	}
	if err := checkCallArgs(fn, argc); err != nil {
		return nil, err
	}
	if vm.fp+1 >= MaxFrameDepth {
		return nil, vm.evalError("max frame depth of %d exceeded", MaxFrameDepth)
	}

	baseFP := vm.fp
	baseIP := vm.ip
	baseSP := vm.sp

	// Restore the previous frame when done
	defer vm.resumeFrame(baseFP, baseIP, baseSP)

	// Assemble frame local variables in vm.tmp: parameters first, then the
	// function's own name when the function is named (supports recursion).
	copy(vm.tmp[:argc], args)
	localCount := paramsCount
	code := fn.Code()
	if code.IsNamed() {
		vm.tmp[localCount] = fn
		localCount++
	}

	// Activate a frame for the function call
	vm.activateFunction(vm.fp+1, 0, fn, vm.tmp[:localCount])

	// Setting StopSignal as the return address will cause the eval function
	// to stop execution when it reaches the end of the active code.
	vm.activeFrame.returnAddr = StopSignal

	// Evaluate the function code then return the result from TOS
	if err := vm.eval(ctx); err != nil {
		return nil, err
	}
	return vm.pop(), nil
}

// Call a callable object with the given arguments. Returns an error if the
// object is not callable. If this call succeeds, the result of the call will
// have been pushed onto the stack.
func (vm *VirtualMachine) callObject(
	ctx context.Context,
	fn object.Object,
	args []object.Object,
) error {
	switch fn := fn.(type) {
	case *object.Function:
		result, err := vm.callFunction(ctx, fn, args)
		if err != nil {
			return err
		}
		vm.push(result)
		return nil
	case object.Callable:
		result, err := fn.Call(ctx, args...)
		if err != nil {
			return vm.decorate(err)
		}
		vm.push(result)
		return nil
	default:
		return vm.typeError("object is not callable (got %s)", fn.Type())
	}
}

// Resume the frame at the given frame pointer, restoring the given IP and SP.
func (vm *VirtualMachine) resumeFrame(fp, ip, sp int) *frame {
	// The return value of the previous frame is on the top of the stack
	var frameResult object.Object
	if vm.sp > sp {
		frameResult = vm.pop()
	}
	// Remove any items left on the stack by the previous frame
	for i := vm.sp; i > sp; i-- {
		vm.stack[i] = nil
	}
	vm.sp = sp
	if frameResult != nil {
		vm.push(frameResult)
	}
	vm.fp = fp
	vm.ip = ip
	vm.activeFrame = &vm.frames[fp]
	vm.activeCode = vm.activeFrame.code
	return vm.activeFrame
}

// Activate a frame with the given code. This is used to begin running the
// entrypoint for a script.
func (vm *VirtualMachine) activateCode(fp, ip int, c *code) *frame {
	vm.fp = fp
	vm.ip = ip
	vm.activeFrame = &vm.frames[fp]
	vm.activeFrame.ActivateCode(c)
	vm.activeCode = c
	return vm.activeFrame
}

// Activate a frame with the given function, to implement a function call.
func (vm *VirtualMachine) activateFunction(fp, ip int, fn *object.Function, locals []object.Object) *frame {
	c := vm.loadCode(fn.Code())
	returnAddr := vm.ip
	returnSp := vm.sp
	vm.fp = fp
	vm.ip = ip
	vm.activeFrame = &vm.frames[fp]
	vm.activeFrame.ActivateFunction(fn, c, returnAddr, returnSp, locals)
	vm.activeCode = c
	return vm.activeFrame
}

// Wrap the *compiler.Code in a *vm.code object to make it usable by the VM.
func (vm *VirtualMachine) loadCode(cc *compiler.Code) *code {
	if c, ok := vm.loadedCode[cc]; ok {
		return c
	}
	// The root (entrypoint) code owns the globals array, while children
	// reuse the globals from the root.
	var c *code
	rootCompiled := cc.Root()
	if rootCompiled == cc {
		c = loadRootCode(cc, vm.globals)
	} else {
		c = loadChildCode(vm.loadedCode[rootCompiled], cc)
	}
	vm.loadedCode[cc] = c
	return c
}

// Reloads the main code while preserving global variables. This happens as
// part of a typical REPL workflow, where the main code is appended to with
// each new input.
func (vm *VirtualMachine) reloadCode(main *compiler.Code) *code {
	oldWrappedMain, ok := vm.loadedCode[main]
	if !ok {
		panic("main code not loaded")
	}
	delete(vm.loadedCode, main)
	newWrappedMain := vm.loadCode(main)
	copy(newWrappedMain.Globals, oldWrappedMain.Globals)
	return newWrappedMain
}

func (vm *VirtualMachine) getCurrentLocation() compiler.SourceLocation {
	if vm.activeCode == nil {
		return compiler.SourceLocation{}
	}
	return vm.activeCode.LocationAt(vm.ip - 1)
}

// decorate adds source location context to a runtime error.
func (vm *VirtualMachine) decorate(err error) error {
	loc := vm.getCurrentLocation()
	if loc.Line == 0 {
		return err
	}
	if loc.Filename != "" {
		return fmt.Errorf("%w (%s:%d)", err, loc.Filename, loc.Line)
	}
	return fmt.Errorf("%w (line %d)", err, loc.Line)
}

func (vm *VirtualMachine) typeError(format string, args ...any) error {
	return vm.decorate(object.NewTypeError(format, args...))
}

func (vm *VirtualMachine) evalError(format string, args ...any) error {
	return vm.decorate(object.NewEvalError(format, args...))
}
