package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/ast"
	"github.com/tcc-lang/tcc/op"
	"github.com/tcc-lang/tcc/parser"
)

func compileSource(t *testing.T, input string, globals ...string) *Code {
	t.Helper()
	program, err := parser.Parse(context.Background(), input)
	require.Nil(t, err)
	code, err := Compile(program, WithGlobalNames(globals))
	require.Nil(t, err)
	return code
}

func compileError(t *testing.T, input string, globals ...string) error {
	t.Helper()
	program, err := parser.Parse(context.Background(), input)
	require.Nil(t, err)
	_, err = Compile(program, WithGlobalNames(globals))
	require.NotNil(t, err)
	return err
}

// opcodes walks the instruction stream and returns the opcodes with any
// operands stripped.
func opcodes(code *Code) []op.Code {
	var ops []op.Code
	for i := 0; i < code.InstructionCount(); {
		opcode := code.Instruction(i)
		ops = append(ops, opcode)
		i += 1 + op.GetInfo(opcode).OperandCount
	}
	return ops
}

func TestNilNode(t *testing.T) {
	c, err := New()
	require.Nil(t, err)
	code, err := c.Compile(&ast.Nil{})
	require.Nil(t, err)
	require.Equal(t, 1, code.InstructionCount())
	require.Equal(t, op.Nil, code.Instruction(0))
}

func TestEmptyProgram(t *testing.T) {
	code := compileSource(t, "")
	require.Equal(t, []op.Code{op.Nil}, opcodes(code))
}

func TestArithmetic(t *testing.T) {
	code := compileSource(t, "1 + 2")
	require.Equal(t, []op.Code{op.LoadConst, op.LoadConst, op.BinaryOp}, opcodes(code))
	require.Equal(t, 2, code.ConstantsCount())
	require.Equal(t, int64(1), code.Constant(0))
	require.Equal(t, int64(2), code.Constant(1))
}

func TestVarAndIdent(t *testing.T) {
	code := compileSource(t, "var x = 1\nx")
	require.Equal(t, []op.Code{op.LoadConst, op.StoreGlobal, op.LoadGlobal}, opcodes(code))
	require.Contains(t, code.GlobalNames(), "x")
}

func TestCursorIsPredeclared(t *testing.T) {
	code := compileSource(t, "")
	require.Contains(t, code.GlobalNames(), CursorName)
}

func TestIntermediateExpressionsArePopped(t *testing.T) {
	code := compileSource(t, "1\n2\n3")
	require.Equal(t, []op.Code{
		op.LoadConst, op.PopTop,
		op.LoadConst, op.PopTop,
		op.LoadConst,
	}, opcodes(code))
}

func TestCompoundAssign(t *testing.T) {
	code := compileSource(t, "var x = 1\nx += 2")
	ops := opcodes(code)
	require.Contains(t, ops, op.BinaryOp)
	// Compound assignment loads the target, applies the operator, and
	// stores the result back.
	require.Equal(t, []op.Code{
		op.LoadConst, op.StoreGlobal,
		op.LoadGlobal, op.LoadConst, op.BinaryOp, op.StoreGlobal,
		op.Nil,
	}, ops)
}

func TestWhileLoop(t *testing.T) {
	code := compileSource(t, "var i = 0\nwhile i < 3 { i = i + 1 }")
	ops := opcodes(code)
	require.Contains(t, ops, op.CompareOp)
	require.Contains(t, ops, op.PopJumpForwardIfFalse)
	require.Contains(t, ops, op.JumpBackward)
}

func TestIfElse(t *testing.T) {
	code := compileSource(t, "if true { 1 } else { 2 }")
	ops := opcodes(code)
	require.Contains(t, ops, op.True)
	require.Contains(t, ops, op.PopJumpForwardIfFalse)
	require.Contains(t, ops, op.JumpForward)
}

func TestShortCircuitOperators(t *testing.T) {
	code := compileSource(t, "true && false")
	require.Contains(t, opcodes(code), op.PopJumpForwardIfFalse)

	code = compileSource(t, "false || true")
	require.Contains(t, opcodes(code), op.PopJumpForwardIfTrue)
}

func TestListLiteral(t *testing.T) {
	code := compileSource(t, "[1, 2, 3]")
	require.Equal(t, []op.Code{
		op.LoadConst, op.LoadConst, op.LoadConst, op.BuildList,
	}, opcodes(code))
}

func TestIndexing(t *testing.T) {
	code := compileSource(t, "var xs = [1, 2]\nxs[0]")
	require.Contains(t, opcodes(code), op.BinarySubscr)

	code = compileSource(t, "var xs = [1, 2]\nxs[0] = 3")
	require.Contains(t, opcodes(code), op.StoreSubscr)
}

func TestFunctionConstant(t *testing.T) {
	code := compileSource(t, "func add(a, b) { return a + b }")
	var fn *Function
	for i := 0; i < code.ConstantsCount(); i++ {
		if f, ok := code.Constant(i).(*Function); ok {
			fn = f
		}
	}
	require.NotNil(t, fn)
	require.Equal(t, "add", fn.Name())
	require.Equal(t, []string{"a", "b"}, fn.Parameters())
	require.Contains(t, opcodes(fn.Code()), op.ReturnValue)
}

func TestFunctionHoisting(t *testing.T) {
	// Functions may be called before their declaration appears.
	code := compileSource(t, "var y = add(1, 2)\nfunc add(a, b) { return a + b }")
	require.Contains(t, code.GlobalNames(), "add")
}

func TestFunctionRedeclared(t *testing.T) {
	err := compileError(t, "func f() { return 1 }\nfunc f() { return 2 }")
	require.Contains(t, err.Error(), `function "f" redeclared`)
}

func TestRecursiveFunction(t *testing.T) {
	code := compileSource(t, "func fib(n) { if n < 2 { return n } return fib(n-1) + fib(n-2) }")
	require.Contains(t, code.GlobalNames(), "fib")
}

func TestUndefinedVariable(t *testing.T) {
	err := compileError(t, "foo")
	require.Contains(t, err.Error(), `compile error: undefined variable "foo"`)

	err = compileError(t, "x = 1")
	require.Contains(t, err.Error(), `compile error: undefined variable "x"`)
}

func TestAssignToFunction(t *testing.T) {
	err := compileError(t, "func f() { return 1 }\nf = 2")
	require.Contains(t, err.Error(), `cannot assign to constant "f"`)
}

func TestNestedFunctionCapture(t *testing.T) {
	err := compileError(t, "func outer() { var a = 1\nfunc inner() { return a }\nreturn inner }")
	require.Contains(t, err.Error(), `cannot reference "a" from a nested function`)
}

func TestBreakOutsideLoop(t *testing.T) {
	err := compileError(t, "break")
	require.Contains(t, err.Error(), "invalid break statement outside of a loop")

	err = compileError(t, "continue")
	require.Contains(t, err.Error(), "invalid continue statement outside of a loop")
}

func TestUnknownCommand(t *testing.T) {
	err := compileError(t, "create3d cube at 0, 0, 0")
	require.Contains(t, err.Error(), `unknown command "create3d"`)
}

func TestCommandStoresCursor(t *testing.T) {
	code := compileSource(t, "create3d cube at 0, 0, 0", "create3d")
	ops := opcodes(code)
	// The created object is stored in the last3d cursor rather than
	// popped.
	require.Contains(t, ops, op.StoreGlobal)
	require.NotContains(t, ops, op.PopTop)
}

func TestCommandPopsResult(t *testing.T) {
	code := compileSource(t, "scale3d last3d to 2, 2, 2", "scale3d")
	require.Contains(t, opcodes(code), op.PopTop)
}

func TestNpcCommandBindsName(t *testing.T) {
	code := compileSource(t, `npc "Guard" at 5, 0, 5`, "npc")
	// The declared NPC is stored in a global named after it, lowercased.
	require.Contains(t, code.GlobalNames(), "guard")
	ops := opcodes(code)
	require.Contains(t, ops, op.StoreGlobal)
	require.NotContains(t, ops, op.PopTop)
}

func TestNpcCommandBindingConflict(t *testing.T) {
	err := compileError(t, "func guard() { return 1 }\nnpc \"Guard\" at 0, 0, 0", "npc")
	require.Contains(t, err.Error(), `cannot assign to constant "guard"`)
}

func TestCommandCallShape(t *testing.T) {
	code := compileSource(t, `create3d cube at 1, 2, 3 size 2 color "#ff0000"`, "create3d")
	// The command lowers to a call of the create3d builtin with six
	// arguments: kind, x, y, z, size, color.
	var call bool
	for i := 0; i < code.InstructionCount(); {
		opcode := code.Instruction(i)
		if opcode == op.Call {
			call = true
			require.Equal(t, op.Code(6), code.Instruction(i+1))
		}
		i += 1 + op.GetInfo(opcode).OperandCount
	}
	require.True(t, call)
}

func TestWithFilenameInErrors(t *testing.T) {
	program, err := parser.Parse(context.Background(), "foo")
	require.Nil(t, err)
	_, err = Compile(program, WithFilename("demo.tcc"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), `undefined variable "foo"`)
}

func TestIncrementalCompile(t *testing.T) {
	// A single compiler accumulates instructions across calls, which the
	// REPL relies on to extend a running program.
	c, err := New()
	require.Nil(t, err)

	program, err := parser.Parse(context.Background(), "var x = 1")
	require.Nil(t, err)
	code, err := c.Compile(program)
	require.Nil(t, err)
	count := code.InstructionCount()

	program, err = parser.Parse(context.Background(), "x + 1")
	require.Nil(t, err)
	code2, err := c.Compile(program)
	require.Nil(t, err)
	require.Same(t, code, code2)
	require.Greater(t, code.InstructionCount(), count)
}

func TestGlobalNamesOption(t *testing.T) {
	code := compileSource(t, "print(1)", "print")
	names := code.GlobalNames()
	require.Contains(t, names, "print")
	require.Equal(t, []op.Code{
		op.LoadGlobal, op.LoadConst, op.Call,
	}, opcodes(code))
}
