// Package compiler translates a parsed syntax tree into bytecode for the
// tcc virtual machine.
package compiler

import (
	"fmt"
	"math"

	"github.com/tcc-lang/tcc/ast"
	"github.com/tcc-lang/tcc/internal/token"
	"github.com/tcc-lang/tcc/op"
)

const (
	// MaxArgs is the maximum number of arguments a function call may have.
	MaxArgs = 255

	// Placeholder is a stand-in operand emitted for jump instructions whose
	// target is patched after the jump destination is known.
	Placeholder = uint16(math.MaxUint16)

	// CursorName is the global holding the most recently created 3D object.
	CursorName = "last3d"
)

// Compiler translates an AST into bytecode. A Compiler should be used for a
// single compilation and then discarded.
type Compiler struct {
	// The entrypoint code that we are compiling. This remains fixed
	// throughout the compilation process.
	main *Code

	// The current code that we are compiling into. This changes as we
	// enter and leave function bodies.
	current *Code

	// The AST node currently being compiled, used for error locations.
	currentNode ast.Node

	// Set when an error occurs deep in the compiler where no error return
	// is available.
	failure error

	filename  string
	source    string
	funcIndex int
}

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithFilename sets the filename recorded in source locations.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// WithGlobalNames declares the given names as globals available to the
// compiled code, typically the names of the registered builtins.
func WithGlobalNames(names []string) Option {
	return func(c *Compiler) {
		for _, name := range names {
			if _, found := c.main.symbols.Get(name); found {
				continue
			}
			if _, err := c.main.symbols.InsertVariable(name); err != nil {
				c.failure = err
				return
			}
		}
	}
}

// WithSource attaches the source text for use in error messages.
func WithSource(source string) Option {
	return func(c *Compiler) {
		c.source = source
		c.main.source = source
	}
}

// New returns a Compiler configured with the given options.
func New(opts ...Option) (*Compiler, error) {
	main := &Code{
		id:      "main",
		name:    "main",
		symbols: NewSymbolTable(),
	}
	c := &Compiler{main: main, current: main}
	// The cursor global exists in every script, whether or not any
	// create-style command runs.
	if _, err := main.symbols.InsertVariable(CursorName); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.failure != nil {
		return nil, c.failure
	}
	main.filename = c.filename
	return c, nil
}

// Compile compiles the given AST and returns the resulting bytecode.
func Compile(node ast.Node, opts ...Option) (*Code, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Compile(node)
}

// Compile the given AST node and return the compiled code.
func (c *Compiler) Compile(node ast.Node) (*Code, error) {
	if program, ok := node.(*ast.Program); ok {
		if err := c.collectFunctionDeclarations(program); err != nil {
			return nil, err
		}
	}
	if err := c.compile(node); err != nil {
		return nil, err
	}
	if c.failure != nil {
		return nil, c.failure
	}
	return c.main, nil
}

// collectFunctionDeclarations registers the names of top-level function
// declarations before compilation, so that scripts may call functions that
// are defined later in the file.
func (c *Compiler) collectFunctionDeclarations(program *ast.Program) error {
	for _, stmt := range program.Stmts {
		fn, ok := stmt.(*ast.Func)
		if !ok || fn.Name == nil {
			continue
		}
		name := fn.Name.Name
		if _, found := c.main.symbols.Get(name); found {
			return c.formatError(fmt.Sprintf("function %q redeclared", name), fn.Pos())
		}
		if _, err := c.main.symbols.InsertConstant(name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compile(node ast.Node) error {
	previousNode := c.currentNode
	c.currentNode = node
	defer func() {
		c.currentNode = previousNode
	}()
	switch node := node.(type) {
	case *ast.Program:
		return c.compileProgram(node)
	case *ast.Block:
		return c.compileBlock(node)
	case *ast.Var:
		return c.compileVar(node)
	case *ast.Assign:
		return c.compileAssign(node)
	case *ast.SetAttr:
		return c.compileSetAttr(node)
	case *ast.Return:
		return c.compileReturn(node)
	case *ast.While:
		return c.compileWhile(node)
	case *ast.Break:
		return c.compileBreak(node)
	case *ast.Continue:
		return c.compileContinue(node)
	case *ast.Command:
		return c.compileCommand(node)
	case *ast.If:
		return c.compileIf(node)
	case *ast.Func:
		return c.compileFunc(node)
	case *ast.Call:
		return c.compileCall(node)
	case *ast.ObjectCall:
		return c.compileObjectCall(node)
	case *ast.GetAttr:
		return c.compileGetAttr(node)
	case *ast.Index:
		return c.compileIndex(node)
	case *ast.List:
		return c.compileList(node)
	case *ast.Ident:
		return c.compileIdent(node)
	case *ast.Prefix:
		return c.compilePrefix(node)
	case *ast.Infix:
		return c.compileInfix(node)
	case *ast.Int:
		c.emit(op.LoadConst, c.constant(node.Value))
		return nil
	case *ast.Float:
		c.emit(op.LoadConst, c.constant(node.Value))
		return nil
	case *ast.String:
		c.emit(op.LoadConst, c.constant(node.Value))
		return nil
	case *ast.Bool:
		if node.Value {
			c.emit(op.True)
		} else {
			c.emit(op.False)
		}
		return nil
	case *ast.Nil:
		c.emit(op.Nil)
		return nil
	case *ast.BadStmt:
		return c.formatError("invalid statement", node.Pos())
	case *ast.BadExpr:
		return c.formatError("invalid expression", node.Pos())
	default:
		return fmt.Errorf("compile error: unknown ast node type: %T", node)
	}
}

func (c *Compiler) compileProgram(node *ast.Program) error {
	statements := node.Stmts
	count := len(statements)
	if count == 0 {
		// Guarantee that the program evaluates to a value
		c.emit(op.Nil)
	} else {
		for i, stmt := range statements {
			if err := c.compile(stmt); err != nil {
				return err
			}
			if i < count-1 {
				if isExpr(stmt) {
					c.emit(op.PopTop)
				}
			}
		}
		// Guarantee that the program evaluates to a value
		lastStatement := statements[count-1]
		if !isExpr(lastStatement) {
			c.emit(op.Nil)
		}
	}
	return nil
}

func (c *Compiler) compileBlock(node *ast.Block) error {
	code := c.current
	code.symbols = code.symbols.NewBlock()
	defer func() {
		code.symbols = code.symbols.parent
	}()
	statements := node.Stmts
	count := len(statements)
	if count == 0 {
		// Guarantee that the block evaluates to a value
		c.emit(op.Nil)
	} else {
		for i, stmt := range statements {
			if err := c.compile(stmt); err != nil {
				return err
			}
			if i < count-1 {
				if isExpr(stmt) {
					c.emit(op.PopTop)
				}
			}
		}
		// Guarantee that the block evaluates to a value
		lastStatement := statements[count-1]
		if !isExpr(lastStatement) {
			c.emit(op.Nil)
		}
	}
	return nil
}

func (c *Compiler) compileFunctionBlock(node *ast.Block) error {
	code := c.current
	code.symbols = code.symbols.NewBlock()
	defer func() {
		code.symbols = code.symbols.parent
	}()
	statements := normalizeFunctionBlock(node)
	count := len(statements)
	for i, stmt := range statements {
		if err := c.compile(stmt); err != nil {
			return err
		}
		if i < count-1 {
			if isExpr(stmt) {
				c.emit(op.PopTop)
			}
		}
	}
	return nil
}

func (c *Compiler) compileVar(node *ast.Var) error {
	name := node.Name.Name
	if err := c.compile(node.Value); err != nil {
		return err
	}
	sym, err := c.current.symbols.InsertVariable(name)
	if err != nil {
		return err
	}
	if c.current.parent == nil {
		c.emit(op.StoreGlobal, sym.Index())
	} else {
		c.emit(op.StoreFast, sym.Index())
	}
	return nil
}

func (c *Compiler) compileIdent(node *ast.Ident) error {
	name := node.Name
	resolution, found := c.current.symbols.Resolve(name)
	if !found {
		return c.formatError(fmt.Sprintf("undefined variable %q", name), node.Pos())
	}
	if resolution.scope == Free {
		return c.formatError(fmt.Sprintf(
			"cannot reference %q from a nested function", name), node.Pos())
	}
	c.emitLoad(resolution)
	return nil
}

func (c *Compiler) compileAssign(node *ast.Assign) error {
	if node.Index != nil {
		return c.compileSetItem(node)
	}
	name := node.Name.Name
	resolution, found := c.current.symbols.Resolve(name)
	if !found {
		return c.formatError(fmt.Sprintf("undefined variable %q", name), node.Pos())
	}
	if resolution.scope == Free {
		return c.formatError(fmt.Sprintf(
			"cannot assign to %q from a nested function", name), node.Pos())
	}
	if resolution.symbol.IsConstant() {
		return c.formatError(fmt.Sprintf("cannot assign to constant %q", name), node.Pos())
	}
	if node.Op == "=" {
		if err := c.compile(node.Value); err != nil {
			return err
		}
		c.emitStore(resolution)
		return nil
	}
	// Push LHS as TOS
	c.emitLoad(resolution)
	// Push RHS as TOS
	if err := c.compile(node.Value); err != nil {
		return err
	}
	// Result becomes TOS
	switch node.Op {
	case "+=":
		c.emit(op.BinaryOp, uint16(op.Add))
	case "-=":
		c.emit(op.BinaryOp, uint16(op.Subtract))
	case "*=":
		c.emit(op.BinaryOp, uint16(op.Multiply))
	case "/=":
		c.emit(op.BinaryOp, uint16(op.Divide))
	default:
		return fmt.Errorf("compile error: unsupported assignment operator: %s", node.Op)
	}
	// Store TOS in LHS
	c.emitStore(resolution)
	return nil
}

func (c *Compiler) compileSetItem(node *ast.Assign) error {
	index := node.Index
	// Compound operators load the current value first
	if node.Op != "=" {
		if err := c.compile(index.X); err != nil {
			return err
		}
		if err := c.compile(index.Index); err != nil {
			return err
		}
		c.emit(op.BinarySubscr)
		if err := c.compile(node.Value); err != nil {
			return err
		}
		switch node.Op {
		case "+=":
			c.emit(op.BinaryOp, uint16(op.Add))
		case "-=":
			c.emit(op.BinaryOp, uint16(op.Subtract))
		case "*=":
			c.emit(op.BinaryOp, uint16(op.Multiply))
		case "/=":
			c.emit(op.BinaryOp, uint16(op.Divide))
		default:
			return fmt.Errorf("compile error: unsupported compound assignment operator: %s", node.Op)
		}
	} else {
		if err := c.compile(node.Value); err != nil {
			return err
		}
	}
	if err := c.compile(index.X); err != nil {
		return err
	}
	if err := c.compile(index.Index); err != nil {
		return err
	}
	c.emit(op.StoreSubscr)
	return nil
}

func (c *Compiler) compileSetAttr(node *ast.SetAttr) error {
	idx := c.current.addName(node.Attr.Name)
	if err := c.compile(node.X); err != nil {
		return err
	}
	if node.Op == "=" {
		if err := c.compile(node.Value); err != nil {
			return err
		}
		c.emit(op.StoreAttr, idx)
		return nil
	}
	// Compound operator: duplicate the object, load the attribute, apply
	// the operation, store the result back.
	c.emit(op.Copy, 0)
	c.emit(op.LoadAttr, idx)
	if err := c.compile(node.Value); err != nil {
		return err
	}
	switch node.Op {
	case "+=":
		c.emit(op.BinaryOp, uint16(op.Add))
	case "-=":
		c.emit(op.BinaryOp, uint16(op.Subtract))
	case "*=":
		c.emit(op.BinaryOp, uint16(op.Multiply))
	case "/=":
		c.emit(op.BinaryOp, uint16(op.Divide))
	default:
		return fmt.Errorf("compile error: unsupported assignment operator: %s", node.Op)
	}
	c.emit(op.StoreAttr, idx)
	return nil
}

func (c *Compiler) compileReturn(node *ast.Return) error {
	if c.current.IsRoot() {
		return c.formatError("invalid return statement outside of a function", node.Pos())
	}
	value := node.Value
	if value == nil {
		c.emit(op.Nil)
	} else {
		if err := c.compile(value); err != nil {
			return err
		}
	}
	c.emit(op.ReturnValue)
	return nil
}

func (c *Compiler) compileIf(node *ast.If) error {
	if err := c.compile(node.Cond); err != nil {
		return err
	}
	jumpIfFalsePos := c.emit(op.PopJumpForwardIfFalse, Placeholder)
	if err := c.compile(node.Consequence); err != nil {
		return err
	}
	jumpForwardPos := c.emit(op.JumpForward, Placeholder)
	delta, err := c.calculateDelta(jumpIfFalsePos)
	if err != nil {
		return err
	}
	c.changeOperand(jumpIfFalsePos, delta)
	if node.Alternative != nil {
		if err := c.compile(node.Alternative); err != nil {
			return err
		}
	} else {
		// This allows ifs to be used as expressions. If the condition is
		// false and there is no alternative, the result is nil.
		c.emit(op.Nil)
	}
	delta, err = c.calculateDelta(jumpForwardPos)
	if err != nil {
		return err
	}
	c.changeOperand(jumpForwardPos, delta)
	return nil
}

func (c *Compiler) compileWhile(node *ast.While) error {
	code := c.current
	condStart := len(code.instructions)
	if err := c.compile(node.Cond); err != nil {
		return err
	}
	jumpOutPos := c.emit(op.PopJumpForwardIfFalse, Placeholder)

	thisLoop := &loop{code: code}
	code.loops = append(code.loops, thisLoop)
	if err := c.compile(node.Body); err != nil {
		return err
	}
	// Discard the block's value before looping
	c.emit(op.PopTop)
	backPos := c.emit(op.JumpBackward, Placeholder)
	if backPos-condStart > math.MaxUint16 {
		return fmt.Errorf("compile error: loop body is too large")
	}
	c.changeOperand(backPos, uint16(backPos-condStart))
	thisLoop.end()

	// The loop as a whole is a statement, not an expression, so no value
	// is left on the stack after it completes.
	afterPos := c.emit(op.Nop)
	delta, err := c.calculateDelta(jumpOutPos)
	if err != nil {
		return err
	}
	c.changeOperand(jumpOutPos, delta-1) // land on the Nop
	for _, pos := range thisLoop.continuePos {
		// Continue lands on the PopTop-skip: jump straight to JumpBackward
		c.changeOperand(pos, uint16(backPos-pos))
	}
	for _, pos := range thisLoop.breakPos {
		c.changeOperand(pos, uint16(afterPos-pos))
	}
	return nil
}

func (c *Compiler) currentLoop() *loop {
	loops := c.current.loops
	if len(loops) == 0 {
		return nil
	}
	return loops[len(loops)-1]
}

func (c *Compiler) compileBreak(node *ast.Break) error {
	thisLoop := c.currentLoop()
	if thisLoop == nil {
		return c.formatError("invalid break statement outside of a loop", node.Pos())
	}
	pos := c.emit(op.JumpForward, Placeholder)
	thisLoop.breakPos = append(thisLoop.breakPos, pos)
	return nil
}

func (c *Compiler) compileContinue(node *ast.Continue) error {
	thisLoop := c.currentLoop()
	if thisLoop == nil {
		return c.formatError("invalid continue statement outside of a loop", node.Pos())
	}
	pos := c.emit(op.JumpForward, Placeholder)
	thisLoop.continuePos = append(thisLoop.continuePos, pos)
	return nil
}

// compileCommand compiles a world command into a call of the builtin that
// implements it. Commands that create objects also store their result in
// the last3d cursor; all commands leave nothing on the stack.
func (c *Compiler) compileCommand(node *ast.Command) error {
	resolution, found := c.current.symbols.Resolve(node.Name)
	if !found {
		return c.formatError(fmt.Sprintf("unknown command %q", node.Name), node.Pos())
	}
	c.emitLoad(resolution)
	if len(node.Args) > MaxArgs {
		return fmt.Errorf("compile error: max args limit of %d exceeded (got %d)",
			MaxArgs, len(node.Args))
	}
	for _, arg := range node.Args {
		if err := c.compile(arg); err != nil {
			return err
		}
	}
	c.emit(op.Call, uint16(len(node.Args)))
	switch {
	case node.SetsCursor:
		cursor, found := c.current.symbols.Resolve(CursorName)
		if !found {
			return c.formatError("cursor global is undefined", node.Pos())
		}
		c.emit(op.StoreGlobal, cursor.symbol.Index())
	case node.BindsName != "":
		// The command result is bound to a global named after the
		// declared entity (npc "Guard" ... defines the global "guard").
		sym, found := c.main.symbols.Get(node.BindsName)
		if found && sym.IsConstant() {
			return c.formatError(fmt.Sprintf(
				"cannot assign to constant %q", node.BindsName), node.Pos())
		}
		if !found {
			var err error
			sym, err = c.main.symbols.InsertVariable(node.BindsName)
			if err != nil {
				return err
			}
		}
		c.emit(op.StoreGlobal, sym.Index())
	default:
		c.emit(op.PopTop)
	}
	return nil
}

func (c *Compiler) compileFunc(node *ast.Func) error {
	if len(node.Params) > MaxArgs {
		return c.formatError(fmt.Sprintf(
			"function exceeded parameter limit of %d", MaxArgs), node.Pos())
	}

	// The function has an optional name. If it is named, the name will be
	// stored in the function's own symbol table to support recursive calls.
	var functionName string
	if ident := node.Name; ident != nil {
		functionName = ident.Name
	}

	c.funcIndex++
	code := c.current.newChild(functionName, c.source)

	// Setting current here means subsequent calls to compile will add to
	// this code object instead of the parent.
	c.current = code

	params := make([]string, len(node.Params))
	for i, p := range node.Params {
		params[i] = p.Name
	}
	for _, paramName := range params {
		if _, err := code.symbols.InsertVariable(paramName); err != nil {
			return err
		}
	}

	// Add the function's own name to its symbol table. This supports
	// recursive calls to the function.
	if code.isNamed {
		if _, err := code.symbols.InsertConstant(functionName); err != nil {
			return err
		}
	}

	if err := c.compileFunctionBlock(node.Body); err != nil {
		return err
	}

	// We're done compiling the function, so switch back to the parent
	c.current = c.current.parent

	fn := NewFunction(FunctionOpts{
		ID:         fmt.Sprintf("%d", c.funcIndex),
		Name:       functionName,
		Parameters: params,
		Code:       code,
	})
	c.emit(op.LoadConst, c.constant(fn))

	// If the function was named, store it as a named variable in the
	// current code. Otherwise, just leave it on the stack.
	if code.isNamed {
		funcSymbol, found := c.current.symbols.Get(functionName)
		if !found {
			var err error
			funcSymbol, err = c.current.symbols.InsertConstant(functionName)
			if err != nil {
				return err
			}
		}
		// Duplicate the function on the stack so that the declaration
		// still evaluates to a value.
		c.emit(op.Copy, 0)
		if c.current.parent == nil {
			c.emit(op.StoreGlobal, funcSymbol.Index())
		} else {
			c.emit(op.StoreFast, funcSymbol.Index())
		}
	}
	return nil
}

func (c *Compiler) compileCall(node *ast.Call) error {
	args := node.Args
	argc := len(args)
	if argc > MaxArgs {
		return fmt.Errorf("compile error: max args limit of %d exceeded (got %d)", MaxArgs, argc)
	}
	if err := c.compile(node.Fun); err != nil {
		return err
	}
	for _, arg := range args {
		if err := c.compile(arg); err != nil {
			return err
		}
	}
	c.emit(op.Call, uint16(argc))
	return nil
}

func (c *Compiler) compileObjectCall(node *ast.ObjectCall) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	method := node.Call
	name := method.Fun.String()
	c.emit(op.LoadAttr, c.current.addName(name))
	args := method.Args
	argc := len(args)
	if argc > MaxArgs {
		return fmt.Errorf("compile error: max args limit of %d exceeded (got %d)", MaxArgs, argc)
	}
	for _, arg := range args {
		if err := c.compile(arg); err != nil {
			return err
		}
	}
	c.emit(op.Call, uint16(argc))
	return nil
}

func (c *Compiler) compileGetAttr(node *ast.GetAttr) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	idx := c.current.addName(node.Attr.Name)
	c.emit(op.LoadAttr, idx)
	return nil
}

func (c *Compiler) compileIndex(node *ast.Index) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	if err := c.compile(node.Index); err != nil {
		return err
	}
	c.emit(op.BinarySubscr)
	return nil
}

func (c *Compiler) compileList(node *ast.List) error {
	if len(node.Items) > math.MaxUint16 {
		return c.formatError("list literal exceeds maximum size", node.Pos())
	}
	for _, item := range node.Items {
		if err := c.compile(item); err != nil {
			return err
		}
	}
	c.emit(op.BuildList, uint16(len(node.Items)))
	return nil
}

func (c *Compiler) compilePrefix(node *ast.Prefix) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	switch node.Op {
	case "-":
		c.emit(op.UnaryNegative)
	case "!":
		c.emit(op.UnaryNot)
	default:
		return c.formatError(fmt.Sprintf("unknown operator %q", node.Op), node.Pos())
	}
	return nil
}

func (c *Compiler) compileInfix(node *ast.Infix) error {
	operator := node.Op
	// Short-circuit operators
	if operator == "&&" {
		return c.compileAnd(node)
	} else if operator == "||" {
		return c.compileOr(node)
	}
	// Non-short-circuit operators
	if err := c.compile(node.X); err != nil {
		return err
	}
	if err := c.compile(node.Y); err != nil {
		return err
	}
	switch operator {
	case "+":
		c.emit(op.BinaryOp, uint16(op.Add))
	case "-":
		c.emit(op.BinaryOp, uint16(op.Subtract))
	case "*":
		c.emit(op.BinaryOp, uint16(op.Multiply))
	case "/":
		c.emit(op.BinaryOp, uint16(op.Divide))
	case "%":
		c.emit(op.BinaryOp, uint16(op.Modulo))
	case "**":
		c.emit(op.BinaryOp, uint16(op.Power))
	case ">":
		c.emit(op.CompareOp, uint16(op.GreaterThan))
	case ">=":
		c.emit(op.CompareOp, uint16(op.GreaterThanOrEqual))
	case "<":
		c.emit(op.CompareOp, uint16(op.LessThan))
	case "<=":
		c.emit(op.CompareOp, uint16(op.LessThanOrEqual))
	case "==":
		c.emit(op.CompareOp, uint16(op.Equal))
	case "!=":
		c.emit(op.CompareOp, uint16(op.NotEqual))
	default:
		return c.formatError(fmt.Sprintf("unknown operator %q", node.Op), node.Pos())
	}
	return nil
}

func (c *Compiler) compileAnd(node *ast.Infix) error {
	// The "&&" AND operator needs to have "short circuit" behavior
	if err := c.compile(node.X); err != nil {
		return err
	}
	c.emit(op.Copy, 0) // Duplicate LHS
	jumpPos := c.emit(op.PopJumpForwardIfFalse, Placeholder)
	if err := c.compile(node.Y); err != nil {
		return err
	}
	c.emit(op.BinaryOp, uint16(op.And))
	c.emit(op.Nop)
	delta, err := c.calculateDelta(jumpPos)
	if err != nil {
		return err
	}
	c.changeOperand(jumpPos, delta-1)
	return nil
}

func (c *Compiler) compileOr(node *ast.Infix) error {
	// The "||" OR operator needs to have "short circuit" behavior
	if err := c.compile(node.X); err != nil {
		return err
	}
	c.emit(op.Copy, 0) // Duplicate LHS
	jumpPos := c.emit(op.PopJumpForwardIfTrue, Placeholder)
	if err := c.compile(node.Y); err != nil {
		return err
	}
	c.emit(op.BinaryOp, uint16(op.Or))
	c.emit(op.Nop)
	delta, err := c.calculateDelta(jumpPos)
	if err != nil {
		return err
	}
	c.changeOperand(jumpPos, delta-1)
	return nil
}

func (c *Compiler) constant(obj any) uint16 {
	code := c.current
	if len(code.constants) >= math.MaxUint16 {
		c.failure = fmt.Errorf("compile error: number of constants exceeded limits")
		return 0
	}
	code.constants = append(code.constants, obj)
	return uint16(len(code.constants) - 1)
}

func (c *Compiler) emit(opcode op.Code, operands ...uint16) int {
	inst := makeInstruction(opcode, operands...)
	code := c.current
	pos := len(code.instructions)
	code.instructions = append(code.instructions, inst...)
	// Record source location for each instruction slot
	loc := c.getCurrentLocation()
	for range inst {
		code.locations = append(code.locations, loc)
	}
	return pos
}

// emitLoad emits the appropriate load instruction based on the variable's scope.
func (c *Compiler) emitLoad(resolution *Resolution) {
	switch resolution.scope {
	case Global:
		c.emit(op.LoadGlobal, resolution.symbol.Index())
	case Local:
		c.emit(op.LoadFast, resolution.symbol.Index())
	}
}

// emitStore emits the appropriate store instruction based on the variable's scope.
func (c *Compiler) emitStore(resolution *Resolution) {
	switch resolution.scope {
	case Global:
		c.emit(op.StoreGlobal, resolution.symbol.Index())
	case Local:
		c.emit(op.StoreFast, resolution.symbol.Index())
	}
}

func (c *Compiler) calculateDelta(pos int) (uint16, error) {
	instrCount := len(c.current.instructions)
	delta := instrCount - pos
	if delta > math.MaxUint16 {
		return 0, fmt.Errorf("compile error: jump destination is too far away")
	}
	return uint16(delta), nil
}

func (c *Compiler) changeOperand(instructionIndex int, operand uint16) {
	c.current.instructions[instructionIndex+1] = op.Code(operand)
}

func (c *Compiler) formatError(msg string, pos token.Position) error {
	if pos.File != "" {
		return fmt.Errorf("compile error: %s (%s, line %d)", msg, pos.File, pos.LineNumber())
	}
	return fmt.Errorf("compile error: %s (line %d)", msg, pos.LineNumber())
}

// getCurrentLocation returns the source location of the AST node being compiled.
func (c *Compiler) getCurrentLocation() SourceLocation {
	if c.currentNode == nil {
		return SourceLocation{}
	}
	pos := c.currentNode.Pos()
	end := c.currentNode.End()
	lineNum := pos.LineNumber()
	// EndColumn is only meaningful if the end is on the same line
	endColumn := 0
	if end.Line == pos.Line {
		endColumn = end.ColumnNumber()
	}
	return SourceLocation{
		Filename:  c.filename,
		Line:      lineNum,
		Column:    pos.ColumnNumber(),
		EndColumn: endColumn,
		Source:    c.current.GetSourceLine(lineNum),
	}
}

func makeInstruction(opcode op.Code, operands ...uint16) []op.Code {
	opInfo := op.GetInfo(opcode)
	if len(operands) != opInfo.OperandCount {
		panic("compile error: wrong operand count")
	}
	instruction := make([]op.Code, 1+opInfo.OperandCount)
	instruction[0] = opcode
	for i, o := range operands {
		instruction[1+i] = op.Code(o)
	}
	return instruction
}

// normalizeFunctionBlock returns statements for a function body with an
// explicit trailing return: a final expression becomes the return value and
// any other ending falls through to return nil.
func normalizeFunctionBlock(node *ast.Block) []ast.Node {
	statements := node.Stmts
	count := len(statements)
	if count == 0 {
		return []ast.Node{&ast.Return{Return: node.Pos()}}
	}
	last := statements[count-1]
	if _, ok := last.(*ast.Return); ok {
		return statements
	}
	if expr, ok := last.(ast.Expr); ok {
		replaced := make([]ast.Node, count)
		copy(replaced, statements)
		replaced[count-1] = &ast.Return{Return: expr.Pos(), Value: expr}
		return replaced
	}
	extended := make([]ast.Node, count, count+1)
	copy(extended, statements)
	return append(extended, &ast.Return{Return: last.End()})
}

func isExpr(node ast.Node) bool {
	_, ok := node.(ast.Expr)
	return ok
}
