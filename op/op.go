// Package op defines opcodes used by the tcc compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Execution
	Nop         Code = 1
	Halt        Code = 2
	Call        Code = 3
	ReturnValue Code = 4

	// Jump
	JumpBackward          Code = 10
	JumpForward           Code = 11
	PopJumpForwardIfFalse Code = 12
	PopJumpForwardIfTrue  Code = 13

	// Load
	LoadAttr   Code = 20
	LoadFast   Code = 21
	LoadGlobal Code = 22
	LoadConst  Code = 23

	// Store
	StoreAttr   Code = 30
	StoreFast   Code = 31
	StoreGlobal Code = 32

	// Operations
	BinaryOp      Code = 40
	CompareOp     Code = 41
	UnaryNegative Code = 42
	UnaryNot      Code = 43

	// Build
	BuildList Code = 50

	// Containers
	BinarySubscr Code = 60
	StoreSubscr  Code = 61

	// Stack
	Swap   Code = 70
	Copy   Code = 71
	PopTop Code = 72

	// Push constants
	Nil   Code = 80
	False Code = 81
	True  Code = 82
)

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. For example, addition, subtraction, multiplication, etc.
type BinaryOpType uint16

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Divide   BinaryOpType = 4
	Modulo   BinaryOpType = 5
	And      BinaryOpType = 6
	Or       BinaryOpType = 7
	Power    BinaryOpType = 8
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case And:
		return "&&"
	case Or:
		return "||"
	case Power:
		return "**"
	default:
		return ""
	}
}

// CompareOpType describes a type of comparison operation. For example, less
// than, greater than, equal, etc.
type CompareOpType uint16

const (
	LessThan           CompareOpType = 1
	LessThanOrEqual    CompareOpType = 2
	Equal              CompareOpType = 3
	NotEqual           CompareOpType = 4
	GreaterThan        CompareOpType = 5
	GreaterThanOrEqual CompareOpType = 6
)

// String returns a string representation of the comparison operation.
// For example "<" for less than.
func (cop CompareOpType) String() string {
	switch cop {
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return ""
	}
}

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{BinaryOp, "BINARY_OP", 1},
		{BinarySubscr, "BINARY_SUBSCR", 0},
		{BuildList, "BUILD_LIST", 1},
		{Call, "CALL", 1},
		{CompareOp, "COMPARE_OP", 1},
		{Copy, "COPY", 1},
		{False, "FALSE", 0},
		{Halt, "HALT", 0},
		{JumpBackward, "JUMP_BACKWARD", 1},
		{JumpForward, "JUMP_FORWARD", 1},
		{LoadAttr, "LOAD_ATTR", 1},
		{LoadConst, "LOAD_CONST", 1},
		{LoadFast, "LOAD_FAST", 1},
		{LoadGlobal, "LOAD_GLOBAL", 1},
		{Nil, "NIL", 0},
		{Nop, "NOP", 0},
		{PopJumpForwardIfFalse, "POP_JUMP_FORWARD_IF_FALSE", 1},
		{PopJumpForwardIfTrue, "POP_JUMP_FORWARD_IF_TRUE", 1},
		{PopTop, "POP_TOP", 0},
		{ReturnValue, "RETURN_VALUE", 0},
		{StoreAttr, "STORE_ATTR", 1},
		{StoreFast, "STORE_FAST", 1},
		{StoreGlobal, "STORE_GLOBAL", 1},
		{StoreSubscr, "STORE_SUBSCR", 0},
		{Swap, "SWAP", 1},
		{True, "TRUE", 0},
		{UnaryNegative, "UNARY_NEGATIVE", 0},
		{UnaryNot, "UNARY_NOT", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}
