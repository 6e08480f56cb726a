// Package dis disassembles compiled bytecode for inspection.
package dis

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tcc-lang/tcc/compiler"
	"github.com/tcc-lang/tcc/op"
)

// Instruction is one decoded instruction.
type Instruction struct {
	Offset  int
	Name    string
	Operand *int
	Info    string
}

// Disassemble decodes the instructions of the given code object.
func Disassemble(code *compiler.Code) ([]Instruction, error) {
	var instructions []Instruction
	count := code.InstructionCount()
	for i := 0; i < count; i++ {
		offset := i
		opcode := code.Instruction(i)
		info := op.GetInfo(opcode)
		if info.Name == "" {
			return nil, fmt.Errorf("unknown opcode %d at offset %d", opcode, offset)
		}
		instruction := Instruction{Offset: offset, Name: info.Name}
		if info.OperandCount > 0 {
			if i+1 >= count {
				return nil, fmt.Errorf("truncated instruction at offset %d", offset)
			}
			i++
			operand := int(code.Instruction(i))
			instruction.Operand = &operand
			instruction.Info = operandInfo(code, opcode, operand)
		}
		instructions = append(instructions, instruction)
	}
	return instructions, nil
}

// operandInfo resolves an operand to something readable: a constant value,
// a variable name, or an operator symbol.
func operandInfo(code *compiler.Code, opcode op.Code, operand int) string {
	switch opcode {
	case op.LoadConst:
		if operand < code.ConstantsCount() {
			constant := code.Constant(operand)
			switch constant := constant.(type) {
			case string:
				return strconv.Quote(constant)
			case *compiler.Function:
				return fmt.Sprintf("function %s", constant.Name())
			case nil:
				return "nil"
			default:
				return fmt.Sprintf("%v", constant)
			}
		}
	case op.LoadGlobal, op.StoreGlobal:
		names := code.Root().GlobalNames()
		if operand < len(names) {
			return names[operand]
		}
	case op.LoadAttr, op.StoreAttr:
		if operand < code.NameCount() {
			return code.Name(operand)
		}
	case op.BinaryOp:
		return op.BinaryOpType(operand).String()
	case op.CompareOp:
		return op.CompareOpType(operand).String()
	}
	return ""
}

// Print writes a table of instructions.
func Print(instructions []Instruction, out io.Writer) {
	w := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tOPCODE\tOPERAND\tINFO")
	for _, instr := range instructions {
		operand := ""
		if instr.Operand != nil {
			operand = strconv.Itoa(*instr.Operand)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", instr.Offset, instr.Name, operand, instr.Info)
	}
	w.Flush()
}

// Sprint disassembles code and returns the printed table.
func Sprint(code *compiler.Code) (string, error) {
	instructions, err := Disassemble(code)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	Print(instructions, &sb)
	return sb.String(), nil
}
