package compiler

import (
	"fmt"
	"strings"

	"github.com/tcc-lang/tcc/op"
)

type loop struct {
	code        *Code
	continuePos []int
	breakPos    []int
}

func (l *loop) end() {
	code := l.code
	code.loops = code.loops[:len(code.loops)-1]
}

// SourceLocation identifies a range of source code tied to an instruction.
type SourceLocation struct {
	Filename  string
	Line      int // 1-indexed
	Column    int // 1-indexed
	EndColumn int // 1-indexed; zero when the node spans lines
	Source    string
}

// Code holds the compiled instructions and related state for one script or
// one function body. Function bodies are children of the script's root Code.
type Code struct {
	id           string
	name         string
	isNamed      bool
	parent       *Code
	children     []*Code
	symbols      *SymbolTable
	instructions []op.Code
	constants    []any
	names        []string
	source       string
	filename     string

	// Source map: one location per instruction for error reporting
	locations []SourceLocation

	// Used during compilation only
	loops []*loop
}

func (c *Code) ID() string {
	return c.id
}

func (c *Code) CodeName() string {
	return c.name
}

func (c *Code) addName(name string) uint16 {
	for i, existing := range c.names {
		if existing == name {
			return uint16(i)
		}
	}
	c.names = append(c.names, name)
	return uint16(len(c.names) - 1)
}

func (c *Code) IsNamed() bool {
	return c.isNamed
}

func (c *Code) Parent() *Code {
	return c.parent
}

func (c *Code) newChild(name, source string) *Code {
	child := &Code{
		id:       fmt.Sprintf("%s.%d", c.id, len(c.children)),
		name:     name,
		isNamed:  name != "",
		parent:   c,
		symbols:  c.symbols.NewChild(),
		source:   source,
		filename: c.filename,
	}
	c.children = append(c.children, child)
	return child
}

func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

func (c *Code) Instruction(index int) op.Code {
	return c.instructions[index]
}

func (c *Code) ConstantsCount() int {
	return len(c.constants)
}

func (c *Code) Constant(index int) any {
	return c.constants[index]
}

func (c *Code) NameCount() int {
	return len(c.names)
}

func (c *Code) Name(index int) string {
	return c.names[index]
}

func (c *Code) Source() string {
	return c.source
}

func (c *Code) Filename() string {
	return c.filename
}

func (c *Code) LocalsCount() int {
	return int(c.symbols.Count())
}

func (c *Code) GlobalsCount() int {
	return int(c.symbols.Root().Count())
}

func (c *Code) GlobalNames() []string {
	root := c.symbols.Root()
	count := root.Count()
	names := make([]string, count)
	for i := uint16(0); i < count; i++ {
		names[i] = root.Symbol(i).Name()
	}
	return names
}

func (c *Code) Root() *Code {
	curr := c
	for curr.parent != nil {
		curr = curr.parent
	}
	return curr
}

func (c *Code) IsRoot() bool {
	return c.parent == nil
}

func (c *Code) Flatten() []*Code {
	var codes []*Code
	codes = append(codes, c)
	for _, child := range c.children {
		codes = append(codes, child.Flatten()...)
	}
	return codes
}

// LocationAt returns the source location for the instruction at the given
// index. If no location is recorded, an empty SourceLocation is returned.
func (c *Code) LocationAt(ip int) SourceLocation {
	if ip < 0 || ip >= len(c.locations) {
		return SourceLocation{}
	}
	return c.locations[ip]
}

func (c *Code) LocationsCount() int {
	return len(c.locations)
}

// GetSourceLine returns the source code line at the given 1-based line
// number. If the line is out of range, an empty string is returned.
func (c *Code) GetSourceLine(lineNum int) string {
	if c.source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(c.source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
