package compiler

import (
	"errors"
	"fmt"
	"math"
)

// Scope indicates where a resolved symbol lives at runtime.
type Scope string

const (
	// Global indicates a symbol in the top-level scope of a script.
	Global Scope = "global"

	// Local indicates a symbol belonging to the active function.
	Local Scope = "local"

	// Free indicates a symbol defined in an enclosing function. The language
	// has no closures, so resolving to Free is a compile error.
	Free Scope = "free"
)

// Symbol is a named entity in a symbol table, with an assigned index.
type Symbol struct {
	name       string
	index      uint16
	isConstant bool
}

func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) Index() uint16 {
	return s.index
}

func (s *Symbol) IsConstant() bool {
	return s.isConstant
}

func (s *Symbol) String() string {
	return fmt.Sprintf("symbol(%s %d)", s.name, s.index)
}

// Resolution is the result of resolving a name against a symbol table chain.
type Resolution struct {
	symbol *Symbol
	scope  Scope
}

func (r *Resolution) Symbol() *Symbol {
	return r.symbol
}

func (r *Resolution) Scope() Scope {
	return r.scope
}

// SymbolTable tracks which symbols are defined and referenced in a given
// scope. Tables may have a parent table, indicating a nested scope. If
// isBlock is true, the table represents a block within a function (such as
// an if body) and allocates its indexes from the enclosing function's table.
type SymbolTable struct {
	parent        *SymbolTable
	children      []*SymbolTable
	symbolsByName map[string]*Symbol
	symbols       []*Symbol
	isBlock       bool
}

// NewSymbolTable creates a new root symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbolsByName: map[string]*Symbol{}}
}

// NewChild creates a new symbol table that is a child of the current table.
func (t *SymbolTable) NewChild() *SymbolTable {
	child := &SymbolTable{
		parent:        t,
		symbolsByName: map[string]*Symbol{},
	}
	t.children = append(t.children, child)
	return child
}

// NewBlock creates a child table representing a block within a function.
func (t *SymbolTable) NewBlock() *SymbolTable {
	child := t.NewChild()
	child.isBlock = true
	return child
}

func (t *SymbolTable) claimIndex(s *Symbol) (uint16, error) {
	if t.isBlock {
		return t.parent.claimIndex(s)
	}
	idx := len(t.symbols)
	if idx >= math.MaxUint16 {
		return 0, errors.New("compile error: too many symbols")
	}
	uidx := uint16(idx)
	t.symbols = append(t.symbols, s)
	s.index = uidx
	return uidx, nil
}

// InsertVariable adds a new variable into this symbol table. The symbol is
// assigned the next available index in the enclosing function or script.
func (t *SymbolTable) InsertVariable(name string) (*Symbol, error) {
	if _, ok := t.symbolsByName[name]; ok {
		return nil, fmt.Errorf("compile error: variable %q already exists", name)
	}
	s := &Symbol{name: name}
	if _, err := t.claimIndex(s); err != nil {
		return nil, err
	}
	t.symbolsByName[name] = s
	return s, nil
}

// InsertConstant adds a new constant into this symbol table. Assigning to a
// constant is a compile error.
func (t *SymbolTable) InsertConstant(name string) (*Symbol, error) {
	sym, err := t.InsertVariable(name)
	if err != nil {
		return nil, err
	}
	sym.isConstant = true
	return sym, nil
}

// Get returns the symbol with the specified name, if defined directly in
// this table. Does not check any parent tables.
func (t *SymbolTable) Get(name string) (*Symbol, bool) {
	s, ok := t.symbolsByName[name]
	return s, ok
}

// IsGlobal returns true if this table represents the top-level scope.
func (t *SymbolTable) IsGlobal() bool {
	if t.parent == nil {
		return true
	}
	if t.isBlock {
		return t.parent.IsGlobal()
	}
	return false
}

// GetFunction returns the table of the enclosing function, if any.
func (t *SymbolTable) GetFunction() (*SymbolTable, bool) {
	if t.parent == nil {
		return nil, false // global scope
	} else if t.isBlock {
		return t.parent.GetFunction()
	}
	return t, true
}

// Resolve the specified symbol in this table or any parent tables, returning
// a Resolution if the symbol is found. The Resolution indicates the symbol's
// scope: Global, Local, or Free. Free means the name belongs to an enclosing
// function; the compiler rejects such references.
func (t *SymbolTable) Resolve(name string) (*Resolution, bool) {
	activeFunc, inFunc := t.GetFunction()
	if s, ok := t.symbolsByName[name]; ok {
		scope := Local
		if t.IsGlobal() {
			scope = Global
		}
		return &Resolution{symbol: s, scope: scope}, true
	}
	ancestor := t
	for {
		ancestor = ancestor.parent
		if ancestor == nil {
			return nil, false
		}
		sym, ok := ancestor.symbolsByName[name]
		if !ok {
			continue
		}
		if ancestor.IsGlobal() {
			return &Resolution{symbol: sym, scope: Global}, true
		}
		ancestorFunc, _ := ancestor.GetFunction()
		if inFunc && ancestorFunc == activeFunc {
			return &Resolution{symbol: sym, scope: Local}, true
		}
		return &Resolution{symbol: sym, scope: Free}, true
	}
}

// Parent returns the parent table of this table, if any.
func (t *SymbolTable) Parent() *SymbolTable {
	return t.parent
}

// Root returns the outermost table that encloses this table.
func (t *SymbolTable) Root() *SymbolTable {
	current := t
	for current.parent != nil {
		current = current.parent
	}
	return current
}

// Count returns the number of symbols defined in this table.
func (t *SymbolTable) Count() uint16 {
	return uint16(len(t.symbols))
}

// Symbol returns the Symbol located at the specified index.
func (t *SymbolTable) Symbol(index uint16) *Symbol {
	return t.symbols[index]
}
