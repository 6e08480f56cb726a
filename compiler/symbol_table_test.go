package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertVariable(t *testing.T) {
	table := NewSymbolTable()
	a, err := table.InsertVariable("a")
	require.Nil(t, err)
	require.Equal(t, "a", a.Name())
	require.Equal(t, uint16(0), a.Index())
	require.False(t, a.IsConstant())

	b, err := table.InsertVariable("b")
	require.Nil(t, err)
	require.Equal(t, uint16(1), b.Index())
	require.Equal(t, uint16(2), table.Count())

	_, err = table.InsertVariable("a")
	require.NotNil(t, err)
	require.Equal(t, `compile error: variable "a" already exists`, err.Error())
}

func TestInsertConstant(t *testing.T) {
	table := NewSymbolTable()
	f, err := table.InsertConstant("f")
	require.Nil(t, err)
	require.True(t, f.IsConstant())
}

func TestGetDoesNotSearchParents(t *testing.T) {
	table := NewSymbolTable()
	_, err := table.InsertVariable("a")
	require.Nil(t, err)

	child := table.NewChild()
	_, found := child.Get("a")
	require.False(t, found)

	_, found = table.Get("a")
	require.True(t, found)
}

func TestResolveGlobal(t *testing.T) {
	table := NewSymbolTable()
	_, err := table.InsertVariable("x")
	require.Nil(t, err)

	resolution, found := table.Resolve("x")
	require.True(t, found)
	require.Equal(t, Global, resolution.Scope())
	require.Equal(t, "x", resolution.Symbol().Name())
}

func TestResolveGlobalFromFunction(t *testing.T) {
	root := NewSymbolTable()
	_, err := root.InsertVariable("g")
	require.Nil(t, err)

	fn := root.NewChild()
	resolution, found := fn.Resolve("g")
	require.True(t, found)
	require.Equal(t, Global, resolution.Scope())
}

func TestResolveLocal(t *testing.T) {
	root := NewSymbolTable()
	fn := root.NewChild()
	_, err := fn.InsertVariable("a")
	require.Nil(t, err)

	resolution, found := fn.Resolve("a")
	require.True(t, found)
	require.Equal(t, Local, resolution.Scope())
}

func TestResolveThroughBlock(t *testing.T) {
	// Blocks share the index space of their enclosing function, so a name
	// defined in the function body is still Local inside an if block.
	root := NewSymbolTable()
	fn := root.NewChild()
	a, err := fn.InsertVariable("a")
	require.Nil(t, err)

	block := fn.NewBlock()
	resolution, found := block.Resolve("a")
	require.True(t, found)
	require.Equal(t, Local, resolution.Scope())

	b, err := block.InsertVariable("b")
	require.Nil(t, err)
	require.Equal(t, a.Index()+1, b.Index())
	require.Equal(t, uint16(2), fn.Count())
}

func TestResolveFree(t *testing.T) {
	root := NewSymbolTable()
	outer := root.NewChild()
	_, err := outer.InsertVariable("a")
	require.Nil(t, err)

	inner := outer.NewChild()
	resolution, found := inner.Resolve("a")
	require.True(t, found)
	require.Equal(t, Free, resolution.Scope())
}

func TestResolveMissing(t *testing.T) {
	table := NewSymbolTable()
	_, found := table.Resolve("nope")
	require.False(t, found)
}

func TestIsGlobal(t *testing.T) {
	root := NewSymbolTable()
	require.True(t, root.IsGlobal())

	rootBlock := root.NewBlock()
	require.True(t, rootBlock.IsGlobal())

	fn := root.NewChild()
	require.False(t, fn.IsGlobal())
	require.False(t, fn.NewBlock().IsGlobal())
}

func TestRoot(t *testing.T) {
	root := NewSymbolTable()
	fn := root.NewChild()
	block := fn.NewBlock()
	require.Same(t, root, block.Root())
	require.Same(t, fn, block.Parent())
}
