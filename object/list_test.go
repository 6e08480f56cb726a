package object

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/op"
)

func TestListBasics(t *testing.T) {
	ls := NewList([]Object{NewInt(1), NewString("a")})
	require.Equal(t, LIST, ls.Type())
	require.Equal(t, `[1, "a"]`, ls.Inspect())
	require.Equal(t, NewInt(2), ls.Len())
	require.True(t, ls.IsTruthy())
	require.False(t, NewList(nil).IsTruthy())
}

func TestListEquality(t *testing.T) {
	a := NewList([]Object{NewInt(1), NewInt(2)})
	b := NewList([]Object{NewInt(1), NewInt(2)})
	c := NewList([]Object{NewInt(1)})
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
	require.False(t, a.Equals(NewInt(1)))
}

func TestListConcat(t *testing.T) {
	a := NewList([]Object{NewInt(1)})
	b := NewList([]Object{NewInt(2)})
	result, err := BinaryOp(op.Add, a, b)
	require.Nil(t, err)
	require.Equal(t, NewList([]Object{NewInt(1), NewInt(2)}), result)

	// The operands are unchanged.
	require.Equal(t, NewInt(1), a.Len())

	_, err = BinaryOp(op.Add, a, NewInt(1))
	require.NotNil(t, err)
	require.IsType(t, &TypeError{}, err)
}

func TestListIndexing(t *testing.T) {
	ls := NewList([]Object{NewInt(10), NewInt(20), NewInt(30)})

	item, err := ls.GetItem(NewInt(0))
	require.Nil(t, err)
	require.Equal(t, NewInt(10), item)

	item, err = ls.GetItem(NewInt(-1))
	require.Nil(t, err)
	require.Equal(t, NewInt(30), item)

	_, err = ls.GetItem(NewInt(3))
	require.NotNil(t, err)

	_, err = ls.GetItem(NewString("x"))
	require.NotNil(t, err)

	require.Nil(t, ls.SetItem(NewInt(1), NewInt(99)))
	item, err = ls.GetItem(NewInt(1))
	require.Nil(t, err)
	require.Equal(t, NewInt(99), item)
}

func TestListContains(t *testing.T) {
	ls := NewList([]Object{NewInt(1), NewString("a")})
	require.Equal(t, True, ls.Contains(NewString("a")))
	require.Equal(t, False, ls.Contains(NewInt(2)))
}

func TestListAppendMethod(t *testing.T) {
	ls := NewList([]Object{NewInt(1)})
	appendFn, found := ls.GetAttr("append")
	require.True(t, found)
	result, err := appendFn.(*Builtin).Call(context.Background(), NewInt(2))
	require.Nil(t, err)
	require.Same(t, ls, result)
	require.Equal(t, NewInt(2), ls.Len())
}

func TestNewFloatList(t *testing.T) {
	ls := NewFloatList([]float64{1.5, 2.5})
	require.Equal(t, NewList([]Object{NewFloat(1.5), NewFloat(2.5)}), ls)
}
