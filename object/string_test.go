package object

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/op"
)

func TestStringBasics(t *testing.T) {
	s := NewString("hello")
	require.Equal(t, STRING, s.Type())
	require.Equal(t, `"hello"`, s.Inspect())
	require.Equal(t, "hello", s.Value())
	require.True(t, s.IsTruthy())
	require.False(t, NewString("").IsTruthy())
}

func TestStringConcat(t *testing.T) {
	result, err := BinaryOp(op.Add, NewString("foo"), NewString("bar"))
	require.Nil(t, err)
	require.Equal(t, NewString("foobar"), result)

	// Non-string operands are stringified on concatenation.
	result, err = BinaryOp(op.Add, NewString("count: "), NewInt(3))
	require.Nil(t, err)
	require.Equal(t, NewString("count: 3"), result)
}

func TestStringRepeat(t *testing.T) {
	result, err := BinaryOp(op.Multiply, NewString("ab"), NewInt(3))
	require.Nil(t, err)
	require.Equal(t, NewString("ababab"), result)

	_, err = BinaryOp(op.Multiply, NewString("ab"), NewInt(-1))
	require.NotNil(t, err)
	require.Equal(t, "eval error: negative string repeat count", err.Error())
}

func TestStringCompare(t *testing.T) {
	lt, err := Compare(op.LessThan, NewString("a"), NewString("b"))
	require.Nil(t, err)
	require.Equal(t, True, lt)

	_, err = NewString("a").Compare(NewInt(1))
	require.NotNil(t, err)
}

func TestStringIndexing(t *testing.T) {
	s := NewString("héllo")

	ch, err := s.GetItem(NewInt(1))
	require.Nil(t, err)
	require.Equal(t, NewString("é"), ch)

	ch, err = s.GetItem(NewInt(-1))
	require.Nil(t, err)
	require.Equal(t, NewString("o"), ch)

	_, err = s.GetItem(NewInt(5))
	require.NotNil(t, err)

	require.NotNil(t, s.SetItem(NewInt(0), NewString("x")))
}

func TestStringLenAndContains(t *testing.T) {
	s := NewString("héllo")
	require.Equal(t, NewInt(5), s.Len())
	require.Equal(t, True, s.Contains(NewString("éll")))
	require.Equal(t, False, s.Contains(NewString("x")))
}

func TestStringMethods(t *testing.T) {
	ctx := context.Background()
	s := NewString("Hello")

	upper, found := s.GetAttr("upper")
	require.True(t, found)
	result, err := upper.(*Builtin).Call(ctx)
	require.Nil(t, err)
	require.Equal(t, NewString("HELLO"), result)

	lower, found := s.GetAttr("lower")
	require.True(t, found)
	result, err = lower.(*Builtin).Call(ctx)
	require.Nil(t, err)
	require.Equal(t, NewString("hello"), result)

	contains, found := s.GetAttr("contains")
	require.True(t, found)
	result, err = contains.(*Builtin).Call(ctx, NewString("ell"))
	require.Nil(t, err)
	require.Equal(t, True, result)

	_, found = s.GetAttr("nope")
	require.False(t, found)
}
