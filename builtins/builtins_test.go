package builtins

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/object"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	_, err := Print(context.Background(),
		object.NewString("hello"), object.NewInt(42), object.True)
	require.NoError(t, err)
	require.Equal(t, "hello 42 true\n", buf.String())
}

func TestLen(t *testing.T) {
	ctx := context.Background()
	result, err := Len(ctx, object.NewString("hello"))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(5), result)

	result, err = Len(ctx, object.NewList([]object.Object{object.NewInt(1), object.NewInt(2)}))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(2), result)

	_, err = Len(ctx, object.NewInt(1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "len() unsupported argument (int given)")
}

func TestSprintf(t *testing.T) {
	ctx := context.Background()
	result, err := Sprintf(ctx, object.NewString("%s: %d"),
		object.NewString("count"), object.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, object.NewString("count: 3"), result)
}

func TestType(t *testing.T) {
	ctx := context.Background()
	result, err := Type(ctx, object.NewFloat(1.5))
	require.NoError(t, err)
	require.Equal(t, object.NewString("float"), result)
}

func TestAssert(t *testing.T) {
	ctx := context.Background()
	result, err := Assert(ctx, object.True)
	require.NoError(t, err)
	require.Equal(t, object.Nil, result)

	_, err = Assert(ctx, object.False)
	require.Error(t, err)
	require.Equal(t, "assertion failed", err.Error())

	_, err = Assert(ctx, object.False, object.NewString("boom"))
	require.Error(t, err)
	require.Equal(t, "boom", err.Error())
}

func TestIntConversion(t *testing.T) {
	ctx := context.Background()
	result, err := Int(ctx, object.NewFloat(3.9))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(3), result)

	result, err = Int(ctx, object.NewString("42"))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(42), result)

	_, err = Int(ctx, object.NewString("not a number"))
	require.Error(t, err)

	result, err = Int(ctx)
	require.NoError(t, err)
	require.Equal(t, object.NewInt(0), result)
}

func TestFloatConversion(t *testing.T) {
	ctx := context.Background()
	result, err := Float(ctx, object.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(3), result)

	result, err = Float(ctx, object.NewString("2.5"))
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(2.5), result)
}

func TestStringConversion(t *testing.T) {
	ctx := context.Background()
	result, err := String(ctx, object.NewInt(42))
	require.NoError(t, err)
	require.Equal(t, object.NewString("42"), result)

	result, err = String(ctx, object.NewFloat(1.5))
	require.NoError(t, err)
	require.Equal(t, object.NewString("1.5"), result)
}

func TestBoolConversion(t *testing.T) {
	ctx := context.Background()
	result, err := Bool(ctx, object.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, object.False, result)

	result, err = Bool(ctx, object.NewString("x"))
	require.NoError(t, err)
	require.Equal(t, object.True, result)
}

func TestSorted(t *testing.T) {
	ctx := context.Background()
	list := object.NewList([]object.Object{
		object.NewInt(3), object.NewInt(1), object.NewInt(2),
	})
	result, err := Sorted(ctx, list)
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]", result.Inspect())

	// Original list is unchanged.
	require.Equal(t, "[3, 1, 2]", list.Inspect())
}

func TestReversed(t *testing.T) {
	ctx := context.Background()
	result, err := Reversed(ctx, object.NewString("abc"))
	require.NoError(t, err)
	require.Equal(t, object.NewString("cba"), result)

	list := object.NewList([]object.Object{object.NewInt(1), object.NewInt(2)})
	result, err = Reversed(ctx, list)
	require.NoError(t, err)
	require.Equal(t, "[2, 1]", result.Inspect())
}

func TestRange(t *testing.T) {
	ctx := context.Background()
	result, err := Range(ctx, object.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, "[0, 1, 2]", result.Inspect())

	result, err = Range(ctx, object.NewInt(2), object.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, "[2, 3, 4]", result.Inspect())
}
