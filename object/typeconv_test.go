package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsBool(t *testing.T) {
	value, err := AsBool(True)
	require.Nil(t, err)
	require.True(t, value)

	_, err = AsBool(NewInt(1))
	require.NotNil(t, err)
	require.Equal(t, "expected a bool (got int)", err.Error())
}

func TestAsString(t *testing.T) {
	value, err := AsString(NewString("hi"))
	require.Nil(t, err)
	require.Equal(t, "hi", value)

	_, err = AsString(NewInt(1))
	require.NotNil(t, err)
}

func TestAsInt(t *testing.T) {
	value, err := AsInt(NewInt(7))
	require.Nil(t, err)
	require.Equal(t, int64(7), value)

	// Floats are not silently truncated.
	_, err = AsInt(NewFloat(7.0))
	require.NotNil(t, err)
}

func TestAsFloat(t *testing.T) {
	value, err := AsFloat(NewFloat(1.5))
	require.Nil(t, err)
	require.Equal(t, 1.5, value)

	// Ints are promoted.
	value, err = AsFloat(NewInt(2))
	require.Nil(t, err)
	require.Equal(t, 2.0, value)

	_, err = AsFloat(NewString("2"))
	require.NotNil(t, err)
	require.Equal(t, "expected a number (got string)", err.Error())
}

func TestAsFloatSlice(t *testing.T) {
	values, err := AsFloatSlice(NewList([]Object{NewInt(1), NewFloat(2.5)}))
	require.Nil(t, err)
	require.Equal(t, []float64{1, 2.5}, values)

	_, err = AsFloatSlice(NewList([]Object{NewString("x")}))
	require.NotNil(t, err)

	_, err = AsFloatSlice(NewInt(1))
	require.NotNil(t, err)
}

func TestFromGoType(t *testing.T) {
	require.Equal(t, Nil, FromGoType(nil))
	require.Equal(t, True, FromGoType(true))
	require.Equal(t, NewInt(3), FromGoType(3))
	require.Equal(t, NewInt(3), FromGoType(int64(3)))
	require.Equal(t, NewFloat(1.5), FromGoType(1.5))
	require.Equal(t, NewString("s"), FromGoType("s"))
	require.Equal(t, NewFloatList([]float64{1, 2}), FromGoType([]float64{1, 2}))

	obj := NewInt(9)
	require.Same(t, obj, FromGoType(obj))

	err, ok := FromGoType(struct{}{}).(*Error)
	require.True(t, ok)
	require.Contains(t, err.Message().Value(), "unsupported value type")
}

func TestRequire(t *testing.T) {
	require.Nil(t, Require("f", 1, []Object{NewInt(1)}))

	err := Require("f", 1, nil)
	require.NotNil(t, err)
	require.Equal(t, "args error: f() takes exactly 1 argument (0 given)", err.Message().Value())

	err = Require("f", 2, []Object{NewInt(1)})
	require.NotNil(t, err)
	require.Equal(t, "args error: f() takes exactly 2 arguments (1 given)", err.Message().Value())
}

func TestRequireRange(t *testing.T) {
	require.Nil(t, RequireRange("f", 1, 2, []Object{NewInt(1)}))

	err := RequireRange("f", 2, 3, []Object{NewInt(1)})
	require.NotNil(t, err)
	require.Equal(t, "args error: f() takes at least 2 arguments (1 given)", err.Message().Value())

	err = RequireRange("f", 0, 1, []Object{NewInt(1), NewInt(2)})
	require.NotNil(t, err)
	require.Equal(t, "args error: f() takes at most 1 argument (2 given)", err.Message().Value())
}
