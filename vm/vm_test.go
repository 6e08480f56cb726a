package vm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/compiler"
	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/parser"
)

// run compiles and evaluates the given source in a fresh VM.
func run(t *testing.T, source string, globals map[string]object.Object) (object.Object, error) {
	t.Helper()
	ctx := context.Background()
	program, err := parser.Parse(ctx, source)
	require.NoError(t, err)
	var names []string
	for name := range globals {
		names = append(names, name)
	}
	code, err := compiler.Compile(program, compiler.WithGlobalNames(names))
	if err != nil {
		return nil, err
	}
	return Run(ctx, code, WithGlobals(globals))
}

func evaluate(t *testing.T, source string) object.Object {
	t.Helper()
	result, err := run(t, source, nil)
	require.NoError(t, err)
	return result
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected object.Object
	}{
		{"1 + 2", object.NewInt(3)},
		{"2 * 3 + 4", object.NewInt(10)},
		{"2 + 3 * 4", object.NewInt(14)},
		{"10 / 4", object.NewFloat(2.5)},
		{"10 / 5", object.NewInt(2)},
		{"10 % 3", object.NewInt(1)},
		{"2 ** 10", object.NewFloat(1024)},
		{"-5 + 3", object.NewInt(-2)},
		{"1.5 + 2", object.NewFloat(3.5)},
		{"\"ab\" + \"cd\"", object.NewString("abcd")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := evaluate(t, tt.input)
			require.True(t, tt.expected.Equals(result),
				"expected %s, got %s", tt.expected.Inspect(), result.Inspect())
		})
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"1 == 1.0", true},
		{"1 != 2", true},
		{"\"a\" < \"b\"", true},
		{"true == true", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := evaluate(t, tt.input)
			require.Equal(t, object.NewBool(tt.expected), result)
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// The right side would divide by zero if evaluated
	result := evaluate(t, "false && 1 / 0 == 0")
	require.Equal(t, object.False, result)
	result = evaluate(t, "true || 1 / 0 == 0")
	require.Equal(t, object.True, result)
}

func TestVariables(t *testing.T) {
	result := evaluate(t, `
var x = 10
var y = x * 2
x + y`)
	require.Equal(t, object.NewInt(30), result)
}

func TestCompoundAssignment(t *testing.T) {
	result := evaluate(t, `
var x = 10
x += 5
x *= 2
x -= 6
x /= 4
x`)
	require.Equal(t, object.NewInt(6), result)
}

func TestWhileLoop(t *testing.T) {
	result := evaluate(t, `
var total = 0
var i = 1
while (i <= 10) {
	total += i
	i += 1
}
total`)
	require.Equal(t, object.NewInt(55), result)
}

func TestBreakContinue(t *testing.T) {
	result := evaluate(t, `
var total = 0
var i = 0
while (true) {
	i += 1
	if (i > 100) { break }
	if (i % 2 == 0) { continue }
	total += i
}
total`)
	// Sum of odd numbers 1..99
	require.Equal(t, object.NewInt(2500), result)
}

func TestIfExpression(t *testing.T) {
	result := evaluate(t, `var x = 5; if (x > 3) { "big" } else { "small" }`)
	require.Equal(t, object.NewString("big"), result)

	result = evaluate(t, `if (false) { 1 }`)
	require.Equal(t, object.Nil, result)
}

func TestFunctions(t *testing.T) {
	result := evaluate(t, `
func add(a, b) {
	return a + b
}
add(3, 4)`)
	require.Equal(t, object.NewInt(7), result)
}

func TestImplicitReturn(t *testing.T) {
	result := evaluate(t, `
func double(x) { x * 2 }
double(21)`)
	require.Equal(t, object.NewInt(42), result)
}

func TestRecursion(t *testing.T) {
	result := evaluate(t, `
func fact(n) {
	if (n <= 1) { return 1 }
	return n * fact(n - 1)
}
fact(10)`)
	require.Equal(t, object.NewInt(3628800), result)
}

func TestFunctionHoisting(t *testing.T) {
	result := evaluate(t, `
var x = later()
func later() { 99 }
x`)
	require.Equal(t, object.NewInt(99), result)
}

func TestAnonymousFunction(t *testing.T) {
	result := evaluate(t, `
var twice = func(x) { x + x }
twice(8)`)
	require.Equal(t, object.NewInt(16), result)
}

func TestWrongArgCount(t *testing.T) {
	_, err := run(t, `
func add(a, b) { a + b }
add(1)`, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "takes 2 arguments (1 given)")
}

func TestLists(t *testing.T) {
	result := evaluate(t, `
var xs = [1, 2, 3]
xs[0] + xs[2]`)
	require.Equal(t, object.NewInt(4), result)

	result = evaluate(t, `
var xs = [1, 2, 3]
xs[1] = 20
xs[1]`)
	require.Equal(t, object.NewInt(20), result)

	result = evaluate(t, `[1, 2, 3][-1]`)
	require.Equal(t, object.NewInt(3), result)
}

func TestListMethods(t *testing.T) {
	result := evaluate(t, `
var xs = [1, 2]
xs.append(3)
xs[2]`)
	require.Equal(t, object.NewInt(3), result)
}

func TestStringIndexing(t *testing.T) {
	result := evaluate(t, `"hello"[1]`)
	require.Equal(t, object.NewString("e"), result)
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "1 / 0", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "division by zero")
}

func TestIndexOutOfRange(t *testing.T) {
	_, err := run(t, "[1, 2][5]", nil)
	require.Error(t, err)
}

func TestBuiltinGlobals(t *testing.T) {
	called := false
	globals := map[string]object.Object{
		"probe": object.NewBuiltin("probe", func(ctx context.Context, args ...object.Object) (object.Object, error) {
			called = true
			return object.NewInt(int64(len(args))), nil
		}),
	}
	result, err := run(t, "probe(1, 2, 3)", globals)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, object.NewInt(3), result)
}

func TestModuleAttrCall(t *testing.T) {
	mod := object.NewBuiltinsModule("m", map[string]object.Object{
		"one": object.NewBuiltin("one", func(ctx context.Context, args ...object.Object) (object.Object, error) {
			return object.NewInt(1), nil
		}),
	})
	result, err := run(t, "m.one()", map[string]object.Object{"m": mod})
	require.NoError(t, err)
	require.Equal(t, object.NewInt(1), result)
}

func TestContextCancellation(t *testing.T) {
	program, err := parser.Parse(context.Background(), "while (true) { 1 }")
	require.NoError(t, err)
	code, err := compiler.Compile(program)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = Run(ctx, code, WithContextCheckInterval(100))
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScriptEvaluatesToValue(t *testing.T) {
	result := evaluate(t, "var x = 1")
	require.Equal(t, object.Nil, result)
}
