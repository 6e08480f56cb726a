// Package math provides the math builtins available to scripts.
//
// Note that log is the base-10 logarithm and ln is the natural logarithm,
// matching calculator conventions rather than Go's.
package math

import (
	"context"
	"fmt"
	"math"

	"github.com/tcc-lang/tcc/object"
)

func Sin(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.sin: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Sin(x)), nil
}

func Cos(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.cos: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Cos(x)), nil
}

func Tan(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.tan: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Tan(x)), nil
}

func Asin(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.asin: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Asin(x)), nil
}

func Acos(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.acos: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Acos(x)), nil
}

func Atan(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.atan: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Atan(x)), nil
}

func Atan2(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("math.atan2: expected 2 arguments, got %d", len(args))
	}
	y, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	x, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Atan2(y, x)), nil
}

func Sqrt(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.sqrt: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	if x < 0 {
		return nil, fmt.Errorf("value error: math.sqrt: argument must be non-negative, got %v", x)
	}
	return object.NewFloat(math.Sqrt(x)), nil
}

func Pow(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("math.pow: expected 2 arguments, got %d", len(args))
	}
	base, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	exp, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Pow(base, exp)), nil
}

func Abs(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.abs: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Int:
		v := arg.Value()
		if v < 0 {
			v *= -1
		}
		return object.NewInt(v), nil
	case *object.Float:
		return object.NewFloat(math.Abs(arg.Value())), nil
	default:
		return nil, fmt.Errorf("type error: argument to math.abs not supported, got=%s", args[0].Type())
	}
}

func Floor(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.floor: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Int:
		return arg, nil
	case *object.Float:
		return object.NewFloat(math.Floor(arg.Value())), nil
	default:
		return nil, fmt.Errorf("type error: argument to math.floor not supported, got=%s", args[0].Type())
	}
}

func Ceil(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.ceil: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Int:
		return arg, nil
	case *object.Float:
		return object.NewFloat(math.Ceil(arg.Value())), nil
	default:
		return nil, fmt.Errorf("type error: argument to math.ceil not supported, got=%s", args[0].Type())
	}
}

func Round(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.round: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Int:
		return arg, nil
	case *object.Float:
		return object.NewFloat(math.Round(arg.Value())), nil
	default:
		return nil, fmt.Errorf("type error: argument to math.round not supported, got=%s", args[0].Type())
	}
}

func Min(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("math.min: expected 2 arguments, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	y, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Min(x, y)), nil
}

func Max(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("math.max: expected 2 arguments, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	y, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Max(x, y)), nil
}

func Exp(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.exp: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Exp(x)), nil
}

// Log is the base-10 logarithm.
func Log(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.log: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, fmt.Errorf("value error: math.log: argument must be positive, got %v", x)
	}
	return object.NewFloat(math.Log10(x)), nil
}

// Ln is the natural logarithm.
func Ln(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.ln: expected 1 argument, got %d", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, fmt.Errorf("value error: math.ln: argument must be positive, got %v", x)
	}
	return object.NewFloat(math.Log(x)), nil
}

func Factorial(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.factorial: expected 1 argument, got %d", len(args))
	}
	n, err := object.AsInt(args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("value error: math.factorial: argument must be non-negative, got %d", n)
	}
	if n > 20 {
		return nil, fmt.Errorf("value error: math.factorial: argument too large, got %d", n)
	}
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	return object.NewInt(result), nil
}

func Fibonacci(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.fibonacci: expected 1 argument, got %d", len(args))
	}
	n, err := object.AsInt(args[0])
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return object.NewInt(0), nil
	}
	if n == 1 {
		return object.NewInt(1), nil
	}
	a, b := int64(0), int64(1)
	for i := int64(2); i <= n; i++ {
		a, b = b, a+b
	}
	return object.NewInt(b), nil
}

func IsPrime(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("math.isPrime: expected 1 argument, got %d", len(args))
	}
	n, err := object.AsInt(args[0])
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return object.False, nil
	}
	if n == 2 {
		return object.True, nil
	}
	if n%2 == 0 {
		return object.False, nil
	}
	for i := int64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return object.False, nil
		}
	}
	return object.True, nil
}

func Gcd(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("math.gcd: expected 2 arguments, got %d", len(args))
	}
	a, err := object.AsInt(args[0])
	if err != nil {
		return nil, err
	}
	b, err := object.AsInt(args[1])
	if err != nil {
		return nil, err
	}
	return object.NewInt(gcd(a, b)), nil
}

func Lcm(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("math.lcm: expected 2 arguments, got %d", len(args))
	}
	a, err := object.AsInt(args[0])
	if err != nil {
		return nil, err
	}
	b, err := object.AsInt(args[1])
	if err != nil {
		return nil, err
	}
	if a == 0 || b == 0 {
		return object.NewInt(0), nil
	}
	result := a * b / gcd(a, b)
	if result < 0 {
		result = -result
	}
	return object.NewInt(result), nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		a = -a
	}
	return a
}

// Quadratic solves ax^2 + bx + c = 0 and returns the two real roots as a
// list. Complex roots are reported as an error.
func Quadratic(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("math.quadratic: expected 3 arguments, got %d", len(args))
	}
	a, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	c, err := object.AsFloat(args[2])
	if err != nil {
		return nil, err
	}
	if a == 0 {
		return nil, fmt.Errorf("value error: math.quadratic: coefficient a must be nonzero")
	}
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, fmt.Errorf("value error: math.quadratic: no real roots (discriminant %v)", discriminant)
	}
	sqrtDisc := math.Sqrt(discriminant)
	x1 := (-b + sqrtDisc) / (2 * a)
	x2 := (-b - sqrtDisc) / (2 * a)
	return object.NewFloatList([]float64{x1, x2}), nil
}

func Distance2d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("math.distance2d: expected 4 arguments, got %d", len(args))
	}
	values := make([]float64, 4)
	for i, arg := range args {
		v, err := object.AsFloat(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	dx := values[2] - values[0]
	dy := values[3] - values[1]
	return object.NewFloat(math.Sqrt(dx*dx + dy*dy)), nil
}

func Distance3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 6 {
		return nil, fmt.Errorf("math.distance3d: expected 6 arguments, got %d", len(args))
	}
	values := make([]float64, 6)
	for i, arg := range args {
		v, err := object.AsFloat(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	dx := values[3] - values[0]
	dy := values[4] - values[1]
	dz := values[5] - values[2]
	return object.NewFloat(math.Sqrt(dx*dx + dy*dy + dz*dz)), nil
}

// Module returns the math module object.
func Module() *object.Module {
	return object.NewBuiltinsModule("math", Builtins())
}

// Builtins returns the math functions and constants by bare name, used both
// for the module object and for flat top-level registration.
func Builtins() map[string]object.Object {
	return map[string]object.Object{
		"abs":        object.NewBuiltin("abs", Abs),
		"acos":       object.NewBuiltin("acos", Acos),
		"asin":       object.NewBuiltin("asin", Asin),
		"atan":       object.NewBuiltin("atan", Atan),
		"atan2":      object.NewBuiltin("atan2", Atan2),
		"ceil":       object.NewBuiltin("ceil", Ceil),
		"cos":        object.NewBuiltin("cos", Cos),
		"distance2d": object.NewBuiltin("distance2d", Distance2d),
		"distance3d": object.NewBuiltin("distance3d", Distance3d),
		"E":          object.NewFloat(math.E),
		"exp":        object.NewBuiltin("exp", Exp),
		"factorial":  object.NewBuiltin("factorial", Factorial),
		"fibonacci":  object.NewBuiltin("fibonacci", Fibonacci),
		"floor":      object.NewBuiltin("floor", Floor),
		"gcd":        object.NewBuiltin("gcd", Gcd),
		"isPrime":    object.NewBuiltin("isPrime", IsPrime),
		"lcm":        object.NewBuiltin("lcm", Lcm),
		"ln":         object.NewBuiltin("ln", Ln),
		"log":        object.NewBuiltin("log", Log),
		"max":        object.NewBuiltin("max", Max),
		"min":        object.NewBuiltin("min", Min),
		"PI":         object.NewFloat(math.Pi),
		"pow":        object.NewBuiltin("pow", Pow),
		"quadratic":  object.NewBuiltin("quadratic", Quadratic),
		"round":      object.NewBuiltin("round", Round),
		"sin":        object.NewBuiltin("sin", Sin),
		"sqrt":       object.NewBuiltin("sqrt", Sqrt),
		"tan":        object.NewBuiltin("tan", Tan),
		"TAU":        object.NewFloat(2 * math.Pi),
	}
}
