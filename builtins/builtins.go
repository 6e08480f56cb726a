// Package builtins defines the default set of built-in functions.
package builtins

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/tcc-lang/tcc/object"
)

// output receives print and say text. Swap it with SetOutput to capture
// script output.
var output io.Writer = os.Stdout

// SetOutput redirects print and say.
func SetOutput(w io.Writer) {
	output = w
}

// Print writes its arguments space-separated, followed by a newline.
func Print(ctx context.Context, args ...object.Object) (object.Object, error) {
	values := make([]interface{}, len(args))
	for i, arg := range args {
		values[i] = object.PrintableValue(arg)
	}
	fmt.Fprintln(output, values...)
	return object.Nil, nil
}

func Len(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case object.Container:
		return arg.Len(), nil
	default:
		return nil, fmt.Errorf("type error: len() unsupported argument (%s given)", args[0].Type())
	}
}

func Sprintf(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) < 1 || len(args) > 64 {
		return nil, fmt.Errorf("sprintf: expected 1-64 arguments, got %d", len(args))
	}
	fs, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	fmtArgs := make([]interface{}, len(args)-1)
	for i, v := range args[1:] {
		fmtArgs[i] = v.Interface()
	}
	return object.NewString(fmt.Sprintf(fs, fmtArgs...)), nil
}

// Error creates an error value without raising it.
func Error(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) < 1 || len(args) > 64 {
		return nil, fmt.Errorf("error: expected 1-64 arguments, got %d", len(args))
	}
	fs, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	fmtArgs := make([]interface{}, len(args)-1)
	for i, v := range args[1:] {
		fmtArgs[i] = v.Interface()
	}
	return object.NewError(fmt.Errorf(fs, fmtArgs...)), nil
}

func String(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("string: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return object.NewString(""), nil
	}
	switch arg := args[0].(type) {
	case *object.String:
		return arg, nil
	default:
		if s, ok := arg.(fmt.Stringer); ok {
			return object.NewString(s.String()), nil
		}
		return object.NewString(args[0].Inspect()), nil
	}
}

func Type(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type: expected 1 argument, got %d", len(args))
	}
	return object.NewString(string(args[0].Type())), nil
}

func Assert(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("assert: expected 1-2 arguments, got %d", len(args))
	}
	if !args[0].IsTruthy() {
		if len(args) == 2 {
			switch arg := args[1].(type) {
			case *object.String:
				return nil, fmt.Errorf("%s", arg.Value())
			default:
				return nil, fmt.Errorf("%s", args[1].Inspect())
			}
		}
		return nil, fmt.Errorf("assertion failed")
	}
	return object.Nil, nil
}

func Bool(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("bool: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return object.False, nil
	}
	return object.NewBool(args[0].IsTruthy()), nil
}

func Int(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("int: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return object.NewInt(0), nil
	}
	switch obj := args[0].(type) {
	case *object.Int:
		return obj, nil
	case *object.Float:
		return object.NewInt(int64(obj.Value())), nil
	case *object.String:
		if i, err := strconv.ParseInt(obj.Value(), 0, 64); err == nil {
			return object.NewInt(i), nil
		}
		return nil, fmt.Errorf("value error: invalid literal for int(): %q", obj.Value())
	default:
		return nil, fmt.Errorf("type error: int() unsupported argument (%s given)", args[0].Type())
	}
}

func Float(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("float: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return object.NewFloat(0), nil
	}
	switch obj := args[0].(type) {
	case *object.Int:
		return object.NewFloat(float64(obj.Value())), nil
	case *object.Float:
		return obj, nil
	case *object.String:
		if f, err := strconv.ParseFloat(obj.Value(), 64); err == nil {
			return object.NewFloat(f), nil
		}
		return nil, fmt.Errorf("value error: invalid literal for float(): %q", obj.Value())
	default:
		return nil, fmt.Errorf("type error: float() unsupported argument (%s given)", args[0].Type())
	}
}

func Sorted(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sorted: expected 1 argument, got %d", len(args))
	}
	list, ok := args[0].(*object.List)
	if !ok {
		return nil, fmt.Errorf("type error: sorted() expected a list (%s given)", args[0].Type())
	}
	items := make([]object.Object, len(list.Value()))
	copy(items, list.Value())
	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		comparable, ok := items[i].(object.Comparable)
		if !ok {
			sortErr = fmt.Errorf("type error: expected a comparable object (got %s)", items[i].Type())
			return false
		}
		result, err := comparable.Compare(items[j])
		if err != nil {
			sortErr = err
			return false
		}
		return result < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return object.NewList(items), nil
}

func Reversed(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("reversed: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.List:
		items := arg.Value()
		result := make([]object.Object, len(items))
		for i, item := range items {
			result[len(items)-1-i] = item
		}
		return object.NewList(result), nil
	case *object.String:
		runes := []rune(arg.Value())
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return object.NewString(string(runes)), nil
	default:
		return nil, fmt.Errorf("type error: reversed() unsupported argument (%s given)", args[0].Type())
	}
}

// Range returns [0, n) or [start, stop) as a list of ints.
func Range(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("range: expected 1-2 arguments, got %d", len(args))
	}
	var start, stop int64
	var err error
	if len(args) == 1 {
		if stop, err = object.AsInt(args[0]); err != nil {
			return nil, err
		}
	} else {
		if start, err = object.AsInt(args[0]); err != nil {
			return nil, err
		}
		if stop, err = object.AsInt(args[1]); err != nil {
			return nil, err
		}
	}
	var items []object.Object
	for i := start; i < stop; i++ {
		items = append(items, object.NewInt(i))
	}
	return object.NewList(items), nil
}

func Builtins() map[string]object.Object {
	return map[string]object.Object{
		"assert":   object.NewBuiltin("assert", Assert),
		"bool":     object.NewBuiltin("bool", Bool),
		"error":    object.NewBuiltin("error", Error),
		"float":    object.NewBuiltin("float", Float),
		"int":      object.NewBuiltin("int", Int),
		"len":      object.NewBuiltin("len", Len),
		"print":    object.NewBuiltin("print", Print),
		"range":    object.NewBuiltin("range", Range),
		"reversed": object.NewBuiltin("reversed", Reversed),
		"say":      object.NewBuiltin("say", Print),
		"sorted":   object.NewBuiltin("sorted", Sorted),
		"sprintf":  object.NewBuiltin("sprintf", Sprintf),
		"string":   object.NewBuiltin("string", String),
		"type":     object.NewBuiltin("type", Type),
	}
}
