// Package stats provides the statistics builtins available to scripts. All
// functions take script lists of numbers. Variance and standard deviation
// are population measures.
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tcc-lang/tcc/object"
)

func listArg(name string, args []object.Object) ([]float64, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("stats.%s: expected 1 argument, got %d", name, len(args))
	}
	values, err := object.AsFloatSlice(args[0])
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("value error: stats.%s: list must not be empty", name)
	}
	return values, nil
}

func twoListArgs(name string, args []object.Object) ([]float64, []float64, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("stats.%s: expected 2 arguments, got %d", name, len(args))
	}
	xs, err := object.AsFloatSlice(args[0])
	if err != nil {
		return nil, nil, err
	}
	ys, err := object.AsFloatSlice(args[1])
	if err != nil {
		return nil, nil, err
	}
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("value error: stats.%s: lists must have the same length", name)
	}
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("value error: stats.%s: lists must not be empty", name)
	}
	return xs, ys, nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func Mean(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := listArg("mean", args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(mean(values)), nil
}

func Median(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := listArg("median", args)
	if err != nil {
		return nil, err
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return object.NewFloat((sorted[n/2-1] + sorted[n/2]) / 2), nil
	}
	return object.NewFloat(sorted[n/2]), nil
}

func Variance(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := listArg("variance", args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(variance(values)), nil
}

func Stddev(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := listArg("stddev", args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(math.Sqrt(variance(values))), nil
}

// Correlation returns the Pearson correlation coefficient of two lists, or
// zero when either list has no variation.
func Correlation(ctx context.Context, args ...object.Object) (object.Object, error) {
	xs, ys, err := twoListArgs("correlation", args)
	if err != nil {
		return nil, err
	}
	meanX := mean(xs)
	meanY := mean(ys)
	var numerator, sumX, sumY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		sumX += dx * dx
		sumY += dy * dy
	}
	denominator := math.Sqrt(sumX * sumY)
	if denominator == 0 {
		return object.NewFloat(0), nil
	}
	return object.NewFloat(numerator / denominator), nil
}

// LinearRegression fits y = m*x + b by least squares and returns [m, b].
func LinearRegression(ctx context.Context, args ...object.Object) (object.Object, error) {
	xs, ys, err := twoListArgs("linearRegression", args)
	if err != nil {
		return nil, err
	}
	meanX := mean(xs)
	meanY := mean(ys)
	var numerator, denominator float64
	for i := range xs {
		dx := xs[i] - meanX
		numerator += dx * (ys[i] - meanY)
		denominator += dx * dx
	}
	var m float64
	if denominator != 0 {
		m = numerator / denominator
	}
	b := meanY - m*meanX
	return object.NewFloatList([]float64{m, b}), nil
}

// Module returns the stats module object.
func Module() *object.Module {
	return object.NewBuiltinsModule("stats", Builtins())
}

// Builtins returns the stats functions by bare name.
func Builtins() map[string]object.Object {
	return map[string]object.Object{
		"correlation":      object.NewBuiltin("correlation", Correlation),
		"linearRegression": object.NewBuiltin("linearRegression", LinearRegression),
		"mean":             object.NewBuiltin("mean", Mean),
		"median":           object.NewBuiltin("median", Median),
		"stddev":           object.NewBuiltin("stddev", Stddev),
		"variance":         object.NewBuiltin("variance", Variance),
	}
}
