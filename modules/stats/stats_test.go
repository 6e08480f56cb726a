package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/object"
)

func floatList(values ...float64) *object.List {
	return object.NewFloatList(values)
}

func TestMean(t *testing.T) {
	ctx := context.Background()
	result, err := Mean(ctx, floatList(1, 2, 3, 4, 5))
	require.NoError(t, err)
	require.Equal(t, 3.0, result.(*object.Float).Value())

	_, err = Mean(ctx, floatList())
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be empty")

	_, err = Mean(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "stats.mean: expected 1 argument, got 0")
}

func TestMedian(t *testing.T) {
	ctx := context.Background()

	// Odd length takes the middle value.
	result, err := Median(ctx, floatList(5, 1, 3))
	require.NoError(t, err)
	require.Equal(t, 3.0, result.(*object.Float).Value())

	// Even length averages the two middle values.
	result, err = Median(ctx, floatList(4, 1, 3, 2))
	require.NoError(t, err)
	require.Equal(t, 2.5, result.(*object.Float).Value())

	// Input order is preserved.
	input := floatList(5, 1, 3)
	_, err = Median(ctx, input)
	require.NoError(t, err)
	got, err := object.AsFloatSlice(input)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 1, 3}, got)
}

func TestVarianceAndStddev(t *testing.T) {
	ctx := context.Background()

	// Population variance of [2, 4, 4, 4, 5, 5, 7, 9] is 4.
	data := floatList(2, 4, 4, 4, 5, 5, 7, 9)
	result, err := Variance(ctx, data)
	require.NoError(t, err)
	require.InDelta(t, 4.0, result.(*object.Float).Value(), 1e-9)

	result, err = Stddev(ctx, data)
	require.NoError(t, err)
	require.InDelta(t, 2.0, result.(*object.Float).Value(), 1e-9)

	// A single value has zero variance.
	result, err = Variance(ctx, floatList(42))
	require.NoError(t, err)
	require.Equal(t, 0.0, result.(*object.Float).Value())
}

func TestCorrelation(t *testing.T) {
	ctx := context.Background()

	result, err := Correlation(ctx, floatList(1, 2, 3, 4), floatList(2, 4, 6, 8))
	require.NoError(t, err)
	require.InDelta(t, 1.0, result.(*object.Float).Value(), 1e-9)

	result, err = Correlation(ctx, floatList(1, 2, 3, 4), floatList(8, 6, 4, 2))
	require.NoError(t, err)
	require.InDelta(t, -1.0, result.(*object.Float).Value(), 1e-9)

	// Constant input yields zero rather than an error.
	result, err = Correlation(ctx, floatList(1, 2, 3), floatList(5, 5, 5))
	require.NoError(t, err)
	require.Equal(t, 0.0, result.(*object.Float).Value())

	_, err = Correlation(ctx, floatList(1, 2), floatList(1, 2, 3))
	require.Error(t, err)
	require.Contains(t, err.Error(), "same length")
}

func TestLinearRegression(t *testing.T) {
	ctx := context.Background()

	// y = 2x + 1
	result, err := LinearRegression(ctx, floatList(1, 2, 3, 4), floatList(3, 5, 7, 9))
	require.NoError(t, err)
	fit, err := object.AsFloatSlice(result)
	require.NoError(t, err)
	require.Len(t, fit, 2)
	require.InDelta(t, 2.0, fit[0], 1e-9)
	require.InDelta(t, 1.0, fit[1], 1e-9)
}

func TestModuleContents(t *testing.T) {
	mod := Module()
	names := []string{"mean", "median", "variance", "stddev", "correlation", "linearRegression"}
	for _, name := range names {
		_, found := mod.GetAttr(name)
		require.True(t, found, "missing stats module attribute %q", name)
	}
}
