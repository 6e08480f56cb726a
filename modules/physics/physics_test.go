package physics

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/object"
)

func points(t *testing.T, obj object.Object) [][]float64 {
	t.Helper()
	list, err := object.AsList(obj)
	require.NoError(t, err)
	var result [][]float64
	for _, item := range list.Value() {
		pair, err := object.AsFloatSlice(item)
		require.NoError(t, err)
		require.Len(t, pair, 2)
		result = append(result, pair)
	}
	return result
}

func TestProjectile(t *testing.T) {
	ctx := context.Background()
	result, err := Projectile(ctx, object.NewInt(20), object.NewInt(45))
	require.NoError(t, err)
	traj := points(t, result)
	require.NotEmpty(t, traj)

	// Launched from the ground, so the first sample is the origin.
	require.Equal(t, []float64{0, 0}, traj[0])

	// Analytic range for v0=20 m/s at 45 degrees is v0^2/g ~= 40.77 m.
	last := traj[len(traj)-1]
	require.InDelta(t, 40.77, last[0], 0.5)

	// Analytic max height is v0^2 sin^2(45) / 2g ~= 10.19 m.
	var maxHeight float64
	for _, p := range traj {
		if p[1] > maxHeight {
			maxHeight = p[1]
		}
	}
	require.InDelta(t, 10.19, maxHeight, 0.1)
}

func TestProjectileWithHeight(t *testing.T) {
	ctx := context.Background()
	result, err := Projectile(ctx, object.NewInt(10), object.NewInt(30), object.NewInt(50))
	require.NoError(t, err)
	traj := points(t, result)
	require.NotEmpty(t, traj)
	require.Equal(t, []float64{0, 50}, traj[0])

	_, err = Projectile(ctx, object.NewInt(10))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 2 or 3 arguments")
}

func TestOrbit(t *testing.T) {
	ctx := context.Background()
	// Low Earth orbit: r ~= 6.771e6 m, M = 5.972e24 kg.
	result, err := Orbit(ctx, object.NewFloat(6.771e6), object.NewFloat(5.972e24))
	require.NoError(t, err)
	traj := points(t, result)
	require.Len(t, traj, 100)

	// Every sample stays on the circle.
	for _, p := range traj {
		r := math.Hypot(p[0], p[1])
		require.InDelta(t, 6.771e6, r, 1.0)
	}

	_, err = Orbit(ctx, object.NewInt(-1), object.NewFloat(5.972e24))
	require.Error(t, err)
}

func TestFreefall(t *testing.T) {
	ctx := context.Background()
	result, err := Freefall(ctx, object.NewInt(100))
	require.NoError(t, err)
	traj := points(t, result)
	require.NotEmpty(t, traj)
	require.Equal(t, []float64{0, 100}, traj[0])

	// Fall time from 100 m is sqrt(2h/g) ~= 4.52 s.
	last := traj[len(traj)-1]
	require.InDelta(t, 4.52, last[0], 0.05)
}

func TestSpring(t *testing.T) {
	ctx := context.Background()
	result, err := Spring(ctx, object.NewInt(2), object.NewInt(1))
	require.NoError(t, err)
	traj := points(t, result)
	require.NotEmpty(t, traj)

	// x(0) = amplitude
	require.Equal(t, []float64{0, 2}, traj[0])
	for _, p := range traj {
		require.LessOrEqual(t, math.Abs(p[1]), 2.0+1e-9)
	}
}

func TestPendulum(t *testing.T) {
	ctx := context.Background()
	result, err := Pendulum(ctx, object.NewInt(1), object.NewInt(15))
	require.NoError(t, err)
	traj := points(t, result)
	require.NotEmpty(t, traj)
	require.Equal(t, []float64{0, 15}, traj[0])

	_, err = Pendulum(ctx, object.NewInt(0), object.NewInt(15))
	require.Error(t, err)
}

func TestScalarFormulas(t *testing.T) {
	ctx := context.Background()

	result, err := Velocity(ctx, object.NewInt(100), object.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, 10.0, result.(*object.Float).Value())

	_, err = Velocity(ctx, object.NewInt(100), object.NewInt(0))
	require.Error(t, err)

	result, err = KineticEnergy(ctx, object.NewInt(2), object.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, 9.0, result.(*object.Float).Value())

	result, err = PotentialEnergy(ctx, object.NewInt(2), object.NewInt(10))
	require.NoError(t, err)
	require.InDelta(t, 196.2, result.(*object.Float).Value(), 1e-9)

	result, err = Momentum(ctx, object.NewInt(3), object.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, 12.0, result.(*object.Float).Value())

	result, err = Force(ctx, object.NewInt(3), object.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, 12.0, result.(*object.Float).Value())

	result, err = Work(ctx, object.NewInt(5), object.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, 10.0, result.(*object.Float).Value())

	result, err = Power(ctx, object.NewInt(10), object.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, 5.0, result.(*object.Float).Value())
}

func TestModuleContents(t *testing.T) {
	mod := Module()
	names := []string{
		"projectile", "orbit", "freefall", "spring", "pendulum",
		"velocity", "kineticEnergy", "G", "GRAVITY",
	}
	for _, name := range names {
		_, found := mod.GetAttr(name)
		require.True(t, found, "missing physics module attribute %q", name)
	}
}
