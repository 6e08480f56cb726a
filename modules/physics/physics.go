// Package physics provides the physics builtins available to scripts. The
// trajectory functions simulate motion numerically with a fixed timestep and
// return the sampled points as a list of [a, b] pairs.
package physics

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tcc-lang/tcc/object"
)

// G is the gravitational constant.
const G = 6.67430e-11

// Simulation parameters. The host can override these, typically from
// configuration, before any scripts run.
var (
	// Gravity is the downward acceleration applied by the trajectory
	// simulations, in m/s^2.
	Gravity = -9.81

	// Timestep is the simulation timestep in seconds.
	Timestep = 0.01

	// MaxSimTime caps simulated time so bad inputs cannot loop forever.
	MaxSimTime = 1000.0
)

// logger receives trajectory summaries. It is a no-op unless the host
// installs a logger with SetLogger.
var logger = zerolog.Nop()

// SetLogger installs the logger used for trajectory summaries.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// pairList converts sampled points into a script list of [a, b] pairs.
func pairList(points [][2]float64) *object.List {
	items := make([]object.Object, 0, len(points))
	for _, p := range points {
		items = append(items, object.NewFloatList([]float64{p[0], p[1]}))
	}
	return object.NewList(items)
}

func floatArgs(name string, want int, args []object.Object) ([]float64, error) {
	if len(args) != want {
		plural := "s"
		if want == 1 {
			plural = ""
		}
		return nil, fmt.Errorf("physics.%s: expected %d argument%s, got %d",
			name, want, plural, len(args))
	}
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := object.AsFloat(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Projectile simulates projectile motion for an initial speed (m/s) and
// launch angle (degrees), returning the [x, y] trajectory.
func Projectile(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, fmt.Errorf("physics.projectile: expected 2 or 3 arguments, got %d", len(args))
	}
	v0, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	angleDeg, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	var height float64
	if len(args) == 3 {
		if height, err = object.AsFloat(args[2]); err != nil {
			return nil, err
		}
	}
	angleRad := angleDeg * math.Pi / 180
	vx := v0 * math.Cos(angleRad)
	vy := v0 * math.Sin(angleRad)

	var trajectory [][2]float64
	var maxHeight, maxRange float64
	t := 0.0
	x, y := 0.0, height
	for y >= 0 {
		trajectory = append(trajectory, [2]float64{x, y})
		if y > maxHeight {
			maxHeight = y
		}
		if x > maxRange {
			maxRange = x
		}
		x = vx * t
		y = height + vy*t + 0.5*Gravity*t*t
		t += Timestep
		if t > MaxSimTime {
			break
		}
	}
	logger.Info().
		Float64("v0", v0).
		Float64("angle", angleDeg).
		Float64("max_height", maxHeight).
		Float64("range", maxRange).
		Msg("projectile")
	return pairList(trajectory), nil
}

// Orbit simulates one circular orbit sampled at 1 s intervals for the given
// radius (m) and central mass (kg), returning the [x, y] trajectory.
func Orbit(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("orbit", 2, args)
	if err != nil {
		return nil, err
	}
	radius, mass := values[0], values[1]
	if radius <= 0 {
		return nil, fmt.Errorf("value error: physics.orbit: radius must be positive, got %v", radius)
	}
	v := math.Sqrt(G * mass / radius)
	angularVelocity := v / radius

	const timestep = 1.0
	const duration = 100.0
	var trajectory [][2]float64
	angle := 0.0
	for t := 0.0; t < duration; t += timestep {
		trajectory = append(trajectory, [2]float64{
			radius * math.Cos(angle),
			radius * math.Sin(angle),
		})
		angle += angularVelocity * timestep
	}
	logger.Info().
		Float64("radius", radius).
		Float64("orbital_speed", v).
		Msg("orbit")
	return pairList(trajectory), nil
}

// Freefall simulates a drop from the given height, returning the [t, y]
// trajectory.
func Freefall(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("freefall", 1, args)
	if err != nil {
		return nil, err
	}
	height := values[0]
	var trajectory [][2]float64
	t := 0.0
	y := height
	for y >= 0 {
		trajectory = append(trajectory, [2]float64{t, y})
		y = height + 0.5*Gravity*t*t
		t += Timestep
		if t > MaxSimTime {
			break
		}
	}
	fallTime := 0.0
	if n := len(trajectory); n > 0 {
		fallTime = trajectory[n-1][0]
	}
	logger.Info().
		Float64("height", height).
		Float64("fall_time", fallTime).
		Msg("freefall")
	return pairList(trajectory), nil
}

// Spring simulates harmonic motion for an amplitude (m) and frequency (Hz)
// over ten seconds, returning the [t, x] trajectory.
func Spring(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("spring", 2, args)
	if err != nil {
		return nil, err
	}
	amplitude, frequency := values[0], values[1]
	omega := 2 * math.Pi * frequency

	const duration = 10.0
	var trajectory [][2]float64
	for t := 0.0; t <= duration; t += Timestep {
		trajectory = append(trajectory, [2]float64{t, amplitude * math.Cos(omega*t)})
	}
	return pairList(trajectory), nil
}

// Pendulum simulates a pendulum of the given length (m) released from the
// given angle (degrees), using the small-angle approximation. Returns the
// [t, angle] trajectory in degrees.
func Pendulum(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("pendulum", 2, args)
	if err != nil {
		return nil, err
	}
	length, angle0Deg := values[0], values[1]
	if length <= 0 {
		return nil, fmt.Errorf("value error: physics.pendulum: length must be positive, got %v", length)
	}
	omega := math.Sqrt(-Gravity / length)

	const duration = 10.0
	var trajectory [][2]float64
	for t := 0.0; t <= duration; t += Timestep {
		trajectory = append(trajectory, [2]float64{t, angle0Deg * math.Cos(omega*t)})
	}
	return pairList(trajectory), nil
}

// Velocity returns displacement / time.
func Velocity(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("velocity", 2, args)
	if err != nil {
		return nil, err
	}
	if values[1] == 0 {
		return nil, fmt.Errorf("value error: physics.velocity: time must be nonzero")
	}
	return object.NewFloat(values[0] / values[1]), nil
}

// Acceleration returns (vFinal - vInitial) / time.
func Acceleration(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("acceleration", 3, args)
	if err != nil {
		return nil, err
	}
	if values[2] == 0 {
		return nil, fmt.Errorf("value error: physics.acceleration: time must be nonzero")
	}
	return object.NewFloat((values[0] - values[1]) / values[2]), nil
}

// KineticEnergy returns 0.5 * m * v^2.
func KineticEnergy(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("kineticEnergy", 2, args)
	if err != nil {
		return nil, err
	}
	mass, velocity := values[0], values[1]
	return object.NewFloat(0.5 * mass * velocity * velocity), nil
}

// PotentialEnergy returns m * g * h with g = 9.81.
func PotentialEnergy(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("potentialEnergy", 2, args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(values[0] * -Gravity * values[1]), nil
}

// Momentum returns m * v.
func Momentum(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("momentum", 2, args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(values[0] * values[1]), nil
}

// Force returns m * a.
func Force(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("force", 2, args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(values[0] * values[1]), nil
}

// Work returns force * distance.
func Work(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("work", 2, args)
	if err != nil {
		return nil, err
	}
	return object.NewFloat(values[0] * values[1]), nil
}

// Power returns work / time.
func Power(ctx context.Context, args ...object.Object) (object.Object, error) {
	values, err := floatArgs("power", 2, args)
	if err != nil {
		return nil, err
	}
	if values[1] == 0 {
		return nil, fmt.Errorf("value error: physics.power: time must be nonzero")
	}
	return object.NewFloat(values[0] / values[1]), nil
}

// Module returns the physics module object.
func Module() *object.Module {
	return object.NewBuiltinsModule("physics", Builtins())
}

// Builtins returns the physics functions and constants by bare name.
func Builtins() map[string]object.Object {
	return map[string]object.Object{
		"acceleration":    object.NewBuiltin("acceleration", Acceleration),
		"force":           object.NewBuiltin("force", Force),
		"freefall":        object.NewBuiltin("freefall", Freefall),
		"G":               object.NewFloat(G),
		"GRAVITY":         object.NewFloat(Gravity),
		"kineticEnergy":   object.NewBuiltin("kineticEnergy", KineticEnergy),
		"momentum":        object.NewBuiltin("momentum", Momentum),
		"orbit":           object.NewBuiltin("orbit", Orbit),
		"pendulum":        object.NewBuiltin("pendulum", Pendulum),
		"potentialEnergy": object.NewBuiltin("potentialEnergy", PotentialEnergy),
		"power":           object.NewBuiltin("power", Power),
		"projectile":      object.NewBuiltin("projectile", Projectile),
		"spring":          object.NewBuiltin("spring", Spring),
		"velocity":        object.NewBuiltin("velocity", Velocity),
		"work":            object.NewBuiltin("work", Work),
	}
}
