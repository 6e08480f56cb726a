package tcc

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/world"
)

func TestEvalExpression(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(7), result)
}

func TestEvalScriptValue(t *testing.T) {
	ctx := context.Background()

	// A script with no trailing expression evaluates to nil.
	result, err := Eval(ctx, "var x = 1")
	require.NoError(t, err)
	require.Equal(t, object.Nil, result)

	result, err = Eval(ctx, `
var total = 0
var i = 1
while (i <= 10) {
	total += i
	i += 1
}
total`)
	require.NoError(t, err)
	require.Equal(t, object.NewInt(55), result)
}

func TestEvalFunctions(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, `
func area(w, h) {
	return w * h
}
area(6, 7)`)
	require.NoError(t, err)
	require.Equal(t, object.NewInt(42), result)
}

func TestMathBuiltins(t *testing.T) {
	ctx := context.Background()

	result, err := Eval(ctx, "sqrt(16)")
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(4), result)

	// The same functions are reachable as module attributes.
	result, err = Eval(ctx, "math.sqrt(16)")
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(4), result)

	result, err = Eval(ctx, "gcd(12, 18)")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(6), result)

	result, err = Eval(ctx, "mean([1.0, 2.0, 3.0])")
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(2), result)
}

func TestPhysicsBuiltins(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "len(projectile(20, 45)) > 0")
	require.NoError(t, err)
	require.Equal(t, object.True, result)

	result, err = Eval(ctx, "kineticEnergy(2, 3)")
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(9), result)
}

func TestLogicalOperatorValues(t *testing.T) {
	ctx := context.Background()

	// && and || evaluate to one of their operands, not to a bool.
	result, err := Eval(ctx, "var a = 1\nvar b = 2\na && b")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(2), result)

	result, err = Eval(ctx, "0 && 2")
	require.NoError(t, err)
	require.Equal(t, object.NewInt(0), result)

	result, err = Eval(ctx, `0 || "fallback"`)
	require.NoError(t, err)
	require.Equal(t, object.NewString("fallback"), result)

	result, err = Eval(ctx, `"value" || "fallback"`)
	require.NoError(t, err)
	require.Equal(t, object.NewString("value"), result)
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	ctx := context.Background()

	// The right side must not run when the left side decides.
	result, err := Eval(ctx, `
var hits = 0
func bump() {
	hits += 1
	return true
}
false && bump()
true || bump()
hits`)
	require.NoError(t, err)
	require.Equal(t, object.NewInt(0), result)
}

func TestCreate3dCommand(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `
create3d cube at 20, 2.5, 0 size 1
scale3d last3d to 0.5, 5, 50
`, WithWorld(w))
	require.NoError(t, err)

	objects := w.Objects()
	require.Len(t, objects, 1)
	obj := objects[0]
	require.Equal(t, "cube", obj.Kind())
	require.Equal(t, mgl64.Vec3{20, 2.5, 0}, obj.Position())
	require.Equal(t, mgl64.Vec3{0.5, 5, 50}, obj.Scale())
}

func TestCommandArgExpressions(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `
var i = 0
while (i < 5) {
	create3d cube at i * 2, 1, 0 size 1
	i += 1
}
`, WithWorld(w))
	require.NoError(t, err)

	objects := w.Objects()
	require.Len(t, objects, 5)
	require.Equal(t, 8.0, objects[4].Position().X())
}

func TestLast3dCursor(t *testing.T) {
	ctx := context.Background()
	w := world.New()

	// The cursor is nil before anything is created.
	result, err := Eval(ctx, "last3d", WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, object.Nil, result)

	result, err = Eval(ctx, `
create3d sphere at 0, 1, 0 size 2
last3d.kind`, WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, object.NewString("sphere"), result)
}

func TestNpcCommands(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	w := world.New(world.WithOutput(&out))
	_, err := Eval(ctx, `
npc "Enemy1" at 12, 1, 12
dialogue "Enemy1" says "You shall not pass"
dialogue "Enemy1" says "Turn back"
talk to "Enemy1"
`, WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, "Enemy1: You shall not pass\nEnemy1: Turn back\n", out.String())

	npc, found := w.NPC("Enemy1")
	require.True(t, found)
	require.Equal(t, world.DefaultNPCColor, npc.Color())
}

func TestDialogueUnknownNpc(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `dialogue "Ghost" says "boo"`, WithWorld(w))
	require.Error(t, err)
	require.Contains(t, err.Error(), `no npc named "Ghost"`)
}

func TestPlayerCommands(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `
player at 0, 2, 0
speed is 10
health is 80
health subtract 100
`, WithWorld(w))
	require.NoError(t, err)

	p := w.Player()
	require.True(t, p.Active())
	require.Equal(t, 10.0, p.Speed())
	require.Equal(t, 0.0, p.Health())
}

func TestPlayerAttributeAccess(t *testing.T) {
	ctx := context.Background()
	w := world.New()

	// The player global is both the placement command and the state
	// object, so attributes read and write through it.
	result, err := Eval(ctx, `
player at 0, 2, 0
player.armor = 30
player.ammo = 12
player.armor + player.ammo`, WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(42), result)
	require.Equal(t, 30.0, w.Player().Armor())
}

func TestPhysicsCommands(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `
create3d cube at 0, 5, 0 size 1
physics3d on last3d
velocity3d last3d to 1, -2, 3
`, WithWorld(w))
	require.NoError(t, err)

	obj := w.Objects()[0]
	require.True(t, obj.HasPhysics())
	require.Equal(t, mgl64.Vec3{1, -2, 3}, obj.Velocity())

	result, err := Eval(ctx, `
create3d sphere at 0, 1, 0 size 1
physics3d on last3d
physics3d off last3d
last3d.physics`, WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, object.False, result)
}

func TestJumpCommand(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, "player at 0, 0, 0\njump", WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, world.DefaultJumpForce, w.Player().VelocityY())

	_, err = Eval(ctx, "jump force 25", WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, 25.0, w.Player().VelocityY())
}

func TestNpcNameBinding(t *testing.T) {
	ctx := context.Background()
	w := world.New()

	// Declaring an NPC binds it to a global named after it, lowercased.
	result, err := Eval(ctx, `
npc "Guard" at 5, 0, 5
guard.x`, WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(5), result)

	result, err = Eval(ctx, `
npc "Guard" at 5, 0, 5
guard.name`, WithWorld(w))
	require.NoError(t, err)
	require.Equal(t, object.NewString("Guard"), result)
}

func TestCameraCommands(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `
camera at 0, 10, -10
lookat 0, 0, 0
`, WithWorld(w))
	require.NoError(t, err)

	pos, target := w.Camera()
	require.Equal(t, mgl64.Vec3{0, 10, -10}, pos)
	require.Equal(t, mgl64.Vec3{0, 0, 0}, target)
}

func TestDestroyCommand(t *testing.T) {
	ctx := context.Background()
	w := world.New()
	_, err := Eval(ctx, `
create3d cube at 0, 0, 0 size 1
var c = last3d
destroy c
scale3d c to 2, 2, 2
`, WithWorld(w))
	require.Error(t, err)
	require.Contains(t, err.Error(), "destroyed")
	require.Empty(t, w.Objects())
}

func TestCommandsRequireWorld(t *testing.T) {
	ctx := context.Background()
	_, err := Eval(ctx, `create3d cube at 0, 0, 0 size 1`)
	require.Error(t, err)
}

func TestWithGlobals(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "limit * 2", WithGlobals(map[string]object.Object{
		"limit": object.NewInt(21),
	}))
	require.NoError(t, err)
	require.Equal(t, object.NewInt(42), result)
}

func TestWithoutDefaultGlobals(t *testing.T) {
	ctx := context.Background()
	_, err := Eval(ctx, "sqrt(16)", WithoutDefaultGlobals())
	require.Error(t, err)
}

func TestCompileThenRun(t *testing.T) {
	ctx := context.Background()
	code, err := Compile(ctx, "2 ** 10")
	require.NoError(t, err)
	result, err := Run(ctx, code)
	require.NoError(t, err)
	require.Equal(t, object.NewFloat(1024), result)
}

func TestSyntaxErrorsIncludeFilename(t *testing.T) {
	ctx := context.Background()
	_, err := Compile(ctx, "var = 1", WithFilename("demo.tcc"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "demo.tcc")
}
