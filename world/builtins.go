package world

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/op"
)

// sceneObjectArg converts a command's object argument, rejecting
// non-objects and destroyed objects.
func sceneObjectArg(cmd string, arg object.Object) (*SceneObject, error) {
	obj, ok := arg.(*SceneObject)
	if !ok {
		return nil, object.NewTypeError("type error: %s expects a scene object (got %s)",
			cmd, arg.Type())
	}
	if obj.IsDestroyed() {
		return nil, object.NewEvalError("eval error: %s: object %s is destroyed", cmd, obj.id)
	}
	return obj, nil
}

func vecArg(cmd string, args []object.Object) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := object.AsFloat(args[i])
		if err != nil {
			return v, object.NewTypeError("type error: %s expects numeric coordinates (got %s)",
				cmd, args[i].Type())
		}
		v[i] = f
	}
	return v, nil
}

func argCount(cmd string, want int, args []object.Object) error {
	if len(args) != want {
		return object.NewArgsError("args error: %s takes %d argument(s) (%d given)",
			cmd, want, len(args))
	}
	return nil
}

// playerRef backs the "player" global. Calling it is the placement
// command; attribute access reads and writes the world's player state,
// so scripts can do both "player at 0, 0, 0" and "player.armor = 30".
type playerRef struct {
	world *World
}

var _ object.Callable = (*playerRef)(nil)

func (r *playerRef) Call(ctx context.Context, args ...object.Object) (object.Object, error) {
	return r.world.builtinPlayer(ctx, args...)
}

func (r *playerRef) Type() object.Type {
	return PLAYER
}

func (r *playerRef) Inspect() string {
	return r.world.Player().Inspect()
}

func (r *playerRef) String() string {
	return r.Inspect()
}

func (r *playerRef) Interface() interface{} {
	return r.world.Player().Interface()
}

func (r *playerRef) Equals(other object.Object) bool {
	if otherRef, ok := other.(*playerRef); ok {
		return r.world == otherRef.world
	}
	return r.world.Player().Equals(other)
}

func (r *playerRef) GetAttr(name string) (object.Object, bool) {
	return r.world.Player().GetAttr(name)
}

func (r *playerRef) SetAttr(name string, value object.Object) error {
	return r.world.Player().SetAttr(name, value)
}

func (r *playerRef) IsTruthy() bool {
	return r.world.Player().IsTruthy()
}

func (r *playerRef) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return r.world.Player().RunOperation(opType, right)
}

// Builtins returns the world command functions, each bound to w. The
// compiler emits command statements as calls to these by name.
func Builtins(w *World) map[string]object.Object {
	return map[string]object.Object{
		"create3d":    object.NewBuiltin("create3d", w.builtinCreate3d),
		"scale3d":     object.NewBuiltin("scale3d", w.builtinScale3d),
		"color3d":     object.NewBuiltin("color3d", w.builtinColor3d),
		"collision3d": object.NewBuiltin("collision3d", w.builtinCollision3d),
		"physics3d":   object.NewBuiltin("physics3d", w.builtinPhysics3d),
		"velocity3d":  object.NewBuiltin("velocity3d", w.builtinVelocity3d),
		"ground":      object.NewBuiltin("ground", w.builtinGround),
		"platform":    object.NewBuiltin("platform", w.builtinPlatform),
		"spawn":       object.NewBuiltin("spawn", w.builtinSpawn),
		"move":        object.NewBuiltin("move", w.builtinMove),
		"rotate":      object.NewBuiltin("rotate", w.builtinRotate),
		"destroy":     object.NewBuiltin("destroy", w.builtinDestroy),
		"npc":         object.NewBuiltin("npc", w.builtinNpc),
		"dialogue":    object.NewBuiltin("dialogue", w.builtinDialogue),
		"talk":        object.NewBuiltin("talk", w.builtinTalk),
		"player":      &playerRef{world: w},
		"speed":       object.NewBuiltin("speed", w.builtinSpeed),
		"health":      object.NewBuiltin("health", w.builtinHealth),
		"jump":        object.NewBuiltin("jump", w.builtinJump),
		"camera":      object.NewBuiltin("camera", w.builtinCamera),
		"lookat":      object.NewBuiltin("lookat", w.builtinLookat),
	}
}

// create3d kind at x, y, z size s color "c"
func (w *World) builtinCreate3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("create3d", 6, args); err != nil {
		return nil, err
	}
	kind, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := vecArg("create3d", args[1:4])
	if err != nil {
		return nil, err
	}
	size, err := object.AsFloat(args[4])
	if err != nil {
		return nil, err
	}
	color, err := object.AsString(args[5])
	if err != nil {
		return nil, err
	}
	return w.CreateObject(kind, pos, size, color), nil
}

// scale3d obj to sx, sy, sz
func (w *World) builtinScale3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("scale3d", 4, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("scale3d", args[0])
	if err != nil {
		return nil, err
	}
	scale, err := vecArg("scale3d", args[1:4])
	if err != nil {
		return nil, err
	}
	obj.setScale(scale)
	w.logger.Info().Str("id", obj.id.String()).Floats64("scale", scale[:]).Msg("object scaled")
	return object.Nil, nil
}

// color3d obj to "color"
func (w *World) builtinColor3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("color3d", 2, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("color3d", args[0])
	if err != nil {
		return nil, err
	}
	color, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	obj.setColor(color)
	w.logger.Info().Str("id", obj.id.String()).Str("color", color).Msg("object colored")
	return object.Nil, nil
}

// collision3d on obj / collision3d off obj
func (w *World) builtinCollision3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("collision3d", 2, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("collision3d", args[0])
	if err != nil {
		return nil, err
	}
	enabled, err := object.AsBool(args[1])
	if err != nil {
		return nil, err
	}
	obj.setCollision(enabled)
	w.logger.Info().Str("id", obj.id.String()).Bool("collision", enabled).Msg("collision set")
	return object.Nil, nil
}

// physics3d on obj / physics3d off obj
func (w *World) builtinPhysics3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("physics3d", 2, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("physics3d", args[0])
	if err != nil {
		return nil, err
	}
	enabled, err := object.AsBool(args[1])
	if err != nil {
		return nil, err
	}
	obj.setPhysics(enabled)
	w.logger.Info().Str("id", obj.id.String()).Bool("physics", enabled).Msg("physics set")
	return object.Nil, nil
}

// velocity3d obj to vx, vy, vz
func (w *World) builtinVelocity3d(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("velocity3d", 4, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("velocity3d", args[0])
	if err != nil {
		return nil, err
	}
	velocity, err := vecArg("velocity3d", args[1:4])
	if err != nil {
		return nil, err
	}
	obj.setVelocity(velocity)
	w.logger.Info().Str("id", obj.id.String()).Floats64("velocity", velocity[:]).Msg("velocity set")
	return object.Nil, nil
}

// ground at y color "c" size s
func (w *World) builtinGround(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("ground", 3, args); err != nil {
		return nil, err
	}
	y, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	color, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	size, err := object.AsFloat(args[2])
	if err != nil {
		return nil, err
	}
	return w.CreateGround(y, color, size), nil
}

// platform at x, y, z size w, h, d
func (w *World) builtinPlatform(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("platform", 6, args); err != nil {
		return nil, err
	}
	pos, err := vecArg("platform", args[0:3])
	if err != nil {
		return nil, err
	}
	dimensions, err := vecArg("platform", args[3:6])
	if err != nil {
		return nil, err
	}
	return w.CreatePlatform(pos, dimensions), nil
}

// spawn kind at x, y, z
func (w *World) builtinSpawn(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("spawn", 4, args); err != nil {
		return nil, err
	}
	kind, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := vecArg("spawn", args[1:4])
	if err != nil {
		return nil, err
	}
	return w.Spawn(kind, pos), nil
}

// move obj to x, y, z
func (w *World) builtinMove(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("move", 4, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("move", args[0])
	if err != nil {
		return nil, err
	}
	pos, err := vecArg("move", args[1:4])
	if err != nil {
		return nil, err
	}
	obj.setPosition(pos)
	w.logger.Info().Str("id", obj.id.String()).Floats64("at", pos[:]).Msg("object moved")
	return object.Nil, nil
}

// rotate obj by rx, ry, rz
func (w *World) builtinRotate(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("rotate", 4, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("rotate", args[0])
	if err != nil {
		return nil, err
	}
	rotation, err := vecArg("rotate", args[1:4])
	if err != nil {
		return nil, err
	}
	obj.setRotation(rotation)
	w.logger.Info().Str("id", obj.id.String()).Floats64("rotation", rotation[:]).Msg("object rotated")
	return object.Nil, nil
}

// destroy obj
func (w *World) builtinDestroy(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("destroy", 1, args); err != nil {
		return nil, err
	}
	obj, err := sceneObjectArg("destroy", args[0])
	if err != nil {
		return nil, err
	}
	if err := w.Destroy(obj); err != nil {
		return nil, err
	}
	return object.Nil, nil
}

// npc "Name" at x, y, z color "c"
func (w *World) builtinNpc(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("npc", 5, args); err != nil {
		return nil, err
	}
	name, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	pos, err := vecArg("npc", args[1:4])
	if err != nil {
		return nil, err
	}
	color, err := object.AsString(args[4])
	if err != nil {
		return nil, err
	}
	return w.DeclareNPC(name, pos, color), nil
}

// dialogue "Name" says "text"
func (w *World) builtinDialogue(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("dialogue", 2, args); err != nil {
		return nil, err
	}
	name, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	text, err := object.AsString(args[1])
	if err != nil {
		return nil, err
	}
	if err := w.AddDialogue(name, text); err != nil {
		return nil, err
	}
	return object.Nil, nil
}

// talk to "Name"
func (w *World) builtinTalk(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("talk", 1, args); err != nil {
		return nil, err
	}
	name, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	if err := w.Talk(name); err != nil {
		return nil, err
	}
	return object.Nil, nil
}

// player at x, y, z
func (w *World) builtinPlayer(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("player", 3, args); err != nil {
		return nil, err
	}
	pos, err := vecArg("player", args[0:3])
	if err != nil {
		return nil, err
	}
	w.PlacePlayer(pos)
	return object.Nil, nil
}

// speed is v
func (w *World) builtinSpeed(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("speed", 1, args); err != nil {
		return nil, err
	}
	v, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	w.SetPlayerSpeed(v)
	return object.Nil, nil
}

// health is/add/subtract v
func (w *World) builtinHealth(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("health", 2, args); err != nil {
		return nil, err
	}
	mode, err := object.AsString(args[0])
	if err != nil {
		return nil, err
	}
	v, err := object.AsFloat(args[1])
	if err != nil {
		return nil, err
	}
	if err := w.AdjustHealth(mode, v); err != nil {
		return nil, err
	}
	return object.Nil, nil
}

// jump / jump force f
func (w *World) builtinJump(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("jump", 1, args); err != nil {
		return nil, err
	}
	force, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	w.Jump(force)
	return object.Nil, nil
}

// camera at x, y, z
func (w *World) builtinCamera(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("camera", 3, args); err != nil {
		return nil, err
	}
	pos, err := vecArg("camera", args[0:3])
	if err != nil {
		return nil, err
	}
	w.SetCamera(pos)
	return object.Nil, nil
}

// lookat x, y, z
func (w *World) builtinLookat(ctx context.Context, args ...object.Object) (object.Object, error) {
	if err := argCount("lookat", 3, args); err != nil {
		return nil, err
	}
	target, err := vecArg("lookat", args[0:3])
	if err != nil {
		return nil, err
	}
	w.SetCameraTarget(target)
	return object.Nil, nil
}
