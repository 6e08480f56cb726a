// Package world holds the implicit game-world state that scripts build up:
// scene objects, named NPCs, the player, and the camera. A World is created
// by the host, passed to the engine, and inspected after scripts run.
package world

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/tcc-lang/tcc/object"
)

// DefaultGroundSize is used when a ground command omits a size.
const DefaultGroundSize = 100.0

// World is the registry of everything scripts create. One script runs
// against a World at a time; the mutex lets host programs inspect the
// world while a script is running.
type World struct {
	mu           sync.RWMutex
	logger       zerolog.Logger
	out          io.Writer
	objects      []*SceneObject
	objectsByID  map[uuid.UUID]*SceneObject
	npcs         map[string]*NPC
	npcOrder     []string
	player       *Player
	cameraPos    mgl64.Vec3
	cameraTarget mgl64.Vec3
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for world mutation events.
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// WithOutput sets the writer used by the talk command.
func WithOutput(out io.Writer) Option {
	return func(w *World) {
		w.out = out
	}
}

// New creates an empty world.
func New(options ...Option) *World {
	w := &World{
		logger:      zerolog.Nop(),
		out:         os.Stdout,
		objectsByID: map[uuid.UUID]*SceneObject{},
		npcs:        map[string]*NPC{},
		player:      newPlayer(),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Objects returns all live scene objects in creation order.
func (w *World) Objects() []*SceneObject {
	w.mu.RLock()
	defer w.mu.RUnlock()
	objects := make([]*SceneObject, 0, len(w.objects))
	for _, obj := range w.objects {
		if !obj.IsDestroyed() {
			objects = append(objects, obj)
		}
	}
	return objects
}

// Object looks up a scene object by ID.
func (w *World) Object(id uuid.UUID) (*SceneObject, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, found := w.objectsByID[id]
	return obj, found
}

// NPC looks up an NPC by name.
func (w *World) NPC(name string) (*NPC, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	npc, found := w.npcs[name]
	return npc, found
}

// NPCs returns all NPCs in declaration order.
func (w *World) NPCs() []*NPC {
	w.mu.RLock()
	defer w.mu.RUnlock()
	npcs := make([]*NPC, 0, len(w.npcOrder))
	for _, name := range w.npcOrder {
		npcs = append(npcs, w.npcs[name])
	}
	return npcs
}

// Player returns the world's player.
func (w *World) Player() *Player {
	return w.player
}

// Camera returns the camera position and look-at target.
func (w *World) Camera() (pos, target mgl64.Vec3) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cameraPos, w.cameraTarget
}

func (w *World) register(obj *SceneObject) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.objects = append(w.objects, obj)
	w.objectsByID[obj.id] = obj
}

// defaultObjectColor returns the color used when a command omits one.
func defaultObjectColor(kind string) string {
	switch kind {
	case "sphere":
		return "#ff8800"
	case "ground":
		return "#666666"
	default:
		return "#00ff00"
	}
}

// CreateObject creates a scene object of the given kind and registers it.
// An empty color selects the kind's default color.
func (w *World) CreateObject(kind string, pos mgl64.Vec3, size float64, color string) *SceneObject {
	if color == "" {
		color = defaultObjectColor(kind)
	}
	obj := &SceneObject{
		id:        uuid.Must(uuid.NewV4()),
		kind:      kind,
		position:  pos,
		scale:     mgl64.Vec3{size, size, size},
		color:     color,
		collision: true,
	}
	w.register(obj)
	w.logger.Info().
		Str("id", obj.id.String()).
		Str("kind", kind).
		Floats64("at", pos[:]).
		Float64("size", size).
		Msg("object created")
	return obj
}

// CreateGround creates a static ground plane at the given height. A size
// of zero selects the default ground size.
func (w *World) CreateGround(y float64, color string, size float64) *SceneObject {
	if size == 0 {
		size = DefaultGroundSize
	}
	if color == "" {
		color = defaultObjectColor("ground")
	}
	obj := &SceneObject{
		id:        uuid.Must(uuid.NewV4()),
		kind:      "ground",
		position:  mgl64.Vec3{0, y, 0},
		scale:     mgl64.Vec3{size, 0.1 * size, size},
		color:     color,
		collision: true,
		static:    true,
	}
	w.register(obj)
	w.logger.Info().
		Str("id", obj.id.String()).
		Float64("y", y).
		Float64("size", size).
		Msg("ground created")
	return obj
}

// CreatePlatform creates a unit cube stretched to the given dimensions.
func (w *World) CreatePlatform(pos, dimensions mgl64.Vec3) *SceneObject {
	obj := &SceneObject{
		id:        uuid.Must(uuid.NewV4()),
		kind:      "platform",
		position:  pos,
		scale:     dimensions,
		color:     defaultObjectColor("platform"),
		collision: true,
		static:    true,
	}
	w.register(obj)
	w.logger.Info().
		Str("id", obj.id.String()).
		Floats64("at", pos[:]).
		Floats64("size", dimensions[:]).
		Msg("platform created")
	return obj
}

// Spawn creates an entity of the given kind at a position.
func (w *World) Spawn(kind string, pos mgl64.Vec3) *SceneObject {
	obj := w.CreateObject(kind, pos, 1, "")
	w.logger.Info().
		Str("id", obj.id.String()).
		Str("kind", kind).
		Msg("entity spawned")
	return obj
}

// Destroy removes an object from the world. The object reference stays
// valid but is marked destroyed; later commands on it fail.
func (w *World) Destroy(obj *SceneObject) error {
	if obj.IsDestroyed() {
		return object.NewEvalError("eval error: object %s is already destroyed", obj.id)
	}
	obj.markDestroyed()
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.objectsByID, obj.id)
	for i, o := range w.objects {
		if o.id == obj.id {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			break
		}
	}
	w.logger.Info().
		Str("id", obj.id.String()).
		Str("kind", obj.kind).
		Msg("object destroyed")
	return nil
}

// DeclareNPC creates an NPC or, if the name is taken, moves the existing
// one. An empty color selects the default NPC color.
func (w *World) DeclareNPC(name string, pos mgl64.Vec3, color string) *NPC {
	if color == "" {
		color = DefaultNPCColor
	}
	w.mu.Lock()
	if npc, found := w.npcs[name]; found {
		w.mu.Unlock()
		npc.setPosition(pos)
		w.logger.Info().
			Str("name", name).
			Floats64("at", pos[:]).
			Msg("npc moved")
		return npc
	}
	npc := &NPC{name: name, position: pos, color: color}
	w.npcs[name] = npc
	w.npcOrder = append(w.npcOrder, name)
	w.mu.Unlock()
	w.logger.Info().
		Str("name", name).
		Floats64("at", pos[:]).
		Str("color", color).
		Msg("npc created")
	return npc
}

// AddDialogue appends a dialogue line to a named NPC.
func (w *World) AddDialogue(name, text string) error {
	npc, found := w.NPC(name)
	if !found {
		return object.NewEvalError("eval error: no npc named %q", name)
	}
	npc.addDialogue(text)
	w.logger.Info().
		Str("name", name).
		Str("text", text).
		Msg("dialogue added")
	return nil
}

// Talk writes a named NPC's dialogue lines to the world's output.
func (w *World) Talk(name string) error {
	npc, found := w.NPC(name)
	if !found {
		return object.NewEvalError("eval error: no npc named %q", name)
	}
	for _, line := range npc.Dialogue() {
		fmt.Fprintf(w.out, "%s: %s\n", name, line)
	}
	w.logger.Info().Str("name", name).Msg("dialogue spoken")
	return nil
}

// PlacePlayer positions the player and activates player control.
func (w *World) PlacePlayer(pos mgl64.Vec3) {
	w.player.setPosition(pos)
	w.logger.Info().Floats64("at", pos[:]).Msg("player placed")
}

// SetPlayerSpeed sets the player's movement speed.
func (w *World) SetPlayerSpeed(v float64) {
	w.player.setSpeed(v)
	w.logger.Info().Float64("speed", v).Msg("speed set")
}

// Jump gives the player an upward velocity.
func (w *World) Jump(force float64) {
	w.player.setVelocityY(force)
	w.logger.Info().Float64("force", force).Msg("player jumped")
}

// AdjustHealth applies a health command with mode "is", "add" or "subtract".
func (w *World) AdjustHealth(mode string, v float64) error {
	if err := w.player.adjustHealth(mode, v); err != nil {
		return err
	}
	w.logger.Info().
		Str("mode", mode).
		Float64("value", v).
		Float64("health", w.player.Health()).
		Msg("health adjusted")
	return nil
}

// SetCamera positions the camera.
func (w *World) SetCamera(pos mgl64.Vec3) {
	w.mu.Lock()
	w.cameraPos = pos
	w.mu.Unlock()
	w.logger.Info().Floats64("at", pos[:]).Msg("camera placed")
}

// SetCameraTarget points the camera at a position.
func (w *World) SetCameraTarget(target mgl64.Vec3) {
	w.mu.Lock()
	w.cameraTarget = target
	w.mu.Unlock()
	w.logger.Info().Floats64("at", target[:]).Msg("camera target set")
}

// Summary returns a human-readable description of the world's contents.
func (w *World) Summary() string {
	var sb strings.Builder
	objects := w.Objects()
	fmt.Fprintf(&sb, "objects: %d\n", len(objects))
	counts := map[string]int{}
	for _, obj := range objects {
		counts[obj.Kind()]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&sb, "  %s: %d\n", kind, counts[kind])
	}
	npcs := w.NPCs()
	fmt.Fprintf(&sb, "npcs: %d\n", len(npcs))
	for _, npc := range npcs {
		pos := npc.Position()
		fmt.Fprintf(&sb, "  %s at (%g, %g, %g), %d dialogue line(s)\n",
			npc.Name(), pos.X(), pos.Y(), pos.Z(), len(npc.Dialogue()))
	}
	if w.player.Active() {
		pos := w.player.Position()
		fmt.Fprintf(&sb, "player: at (%g, %g, %g), health %g\n",
			pos.X(), pos.Y(), pos.Z(), w.player.Health())
	}
	return sb.String()
}
