package world

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCreateObject(t *testing.T) {
	w := New()
	obj := w.CreateObject("cube", mgl64.Vec3{1, 2, 3}, 2, "#ff0000")
	require.Equal(t, "cube", obj.Kind())
	require.Equal(t, mgl64.Vec3{1, 2, 3}, obj.Position())
	require.Equal(t, mgl64.Vec3{2, 2, 2}, obj.Scale())
	require.Equal(t, "#ff0000", obj.Color())
	require.True(t, obj.HasCollision())
	require.False(t, obj.IsDestroyed())

	got, found := w.Object(obj.ID())
	require.True(t, found)
	require.Same(t, obj, got)
}

func TestDefaultColors(t *testing.T) {
	w := New()
	cube := w.CreateObject("cube", mgl64.Vec3{}, 1, "")
	require.Equal(t, "#00ff00", cube.Color())
	sphere := w.CreateObject("sphere", mgl64.Vec3{}, 1, "")
	require.Equal(t, "#ff8800", sphere.Color())
	ground := w.CreateGround(0, "", 0)
	require.Equal(t, "#666666", ground.Color())
}

func TestCreateGround(t *testing.T) {
	w := New()
	ground := w.CreateGround(-1, "#333333", 0)
	require.Equal(t, "ground", ground.Kind())
	require.Equal(t, mgl64.Vec3{0, -1, 0}, ground.Position())
	require.Equal(t, DefaultGroundSize, ground.Scale().X())
	require.True(t, ground.IsStatic())

	small := w.CreateGround(0, "#333333", 10)
	require.Equal(t, mgl64.Vec3{10, 1, 10}, small.Scale())
}

func TestObjectsCreationOrder(t *testing.T) {
	w := New()
	a := w.CreateObject("cube", mgl64.Vec3{}, 1, "")
	b := w.CreateObject("sphere", mgl64.Vec3{}, 1, "")
	c := w.CreatePlatform(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{4, 1, 4})
	objects := w.Objects()
	require.Equal(t, []*SceneObject{a, b, c}, objects)
}

func TestDestroy(t *testing.T) {
	w := New()
	obj := w.CreateObject("cube", mgl64.Vec3{}, 1, "")
	require.NoError(t, w.Destroy(obj))
	require.True(t, obj.IsDestroyed())
	require.Empty(t, w.Objects())

	_, found := w.Object(obj.ID())
	require.False(t, found)

	err := w.Destroy(obj)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already destroyed")
}

func TestDeclareNPC(t *testing.T) {
	w := New()
	npc := w.DeclareNPC("Guard", mgl64.Vec3{1, 0, 1}, "")
	require.Equal(t, "Guard", npc.Name())
	require.Equal(t, DefaultNPCColor, npc.Color())

	// Re-declaring an existing name moves the NPC.
	again := w.DeclareNPC("Guard", mgl64.Vec3{5, 0, 5}, "")
	require.Same(t, npc, again)
	require.Equal(t, mgl64.Vec3{5, 0, 5}, npc.Position())
	require.Len(t, w.NPCs(), 1)
}

func TestDialogue(t *testing.T) {
	w := New()
	w.DeclareNPC("Guard", mgl64.Vec3{}, "")
	require.NoError(t, w.AddDialogue("Guard", "Halt!"))
	require.NoError(t, w.AddDialogue("Guard", "Who goes there?"))

	npc, found := w.NPC("Guard")
	require.True(t, found)
	require.Equal(t, []string{"Halt!", "Who goes there?"}, npc.Dialogue())

	err := w.AddDialogue("Ghost", "boo")
	require.Error(t, err)
	require.Contains(t, err.Error(), `no npc named "Ghost"`)
}

func TestTalk(t *testing.T) {
	var buf bytes.Buffer
	w := New(WithOutput(&buf))
	w.DeclareNPC("Guard", mgl64.Vec3{}, "")
	require.NoError(t, w.AddDialogue("Guard", "Halt!"))
	require.NoError(t, w.AddDialogue("Guard", "Move along."))
	require.NoError(t, w.Talk("Guard"))
	require.Equal(t, "Guard: Halt!\nGuard: Move along.\n", buf.String())

	require.Error(t, w.Talk("Ghost"))
}

func TestPlayer(t *testing.T) {
	w := New()
	p := w.Player()
	require.Equal(t, DefaultPlayerHealth, p.Health())
	require.False(t, p.Active())

	w.PlacePlayer(mgl64.Vec3{0, 2, 0})
	require.True(t, p.Active())
	require.Equal(t, mgl64.Vec3{0, 2, 0}, p.Position())

	w.SetPlayerSpeed(12)
	require.Equal(t, 12.0, p.Speed())
}

func TestAdjustHealth(t *testing.T) {
	w := New()
	require.NoError(t, w.AdjustHealth("is", 50))
	require.Equal(t, 50.0, w.Player().Health())

	require.NoError(t, w.AdjustHealth("add", 30))
	require.Equal(t, 80.0, w.Player().Health())

	require.NoError(t, w.AdjustHealth("subtract", 200))
	require.Equal(t, 0.0, w.Player().Health())

	require.Error(t, w.AdjustHealth("raise", 10))
}

func TestCamera(t *testing.T) {
	w := New()
	w.SetCamera(mgl64.Vec3{0, 10, -10})
	w.SetCameraTarget(mgl64.Vec3{0, 0, 0})
	pos, target := w.Camera()
	require.Equal(t, mgl64.Vec3{0, 10, -10}, pos)
	require.Equal(t, mgl64.Vec3{0, 0, 0}, target)
}

func TestSummary(t *testing.T) {
	w := New()
	w.CreateObject("cube", mgl64.Vec3{}, 1, "")
	w.CreateObject("cube", mgl64.Vec3{1, 0, 0}, 1, "")
	w.DeclareNPC("Guard", mgl64.Vec3{}, "")
	w.PlacePlayer(mgl64.Vec3{0, 2, 0})

	summary := w.Summary()
	require.Contains(t, summary, "objects: 2")
	require.Contains(t, summary, "cube: 2")
	require.Contains(t, summary, "npcs: 1")
	require.Contains(t, summary, "player: at (0, 2, 0)")
}

func TestEventLogging(t *testing.T) {
	var buf bytes.Buffer
	w := New(WithLogger(zerolog.New(&buf)))
	w.CreateObject("cube", mgl64.Vec3{}, 1, "")
	w.DeclareNPC("Guard", mgl64.Vec3{}, "")

	logs := buf.String()
	require.Contains(t, logs, "object created")
	require.Contains(t, logs, "npc created")
	require.Equal(t, 2, strings.Count(logs, "\n"))
}
