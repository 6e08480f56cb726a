package world

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/op"
)

// NPC_TYPE is the script-visible type name for NPCs.
const NPC_TYPE object.Type = "npc"

// DefaultNPCColor is used when an npc declaration omits a color.
const DefaultNPCColor = "#9900ff"

// NPC is a named character in the world. Names are unique: declaring an
// NPC with an existing name moves it instead of creating a duplicate.
type NPC struct {
	name string

	mu       sync.RWMutex
	position mgl64.Vec3
	color    string
	dialogue []string
}

func (n *NPC) Name() string { return n.name }

func (n *NPC) Position() mgl64.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *NPC) Color() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.color
}

// Dialogue returns the NPC's dialogue lines in the order they were added.
func (n *NPC) Dialogue() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	lines := make([]string, len(n.dialogue))
	copy(lines, n.dialogue)
	return lines
}

func (n *NPC) setPosition(v mgl64.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = v
}

func (n *NPC) addDialogue(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dialogue = append(n.dialogue, text)
}

func (n *NPC) Type() object.Type {
	return NPC_TYPE
}

func (n *NPC) Inspect() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return fmt.Sprintf("npc(%q, at=(%g, %g, %g))",
		n.name, n.position.X(), n.position.Y(), n.position.Z())
}

func (n *NPC) String() string {
	return n.Inspect()
}

func (n *NPC) Interface() interface{} {
	n.mu.RLock()
	defer n.mu.RUnlock()
	lines := make([]string, len(n.dialogue))
	copy(lines, n.dialogue)
	return map[string]interface{}{
		"name":     n.name,
		"position": n.position,
		"color":    n.color,
		"dialogue": lines,
	}
}

func (n *NPC) Equals(other object.Object) bool {
	otherNPC, ok := other.(*NPC)
	if !ok {
		return false
	}
	return n.name == otherNPC.name
}

func (n *NPC) GetAttr(name string) (object.Object, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	switch name {
	case "name":
		return object.NewString(n.name), true
	case "x":
		return object.NewFloat(n.position.X()), true
	case "y":
		return object.NewFloat(n.position.Y()), true
	case "z":
		return object.NewFloat(n.position.Z()), true
	case "color":
		return object.NewString(n.color), true
	case "dialogue":
		items := make([]object.Object, 0, len(n.dialogue))
		for _, line := range n.dialogue {
			items = append(items, object.NewString(line))
		}
		return object.NewList(items), true
	}
	return nil, false
}

func (n *NPC) SetAttr(name string, value object.Object) error {
	switch name {
	case "x", "y", "z":
		f, err := object.AsFloat(value)
		if err != nil {
			return err
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		switch name {
		case "x":
			n.position[0] = f
		case "y":
			n.position[1] = f
		case "z":
			n.position[2] = f
		}
		return nil
	case "color":
		c, err := object.AsString(value)
		if err != nil {
			return err
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		n.color = c
		return nil
	}
	return object.NewTypeError("type error: npc has no settable attribute %q", name)
}

func (n *NPC) IsTruthy() bool {
	return true
}

func (n *NPC) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return nil, object.NewTypeError("type error: unsupported operation for npc: %v", opType)
}
