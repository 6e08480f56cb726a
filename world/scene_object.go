package world

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gofrs/uuid"

	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/op"
)

// SCENE_OBJECT is the script-visible type name for world objects.
const SCENE_OBJECT object.Type = "scene_object"

// SceneObject is a single object in the world: a cube, sphere, ground
// plane, platform, or spawned entity. Scripts hold references to scene
// objects (typically via last3d) and read or write their attributes.
type SceneObject struct {
	id   uuid.UUID
	kind string

	mu        sync.RWMutex
	position  mgl64.Vec3
	scale     mgl64.Vec3
	rotation  mgl64.Vec3
	velocity  mgl64.Vec3
	color     string
	collision bool
	physics   bool
	static    bool
	destroyed bool
}

func (s *SceneObject) ID() uuid.UUID { return s.id }

func (s *SceneObject) Kind() string { return s.kind }

func (s *SceneObject) Position() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

func (s *SceneObject) Scale() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

func (s *SceneObject) Rotation() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rotation
}

func (s *SceneObject) Color() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

func (s *SceneObject) HasCollision() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collision
}

func (s *SceneObject) HasPhysics() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.physics
}

func (s *SceneObject) Velocity() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.velocity
}

func (s *SceneObject) IsStatic() bool { return s.static }

func (s *SceneObject) IsDestroyed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destroyed
}

func (s *SceneObject) setPosition(v mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = v
}

func (s *SceneObject) setScale(v mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = v
}

func (s *SceneObject) setRotation(v mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotation = v
}

func (s *SceneObject) setColor(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.color = c
}

func (s *SceneObject) setCollision(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collision = enabled
}

func (s *SceneObject) setPhysics(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.physics = enabled
}

func (s *SceneObject) setVelocity(v mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.velocity = v
}

func (s *SceneObject) markDestroyed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}

func (s *SceneObject) Type() object.Type {
	return SCENE_OBJECT
}

func (s *SceneObject) Inspect() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("scene_object(kind=%s, at=(%g, %g, %g))",
		s.kind, s.position.X(), s.position.Y(), s.position.Z())
}

func (s *SceneObject) String() string {
	return s.Inspect()
}

func (s *SceneObject) Interface() interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"id":        s.id.String(),
		"kind":      s.kind,
		"position":  s.position,
		"scale":     s.scale,
		"rotation":  s.rotation,
		"velocity":  s.velocity,
		"color":     s.color,
		"collision": s.collision,
		"physics":   s.physics,
	}
}

func (s *SceneObject) Equals(other object.Object) bool {
	otherObj, ok := other.(*SceneObject)
	if !ok {
		return false
	}
	return s.id == otherObj.id
}

func (s *SceneObject) GetAttr(name string) (object.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch name {
	case "id":
		return object.NewString(s.id.String()), true
	case "kind":
		return object.NewString(s.kind), true
	case "x":
		return object.NewFloat(s.position.X()), true
	case "y":
		return object.NewFloat(s.position.Y()), true
	case "z":
		return object.NewFloat(s.position.Z()), true
	case "sx":
		return object.NewFloat(s.scale.X()), true
	case "sy":
		return object.NewFloat(s.scale.Y()), true
	case "sz":
		return object.NewFloat(s.scale.Z()), true
	case "rx":
		return object.NewFloat(s.rotation.X()), true
	case "ry":
		return object.NewFloat(s.rotation.Y()), true
	case "rz":
		return object.NewFloat(s.rotation.Z()), true
	case "color":
		return object.NewString(s.color), true
	case "vx":
		return object.NewFloat(s.velocity.X()), true
	case "vy":
		return object.NewFloat(s.velocity.Y()), true
	case "vz":
		return object.NewFloat(s.velocity.Z()), true
	case "collision":
		return object.NewBool(s.collision), true
	case "physics":
		return object.NewBool(s.physics), true
	case "destroyed":
		return object.NewBool(s.destroyed), true
	}
	return nil, false
}

func (s *SceneObject) SetAttr(name string, value object.Object) error {
	switch name {
	case "x", "y", "z":
		f, err := object.AsFloat(value)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		switch name {
		case "x":
			s.position[0] = f
		case "y":
			s.position[1] = f
		case "z":
			s.position[2] = f
		}
		return nil
	case "color":
		c, err := object.AsString(value)
		if err != nil {
			return err
		}
		s.setColor(c)
		return nil
	case "collision":
		b, err := object.AsBool(value)
		if err != nil {
			return err
		}
		s.setCollision(b)
		return nil
	case "physics":
		b, err := object.AsBool(value)
		if err != nil {
			return err
		}
		s.setPhysics(b)
		return nil
	}
	return object.NewTypeError("type error: scene_object has no settable attribute %q", name)
}

func (s *SceneObject) IsTruthy() bool {
	return !s.IsDestroyed()
}

func (s *SceneObject) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return nil, object.NewTypeError("type error: unsupported operation for scene_object: %v", opType)
}
