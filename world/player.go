package world

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tcc-lang/tcc/object"
	"github.com/tcc-lang/tcc/op"
)

// PLAYER is the script-visible type name for the player.
const PLAYER object.Type = "player"

// Player defaults.
const (
	DefaultPlayerHealth = 100.0
	DefaultPlayerSpeed  = 5.0
	DefaultJumpForce    = 10.0
)

// Player is the single controllable character. Every world has one;
// the player command places it and enables movement.
type Player struct {
	mu        sync.RWMutex
	position  mgl64.Vec3
	speed     float64
	health    float64
	armor     float64
	velocityY float64
	ammo      int64
	magazine  int64
	active    bool
}

func newPlayer() *Player {
	return &Player{
		speed:  DefaultPlayerSpeed,
		health: DefaultPlayerHealth,
	}
}

func (p *Player) Position() mgl64.Vec3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.position
}

func (p *Player) Speed() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.speed
}

func (p *Player) Health() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

func (p *Player) Armor() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.armor
}

// VelocityY is the player's vertical velocity, set by the jump command.
func (p *Player) VelocityY() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.velocityY
}

// Active reports whether a player command has placed the player.
func (p *Player) Active() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

func (p *Player) setPosition(v mgl64.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = v
	p.active = true
}

func (p *Player) setSpeed(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = v
}

func (p *Player) setVelocityY(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.velocityY = v
}

// adjustHealth applies a health command. Health never drops below zero.
func (p *Player) adjustHealth(mode string, v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch mode {
	case "is":
		p.health = v
	case "add":
		p.health += v
	case "subtract":
		p.health -= v
	default:
		return object.NewEvalError("eval error: unknown health mode %q", mode)
	}
	if p.health < 0 {
		p.health = 0
	}
	return nil
}

func (p *Player) Type() object.Type {
	return PLAYER
}

func (p *Player) Inspect() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fmt.Sprintf("player(at=(%g, %g, %g), health=%g)",
		p.position.X(), p.position.Y(), p.position.Z(), p.health)
}

func (p *Player) String() string {
	return p.Inspect()
}

func (p *Player) Interface() interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return map[string]interface{}{
		"position": p.position,
		"speed":    p.speed,
		"health":   p.health,
		"armor":    p.armor,
		"ammo":     p.ammo,
		"magazine": p.magazine,
	}
}

func (p *Player) Equals(other object.Object) bool {
	otherPlayer, ok := other.(*Player)
	if !ok {
		return false
	}
	return p == otherPlayer
}

func (p *Player) GetAttr(name string) (object.Object, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch name {
	case "x":
		return object.NewFloat(p.position.X()), true
	case "y":
		return object.NewFloat(p.position.Y()), true
	case "z":
		return object.NewFloat(p.position.Z()), true
	case "speed":
		return object.NewFloat(p.speed), true
	case "health":
		return object.NewFloat(p.health), true
	case "armor":
		return object.NewFloat(p.armor), true
	case "ammo":
		return object.NewInt(p.ammo), true
	case "magazine":
		return object.NewInt(p.magazine), true
	case "vy":
		return object.NewFloat(p.velocityY), true
	}
	return nil, false
}

func (p *Player) SetAttr(name string, value object.Object) error {
	switch name {
	case "x", "y", "z", "speed", "health", "armor":
		f, err := object.AsFloat(value)
		if err != nil {
			return err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		switch name {
		case "x":
			p.position[0] = f
		case "y":
			p.position[1] = f
		case "z":
			p.position[2] = f
		case "speed":
			p.speed = f
		case "health":
			if f < 0 {
				f = 0
			}
			p.health = f
		case "armor":
			p.armor = f
		}
		return nil
	case "ammo", "magazine":
		i, err := object.AsInt(value)
		if err != nil {
			return err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if name == "ammo" {
			p.ammo = i
		} else {
			p.magazine = i
		}
		return nil
	}
	return object.NewTypeError("type error: player has no settable attribute %q", name)
}

func (p *Player) IsTruthy() bool {
	return true
}

func (p *Player) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return nil, object.NewTypeError("type error: unsupported operation for player: %v", opType)
}
