package scene

import (
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

const (
	DefaultPlayerSpeed     = 5.0
	DefaultPlayerJumpForce = 10.0
	DefaultPlayerHealth    = 100
)

// PlayerHalfSize is the extent of a player body: one unit wide and deep, two
// units tall.
var PlayerHalfSize = physics.Vec3(0.5, 1, 0.5)

// Player is the controllable character.
type Player struct {
	BaseObject
	speed     float64
	jumpForce float64
	health    int
	maxHealth int
	grounded  bool
}

// NewPlayer creates a player at full health.
func NewPlayer(name string, position physics.Vector3) *Player {
	return &Player{
		BaseObject: NewBaseObject(name, position, PlayerHalfSize),
		speed:      DefaultPlayerSpeed,
		jumpForce:  DefaultPlayerJumpForce,
		health:     DefaultPlayerHealth,
		maxHealth:  DefaultPlayerHealth,
	}
}

func (p *Player) Speed() float64            { return p.speed }
func (p *Player) SetSpeed(speed float64)    { p.speed = max(speed, 0) }
func (p *Player) JumpForce() float64        { return p.jumpForce }
func (p *Player) Grounded() bool            { return p.grounded }
func (p *Player) SetGrounded(grounded bool) { p.grounded = grounded }
func (p *Player) Health() int               { return p.health }
func (p *Player) MaxHealth() int            { return p.maxHealth }

// Move returns the velocity change for a movement input. x is strafe (right
// positive) and z is forward (forward positive); the result follows the world
// axes, where forward is -Z.
func (p *Player) Move(x, z float64) physics.Vector3 {
	return physics.Vec3(x*p.speed, 0, -z*p.speed)
}

// Jump returns the upward velocity to set on the player's body. It reports
// false when the player is in the air.
func (p *Player) Jump() (float64, bool) {
	if !p.grounded {
		return 0, false
	}
	p.grounded = false
	return p.jumpForce, true
}

// TakeDamage reports whether the player died.
func (p *Player) TakeDamage(damage int) bool {
	p.health = max(p.health-damage, 0)
	return p.health == 0
}

func (p *Player) Heal(amount int) {
	p.health = min(p.health+amount, p.maxHealth)
}

func (p *Player) HealthPercentage() float64 {
	if p.maxHealth == 0 {
		return 0
	}
	return float64(p.health) / float64(p.maxHealth)
}

// Active is false once the player has no health left.
func (p *Player) Active() bool {
	return p.active && p.health > 0
}
