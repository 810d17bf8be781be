package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

type CollectibleKind uint8

const (
	Coin CollectibleKind = iota
	Gem
	PowerUp
	HealthPack
)

func (k CollectibleKind) String() string {
	switch k {
	case Coin:
		return "coin"
	case Gem:
		return "gem"
	case PowerUp:
		return "powerup"
	case HealthPack:
		return "healthpack"
	default:
		return "unknown"
	}
}

func ParseCollectibleKind(s string) (CollectibleKind, error) {
	switch strings.ToLower(s) {
	case "coin", "":
		return Coin, nil
	case "gem":
		return Gem, nil
	case "powerup", "power_up":
		return PowerUp, nil
	case "healthpack", "health_pack":
		return HealthPack, nil
	}
	return 0, fmt.Errorf("%w: collectible %q", ErrUnknownObjectKind, s)
}

// CollectibleHalfSize is the extent of a collectible's trigger volume.
var CollectibleHalfSize = physics.Vec3(0.3, 0.3, 0.3)

const (
	collectibleSpinSpeed = 2.0
	collectibleBobSpeed  = 3.0
	collectibleBobHeight = 0.2
)

// Collectible is a pickup that deactivates itself when a Player touches it.
type Collectible struct {
	BaseObject
	value     int
	kind      CollectibleKind
	collected bool
	rotation  float64
	bobPhase  float64
}

func NewCollectible(name string, position physics.Vector3, value int, kind CollectibleKind) *Collectible {
	return &Collectible{
		BaseObject: NewBaseObject(name, position, CollectibleHalfSize),
		value:      value,
		kind:       kind,
	}
}

func (c *Collectible) Value() int            { return c.value }
func (c *Collectible) Kind() CollectibleKind { return c.kind }
func (c *Collectible) Collected() bool       { return c.collected }
func (c *Collectible) Rotation() float64     { return c.rotation }

// Collect marks the collectible as taken and returns its value. Collecting
// twice yields 0.
func (c *Collectible) Collect() int {
	if c.collected {
		return 0
	}
	c.collected = true
	c.active = false
	return c.value
}

// Update advances the spin and bob animation.
func (c *Collectible) Update(dt float64) {
	if !c.Active() {
		return
	}
	c.rotation = wrapAngle(c.rotation + collectibleSpinSpeed*dt)
	c.bobPhase = wrapAngle(c.bobPhase + collectibleBobSpeed*dt)
}

// DisplayPosition is where a renderer draws the collectible, including bob.
func (c *Collectible) DisplayPosition() physics.Vector3 {
	return c.position.Add(physics.Vec3(0, math.Sin(c.bobPhase)*collectibleBobHeight, 0))
}

func (c *Collectible) Active() bool {
	return c.active && !c.collected
}

func (c *Collectible) OnCollision(other GameObject) {
	if _, ok := other.(*Player); ok {
		c.Collect()
	}
}

func wrapAngle(a float64) float64 {
	if a > 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
