package scene

import (
	"fmt"
	"strings"

	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

type PlatformKind uint8

const (
	PlatformStatic PlatformKind = iota
	PlatformMoving
	PlatformBreakable
	PlatformBouncy
)

func (k PlatformKind) String() string {
	switch k {
	case PlatformStatic:
		return "static"
	case PlatformMoving:
		return "moving"
	case PlatformBreakable:
		return "breakable"
	case PlatformBouncy:
		return "bouncy"
	default:
		return "unknown"
	}
}

func ParsePlatformKind(s string) (PlatformKind, error) {
	switch strings.ToLower(s) {
	case "static", "":
		return PlatformStatic, nil
	case "moving":
		return PlatformMoving, nil
	case "breakable":
		return PlatformBreakable, nil
	case "bouncy":
		return PlatformBouncy, nil
	}
	return 0, fmt.Errorf("%w: platform %q", ErrUnknownObjectKind, s)
}

// Platform is level geometry. It ignores velocity.
type Platform struct {
	BaseObject
	kind PlatformKind
}

func NewPlatform(name string, position, halfSize physics.Vector3, kind PlatformKind) *Platform {
	return &Platform{
		BaseObject: NewBaseObject(name, position, halfSize),
		kind:       kind,
	}
}

func (p *Platform) Kind() PlatformKind { return p.kind }

func (p *Platform) Velocity() physics.Vector3   { return physics.Zero() }
func (p *Platform) SetVelocity(physics.Vector3) {}

// Material picks the surface a platform kind is made of.
func (p *Platform) Material() physics.Material {
	switch p.kind {
	case PlatformBouncy:
		return physics.Rubber()
	case PlatformBreakable:
		return physics.Wood()
	default:
		return physics.DefaultMaterial()
	}
}
