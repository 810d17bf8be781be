package physics

import "math"

// Material describes surface properties that can be stamped onto a body.
type Material struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	Density     float64 `yaml:"density"`
}

func NewMaterial(friction, restitution, density float64) Material {
	return Material{
		Friction:    clamp01(friction),
		Restitution: clamp01(restitution),
		Density:     math.Max(density, MinMass),
	}
}

func DefaultMaterial() Material { return NewMaterial(0.5, 0.3, 1.0) }
func Ice() Material             { return NewMaterial(0.1, 0.1, 0.9) }
func Rubber() Material          { return NewMaterial(0.8, 0.9, 1.2) }
func Metal() Material           { return NewMaterial(0.3, 0.2, 7.8) }
func Wood() Material            { return NewMaterial(0.6, 0.4, 0.6) }

// MaterialByName resolves the preset names accepted in configuration files.
func MaterialByName(name string) (Material, bool) {
	switch name {
	case "", "default":
		return DefaultMaterial(), true
	case "ice":
		return Ice(), true
	case "rubber":
		return Rubber(), true
	case "metal":
		return Metal(), true
	case "wood":
		return Wood(), true
	default:
		return Material{}, false
	}
}

// CollisionLayer is a bit set. Two bodies interact when each one's layer is
// present in the other's mask.
type CollisionLayer uint32

const (
	LayerDefault     CollisionLayer = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerEnvironment
	LayerProjectile
	LayerTrigger

	LayerAll CollisionLayer = math.MaxUint32
)

func (l CollisionLayer) Intersects(o CollisionLayer) bool { return l&o != 0 }

func clamp01(f float64) float64 {
	return math.Min(math.Max(f, 0), 1)
}
