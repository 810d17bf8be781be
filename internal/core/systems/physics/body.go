package physics

import (
	"fmt"
	"math"
)

// MinMass is the floor applied by SetMass.
const MinMass = 0.001

// BodyKind classifies how the world treats a body.
type BodyKind uint8

const (
	// Dynamic bodies are fully simulated.
	Dynamic BodyKind = iota
	// Kinematic bodies are moved by their owner and ignore forces.
	Kinematic
	// Static bodies never move and have infinite mass.
	Static
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("BodyKind(%d)", uint8(k))
	}
}

// ParseBodyKind accepts the lowercase names produced by String.
func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case "dynamic", "":
		return Dynamic, nil
	case "kinematic":
		return Kinematic, nil
	case "static":
		return Static, nil
	default:
		return 0, fmt.Errorf("%w: body kind %q", ErrInvalidConfig, s)
	}
}

// RigidBody is the per-object physical state. It carries no identity; the
// owning World addresses it by BodyHandle.
type RigidBody struct {
	Position    Vector3
	Velocity    Vector3
	HalfSize    Vector3
	Kind        BodyKind
	UseGravity  bool
	IsTrigger   bool
	Grounded    bool
	MaxVelocity float64 // 0 = unlimited

	Layer CollisionLayer
	Mask  CollisionLayer

	// Friction is surface metadata stamped by ApplyMaterial for gameplay code.
	// Sliding is damped by the world's ground friction, not by this value.
	Friction float64

	force       Vector3
	mass        float64
	restitution float64
}

// NewRigidBody returns a Dynamic body with unit mass that responds to gravity.
func NewRigidBody(position, halfSize Vector3) *RigidBody {
	return &RigidBody{
		Position:    position,
		HalfSize:    halfSize.Abs(),
		Kind:        Dynamic,
		UseGravity:  true,
		Layer:       LayerDefault,
		Mask:        LayerAll,
		Friction:    DefaultMaterial().Friction,
		mass:        1,
		restitution: 0.3,
	}
}

func NewStaticBody(position, halfSize Vector3) *RigidBody {
	b := NewRigidBody(position, halfSize)
	b.Kind = Static
	b.UseGravity = false
	b.Layer = LayerEnvironment
	b.mass = math.Inf(1)
	return b
}

func NewKinematicBody(position, halfSize Vector3) *RigidBody {
	b := NewRigidBody(position, halfSize)
	b.Kind = Kinematic
	b.UseGravity = false
	return b
}

// NewTriggerBody returns a gravity-free Dynamic body that only reports overlap.
func NewTriggerBody(position, halfSize Vector3) *RigidBody {
	b := NewRigidBody(position, halfSize)
	b.IsTrigger = true
	b.UseGravity = false
	b.Layer = LayerTrigger
	return b
}

func (b *RigidBody) Mass() float64        { return b.mass }
func (b *RigidBody) Restitution() float64 { return b.restitution }
func (b *RigidBody) Force() Vector3       { return b.force }

// InverseMass is zero for anything that is not Dynamic, which makes Static
// and Kinematic bodies immovable in collision response.
func (b *RigidBody) InverseMass() float64 {
	if b.Kind != Dynamic {
		return 0
	}
	return 1 / b.mass
}

// SetMass is ignored for non-Dynamic bodies and floors at MinMass.
func (b *RigidBody) SetMass(mass float64) {
	if b.Kind != Dynamic {
		return
	}
	if math.IsNaN(mass) || mass < MinMass {
		mass = MinMass
	}
	b.mass = mass
}

func (b *RigidBody) SetRestitution(restitution float64) {
	if math.IsNaN(restitution) {
		restitution = 0
	}
	b.restitution = clamp01(restitution)
}

// SetKind switches classification. Becoming Static pins the body: velocity
// and pending force are cleared and mass becomes infinite.
func (b *RigidBody) SetKind(kind BodyKind) {
	if b.Kind == kind {
		return
	}
	prev := b.Kind
	b.Kind = kind
	switch {
	case kind == Static:
		b.Velocity = Vector3{}
		b.force = Vector3{}
		b.UseGravity = false
		b.mass = math.Inf(1)
	case prev == Static:
		b.mass = 1
	}
	if kind != Dynamic {
		b.force = Vector3{}
	}
}

// ApplyMaterial copies restitution and friction and, for Dynamic bodies,
// derives mass from density and box volume.
func (b *RigidBody) ApplyMaterial(m Material) {
	b.SetRestitution(m.Restitution)
	b.Friction = clamp01(m.Friction)
	size := b.HalfSize.Mul(2)
	b.SetMass(m.Density * size[0] * size[1] * size[2])
}

func (b *RigidBody) AddForce(f Vector3) {
	if b.Kind != Dynamic {
		return
	}
	b.force = b.force.Add(f)
}

func (b *RigidBody) AddImpulse(j Vector3) {
	if b.Kind != Dynamic {
		return
	}
	b.Velocity = b.Velocity.Add(j.Mul(1 / b.mass))
}

func (b *RigidBody) SetVelocity(v Vector3) {
	if b.Kind == Static {
		return
	}
	b.Velocity = v
}

// SetPosition teleports the body. Static bodies may be placed this way too.
func (b *RigidBody) SetPosition(p Vector3) {
	b.Position = p
}

func (b *RigidBody) ClearForce() { b.force = Vector3{} }

// Bounds is derived from Position and HalfSize on every call.
func (b *RigidBody) Bounds() BoundingBox {
	return BoxFromCenter(b.Position, b.HalfSize)
}

// Interacts reports whether the layer masks of a and o admit each other.
func (b *RigidBody) Interacts(o *RigidBody) bool {
	return b.Mask.Intersects(o.Layer) && o.Mask.Intersects(b.Layer)
}

func (b *RigidBody) String() string {
	return fmt.Sprintf("%s body pos=%v vel=%v mass=%g", b.Kind, b.Position, b.Velocity, b.mass)
}
