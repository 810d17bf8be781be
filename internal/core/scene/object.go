package scene

import (
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

// Handle identifies an object within its Scene. It is the same value as the
// handle of the object's rigid body in the Scene's physics world.
type Handle = physics.BodyHandle

// GameObject is the capability set the Scene drives. The Scene calls Update
// and the position/velocity setters; OnCollision is left to gameplay code,
// usually wired through contact events.
type GameObject interface {
	Update(dt float64)

	Position() physics.Vector3
	SetPosition(p physics.Vector3)
	Velocity() physics.Vector3
	SetVelocity(v physics.Vector3)

	Active() bool
	SetActive(active bool)

	Name() string
	HalfSize() physics.Vector3
	Bounds() physics.BoundingBox

	OnCollision(other GameObject)
}

// groundedSetter is implemented by objects that track whether their body is
// standing on something.
type groundedSetter interface {
	SetGrounded(grounded bool)
}

// BaseObject carries the state shared by every concrete object. Embedding
// types override Update and OnCollision as needed.
type BaseObject struct {
	name     string
	position physics.Vector3
	velocity physics.Vector3
	halfSize physics.Vector3
	active   bool
}

// NewBaseObject creates an active object with the given extents.
func NewBaseObject(name string, position, halfSize physics.Vector3) BaseObject {
	return BaseObject{
		name:     name,
		position: position,
		halfSize: halfSize.Abs(),
		active:   true,
	}
}

func (o *BaseObject) Update(float64) {}

func (o *BaseObject) Position() physics.Vector3     { return o.position }
func (o *BaseObject) SetPosition(p physics.Vector3) { o.position = p }
func (o *BaseObject) Velocity() physics.Vector3     { return o.velocity }
func (o *BaseObject) SetVelocity(v physics.Vector3) { o.velocity = v }
func (o *BaseObject) Active() bool                  { return o.active }
func (o *BaseObject) SetActive(active bool)         { o.active = active }
func (o *BaseObject) Name() string                  { return o.name }
func (o *BaseObject) HalfSize() physics.Vector3     { return o.halfSize }
func (o *BaseObject) OnCollision(GameObject)        {}

func (o *BaseObject) Bounds() physics.BoundingBox {
	return physics.BoxFromCenter(o.position, o.halfSize)
}
