package scene

import (
	"slices"

	"github.com/google/uuid"

	"github.com/zeusync/scenesim/internal/core/events/bus"
	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

// Color is an RGB triple with components in [0,1].
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

var DefaultBackground = Color{R: 0.1, G: 0.1, B: 0.2}

const DefaultAmbientLight = 0.3

var (
	DefaultCameraPosition = physics.Vec3(0, 5, 10)
	DefaultCameraTarget   = physics.Zero()
)

// Scene owns a set of game objects and the physics world that simulates them.
// Every object is paired with exactly one rigid body under the same handle.
// A Scene is not safe for concurrent use.
type Scene struct {
	id      string
	name    string
	objects map[Handle]GameObject
	order   []Handle
	world   *physics.World
	active  bool

	background     Color
	ambientLight   float64
	cameraPosition physics.Vector3
	cameraTarget   physics.Vector3

	events  bus.EventBus
	logger  log.Log
	removed []Handle
}

type Option func(*Scene)

func WithLogger(l log.Log) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventBus makes Update publish contact and removal events on b.
func WithEventBus(b bus.EventBus) Option {
	return func(s *Scene) { s.events = b }
}

// WithWorld replaces the default physics world. The world must be empty.
func WithWorld(w *physics.World) Option {
	return func(s *Scene) {
		if w != nil {
			s.world = w
		}
	}
}

// New creates an empty, active scene.
func New(name string, opts ...Option) *Scene {
	s := &Scene{
		id:             uuid.NewString(),
		name:           name,
		objects:        make(map[Handle]GameObject),
		active:         true,
		background:     DefaultBackground,
		ambientLight:   DefaultAmbientLight,
		cameraPosition: DefaultCameraPosition,
		cameraTarget:   DefaultCameraTarget,
		logger:         log.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.world == nil {
		s.world = physics.NewWorld(physics.WithLogger(s.logger.Named("physics")))
	}
	s.logger = s.logger.With(log.String("scene", name))
	return s
}

// Object management

// AddObject pairs obj with a Dynamic body sized and placed from the object.
func (s *Scene) AddObject(obj GameObject) Handle {
	body := physics.NewRigidBody(obj.Position(), obj.HalfSize())
	body.Velocity = obj.Velocity()
	return s.insert(obj, body)
}

// AddStaticObject pairs obj with an immovable body.
func (s *Scene) AddStaticObject(obj GameObject) Handle {
	return s.insert(obj, physics.NewStaticBody(obj.Position(), obj.HalfSize()))
}

// AddKinematicObject pairs obj with a body that ignores forces. The world does
// not integrate kinematic bodies; only setting the body's position moves it.
func (s *Scene) AddKinematicObject(obj GameObject) Handle {
	body := physics.NewKinematicBody(obj.Position(), obj.HalfSize())
	body.Velocity = obj.Velocity()
	return s.insert(obj, body)
}

// AddTriggerObject pairs obj with a weightless trigger volume that reports
// overlaps without collision response.
func (s *Scene) AddTriggerObject(obj GameObject) Handle {
	return s.insert(obj, physics.NewTriggerBody(obj.Position(), obj.HalfSize()))
}

func (s *Scene) insert(obj GameObject, body *physics.RigidBody) Handle {
	h := s.world.AddRigidBody(body)
	s.objects[h] = obj
	s.order = append(s.order, h)
	s.logger.Debug("object added",
		log.Uint64("handle", uint64(h)),
		log.String("name", obj.Name()),
		log.String("body", body.Kind.String()),
	)
	return h
}

func (s *Scene) AddPlayer(position physics.Vector3) Handle {
	return s.AddObject(NewPlayer("Player", position))
}

// AddCollectible adds a coin as a trigger volume, so it floats in place and
// the player passes through it.
func (s *Scene) AddCollectible(position physics.Vector3, value int) Handle {
	return s.AddTriggerObject(NewCollectible("Collectible", position, value, Coin))
}

func (s *Scene) AddEnemy(position physics.Vector3) Handle {
	return s.AddObject(NewEnemy("Enemy", position))
}

func (s *Scene) AddPlatform(halfSize, position physics.Vector3) Handle {
	p := NewPlatform("Platform", position, halfSize, PlatformStatic)
	h := s.AddStaticObject(p)
	if body, ok := s.world.RigidBody(h); ok {
		body.ApplyMaterial(p.Material())
	}
	return h
}

// RemoveObject removes the object and its body. It reports whether the
// handle was live.
func (s *Scene) RemoveObject(h Handle) bool {
	obj, ok := s.objects[h]
	if !ok {
		return false
	}
	s.remove(h)
	s.logger.Debug("object removed",
		log.Uint64("handle", uint64(h)),
		log.String("name", obj.Name()),
	)
	return true
}

func (s *Scene) remove(h Handle) {
	delete(s.objects, h)
	s.world.RemoveRigidBody(h)
	if i, found := slices.BinarySearch(s.order, h); found {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Scene) Object(h Handle) (GameObject, bool) {
	obj, ok := s.objects[h]
	return obj, ok
}

// FindObjectByName returns the lowest-handle object with the given name.
func (s *Scene) FindObjectByName(name string) (Handle, GameObject, bool) {
	for _, h := range s.order {
		if obj := s.objects[h]; obj.Name() == name {
			return h, obj, true
		}
	}
	return 0, nil, false
}

func (s *Scene) ObjectCount() int { return len(s.objects) }

// Handles returns live handles in ascending order.
func (s *Scene) Handles() []Handle { return slices.Clone(s.order) }

func (s *Scene) RigidBody(h Handle) (*physics.RigidBody, bool) {
	return s.world.RigidBody(h)
}

// World exposes the physics world for tuning and queries.
func (s *Scene) World() *physics.World { return s.world }

// Clear drops every object and body and restarts the handle sequence.
func (s *Scene) Clear() {
	clear(s.objects)
	s.order = s.order[:0]
	s.world.Reset()
	s.logger.Debug("scene cleared")
}

// Simulation

// Update advances the scene by dt. It does nothing while the scene is
// inactive. Physics steps first; each object then runs its own update and
// has its position and velocity overwritten by its body. Contact events are
// published next, and finally objects that report themselves inactive are
// removed together with their bodies.
func (s *Scene) Update(dt float64) {
	if !s.active {
		return
	}
	s.world.Step(dt)

	handles := slices.Clone(s.order)
	for _, h := range handles {
		obj, ok := s.objects[h]
		if !ok {
			continue
		}
		obj.Update(dt)
		body, ok := s.world.RigidBody(h)
		if !ok {
			continue
		}
		obj.SetPosition(body.Position)
		obj.SetVelocity(body.Velocity)
		if g, ok := obj.(groundedSetter); ok {
			g.SetGrounded(body.Grounded)
		}
	}

	s.publishContacts()
	s.prune(handles)
}

// prune removes inactive objects. It walks a snapshot so removal never
// mutates the slice being iterated.
func (s *Scene) prune(handles []Handle) {
	s.removed = s.removed[:0]
	for _, h := range handles {
		obj, ok := s.objects[h]
		if !ok || obj.Active() {
			continue
		}
		s.remove(h)
		s.removed = append(s.removed, h)
		s.logger.Debug("pruned inactive object",
			log.Uint64("handle", uint64(h)),
			log.String("name", obj.Name()),
		)
		s.publish(EventObjectRemoved, ObjectRemovedEvent{Scene: s.name, SceneID: s.id, Handle: h, Name: obj.Name()})
	}
}

// Pruned lists the handles removed by the most recent Update.
func (s *Scene) Pruned() []Handle { return slices.Clone(s.removed) }

func (s *Scene) ApplyForceToObject(h Handle, force physics.Vector3) {
	s.world.ApplyForce(h, force)
}

func (s *Scene) ApplyImpulseToObject(h Handle, impulse physics.Vector3) {
	s.world.ApplyImpulse(h, impulse)
}

func (s *Scene) SetObjectVelocity(h Handle, v physics.Vector3) {
	s.world.SetVelocity(h, v)
}

// Properties

// ID identifies this scene instance. Unlike the name it is unique, so event
// consumers use it to tell same-named scenes apart.
func (s *Scene) ID() string { return s.id }

func (s *Scene) Name() string          { return s.name }
func (s *Scene) SetName(name string)   { s.name = name }
func (s *Scene) Active() bool          { return s.active }
func (s *Scene) SetActive(active bool) { s.active = active }
func (s *Scene) Background() Color     { return s.background }
func (s *Scene) AmbientLight() float64 { return s.ambientLight }

func (s *Scene) SetBackground(r, g, b float64) {
	s.background = Color{R: clampUnit(r), G: clampUnit(g), B: clampUnit(b)}
}

func (s *Scene) SetAmbientLight(intensity float64) {
	s.ambientLight = clampUnit(intensity)
}

func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
