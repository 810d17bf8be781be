package physics

import (
	"math"
	"slices"

	"github.com/zeusync/scenesim/internal/core/observability/log"
)

// subStepTolerance absorbs the rounding left in the accumulator after
// repeatedly subtracting the fixed step, relative to the step size. Without it
// Step(1.0) at 1/60 s runs 59 sub-steps instead of 60.
const subStepTolerance = 1e-9

// groundedCos is the minimum vertical component of a contact normal for the
// upper body to count as standing on the lower one.
const groundedCos = 0.7

// World owns a set of rigid bodies and advances them on a fixed timestep.
// It is not safe for concurrent use; the owning Scene drives it from a single
// goroutine.
type World struct {
	bodies     map[BodyHandle]*RigidBody
	order      []BodyHandle
	nextHandle BodyHandle

	gravity        Vector3
	airResistance  float64
	groundFriction float64
	fixedStep      float64
	separationBias float64
	maxSubSteps    int

	accumulator float64
	subSteps    uint64

	broadPhase BroadPhase
	entries    []BroadPhaseEntry
	pairs      []Pair
	contacts   []Contact
	stats      Stats

	logger log.Log
}

type Option func(*World)

func WithLogger(l log.Log) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithBroadPhase(bp BroadPhase) Option {
	return func(w *World) {
		if bp != nil {
			w.broadPhase = bp
		}
	}
}

// WithConfig applies c without validating it; use NewWorldFromConfig for
// configuration that comes from outside the program.
func WithConfig(c Config) Option {
	return func(w *World) {
		w.applyConfig(c)
	}
}

func NewWorld(opts ...Option) *World {
	w := &World{
		bodies:     make(map[BodyHandle]*RigidBody),
		broadPhase: BruteForce{},
		logger:     log.NewNop(),
	}
	w.applyConfig(DefaultConfig())
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewWorldFromConfig validates c before building the world.
func NewWorldFromConfig(c Config, opts ...Option) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewWorld(append([]Option{WithConfig(c)}, opts...)...), nil
}

func (w *World) applyConfig(c Config) {
	w.gravity = c.Gravity
	w.airResistance = c.AirResistance
	w.groundFriction = c.GroundFriction
	w.fixedStep = c.FixedTimestep
	w.separationBias = c.SeparationBias
	w.maxSubSteps = c.MaxSubSteps
}

// Config reports the current simulation parameters.
func (w *World) Config() Config {
	return Config{
		Gravity:        w.gravity,
		AirResistance:  w.airResistance,
		GroundFriction: w.groundFriction,
		FixedTimestep:  w.fixedStep,
		SeparationBias: w.separationBias,
		MaxSubSteps:    w.maxSubSteps,
	}
}

// Body management

// AddRigidBody takes ownership of body and returns its new handle.
func (w *World) AddRigidBody(body *RigidBody) BodyHandle {
	h := w.nextHandle
	w.nextHandle++
	w.bodies[h] = body
	// Handles only grow, so appending keeps order sorted.
	w.order = append(w.order, h)
	return h
}

// RemoveRigidBody is a no-op for unknown handles.
func (w *World) RemoveRigidBody(h BodyHandle) {
	if _, ok := w.bodies[h]; !ok {
		return
	}
	delete(w.bodies, h)
	if i, found := slices.BinarySearch(w.order, h); found {
		w.order = slices.Delete(w.order, i, i+1)
	}
}

func (w *World) RigidBody(h BodyHandle) (*RigidBody, bool) {
	b, ok := w.bodies[h]
	return b, ok
}

func (w *World) HasBody(h BodyHandle) bool {
	_, ok := w.bodies[h]
	return ok
}

func (w *World) BodyCount() int { return len(w.bodies) }

// Handles returns live handles in ascending order.
func (w *World) Handles() []BodyHandle { return slices.Clone(w.order) }

// NextHandle is the handle the next AddRigidBody call will return.
func (w *World) NextHandle() BodyHandle { return w.nextHandle }

// Reset drops every body and restarts the handle sequence, keeping the
// simulation parameters, logger and broad-phase.
func (w *World) Reset() {
	clear(w.bodies)
	w.order = w.order[:0]
	w.nextHandle = 0
	w.accumulator = 0
	w.subSteps = 0
	w.contacts = w.contacts[:0]
	w.stats = Stats{}
}

// Handle-addressed mutation. Unknown handles are ignored: gameplay code often
// touches objects that deactivated earlier in the same frame.

func (w *World) ApplyForce(h BodyHandle, f Vector3) {
	if b, ok := w.bodies[h]; ok {
		b.AddForce(f)
	}
}

func (w *World) ApplyImpulse(h BodyHandle, j Vector3) {
	if b, ok := w.bodies[h]; ok {
		b.AddImpulse(j)
	}
}

func (w *World) SetVelocity(h BodyHandle, v Vector3) {
	if b, ok := w.bodies[h]; ok {
		b.SetVelocity(v)
	}
}

func (w *World) SetPosition(h BodyHandle, p Vector3) {
	if b, ok := w.bodies[h]; ok {
		b.SetPosition(p)
	}
}

// Parameters

func (w *World) Gravity() Vector3           { return w.gravity }
func (w *World) SetGravity(g Vector3)       { w.gravity = g }
func (w *World) AirResistance() float64     { return w.airResistance }
func (w *World) SetAirResistance(r float64) { w.airResistance = math.Max(r, 0) }
func (w *World) GroundFriction() float64    { return w.groundFriction }
func (w *World) SetGroundFriction(f float64) {
	w.groundFriction = math.Max(f, 0)
}
func (w *World) SeparationBias() float64     { return w.separationBias }
func (w *World) SetSeparationBias(b float64) { w.separationBias = math.Max(b, 0) }
func (w *World) FixedTimestep() float64      { return w.fixedStep }

// SetFixedTimestep ignores non-positive or non-finite values.
func (w *World) SetFixedTimestep(h float64) {
	if !(h > 0) || math.IsInf(h, 0) {
		return
	}
	w.fixedStep = h
}

func (w *World) SetMaxSubSteps(n int) { w.maxSubSteps = max(n, 0) }

func (w *World) SetBroadPhase(bp BroadPhase) {
	if bp != nil {
		w.broadPhase = bp
	}
}

// Accumulator is the simulated time carried over to the next Step.
func (w *World) Accumulator() float64 { return w.accumulator }

// Contacts returns the contacts found during the most recent Step, across all
// of its sub-steps, in detection order. The slice is reused by the next Step.
func (w *World) Contacts() []Contact { return w.contacts }

func (w *World) Stats() Stats { return w.stats }

// Simulation

// Step advances the world by dt seconds of wall-clock time. The time is
// accumulated and consumed in whole fixed sub-steps; the remainder carries
// over, so the number of sub-steps depends only on the total time fed in.
// Non-positive and non-finite dt are ignored.
func (w *World) Step(dt float64) {
	w.contacts = w.contacts[:0]
	w.stats = Stats{TotalSubSteps: w.subSteps}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	w.accumulator += dt
	tolerance := w.fixedStep * subStepTolerance
	for w.accumulator+tolerance >= w.fixedStep {
		if w.maxSubSteps > 0 && w.stats.SubSteps >= w.maxSubSteps {
			remainder := math.Mod(w.accumulator, w.fixedStep)
			w.stats.DroppedTime = w.accumulator - remainder
			w.accumulator = remainder
			w.logger.Warn("physics step fell behind, dropping time",
				log.Float64("dropped", w.stats.DroppedTime),
				log.Int("max_sub_steps", w.maxSubSteps),
			)
			break
		}
		w.subStep(w.fixedStep)
		w.accumulator -= w.fixedStep
		w.stats.SubSteps++
	}
	if w.accumulator < 0 {
		w.accumulator = 0
	}
	w.stats.TotalSubSteps = w.subSteps
}

// subStep runs one fixed step. The order of the phases is part of the
// simulation's observable behavior.
func (w *World) subStep(h float64) {
	w.subSteps++
	w.applyForces()
	w.integrateVelocities(h)
	first := len(w.contacts)
	w.detectCollisions()
	w.resolveCollisions(w.contacts[first:])
	w.integratePositions(h)
}

func (w *World) applyForces() {
	for _, h := range w.order {
		b := w.bodies[h]
		if b.Kind != Dynamic {
			continue
		}
		if b.UseGravity {
			b.AddForce(w.gravity.Mul(b.mass))
		}
		speed := b.Velocity.Len()
		b.AddForce(b.Velocity.Mul(-w.airResistance * speed))
		if b.Grounded {
			b.AddForce(Vector3{
				-b.Velocity[0] * w.groundFriction * b.mass,
				0,
				-b.Velocity[2] * w.groundFriction * b.mass,
			})
		}
	}
}

func (w *World) integrateVelocities(h float64) {
	for _, handle := range w.order {
		b := w.bodies[handle]
		if b.Kind != Dynamic {
			continue
		}
		acceleration := b.force.Mul(1 / b.mass)
		b.Velocity = b.Velocity.Add(acceleration.Mul(h))
		if b.MaxVelocity > 0 {
			b.Velocity = b.Velocity.ClampLen(b.MaxVelocity)
		}
		b.force = Vector3{}
	}
}

func (w *World) detectCollisions() {
	w.entries = w.entries[:0]
	for _, h := range w.order {
		b := w.bodies[h]
		if b.Kind == Dynamic {
			b.Grounded = false
		}
		w.entries = append(w.entries, BroadPhaseEntry{
			Handle: h,
			Bounds: b.Bounds(),
			Static: b.Kind == Static,
		})
	}

	w.pairs = w.broadPhase.Pairs(w.entries, w.pairs[:0])
	w.stats.Candidates += len(w.pairs)
	for _, p := range w.pairs {
		a, b := w.bodies[p.A], w.bodies[p.B]
		if a == nil || b == nil {
			continue
		}
		if a.Kind == Static && b.Kind == Static {
			continue
		}
		if !a.Interacts(b) {
			continue
		}
		c := Contact{A: p.A, B: p.B, Trigger: a.IsTrigger || b.IsTrigger, SubStep: w.subSteps}
		if c.Trigger {
			w.stats.TriggerContact++
			w.logger.Debug("trigger contact",
				log.Uint64("a", uint64(c.A)),
				log.Uint64("b", uint64(c.B)),
			)
		} else {
			w.stats.PhysicalContact++
		}
		w.contacts = append(w.contacts, c)
	}
}

// resolveCollisions applies a one-dimensional impulse along the
// center-to-center normal of each physical contact. The normal is not
// face-accurate; boxes meeting at a corner are pushed diagonally.
func (w *World) resolveCollisions(contacts []Contact) {
	for i := range contacts {
		c := &contacts[i]
		if c.Trigger {
			continue
		}
		a, b := w.bodies[c.A], w.bodies[c.B]

		n := b.Position.Sub(a.Position).Normalize()
		if n.IsZero() {
			n = Up()
		}
		c.Normal = n

		if a.Kind == Dynamic && n[1] <= -groundedCos {
			a.Grounded = true
		}
		if b.Kind == Dynamic && n[1] >= groundedCos {
			b.Grounded = true
		}

		vn := b.Velocity.Sub(a.Velocity).Dot(n)
		if vn >= 0 {
			continue
		}
		invA, invB := a.InverseMass(), b.InverseMass()
		if invA+invB == 0 {
			continue
		}

		e := (a.restitution + b.restitution) * 0.5
		j := -(1 + e) * vn / (invA + invB)
		c.Impulse = j
		w.stats.Resolved++

		impulse := n.Mul(j)
		half := w.separationBias * 0.5
		if a.Kind == Dynamic {
			a.Velocity = a.Velocity.Sub(impulse.Mul(invA))
			a.Position = a.Position.Sub(n.Mul(half))
		}
		if b.Kind == Dynamic {
			b.Velocity = b.Velocity.Add(impulse.Mul(invB))
			b.Position = b.Position.Add(n.Mul(half))
		}
	}
}

func (w *World) integratePositions(h float64) {
	for _, handle := range w.order {
		b := w.bodies[handle]
		if b.Kind != Dynamic {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(h))
	}
}
