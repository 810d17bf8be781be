package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

// Description is the file form of a scene.
type Description struct {
	Name         string              `json:"name" yaml:"name"`
	Physics      physics.Config      `json:"physics" yaml:"physics"`
	Background   Color               `json:"background" yaml:"background"`
	AmbientLight float64             `json:"ambient_light" yaml:"ambient_light"`
	Camera       CameraDescription   `json:"camera" yaml:"camera"`
	Objects      []ObjectDescription `json:"objects" yaml:"objects"`
}

type CameraDescription struct {
	Position physics.Vector3 `json:"position" yaml:"position"`
	Target   physics.Vector3 `json:"target" yaml:"target"`
}

// ObjectDescription describes one object. Kind is one of player,
// collectible, enemy, platform or prop; the remaining fields apply where
// they make sense for the kind.
type ObjectDescription struct {
	// ID names the instance in build results; a random one is assigned when
	// empty.
	ID       string          `json:"id,omitempty" yaml:"id,omitempty"`
	Kind     string          `json:"kind" yaml:"kind"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Position physics.Vector3 `json:"position" yaml:"position"`
	// HalfSize overrides the kind's default extents. Required for platforms
	// and props.
	HalfSize *physics.Vector3 `json:"half_size,omitempty" yaml:"half_size,omitempty"`
	Velocity physics.Vector3  `json:"velocity,omitempty" yaml:"velocity,omitempty"`

	// Body selects dynamic, kinematic or static for props.
	Body        string   `json:"body,omitempty" yaml:"body,omitempty"`
	Trigger     bool     `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Material    string   `json:"material,omitempty" yaml:"material,omitempty"`
	Mass        float64  `json:"mass,omitempty" yaml:"mass,omitempty"`
	Restitution *float64 `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	MaxVelocity float64  `json:"max_velocity,omitempty" yaml:"max_velocity,omitempty"`

	Value       int               `json:"value,omitempty" yaml:"value,omitempty"`
	Collectible string            `json:"collectible,omitempty" yaml:"collectible,omitempty"`
	Platform    string            `json:"platform,omitempty" yaml:"platform,omitempty"`
	Patrol      []physics.Vector3 `json:"patrol,omitempty" yaml:"patrol,omitempty"`
}

// Prop is a plain box with no behavior of its own.
type Prop struct {
	BaseObject
}

func NewProp(name string, position, halfSize physics.Vector3) *Prop {
	return &Prop{BaseObject: NewBaseObject(name, position, halfSize)}
}

// DefaultDescription holds the values a decoded description starts from.
func DefaultDescription() Description {
	return Description{
		Physics:      physics.DefaultConfig(),
		Background:   DefaultBackground,
		AmbientLight: DefaultAmbientLight,
		Camera: CameraDescription{
			Position: DefaultCameraPosition,
			Target:   DefaultCameraTarget,
		},
	}
}

// LoadDescriptionYAML decodes every document of a YAML stream. Keys a
// document omits keep the values of DefaultDescription. Scene names must be
// unique across the stream.
func LoadDescriptionYAML(r io.Reader) ([]Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []Description
	names := make(map[string]struct{})
	for {
		d := DefaultDescription()
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode scene description %d: %w", len(out), err)
		}
		if err = d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := names[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate scene name %q", ErrInvalidDescription, d.Name)
		}
		names[d.Name] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

// Validate checks the description without building anything.
func (d Description) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescription)
	}
	if len(d.Objects) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyScene, d.Name)
	}
	if err := d.Physics.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", d.Name, err)
	}
	ids := make(map[string]struct{}, len(d.Objects))
	for i, o := range d.Objects {
		if err := o.validate(); err != nil {
			return fmt.Errorf("scene %q object %d: %w", d.Name, i, err)
		}
		if o.ID == "" {
			continue
		}
		if _, dup := ids[o.ID]; dup {
			return fmt.Errorf("%w: scene %q: duplicate object id %q", ErrInvalidDescription, d.Name, o.ID)
		}
		ids[o.ID] = struct{}{}
	}
	return nil
}

func (o ObjectDescription) validate() error {
	if !o.Position.IsFinite() || !o.Velocity.IsFinite() {
		return fmt.Errorf("%w: %w", ErrInvalidDescription, physics.ErrInvalidVector)
	}
	if o.HalfSize != nil && !o.HalfSize.IsFinite() {
		return fmt.Errorf("%w: half_size: %w", ErrInvalidDescription, physics.ErrInvalidVector)
	}
	if o.Material != "" {
		if _, ok := physics.MaterialByName(o.Material); !ok {
			return fmt.Errorf("%w: unknown material %q", ErrInvalidDescription, o.Material)
		}
	}

	switch o.Kind {
	case "player", "enemy":
	case "collectible":
		if _, err := ParseCollectibleKind(o.Collectible); err != nil {
			return err
		}
	case "platform":
		if o.HalfSize == nil {
			return fmt.Errorf("%w: platform needs half_size", ErrInvalidDescription)
		}
		if _, err := ParsePlatformKind(o.Platform); err != nil {
			return err
		}
	case "prop":
		if o.HalfSize == nil {
			return fmt.Errorf("%w: prop needs half_size", ErrInvalidDescription)
		}
		if o.Body != "" {
			if _, err := physics.ParseBodyKind(o.Body); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownObjectKind, o.Kind)
	}
	return nil
}

// Build creates the scene. The returned map resolves every object's ID,
// including generated ones, to its handle.
func (d Description) Build(logger log.Log, opts ...Option) (*Scene, map[string]Handle, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	world, err := physics.NewWorldFromConfig(d.Physics, physics.WithLogger(logger.Named("physics")))
	if err != nil {
		return nil, nil, err
	}

	s := New(d.Name, append([]Option{WithLogger(logger), WithWorld(world)}, opts...)...)
	s.SetBackground(d.Background.R, d.Background.G, d.Background.B)
	s.SetAmbientLight(d.AmbientLight)
	s.SetCameraPosition(d.Camera.Position)
	s.SetCameraTarget(d.Camera.Target)

	handles := make(map[string]Handle, len(d.Objects))
	for _, o := range d.Objects {
		h, err := s.addDescribed(o)
		if err != nil {
			return nil, nil, err
		}
		id := o.ID
		if id == "" {
			id = uuid.NewString()
		}
		handles[id] = h
	}
	return s, handles, nil
}

func (s *Scene) addDescribed(o ObjectDescription) (Handle, error) {
	name := o.Name
	if name == "" {
		name = defaultObjectName(o.Kind)
	}

	var (
		h           Handle
		material    = physics.DefaultMaterial()
		hasMaterial bool
	)
	switch o.Kind {
	case "player":
		p := NewPlayer(name, o.Position)
		p.SetVelocity(o.Velocity)
		resize(&p.BaseObject, o)
		h = s.AddObject(p)
	case "collectible":
		kind, err := ParseCollectibleKind(o.Collectible)
		if err != nil {
			return 0, err
		}
		c := NewCollectible(name, o.Position, o.Value, kind)
		resize(&c.BaseObject, o)
		h = s.AddTriggerObject(c)
	case "enemy":
		e := NewEnemy(name, o.Position)
		e.SetVelocity(o.Velocity)
		for _, p := range o.Patrol {
			e.AddPatrolPoint(p)
		}
		resize(&e.BaseObject, o)
		h = s.AddObject(e)
	case "platform":
		kind, err := ParsePlatformKind(o.Platform)
		if err != nil {
			return 0, err
		}
		p := NewPlatform(name, o.Position, *o.HalfSize, kind)
		h = s.AddStaticObject(p)
		material, hasMaterial = p.Material(), true
	case "prop":
		kind := physics.Dynamic
		if o.Body != "" {
			var err error
			if kind, err = physics.ParseBodyKind(o.Body); err != nil {
				return 0, err
			}
		}
		p := NewProp(name, o.Position, *o.HalfSize)
		p.SetVelocity(o.Velocity)
		switch {
		case kind == physics.Static:
			h = s.AddStaticObject(p)
		case kind == physics.Kinematic:
			h = s.AddKinematicObject(p)
		case o.Trigger:
			h = s.AddTriggerObject(p)
		default:
			h = s.AddObject(p)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownObjectKind, o.Kind)
	}

	if o.Material != "" {
		material, _ = physics.MaterialByName(o.Material)
		hasMaterial = true
	}
	s.tuneBody(h, o, material, hasMaterial)
	return h, nil
}

// tuneBody applies the physical overrides of o. An explicit mass wins over
// the one derived from the material.
func (s *Scene) tuneBody(h Handle, o ObjectDescription, material physics.Material, hasMaterial bool) {
	body, ok := s.world.RigidBody(h)
	if !ok {
		return
	}
	if hasMaterial {
		body.ApplyMaterial(material)
	}
	if o.Mass > 0 {
		body.SetMass(o.Mass)
	}
	if o.Restitution != nil {
		body.SetRestitution(*o.Restitution)
	}
	if o.MaxVelocity > 0 {
		body.MaxVelocity = o.MaxVelocity
	}
}

func resize(b *BaseObject, o ObjectDescription) {
	if o.HalfSize != nil {
		b.halfSize = o.HalfSize.Abs()
	}
}

func defaultObjectName(kind string) string {
	switch kind {
	case "player":
		return "Player"
	case "collectible":
		return "Collectible"
	case "enemy":
		return "Enemy"
	case "platform":
		return "Platform"
	default:
		return "Prop"
	}
}
