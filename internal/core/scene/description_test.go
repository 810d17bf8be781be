package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

const arenaYAML = `
name: Arena
physics:
  gravity: [0, -20, 0]
  max_sub_steps: 8
ambient_light: 0.6
camera:
  position: [0, 10, 20]
objects:
  - id: hero
    kind: player
    position: [0, 2, 0]
  - id: ground
    kind: platform
    platform: bouncy
    position: [0, -1, 0]
    half_size: [10, 0.5, 10]
  - kind: collectible
    collectible: gem
    value: 50
    position: [3, 1, 0]
  - id: guard
    kind: enemy
    position: [5, 1, 5]
    patrol: [[5, 1, 5], [-5, 1, 5]]
  - id: crate
    kind: prop
    position: [-3, 3, 0]
    half_size: [0.5, 0.5, 0.5]
    material: metal
    restitution: 0.1
  - id: lift
    kind: prop
    body: kinematic
    position: [8, 0, 0]
    velocity: [0, 1, 0]
    half_size: [1, 0.1, 1]
---
name: Empty Sky
objects:
  - kind: prop
    body: static
    position: [0, 0, 0]
    half_size: [1, 1, 1]
`

func TestLoadDescriptionYAML(t *testing.T) {
	descs, err := LoadDescriptionYAML(strings.NewReader(arenaYAML))
	require.NoError(t, err)
	require.Len(t, descs, 2)

	arena := descs[0]
	assert.Equal(t, "Arena", arena.Name)
	assert.Equal(t, physics.Vec3(0, -20, 0), arena.Physics.Gravity)
	assert.Equal(t, physics.DefaultFixedTimestep, arena.Physics.FixedTimestep, "omitted keys keep defaults")
	assert.Equal(t, 8, arena.Physics.MaxSubSteps)
	assert.Equal(t, DefaultBackground, arena.Background)
	assert.Equal(t, 0.6, arena.AmbientLight)
	assert.Equal(t, physics.Vec3(0, 10, 20), arena.Camera.Position)
	assert.Equal(t, DefaultCameraTarget, arena.Camera.Target)
	require.Len(t, arena.Objects, 6)
	assert.Len(t, arena.Objects[3].Patrol, 2)

	assert.Equal(t, "Empty Sky", descs[1].Name)
	assert.Equal(t, DefaultAmbientLight, descs[1].AmbientLight)
}

func TestDescriptionBuild(t *testing.T) {
	descs, err := LoadDescriptionYAML(strings.NewReader(arenaYAML))
	require.NoError(t, err)

	s, ids, err := descs[0].Build(log.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Arena", s.Name())
	assert.Equal(t, 6, s.ObjectCount())
	assert.Len(t, ids, 6, "unnamed objects get generated ids")
	assert.Equal(t, physics.Vec3(0, -20, 0), s.World().Gravity())
	assert.Equal(t, 0.6, s.AmbientLight())

	hero, ok := s.Object(ids["hero"])
	require.True(t, ok)
	assert.IsType(t, &Player{}, hero)

	ground, _ := s.RigidBody(ids["ground"])
	assert.Equal(t, physics.Static, ground.Kind)
	assert.Equal(t, physics.Vec3(10, 0.5, 10), ground.HalfSize)
	assert.Equal(t, physics.Rubber().Restitution, ground.Restitution())

	crate, _ := s.RigidBody(ids["crate"])
	assert.Equal(t, physics.Dynamic, crate.Kind)
	assert.InDelta(t, physics.Metal().Density, crate.Mass(), 1e-12)
	assert.Equal(t, 0.1, crate.Restitution(), "explicit restitution wins over the material")

	lift, _ := s.RigidBody(ids["lift"])
	assert.Equal(t, physics.Kinematic, lift.Kind)
	assert.Equal(t, physics.Vec3(0, 1, 0), lift.Velocity)

	guard, _ := s.Object(ids["guard"])
	guard.(*Enemy).Think(physics.Vec3(100, 0, 100))
	assert.Equal(t, EnemyPatrolling, guard.(*Enemy).State())

	for i := 0; i < 60; i++ {
		s.Update(frame)
	}
	assert.Equal(t, physics.Vec3(8, 0, 0), lift.Position, "velocity alone never moves a kinematic body")
	hb, _ := s.RigidBody(ids["hero"])
	assert.Greater(t, hb.Position.Y(), -0.5, "player stays above the ground")
}

func TestDescriptionValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{
			name: "missing name",
			src:  "objects: [{kind: player, position: [0, 0, 0]}]",
			err:  ErrInvalidDescription,
		},
		{
			name: "no objects",
			src:  "name: Void",
			err:  ErrEmptyScene,
		},
		{
			name: "unknown kind",
			src:  "name: X\nobjects: [{kind: dragon, position: [0, 0, 0]}]",
			err:  ErrUnknownObjectKind,
		},
		{
			name: "platform without half size",
			src:  "name: X\nobjects: [{kind: platform, position: [0, 0, 0]}]",
			err:  ErrInvalidDescription,
		},
		{
			name: "unknown material",
			src:  "name: X\nobjects: [{kind: player, position: [0, 0, 0], material: cheese}]",
			err:  ErrInvalidDescription,
		},
		{
			name: "duplicate id",
			src:  "name: X\nobjects: [{id: a, kind: player, position: [0, 0, 0]}, {id: a, kind: enemy, position: [1, 0, 0]}]",
			err:  ErrInvalidDescription,
		},
		{
			name: "bad physics",
			src:  "name: X\nphysics: {fixed_timestep: 0}\nobjects: [{kind: player, position: [0, 0, 0]}]",
			err:  physics.ErrInvalidConfig,
		},
		{
			name: "unknown collectible",
			src:  "name: X\nobjects: [{kind: collectible, collectible: crown, position: [0, 0, 0]}]",
			err:  ErrUnknownObjectKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDescriptionYAML(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadDescriptionYAMLRejectsDuplicateSceneNames(t *testing.T) {
	src := `
name: Twin
objects: [{kind: player, position: [0, 0, 0]}]
---
name: Twin
objects: [{kind: enemy, position: [0, 0, 0]}]
`
	_, err := LoadDescriptionYAML(strings.NewReader(src))
	require.ErrorIs(t, err, ErrInvalidDescription)
	assert.Contains(t, err.Error(), "Twin")
}

func TestLoadDescriptionYAMLRejectsUnknownFields(t *testing.T) {
	_, err := LoadDescriptionYAML(strings.NewReader("name: X\ncolour: red\n"))
	assert.Error(t, err)
}

func TestDescriptionBuildRejectsInvalid(t *testing.T) {
	_, _, err := Description{Name: "X"}.Build(nil)
	assert.ErrorIs(t, err, ErrEmptyScene)
}
