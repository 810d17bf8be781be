package physics

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigYAML(t *testing.T) {
	src := `
gravity: [0, -3.7, 0]
fixed_timestep: 0.02
max_sub_steps: 8
`
	cfg, err := LoadConfigYAML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, Vec3(0, -3.7, 0), cfg.Gravity)
	assert.Equal(t, 0.02, cfg.FixedTimestep)
	assert.Equal(t, 8, cfg.MaxSubSteps)
	assert.Equal(t, DefaultAirResistance, cfg.AirResistance, "omitted keys keep defaults")
	assert.Equal(t, DefaultGroundFriction, cfg.GroundFriction)
}

func TestLoadConfigYAMLEmpty(t *testing.T) {
	cfg, err := LoadConfigYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigYAMLRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown field", src: "gravityy: [0, 0, 0]\n"},
		{name: "zero timestep", src: "fixed_timestep: 0\n"},
		{name: "negative drag", src: "air_resistance: -1\n"},
		{name: "short vector", src: "gravity: [0, 1]\n"},
		{name: "negative cap", src: "max_sub_steps: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigYAML(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	c := DefaultConfig()
	c.Gravity = Vec3(math.NaN(), 0, 0)
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, c.Validate(), ErrInvalidVector)

	c = DefaultConfig()
	c.FixedTimestep = math.Inf(1)
	assert.ErrorIs(t, c.Validate(), ErrInvalidTimestep)

	c = DefaultConfig()
	c.SeparationBias = -0.1
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}

func TestWorldParameterSetters(t *testing.T) {
	w := NewWorld()
	w.SetFixedTimestep(0)
	w.SetFixedTimestep(math.NaN())
	w.SetFixedTimestep(math.Inf(1))
	assert.Equal(t, DefaultFixedTimestep, w.FixedTimestep())

	w.SetFixedTimestep(0.01)
	assert.Equal(t, 0.01, w.FixedTimestep())

	w.SetAirResistance(-5)
	assert.Equal(t, 0.0, w.AirResistance())
	w.SetGroundFriction(-5)
	assert.Equal(t, 0.0, w.GroundFriction())
	w.SetMaxSubSteps(-1)
	assert.Equal(t, 0, w.Config().MaxSubSteps)
}
