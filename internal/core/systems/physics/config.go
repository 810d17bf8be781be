package physics

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFixedTimestep  = 1.0 / 60.0
	DefaultAirResistance  = 0.01
	DefaultGroundFriction = 0.8
	DefaultSeparationBias = 0.01
)

// DefaultGravity points down at 9.81 units/s².
var DefaultGravity = Vector3{0, -9.81, 0}

// Config holds the world-wide simulation parameters.
type Config struct {
	Gravity        Vector3 `json:"gravity" yaml:"gravity"`
	AirResistance  float64 `json:"air_resistance" yaml:"air_resistance"`
	GroundFriction float64 `json:"ground_friction" yaml:"ground_friction"`
	FixedTimestep  float64 `json:"fixed_timestep" yaml:"fixed_timestep"`
	SeparationBias float64 `json:"separation_bias" yaml:"separation_bias"`
	// MaxSubSteps bounds the sub-steps run by one Step call; 0 means no bound.
	MaxSubSteps int `json:"max_sub_steps,omitempty" yaml:"max_sub_steps,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:        DefaultGravity,
		AirResistance:  DefaultAirResistance,
		GroundFriction: DefaultGroundFriction,
		FixedTimestep:  DefaultFixedTimestep,
		SeparationBias: DefaultSeparationBias,
	}
}

// Validate rejects non-finite or negative parameters.
func (c Config) Validate() error {
	if !c.Gravity.IsFinite() {
		return fmt.Errorf("%w: gravity: %w", ErrInvalidConfig, ErrInvalidVector)
	}
	if !(c.FixedTimestep > 0) || math.IsInf(c.FixedTimestep, 0) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidTimestep)
	}
	if !(c.AirResistance >= 0) || math.IsInf(c.AirResistance, 0) {
		return fmt.Errorf("%w: air resistance must be a non-negative number", ErrInvalidConfig)
	}
	if !(c.GroundFriction >= 0) || math.IsInf(c.GroundFriction, 0) {
		return fmt.Errorf("%w: ground friction must be a non-negative number", ErrInvalidConfig)
	}
	if !(c.SeparationBias >= 0) || math.IsInf(c.SeparationBias, 0) {
		return fmt.Errorf("%w: separation bias must be a non-negative number", ErrInvalidConfig)
	}
	if c.MaxSubSteps < 0 {
		return fmt.Errorf("%w: max sub steps must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfigYAML decodes a configuration on top of DefaultConfig, so omitted
// keys keep their defaults.
func LoadConfigYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode physics config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
