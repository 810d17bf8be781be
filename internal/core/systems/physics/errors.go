package physics

import "errors"

// Configuration errors. Simulation calls never fail; only building a world
// from external configuration can.
var (
	ErrInvalidConfig   = errors.New("invalid physics configuration")
	ErrInvalidTimestep = errors.New("fixed timestep must be positive and finite")
	ErrInvalidVector   = errors.New("vector components must be finite")
)
