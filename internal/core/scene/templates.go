package scene

import (
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

const (
	TestSceneName     = "Test Scene"
	PlatformSceneName = "Platform Scene"
)

// NewTestScene builds a small arena: a player on a floor, a row of coins,
// two raised ledges and two enemies.
func NewTestScene(opts ...Option) *Scene {
	s := New(TestSceneName, opts...)

	s.AddPlayer(physics.Vec3(0, 1, 0))

	for i := 0; i < 5; i++ {
		x := float64(i-2) * 3
		s.AddCollectible(physics.Vec3(x, 1, -5), 10)
	}

	s.AddPlatform(physics.Vec3(10, 0.5, 10), physics.Vec3(0, -1, 0))
	s.AddPlatform(physics.Vec3(2, 0.5, 2), physics.Vec3(-8, 2, -5))
	s.AddPlatform(physics.Vec3(2, 0.5, 2), physics.Vec3(8, 3, -5))

	s.AddEnemy(physics.Vec3(-5, 1, -8))
	s.AddEnemy(physics.Vec3(5, 1, -8))

	s.SetBackground(0.2, 0.3, 0.6)
	s.SetAmbientLight(0.4)
	return s
}

// NewPlatformScene builds a wide ground with ten ledges stepping between
// three heights.
func NewPlatformScene(opts ...Option) *Scene {
	s := New(PlatformSceneName, opts...)

	s.AddPlatform(physics.Vec3(25, 1, 25), physics.Vec3(0, -2, 0))
	for i := 0; i < 10; i++ {
		x := float64(i-5) * 4
		y := float64(i%3) * 2
		s.AddPlatform(physics.Vec3(1.5, 0.25, 1.5), physics.Vec3(x, y, -10))
	}

	s.AddPlayer(physics.Vec3(0, 1, 0))
	s.SetBackground(0.4, 0.6, 0.8)
	return s
}
