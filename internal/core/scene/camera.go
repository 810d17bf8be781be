package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

func (s *Scene) CameraPosition() physics.Vector3     { return s.cameraPosition }
func (s *Scene) SetCameraPosition(p physics.Vector3) { s.cameraPosition = p }
func (s *Scene) CameraTarget() physics.Vector3       { return s.cameraTarget }
func (s *Scene) SetCameraTarget(t physics.Vector3)   { s.cameraTarget = t }

func (s *Scene) MoveCamera(delta physics.Vector3) {
	s.cameraPosition = s.cameraPosition.Add(delta)
}

func (s *Scene) LookAt(target physics.Vector3) {
	s.cameraTarget = target
}

// ViewMatrix is the right-handed look-at matrix for the camera with +Y up.
// A camera sitting on its target yields the identity.
func (s *Scene) ViewMatrix() mgl64.Mat4 {
	if s.cameraPosition.ApproxEqual(s.cameraTarget, physics.Epsilon) {
		return mgl64.Ident4()
	}
	up := physics.Up()
	if s.cameraTarget.Sub(s.cameraPosition).Normalize().Cross(up).IsZero() {
		up = physics.Forward()
	}
	return mgl64.LookAtV(s.cameraPosition.Mgl(), s.cameraTarget.Mgl(), up.Mgl())
}
