package scene

import (
	"math"

	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

// RaycastResult is a ray hit translated to scene handles.
type RaycastResult struct {
	Handle   Handle
	Point    physics.Vector3
	Normal   physics.Vector3
	Distance float64
}

// ObjectsInRadius returns, in handle order, the objects whose position lies
// within radius of center. It scans every object.
func (s *Scene) ObjectsInRadius(center physics.Vector3, radius float64) []Handle {
	var out []Handle
	r2 := radius * radius
	for _, h := range s.order {
		if s.objects[h].Position().DistanceSqr(center) <= r2 {
			out = append(out, h)
		}
	}
	return out
}

// ClosestObject returns the object nearest to p and its distance. Ties go to
// the lower handle.
func (s *Scene) ClosestObject(p physics.Vector3) (Handle, float64, bool) {
	var (
		best  Handle
		found bool
	)
	bestDist := math.Inf(1)
	for _, h := range s.order {
		d := s.objects[h].Position().Distance(p)
		if d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, bestDist, found
}

// OverlapSphere returns the objects whose bounds touch the sphere.
func (s *Scene) OverlapSphere(center physics.Vector3, radius float64) []Handle {
	var out []Handle
	r2 := radius * radius
	for _, h := range s.order {
		closest := s.objects[h].Bounds().ClosestPoint(center)
		if closest.DistanceSqr(center) <= r2 {
			out = append(out, h)
		}
	}
	return out
}

func (s *Scene) Raycast(origin, direction physics.Vector3, maxDistance float64) (RaycastResult, bool) {
	hit, ok := s.world.Raycast(origin, direction, maxDistance)
	if !ok {
		return RaycastResult{}, false
	}
	return RaycastResult{
		Handle:   hit.Body,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Distance: hit.Distance,
	}, true
}
