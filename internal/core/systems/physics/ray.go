package physics

import "math"

// Ray is a half-line. Direction is normalized by NewRay.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay returns false when direction has zero length.
func NewRay(origin, direction Vector3) (Ray, bool) {
	d := direction.Normalize()
	if d.IsZero() {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: d}, true
}

func (r Ray) At(t float64) Vector3 { return r.Origin.Add(r.Direction.Mul(t)) }

// IntersectBox runs the slab test and returns the entry distance. Rays that
// start inside the box or whose entry lies behind the origin miss.
func (r Ray) IntersectBox(b BoundingBox) (float64, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
	}
	if tNear > tFar || tNear < 0 {
		return 0, false
	}
	return tNear, true
}

// FaceNormal picks the axis-aligned face of b closest to a point on its
// surface.
func FaceNormal(b BoundingBox, point Vector3) Vector3 {
	local := point.Sub(b.Center())
	half := b.HalfSize()
	ratio := func(axis int) float64 {
		if half[axis] <= Epsilon {
			return 0
		}
		return math.Abs(local[axis] / half[axis])
	}
	sign := func(f float64) float64 {
		if f > 0 {
			return 1
		}
		return -1
	}
	ax, ay, az := ratio(0), ratio(1), ratio(2)
	switch {
	case ax > ay && ax > az:
		return Vector3{sign(local[0]), 0, 0}
	case ay > az:
		return Vector3{0, sign(local[1]), 0}
	default:
		return Vector3{0, 0, sign(local[2])}
	}
}
