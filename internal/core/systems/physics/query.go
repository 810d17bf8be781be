package physics

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Raycast returns the nearest body whose box the ray enters strictly within
// maxDistance. A zero-length direction never hits.
func (w *World) Raycast(origin, direction Vector3, maxDistance float64) (RaycastHit, bool) {
	return w.RaycastWith(origin, direction, maxDistance, RaycastOptions{})
}

func (w *World) RaycastWith(origin, direction Vector3, maxDistance float64, opts RaycastOptions) (RaycastHit, bool) {
	ray, ok := NewRay(origin, direction)
	if !ok || !(maxDistance > 0) {
		return RaycastHit{}, false
	}

	var (
		best    RaycastHit
		found   bool
		closest = maxDistance
	)
	for _, h := range w.order {
		b := w.bodies[h]
		if opts.IgnoreTriggers && b.IsTrigger {
			continue
		}
		if opts.Mask != 0 && !opts.Mask.Intersects(b.Layer) {
			continue
		}
		if slices.Contains(opts.Exclude, h) {
			continue
		}
		bounds := b.Bounds()
		t, hit := ray.IntersectBox(bounds)
		if !hit || t >= closest {
			continue
		}
		point := ray.At(t)
		closest = t
		found = true
		best = RaycastHit{
			Point:    point,
			Normal:   FaceNormal(bounds, point),
			Distance: t,
			Body:     h,
		}
	}
	return best, found
}

// QueryBox returns the handles of bodies whose bounds overlap box, ascending.
func (w *World) QueryBox(box BoundingBox) []BodyHandle {
	var out []BodyHandle
	for _, h := range w.order {
		if w.bodies[h].Bounds().Intersects(box) {
			out = append(out, h)
		}
	}
	return out
}

// QueryPoint returns the handles of bodies containing p, ascending.
func (w *World) QueryPoint(p Vector3) []BodyHandle {
	var out []BodyHandle
	for _, h := range w.order {
		if w.bodies[h].Bounds().Contains(p) {
			out = append(out, h)
		}
	}
	return out
}

// Fingerprint hashes the exact bit patterns of every body's kinematic state
// plus the carried accumulator. Two worlds that evolved identically produce
// the same value.
func (w *World) Fingerprint() uint64 {
	buf := make([]byte, 0, 8+len(w.order)*(8+6*8+1))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(w.accumulator))
	for _, h := range w.order {
		b := w.bodies[h]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(h))
		for _, v := range [...]Vector3{b.Position, b.Velocity} {
			for _, c := range v {
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c))
			}
		}
		if b.Grounded {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return xxhash.Sum64(buf)
}
