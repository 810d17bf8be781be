package physics

// BoundingBox is an axis-aligned box. Boxes built with BoxFromCenter always
// satisfy Min <= Max on every axis; NewBoundingBox trusts the caller.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

func NewBoundingBox(lo, hi Vector3) BoundingBox {
	return BoundingBox{Min: lo, Max: hi}
}

// BoxFromCenter builds a box from its center and half extents. Negative half
// extents are folded to their absolute value.
func BoxFromCenter(center, halfSize Vector3) BoundingBox {
	h := halfSize.Abs()
	return BoundingBox{Min: center.Sub(h), Max: center.Add(h)}
}

// Intersects is an inclusive per-axis separating-axis test; touching faces
// count as overlap. The test is symmetric.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

func (b BoundingBox) Contains(p Vector3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

func (b BoundingBox) Center() Vector3   { return b.Min.Add(b.Max).Mul(0.5) }
func (b BoundingBox) Size() Vector3     { return b.Max.Sub(b.Min) }
func (b BoundingBox) HalfSize() Vector3 { return b.Size().Mul(0.5) }

// Overlap returns the per-axis penetration depth; a non-positive component
// means the boxes are separated on that axis.
func (b BoundingBox) Overlap(o BoundingBox) Vector3 {
	return b.Max.Min(o.Max).Sub(b.Min.Max(o.Min))
}

func (b BoundingBox) Expand(margin float64) BoundingBox {
	m := Vector3{margin, margin, margin}
	return BoundingBox{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// ClosestPoint clamps p into the box.
func (b BoundingBox) ClosestPoint(p Vector3) Vector3 {
	return p.Max(b.Min).Min(b.Max)
}
