package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxFromCenter(t *testing.T) {
	b := BoxFromCenter(Vec3(1, 2, 3), Vec3(1, -2, 0.5))
	assert.Equal(t, Vec3(0, 0, 2.5), b.Min)
	assert.Equal(t, Vec3(2, 4, 3.5), b.Max)
	assert.Equal(t, Vec3(1, 2, 3), b.Center())
	assert.Equal(t, Vec3(2, 4, 1), b.Size())
	assert.Equal(t, Vec3(1, 2, 0.5), b.HalfSize())
}

func TestBoundingBoxIntersectsSymmetry(t *testing.T) {
	boxes := []BoundingBox{
		NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
		NewBoundingBox(Vec3(2, 0, 0), Vec3(3, 1, 1)),
		NewBoundingBox(Vec3(1, 0, 0), Vec3(2, 1, 1)),
		NewBoundingBox(Vec3(0.5, 0.5, 0.5), Vec3(0.6, 0.6, 0.6)),
		NewBoundingBox(Vec3(-5, -5, -5), Vec3(5, 5, 5)),
		NewBoundingBox(Vec3(0, -2, 0), Vec3(1, -1, 1)),
		NewBoundingBox(Vec3(0, 0, 1.0001), Vec3(1, 1, 2)),
		BoxFromCenter(Vec3(10, 10, 10), One()),
	}
	for i, a := range boxes {
		for j, b := range boxes {
			assert.Equal(t, a.Intersects(b), b.Intersects(a), "boxes %d and %d", i, j)
		}
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BoundingBox
		want bool
	}{
		{
			name: "identical",
			a:    NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
			b:    NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
			want: true,
		},
		{
			name: "touching faces",
			a:    NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
			b:    NewBoundingBox(Vec3(1, 0, 0), Vec3(2, 1, 1)),
			want: true,
		},
		{
			name: "separated on y",
			a:    NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
			b:    NewBoundingBox(Vec3(0, 2, 0), Vec3(1, 3, 1)),
			want: false,
		},
		{
			name: "contained",
			a:    NewBoundingBox(Vec3(-5, -5, -5), Vec3(5, 5, 5)),
			b:    NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
			want: true,
		},
		{
			name: "overlap on two axes only",
			a:    NewBoundingBox(Vec3(0, 0, 0), Vec3(1, 1, 1)),
			b:    NewBoundingBox(Vec3(0.5, 0.5, 3), Vec3(1.5, 1.5, 4)),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
		})
	}
}

func TestBoundingBoxContainsAndOverlap(t *testing.T) {
	b := BoxFromCenter(Zero(), One())
	assert.True(t, b.Contains(Zero()))
	assert.True(t, b.Contains(Vec3(1, 1, 1)))
	assert.False(t, b.Contains(Vec3(1.1, 0, 0)))

	o := BoxFromCenter(Vec3(1.5, 0, 0), One())
	assert.True(t, b.Overlap(o).ApproxEqual(Vec3(0.5, 2, 2), 1e-12))

	u := b.Union(o)
	assert.Equal(t, Vec3(-1, -1, -1), u.Min)
	assert.Equal(t, Vec3(2.5, 1, 1), u.Max)

	e := b.Expand(0.5)
	assert.Equal(t, Vec3(-1.5, -1.5, -1.5), e.Min)
	assert.Equal(t, Vec3(1, 0, -1), b.ClosestPoint(Vec3(3, 0, -4)))
}

func TestRayIntersectBox(t *testing.T) {
	box := BoxFromCenter(Zero(), One())

	r, ok := NewRay(Vec3(0, 10, 0), Vec3(0, -3, 0))
	assert.True(t, ok)
	dist, hit := r.IntersectBox(box)
	assert.True(t, hit)
	assert.InDelta(t, 9.0, dist, 1e-12)
	assert.Equal(t, Up(), FaceNormal(box, r.At(dist)))

	r, _ = NewRay(Vec3(5, 10, 0), Down())
	_, hit = r.IntersectBox(box)
	assert.False(t, hit, "parallel ray outside the slab")

	r, _ = NewRay(Vec3(0, 10, 0), Up())
	_, hit = r.IntersectBox(box)
	assert.False(t, hit, "box behind the origin")

	_, ok = NewRay(Zero(), Zero())
	assert.False(t, ok)
}
