package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the magnitude below which a vector is treated as zero length.
const Epsilon = 2.220446049250313e-16

// Vector3 is an immutable-by-convention 3D vector. It shares its layout with
// mgl64.Vec3 so conversions in either direction are free.
type Vector3 mgl64.Vec3

func Vec3(x, y, z float64) Vector3 { return Vector3{x, y, z} }

func FromMgl(v mgl64.Vec3) Vector3 { return Vector3(v) }

func Zero() Vector3    { return Vector3{} }
func One() Vector3     { return Vector3{1, 1, 1} }
func Up() Vector3      { return Vector3{0, 1, 0} }
func Down() Vector3    { return Vector3{0, -1, 0} }
func Left() Vector3    { return Vector3{-1, 0, 0} }
func Right() Vector3   { return Vector3{1, 0, 0} }
func Forward() Vector3 { return Vector3{0, 0, -1} }
func Back() Vector3    { return Vector3{0, 0, 1} }

func (v Vector3) X() float64 { return v[0] }
func (v Vector3) Y() float64 { return v[1] }
func (v Vector3) Z() float64 { return v[2] }

// Mgl exposes the vector as an mgl64.Vec3 for matrix work.
func (v Vector3) Mgl() mgl64.Vec3 { return mgl64.Vec3(v) }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3(v.Mgl().Add(o.Mgl())) }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3(v.Mgl().Sub(o.Mgl())) }
func (v Vector3) Mul(s float64) Vector3 { return Vector3(v.Mgl().Mul(s)) }
func (v Vector3) Neg() Vector3          { return Vector3{-v[0], -v[1], -v[2]} }

// Div scales by 1/s. A zero divisor yields the zero vector.
func (v Vector3) Div(s float64) Vector3 {
	if s == 0 {
		return Vector3{}
	}
	return v.Mul(1 / s)
}

// MulElem multiplies component-wise.
func (v Vector3) MulElem(o Vector3) Vector3 {
	return Vector3{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

func (v Vector3) Dot(o Vector3) float64   { return v.Mgl().Dot(o.Mgl()) }
func (v Vector3) Cross(o Vector3) Vector3 { return Vector3(v.Mgl().Cross(o.Mgl())) }
func (v Vector3) Len() float64            { return v.Mgl().Len() }
func (v Vector3) LenSqr() float64         { return v.Mgl().LenSqr() }

func (v Vector3) Distance(o Vector3) float64    { return v.Sub(o).Len() }
func (v Vector3) DistanceSqr(o Vector3) float64 { return v.Sub(o).LenSqr() }

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v is shorter than Epsilon.
func (v Vector3) Normalize() Vector3 {
	l := v.Len()
	if l <= Epsilon {
		return Vector3{}
	}
	return Vector3{v[0] / l, v[1] / l, v[2] / l}
}

// NormalizeInPlace normalizes v and returns it for chaining.
func (v *Vector3) NormalizeInPlace() *Vector3 {
	*v = v.Normalize()
	return v
}

func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return v.Add(o.Sub(v).Mul(t))
}

// Reflect mirrors v across the plane with normal n. n must be unit length.
func (v Vector3) Reflect(n Vector3) Vector3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Project returns the component of v along onto; zero if onto is degenerate.
func (v Vector3) Project(onto Vector3) Vector3 {
	l2 := onto.LenSqr()
	if l2 <= Epsilon {
		return Vector3{}
	}
	return onto.Mul(v.Dot(onto) / l2)
}

// ClampLen returns v unchanged if |v| <= limit, else v rescaled to length limit.
func (v Vector3) ClampLen(limit float64) Vector3 {
	if v.Len() <= limit {
		return v
	}
	return v.Normalize().Mul(limit)
}

// Horizontal drops the vertical component.
func (v Vector3) Horizontal() Vector3 { return Vector3{v[0], 0, v[2]} }

func (v Vector3) Abs() Vector3 {
	return Vector3{math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])}
}

func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{math.Min(v[0], o[0]), math.Min(v[1], o[1]), math.Min(v[2], o[2])}
}

func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{math.Max(v[0], o[0]), math.Max(v[1], o[1]), math.Max(v[2], o[2])}
}

func (v Vector3) IsZero() bool { return v == Vector3{} }

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares component-wise with an absolute tolerance.
func (v Vector3) ApproxEqual(o Vector3, tolerance float64) bool {
	for i := range v {
		if math.Abs(v[i]-o[i]) > tolerance {
			return false
		}
	}
	return true
}
