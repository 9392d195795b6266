package rmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Real bounds the scalar type generic geometric entities are parameterised
// over (§3, "Vector2<T>, Point2<T>, Normal3<T>"). Grounded on golang.org/x/exp/constraints
// as used for generic numeric code in gioui.org's dependency graph.
type Real interface {
	constraints.Float
}

// Vector2 is a 2-component displacement; it does not translate under affine
// transforms.
type Vector2[T Real] struct {
	X, Y T
}

func (v Vector2[T]) Add(o Vector2[T]) Vector2[T] { return Vector2[T]{v.X + o.X, v.Y + o.Y} }
func (v Vector2[T]) Sub(o Vector2[T]) Vector2[T] { return Vector2[T]{v.X - o.X, v.Y - o.Y} }
func (v Vector2[T]) Mul(s T) Vector2[T]          { return Vector2[T]{v.X * s, v.Y * s} }
func (v Vector2[T]) Div(s T) Vector2[T]          { inv := T(1) / s; return Vector2[T]{v.X * inv, v.Y * inv} }
func (v Vector2[T]) Dot(o Vector2[T]) T          { return v.X*o.X + v.Y*o.Y }
func (v Vector2[T]) LengthSquared() T            { return v.Dot(v) }

// Vector3 is a 3-component displacement.
type Vector3[T Real] struct {
	X, Y, Z T
}

func NewVector3[T Real](x, y, z T) Vector3[T] { return Vector3[T]{x, y, z} }

func (v Vector3[T]) Add(o Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}
func (v Vector3[T]) Sub(o Vector3[T]) Vector3[T] {
	return Vector3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}
func (v Vector3[T]) Mul(s T) Vector3[T] { return Vector3[T]{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3[T]) Div(s T) Vector3[T] {
	inv := T(1) / s
	return Vector3[T]{v.X * inv, v.Y * inv, v.Z * inv}
}
func (v Vector3[T]) Negate() Vector3[T] { return Vector3[T]{-v.X, -v.Y, -v.Z} }
func (v Vector3[T]) Dot(o Vector3[T]) T { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector3[T]) AbsDot(o Vector3[T]) T {
	d := v.Dot(o)
	if d < 0 {
		return -d
	}
	return d
}
func (v Vector3[T]) LengthSquared() T { return v.Dot(v) }
func (v Vector3[T]) Length() T        { return sqrtT(v.LengthSquared()) }

// sqrtT is a generic square root used by the container methods so Vector3/
// Point3/Normal3 stay parameterisable over any Real, independent of the
// float32-specialised math32 fast path used by the scalar free functions.
func sqrtT[T Real](x T) T { return T(math.Sqrt(float64(x))) }
func (v Vector3[T]) Normalize() Vector3[T] {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Div(l)
}

// Cross is computed in double precision and narrowed back to T, per §4.A,
// to avoid catastrophic cancellation for near-parallel inputs.
func (v Vector3[T]) Cross(o Vector3[T]) Vector3[T] {
	vx, vy, vz := float64(v.X), float64(v.Y), float64(v.Z)
	ox, oy, oz := float64(o.X), float64(o.Y), float64(o.Z)
	return Vector3[T]{
		T(vy*oz - vz*oy),
		T(vz*ox - vx*oz),
		T(vx*oy - vy*ox),
	}
}

func (v Vector3[T]) Component(axis int) T {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vector3[T]) MaxComponent() T {
	return T(Max(Max(float32(v.X), float32(v.Y)), float32(v.Z)))
}

// MaxDimension returns the axis (0,1,2) of largest magnitude component.
func (v Vector3[T]) MaxDimension() int {
	ax, ay, az := Abs(float32(v.X)), Abs(float32(v.Y)), Abs(float32(v.Z))
	if ax > ay && ax > az {
		return 0
	}
	if ay > az {
		return 1
	}
	return 2
}

// Permute returns the vector with components reordered by the given axis
// indices, used to avoid division-by-zero axes during ray/triangle-style
// traversal decisions.
func (v Vector3[T]) Permute(x, y, z int) Vector3[T] {
	return Vector3[T]{v.Component(x), v.Component(y), v.Component(z)}
}

func (v Vector3[T]) HasNaN() bool {
	return IsNaN(float32(v.X)) || IsNaN(float32(v.Y)) || IsNaN(float32(v.Z))
}

// Vec3 / Vec2 are the float32 instantiations used throughout the renderer.
type Vec3 = Vector3[Float]
type Vec2 = Vector2[Float]

// CoordinateSystem builds a right-handed orthonormal basis from a single
// unit vector (§4.A): pick the larger-magnitude of the x and y axes to form a
// stable first companion, then cross-product for the second.
func CoordinateSystem(v1 Vec3) (v2, v3 Vec3) {
	if Abs(v1.X) > Abs(v1.Y) {
		invLen := 1 / Sqrt(v1.X*v1.X+v1.Z*v1.Z)
		v2 = Vec3{-v1.Z * invLen, 0, v1.X * invLen}
	} else {
		invLen := 1 / Sqrt(v1.Y*v1.Y+v1.Z*v1.Z)
		v2 = Vec3{0, v1.Z * invLen, -v1.Y * invLen}
	}
	v3 = v1.Cross(v2)
	return v2, v3
}

func MinVec3(a, b Vec3) Vec3 {
	return Vec3{Min(a.X, b.X), Min(a.Y, b.Y), Min(a.Z, b.Z)}
}

func MaxVec3(a, b Vec3) Vec3 {
	return Vec3{Max(a.X, b.X), Max(a.Y, b.Y), Max(a.Z, b.Z)}
}

func FaceForward(n, v Vec3) Vec3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}
