package rmath

// Point2 / Point3 are affine points: they translate under transforms, unlike
// Vector2/Vector3 (§3).
type Point2[T Real] struct {
	X, Y T
}

func (p Point2[T]) Add(v Vector2[T]) Point2[T] { return Point2[T]{p.X + v.X, p.Y + v.Y} }
func (p Point2[T]) Sub(o Point2[T]) Vector2[T]  { return Vector2[T]{p.X - o.X, p.Y - o.Y} }

type Point3[T Real] struct {
	X, Y, Z T
}

func NewPoint3[T Real](x, y, z T) Point3[T] { return Point3[T]{x, y, z} }

func (p Point3[T]) Add(v Vector3[T]) Point3[T] {
	return Point3[T]{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}
func (p Point3[T]) AddPoint(o Point3[T]) Point3[T] {
	return Point3[T]{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}
func (p Point3[T]) Sub(o Point3[T]) Vector3[T] {
	return Vector3[T]{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}
func (p Point3[T]) SubVector(v Vector3[T]) Point3[T] {
	return Point3[T]{p.X - v.X, p.Y - v.Y, p.Z - v.Z}
}
func (p Point3[T]) Mul(s T) Point3[T] { return Point3[T]{p.X * s, p.Y * s, p.Z * s} }
func (p Point3[T]) ToVector() Vector3[T] {
	return Vector3[T]{p.X, p.Y, p.Z}
}
func (p Point3[T]) Component(axis int) T {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}
func (p Point3[T]) HasNaN() bool {
	return IsNaN(float32(p.X)) || IsNaN(float32(p.Y)) || IsNaN(float32(p.Z))
}

func DistanceBetween(a, b Point3[Float]) Float {
	return a.Sub(b).Length()
}

func DistanceSquaredBetween(a, b Point3[Float]) Float {
	return a.Sub(b).LengthSquared()
}

func LerpPoint3(t Float, a, b Point3[Float]) Point3[Float] {
	return Point3[Float]{
		Lerp(t, a.X, b.X),
		Lerp(t, a.Y, b.Y),
		Lerp(t, a.Z, b.Z),
	}
}

func MinPoint3(a, b Point3[Float]) Point3[Float] {
	return Point3[Float]{Min(a.X, b.X), Min(a.Y, b.Y), Min(a.Z, b.Z)}
}

func MaxPoint3(a, b Point3[Float]) Point3[Float] {
	return Point3[Float]{Max(a.X, b.X), Max(a.Y, b.Y), Max(a.Z, b.Z)}
}

// Pt3 / Pt2 are the float32 instantiations used throughout the renderer.
type Pt3 = Point3[Float]
type Pt2 = Point2[Float]

// Normal3 transforms by the inverse-transpose of a transformation, unlike
// points and vectors (§3).
type Normal3[T Real] struct {
	X, Y, Z T
}

func NewNormal3[T Real](x, y, z T) Normal3[T] { return Normal3[T]{x, y, z} }

func (n Normal3[T]) Add(o Normal3[T]) Normal3[T] {
	return Normal3[T]{n.X + o.X, n.Y + o.Y, n.Z + o.Z}
}
func (n Normal3[T]) Sub(o Normal3[T]) Normal3[T] {
	return Normal3[T]{n.X - o.X, n.Y - o.Y, n.Z - o.Z}
}
func (n Normal3[T]) Mul(s T) Normal3[T] { return Normal3[T]{n.X * s, n.Y * s, n.Z * s} }
func (n Normal3[T]) Negate() Normal3[T] { return Normal3[T]{-n.X, -n.Y, -n.Z} }
func (n Normal3[T]) Dot(v Vector3[T]) T { return n.X*v.X + n.Y*v.Y + n.Z*v.Z }
func (n Normal3[T]) DotNormal(o Normal3[T]) T {
	return n.X*o.X + n.Y*o.Y + n.Z*o.Z
}
func (n Normal3[T]) LengthSquared() T { return n.X*n.X + n.Y*n.Y + n.Z*n.Z }
func (n Normal3[T]) Length() T        { return sqrtT(n.LengthSquared()) }
func (n Normal3[T]) Normalize() Normal3[T] {
	l := n.Length()
	if l == 0 {
		return n
	}
	inv := T(1) / l
	return Normal3[T]{n.X * inv, n.Y * inv, n.Z * inv}
}
func (n Normal3[T]) ToVector() Vector3[T] { return Vector3[T]{n.X, n.Y, n.Z} }
func (n Normal3[T]) HasNaN() bool {
	return IsNaN(float32(n.X)) || IsNaN(float32(n.Y)) || IsNaN(float32(n.Z))
}

func NormalFromVector[T Real](v Vector3[T]) Normal3[T] { return Normal3[T]{v.X, v.Y, v.Z} }

func FaceForwardNormal(n Normal3[Float], v Vec3) Normal3[Float] {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

// Norm3 is the float32 instantiation used throughout the renderer.
type Norm3 = Normal3[Float]
