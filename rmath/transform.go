package rmath

// Mat4 is a row-major 4x4 matrix, following the teacher's math.Mat4 layout
// (m[row][col]).
type Mat4 [4][4]Float

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum Float
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination with
// partial pivoting. Returns the identity if the matrix is singular (a
// programmer-logic violation upstream; callers never feed a non-invertible
// transform into the renderer, §7).
func (m Mat4) Inverse() Mat4 {
	var a [4][8]Float
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = m[i][j]
		}
		a[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		best := Abs(a[col][col])
		for r := col + 1; r < 4; r++ {
			if v := Abs(a[r][col]); v > best {
				best = v
				pivot = r
			}
		}
		if best < 1e-12 {
			return Mat4Identity()
		}
		a[col], a[pivot] = a[pivot], a[col]

		inv := 1 / a[col][col]
		for j := 0; j < 8; j++ {
			a[col][j] *= inv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := a[r][col]
			for j := 0; j < 8; j++ {
				a[r][j] -= factor * a[col][j]
			}
		}
	}

	var inv Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = a[i][4+j]
		}
	}
	return inv
}

// Transform is a 4x4 matrix paired with its precomputed inverse (§3). The
// swapsHandedness bit tracks whether the transform mirrors space (determinant
// of the upper 3x3 is negative), which flips the sign used when
// transforming normals-derived quantities such as reflected/refracted
// directions at a mirrored shape.
type Transform struct {
	M, MInv         Mat4
	swapsHandedness bool
}

func NewTransform(m Mat4) Transform {
	return newTransformWithInverse(m, m.Inverse())
}

func newTransformWithInverse(m, mInv Mat4) Transform {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	return Transform{M: m, MInv: mInv, swapsHandedness: det < 0}
}

func IdentityTransform() Transform {
	return Transform{M: Mat4Identity(), MInv: Mat4Identity()}
}

func (t Transform) Inverted() Transform {
	return Transform{M: t.MInv, MInv: t.M, swapsHandedness: t.swapsHandedness}
}

func (t Transform) SwapsHandedness() bool { return t.swapsHandedness }

func (t Transform) Compose(o Transform) Transform {
	return newTransformWithInverse(t.M.Mul(o.M), o.MInv.Mul(t.MInv))
}

func Translate(delta Vec3) Transform {
	m := Mat4Identity()
	m[0][3], m[1][3], m[2][3] = delta.X, delta.Y, delta.Z
	mInv := Mat4Identity()
	mInv[0][3], mInv[1][3], mInv[2][3] = -delta.X, -delta.Y, -delta.Z
	return Transform{M: m, MInv: mInv}
}

func Scale(x, y, z Float) Transform {
	m := Mat4Identity()
	m[0][0], m[1][1], m[2][2] = x, y, z
	mInv := Mat4Identity()
	mInv[0][0], mInv[1][1], mInv[2][2] = 1/x, 1/y, 1/z
	return Transform{M: m, MInv: mInv}
}

func RotateX(theta Float) Transform {
	s, c := Sin(theta), Cos(theta)
	m := Mat4Identity()
	m[1][1], m[1][2] = c, -s
	m[2][1], m[2][2] = s, c
	return newTransformWithInverse(m, m.Transpose())
}

func RotateY(theta Float) Transform {
	s, c := Sin(theta), Cos(theta)
	m := Mat4Identity()
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return newTransformWithInverse(m, m.Transpose())
}

func RotateZ(theta Float) Transform {
	s, c := Sin(theta), Cos(theta)
	m := Mat4Identity()
	m[0][0], m[0][1] = c, -s
	m[1][0], m[1][1] = s, c
	return newTransformWithInverse(m, m.Transpose())
}

// RotateAxis rotates by theta radians about an arbitrary (not necessarily
// normalized) axis, via Rodrigues' rotation formula.
func RotateAxis(axis Vec3, theta Float) Transform {
	a := axis.Normalize()
	s, c := Sin(theta), Cos(theta)
	var m Mat4
	m[0][0] = a.X*a.X + (1-a.X*a.X)*c
	m[0][1] = a.X*a.Y*(1-c) - a.Z*s
	m[0][2] = a.X*a.Z*(1-c) + a.Y*s
	m[1][0] = a.X*a.Y*(1-c) + a.Z*s
	m[1][1] = a.Y*a.Y + (1-a.Y*a.Y)*c
	m[1][2] = a.Y*a.Z*(1-c) - a.X*s
	m[2][0] = a.X*a.Z*(1-c) - a.Y*s
	m[2][1] = a.Y*a.Z*(1-c) + a.X*s
	m[2][2] = a.Z*a.Z + (1-a.Z*a.Z)*c
	return newTransformWithInverse(m, m.Transpose())
}

func LookAt(eye, target, up Vec3) Transform {
	dir := target.Sub(eye).Normalize()
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)

	m := Mat4Identity()
	m[0][0], m[1][0], m[2][0] = right.X, right.Y, right.Z
	m[0][1], m[1][1], m[2][1] = newUp.X, newUp.Y, newUp.Z
	m[0][2], m[1][2], m[2][2] = dir.X, dir.Y, dir.Z
	m[0][3], m[1][3], m[2][3] = eye.X, eye.Y, eye.Z
	return NewTransform(m)
}

func Perspective(fov, near, far Float) Transform {
	persp := Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, far / (far - near), -far * near / (far - near)},
		{0, 0, 1, 0},
	}
	invTanAng := 1 / Tan(fov/2)
	return Scale(invTanAng, invTanAng, 1).Compose(NewTransform(persp))
}

func Orthographic(near, far Float) Transform {
	return Scale(1, 1, 1/(far-near)).Compose(Translate(Vec3{0, 0, -near}))
}

// Point transforms p with homogeneous-divide, per the affine-point contract.
func (t Transform) Point(p Pt3) Pt3 {
	m := t.M
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 {
		return Pt3{x, y, z}
	}
	return Pt3{x, y, z}.Mul(1 / w)
}

// Vector transforms a displacement; the translation row is not applied.
func (t Transform) Vector(v Vec3) Vec3 {
	m := t.M
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Normal transforms by the inverse-transpose (§3).
func (t Transform) Normal(n Norm3) Norm3 {
	mInv := t.MInv
	return Norm3{
		mInv[0][0]*n.X + mInv[1][0]*n.Y + mInv[2][0]*n.Z,
		mInv[0][1]*n.X + mInv[1][1]*n.Y + mInv[2][1]*n.Z,
		mInv[0][2]*n.X + mInv[1][2]*n.Y + mInv[2][2]*n.Z,
	}
}

// PointWithError transforms p and additionally reports the conservative
// rounding-error vector induced by the transform's finite-precision matrix
// entries (§4.A "numerical policy"). Used as the starting error for further
// ErrorFloat propagation in shape intersection.
func (t Transform) PointWithError(p Pt3) (Pt3, Vec3) {
	m := t.M
	xAbsSum := Abs(m[0][0]*p.X) + Abs(m[0][1]*p.Y) + Abs(m[0][2]*p.Z) + Abs(m[0][3])
	yAbsSum := Abs(m[1][0]*p.X) + Abs(m[1][1]*p.Y) + Abs(m[1][2]*p.Z) + Abs(m[1][3])
	zAbsSum := Abs(m[2][0]*p.X) + Abs(m[2][1]*p.Y) + Abs(m[2][2]*p.Z) + Abs(m[2][3])
	err := Vec3{xAbsSum, yAbsSum, zAbsSum}.Mul(gamma3)
	return t.Point(p), err
}

func (t Transform) VectorWithError(v Vec3) (Vec3, Vec3) {
	m := t.M
	xAbsSum := Abs(m[0][0]*v.X) + Abs(m[0][1]*v.Y) + Abs(m[0][2]*v.Z)
	yAbsSum := Abs(m[1][0]*v.X) + Abs(m[1][1]*v.Y) + Abs(m[1][2]*v.Z)
	zAbsSum := Abs(m[2][0]*v.X) + Abs(m[2][1]*v.Y) + Abs(m[2][2]*v.Z)
	err := Vec3{xAbsSum, yAbsSum, zAbsSum}.Mul(gamma3)
	return t.Vector(v), err
}

// Ray transforms a ray to another space and additionally reports the
// conservative error vectors on the transformed origin and direction (§4.A),
// consumed directly by shape intersection routines.
func (t Transform) Ray(r Ray) (Ray, Vec3, Vec3) {
	origin, originErr := t.PointWithError(r.Origin)
	direction, dirErr := t.VectorWithError(r.Direction)
	out := Ray{Origin: origin, Direction: direction, MaxDistance: r.MaxDistance, Time: r.Time, Medium: r.Medium}
	return out, originErr, dirErr
}

func (t Transform) Bounds(b Bounds3) Bounds3 {
	ret := Bounds3{Min: t.Point(b.Min), Max: t.Point(b.Min)}
	for i := 1; i < 8; i++ {
		ret = ret.UnionPoint(t.Point(b.Corner(i)))
	}
	return ret
}
