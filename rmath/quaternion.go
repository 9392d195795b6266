package rmath

// Quaternion is used only by AnimatedTransform for SLERP of a decomposed
// rotation (§3, §9); grounded on the teacher's math.Quaternion.
type Quaternion struct {
	X, Y, Z, W Float
}

func QuaternionIdentity() Quaternion { return Quaternion{0, 0, 0, 1} }

func (q Quaternion) Add(o Quaternion) Quaternion {
	return Quaternion{q.X + o.X, q.Y + o.Y, q.Z + o.Z, q.W + o.W}
}

func (q Quaternion) Mul(s Float) Quaternion {
	return Quaternion{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

func (q Quaternion) Dot(o Quaternion) Float {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quaternion) Normalize() Quaternion {
	l := Sqrt(q.Dot(q))
	if l == 0 {
		return q
	}
	return q.Mul(1 / l)
}

func (q Quaternion) Negate() Quaternion { return Quaternion{-q.X, -q.Y, -q.Z, -q.W} }

// ToTransform builds the rotation transform represented by this quaternion.
func (q Quaternion) ToTransform() Transform {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	var m Mat4
	m[0][0] = 1 - 2*(yy+zz)
	m[0][1] = 2 * (xy + wz)
	m[0][2] = 2 * (xz - wy)
	m[1][0] = 2 * (xy - wz)
	m[1][1] = 1 - 2*(xx+zz)
	m[1][2] = 2 * (yz + wx)
	m[2][0] = 2 * (xz + wy)
	m[2][1] = 2 * (yz - wx)
	m[2][2] = 1 - 2*(xx+yy)
	m[3][3] = 1
	// m holds the rotation's transpose, in the same convention that
	// QuaternionFromTransform reads.
	return newTransformWithInverse(m.Transpose(), m)
}

// QuaternionFromTransform extracts the unit quaternion for the rotational
// part of a transform's upper 3x3 matrix (assumed orthonormal — callers
// decompose scale out first, see AnimatedTransform).
func QuaternionFromTransform(t Transform) Quaternion {
	m := t.M
	trace := m[0][0] + m[1][1] + m[2][2]
	var q Quaternion
	if trace > 0 {
		s := Sqrt(trace+1) * 2
		q.W = 0.25 * s
		q.X = (m[2][1] - m[1][2]) / s
		q.Y = (m[0][2] - m[2][0]) / s
		q.Z = (m[1][0] - m[0][1]) / s
	} else if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q.W = (m[2][1] - m[1][2]) / s
		q.X = 0.25 * s
		q.Y = (m[0][1] + m[1][0]) / s
		q.Z = (m[0][2] + m[2][0]) / s
	} else if m[1][1] > m[2][2] {
		s := Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q.W = (m[0][2] - m[2][0]) / s
		q.X = (m[0][1] + m[1][0]) / s
		q.Y = 0.25 * s
		q.Z = (m[1][2] + m[2][1]) / s
	} else {
		s := Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q.W = (m[1][0] - m[0][1]) / s
		q.X = (m[0][2] + m[2][0]) / s
		q.Y = (m[1][2] + m[2][1]) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

// Slerp spherically interpolates between two quaternions, falling back to
// linear interpolation (renormalized) when they are nearly parallel to avoid
// the division-by-sin(theta) singularity (§3).
func Slerp(t Float, q1, q2 Quaternion) Quaternion {
	cosTheta := q1.Dot(q2)
	if cosTheta < 0 {
		cosTheta = -cosTheta
		q2 = q2.Negate()
	}
	if cosTheta > 0.9995 {
		return q1.Mul(1 - t).Add(q2.Mul(t)).Normalize()
	}
	theta := Acos(Clamp(cosTheta, -1, 1))
	thetap := theta * t
	qPerp := q2.Sub(q1.Mul(cosTheta)).Normalize()
	return q1.Mul(Cos(thetap)).Add(qPerp.Mul(Sin(thetap)))
}

func (q Quaternion) Sub(o Quaternion) Quaternion {
	return Quaternion{q.X - o.X, q.Y - o.Y, q.Z - o.Z, q.W - o.W}
}
