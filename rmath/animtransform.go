package rmath

// AnimatedTransform holds two keyframe transforms and interpolates between
// them: translation linearly, rotation via SLERP of the decomposed
// quaternion, and scale linearly (§3). The decomposition follows
// Shoemake/Duff polar decomposition, matching original_source's handling of
// general (not necessarily pre-factored TRS) keyframe matrices (§3.4 of
// SPEC_FULL.md).
type AnimatedTransform struct {
	StartTransform, EndTransform   Transform
	StartTime, EndTime              Float
	actuallyAnimated                bool

	t            [2]Vec3
	r            [2]Quaternion
	s            [2]Mat4
}

func NewAnimatedTransform(start Transform, startTime Float, end Transform, endTime Float) *AnimatedTransform {
	at := &AnimatedTransform{
		StartTransform: start, EndTransform: end,
		StartTime: startTime, EndTime: endTime,
		actuallyAnimated: start.M != end.M,
	}
	at.t[0], at.r[0], at.s[0] = decompose(start.M)
	at.t[1], at.r[1], at.s[1] = decompose(end.M)
	if at.r[0].Dot(at.r[1]) < 0 {
		at.r[1] = at.r[1].Negate()
	}
	return at
}

// decompose factors an affine matrix M = T * R * S via polar decomposition
// of the upper 3x3 (iterative averaging with its inverse-transpose), as in
// original_source's AnimatedTransformation constructor.
func decompose(m Mat4) (translation Vec3, rotation Quaternion, scale Mat4) {
	translation = Vec3{m[0][3], m[1][3], m[2][3]}

	upper := m
	for i := 0; i < 3; i++ {
		upper[i][3] = 0
	}
	upper[3][0], upper[3][1], upper[3][2], upper[3][3] = 0, 0, 0, 1

	r := upper
	for iter := 0; iter < 100; iter++ {
		next := averageWithInverseTranspose(r)
		diff := Float(0)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				d := Abs(r[i][j] - next[i][j])
				if d > diff {
					diff = d
				}
			}
		}
		r = next
		if diff < 1e-4 {
			break
		}
	}

	rotation = QuaternionFromTransform(newTransformWithInverse(r, r.Transpose()))
	scale = r.Transpose().Mul(upper)
	return translation, rotation, scale
}

func averageWithInverseTranspose(m Mat4) Mat4 {
	inv := m.Inverse().Transpose()
	var avg Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			avg[i][j] = 0.5 * (m[i][j] + inv[i][j])
		}
	}
	return avg
}

// Interpolate returns the transform at the given time, clamped to the
// keyframe interval.
func (at *AnimatedTransform) Interpolate(time Float) Transform {
	if !at.actuallyAnimated || time <= at.StartTime {
		return at.StartTransform
	}
	if time >= at.EndTime {
		return at.EndTransform
	}
	dt := (time - at.StartTime) / (at.EndTime - at.StartTime)

	trans := at.t[0].Add(at.t[1].Sub(at.t[0]).Mul(dt))
	rotate := Slerp(dt, at.r[0], at.r[1])

	var scale Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			scale[i][j] = Lerp(dt, at.s[0][i][j], at.s[1][i][j])
		}
	}

	return Translate(trans).Compose(rotate.ToTransform()).Compose(NewTransform(scale))
}

func (at *AnimatedTransform) IsAnimated() bool { return at.actuallyAnimated }

// MotionBounds returns a conservative world-space bound for a shape's
// object-space bounds swept over the keyframe interval. A tight
// analytic bound needs per-axis motion-derivative root finding; this core
// uses the simpler, always-correct bound of sampling both keyframes plus a
// coarse subdivision, which is sufficient since motion blur shading itself
// is out of scope (§1) and this is only consumed by BVH bounding.
func (at *AnimatedTransform) MotionBounds(b Bounds3) Bounds3 {
	if !at.actuallyAnimated {
		return at.StartTransform.Bounds(b)
	}
	bounds := at.StartTransform.Bounds(b).Union(at.EndTransform.Bounds(b))
	const steps = 16
	for i := 1; i < steps; i++ {
		time := Lerp(Float(i)/Float(steps), at.StartTime, at.EndTime)
		bounds = bounds.Union(at.Interpolate(time).Bounds(b))
	}
	return bounds
}
