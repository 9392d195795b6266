package sampling

import "rayimpact/rmath"

// ConcentricDiskSample maps u in [0,1)^2 to the unit disk via Shirley's
// concentric mapping, which preserves uniform density better than the naive
// polar map (§4.C).
func ConcentricDiskSample(u rmath.Pt2) rmath.Pt2 {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return rmath.Pt2{}
	}

	var r, theta rmath.Float
	if rmath.Abs(ox) > rmath.Abs(oy) {
		r = ox
		theta = (rmath.PiOverTwo / 2) * (oy / ox)
	} else {
		r = oy
		theta = rmath.PiOverTwo - (rmath.PiOverTwo/2)*(ox/oy)
	}
	return rmath.Pt2{X: r * rmath.Cos(theta), Y: r * rmath.Sin(theta)}
}

// UniformDiskSample maps u to the unit disk via the basic polar
// transformation r = sqrt(u1), theta = 2*pi*u2.
func UniformDiskSample(u rmath.Pt2) rmath.Pt2 {
	r := rmath.Sqrt(u.X)
	theta := 2 * rmath.Pi * u.Y
	return rmath.Pt2{X: r * rmath.Cos(theta), Y: r * rmath.Sin(theta)}
}

// UniformHemisphereSample maps u to a direction uniformly distributed over
// the unit hemisphere around +Z, with PDF = 1/(2*pi).
func UniformHemisphereSample(u rmath.Pt2) rmath.Vec3 {
	cosTheta := u.X
	sinTheta := rmath.Sqrt(rmath.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * rmath.Pi * u.Y
	return rmath.Vec3{X: sinTheta * rmath.Cos(phi), Y: sinTheta * rmath.Sin(phi), Z: cosTheta}
}

// UniformHemispherePDF is the constant density of UniformHemisphereSample.
func UniformHemispherePDF() rmath.Float { return 1 / (2 * rmath.Pi) }

// CosineWeightedHemisphereSample maps u to a direction over the unit
// hemisphere around +Z with density proportional to cos(theta), by lifting
// a concentric disk sample (§4.C).
func CosineWeightedHemisphereSample(u rmath.Pt2) rmath.Vec3 {
	d := ConcentricDiskSample(u)
	z := rmath.Sqrt(rmath.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return rmath.Vec3{X: d.X, Y: d.Y, Z: z}
}

// CosineWeightedHemispherePDF returns cos(theta)/pi for a direction with the
// given cosine against the hemisphere's pole.
func CosineWeightedHemispherePDF(cosTheta rmath.Float) rmath.Float {
	return cosTheta * rmath.InvPi
}
