package bsdf

import "rayimpact/rmath"

// Distribution is a microfacet normal-distribution function (§4.F
// "Microfacet distributions"), parameterised by independent roughnesses
// along the shading tangent and bitangent.
type Distribution interface {
	D(wh rmath.Vec3) rmath.Float
	Lambda(w rmath.Vec3) rmath.Float

	// SampleWh draws a half-vector from the distribution given a [0,1)^2
	// sample, used by MicrofacetBRDF/BTDF's Sample. Not specified by name
	// in spec.md's prose; the polar inverse-CDF construction here is the
	// standard technique for each distribution (Walter et al. 2007).
	SampleWh(u rmath.Pt2) rmath.Vec3
}

// PDFWh is the density SampleWh implies over the half-vector, used to
// convert into a density over wi via the reflection/refraction Jacobian.
func PDFWh(d Distribution, wh rmath.Vec3) rmath.Float {
	return d.D(wh) * AbsCosTheta(wh)
}

// G1 is the masking-shadowing term for a single direction.
func G1(d Distribution, w rmath.Vec3) rmath.Float {
	return 1 / (1 + d.Lambda(w))
}

// G is the joint masking-shadowing term for an incident/outgoing pair,
// using the (uncorrelated) Smith approximation spec.md specifies.
func G(d Distribution, wo, wi rmath.Vec3) rmath.Float {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// RoughnessToDeviation maps a normalised roughness in [0,1] to the σ a
// Distribution expects, via the empirical polynomial of log(roughness)
// spec.md names; applied once at material construction time, not per-shade.
func RoughnessToDeviation(roughness rmath.Float) rmath.Float {
	r := rmath.Max(roughness, 1e-3)
	x := rmath.Log(r)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

// Beckmann is the Beckmann-Spizzichino microfacet distribution.
type Beckmann struct {
	SigmaX, SigmaY rmath.Float
}

func NewBeckmann(sigmaX, sigmaY rmath.Float) Beckmann { return Beckmann{SigmaX: sigmaX, SigmaY: sigmaY} }

func (m Beckmann) D(wh rmath.Vec3) rmath.Float {
	tan2 := Tan2Theta(wh)
	if rmath.IsInf(tan2) {
		return 0
	}
	cos4 := Cos2Theta(wh) * Cos2Theta(wh)
	cosPhi2, sinPhi2 := CosPhi(wh)*CosPhi(wh), SinPhi(wh)*SinPhi(wh)
	exponent := tan2 * (cosPhi2/(m.SigmaX*m.SigmaX) + sinPhi2/(m.SigmaY*m.SigmaY))
	return rmath.Exp(-exponent) / (rmath.Pi * m.SigmaX * m.SigmaY * cos4)
}

func (m Beckmann) Lambda(w rmath.Vec3) rmath.Float {
	absTan := rmath.Abs(TanTheta(w))
	if rmath.IsInf(absTan) {
		return 0
	}
	sigma := effectiveSigma(m.SigmaX, m.SigmaY, w)
	a := 1 / (sigma * absTan)
	if a >= 1.6 {
		return 0
	}
	return (1 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
}

func (m Beckmann) SampleWh(u rmath.Pt2) rmath.Vec3 {
	logSample := rmath.Log(1 - u.X)
	if rmath.IsInf(rmath.Abs(logSample)) {
		logSample = 0
	}
	var tan2Theta, phi rmath.Float
	if m.SigmaX == m.SigmaY {
		tan2Theta = -m.SigmaX * m.SigmaX * logSample
		phi = u.Y * rmath.TwoPi
	} else {
		phi = rmath.Atan2(m.SigmaY*rmath.Sin(rmath.TwoPi*u.Y), m.SigmaX*rmath.Cos(rmath.TwoPi*u.Y))
		if u.Y > 0.5 {
			phi += rmath.Pi
		}
		sinPhi, cosPhi := rmath.Sin(phi), rmath.Cos(phi)
		tan2Theta = -logSample / (cosPhi*cosPhi/(m.SigmaX*m.SigmaX) + sinPhi*sinPhi/(m.SigmaY*m.SigmaY))
	}
	cosTheta := 1 / rmath.Sqrt(1+tan2Theta)
	sinTheta := rmath.Sqrt(rmath.Max(0, 1-cosTheta*cosTheta))
	return sphericalToVec(sinTheta, cosTheta, phi)
}

func sphericalToVec(sinTheta, cosTheta, phi rmath.Float) rmath.Vec3 {
	return rmath.Vec3{X: sinTheta * rmath.Cos(phi), Y: sinTheta * rmath.Sin(phi), Z: cosTheta}
}

func effectiveSigma(sigmaX, sigmaY rmath.Float, w rmath.Vec3) rmath.Float {
	cosPhi2, sinPhi2 := CosPhi(w)*CosPhi(w), SinPhi(w)*SinPhi(w)
	return rmath.Sqrt(cosPhi2*sigmaX*sigmaX + sinPhi2*sigmaY*sigmaY)
}

// TrowbridgeReitz is the GGX microfacet distribution.
type TrowbridgeReitz struct {
	SigmaX, SigmaY rmath.Float
}

func NewTrowbridgeReitz(sigmaX, sigmaY rmath.Float) TrowbridgeReitz {
	return TrowbridgeReitz{SigmaX: sigmaX, SigmaY: sigmaY}
}

func (m TrowbridgeReitz) D(wh rmath.Vec3) rmath.Float {
	tan2 := Tan2Theta(wh)
	if rmath.IsInf(tan2) {
		return 0
	}
	cos4 := Cos2Theta(wh) * Cos2Theta(wh)
	cosPhi2, sinPhi2 := CosPhi(wh)*CosPhi(wh), SinPhi(wh)*SinPhi(wh)
	e := tan2 * (cosPhi2/(m.SigmaX*m.SigmaX) + sinPhi2/(m.SigmaY*m.SigmaY))
	denom := rmath.Pi * m.SigmaX * m.SigmaY * cos4 * (1 + e) * (1 + e)
	return 1 / denom
}

func (m TrowbridgeReitz) SampleWh(u rmath.Pt2) rmath.Vec3 {
	var phi, tan2Theta rmath.Float
	if m.SigmaX == m.SigmaY {
		phi = rmath.TwoPi * u.Y
		a2 := m.SigmaX * m.SigmaX
		tan2Theta = u.X * a2 / (1 - u.X)
	} else {
		phi = rmath.Atan2(m.SigmaY*rmath.Sin(rmath.TwoPi*u.Y), m.SigmaX*rmath.Cos(rmath.TwoPi*u.Y))
		if u.Y > 0.5 {
			phi += rmath.Pi
		}
		sinPhi, cosPhi := rmath.Sin(phi), rmath.Cos(phi)
		alpha2 := 1 / (cosPhi*cosPhi/(m.SigmaX*m.SigmaX) + sinPhi*sinPhi/(m.SigmaY*m.SigmaY))
		tan2Theta = u.X * alpha2 / (1 - u.X)
	}
	cosTheta := 1 / rmath.Sqrt(1+tan2Theta)
	sinTheta := rmath.Sqrt(rmath.Max(0, 1-cosTheta*cosTheta))
	return sphericalToVec(sinTheta, cosTheta, phi)
}

func (m TrowbridgeReitz) Lambda(w rmath.Vec3) rmath.Float {
	absTan := rmath.Abs(TanTheta(w))
	if rmath.IsInf(absTan) {
		return 0
	}
	sigma := effectiveSigma(m.SigmaX, m.SigmaY, w)
	a2Tan2 := (sigma * absTan) * (sigma * absTan)
	return (rmath.Sqrt(1+a2Tan2) - 1) / 2
}
