package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// DielectricFresnel evaluates the unpolarised Fresnel reflectance for a
// dielectric interface (§4.F "fresnelDielectric"): indices are swapped when
// cosThetaI is negative (the ray is inside the denser medium), Snell's law
// gives the transmitted angle, and total internal reflection returns 1.
func DielectricFresnel(cosThetaI, etaOutside, etaInside rmath.Float) rmath.Float {
	cosThetaI = rmath.Clamp(cosThetaI, -1, 1)
	etaI, etaT := etaOutside, etaInside
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sin2ThetaI := rmath.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := (etaI / etaT) * (etaI / etaT) * sin2ThetaI
	if sin2ThetaT >= 1 {
		return 1
	}
	cosThetaT := rmath.Sqrt(1 - sin2ThetaT)

	rParallel := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// ConductorFresnel evaluates the full complex-index Fresnel reflectance for
// a conductor, per-channel, given the real index etaOutside/etaInside and
// the conductor's absorption coefficient k.
func ConductorFresnel(cosThetaI rmath.Float, etaOutside rmath.Float, etaInside, k spectrum.RGB) spectrum.RGB {
	cosThetaI = rmath.Clamp(cosThetaI, -1, 1)
	return spectrum.RGB{
		R: conductorChannel(cosThetaI, etaOutside, etaInside.R, k.R),
		G: conductorChannel(cosThetaI, etaOutside, etaInside.G, k.G),
		B: conductorChannel(cosThetaI, etaOutside, etaInside.B, k.B),
	}
}

func conductorChannel(cosThetaI, etaO, etaI, k rmath.Float) rmath.Float {
	eta := etaI / etaO
	etak := k / etaO

	cosTheta2 := cosThetaI * cosThetaI
	sinTheta2 := 1 - cosTheta2

	eta2 := eta * eta
	etak2 := etak * etak

	t0 := eta2 - etak2 - sinTheta2
	a2plusb2 := rmath.Sqrt(rmath.Max(0, t0*t0+4*eta2*etak2))
	t1 := a2plusb2 + cosTheta2
	a := rmath.Sqrt(rmath.Max(0, (a2plusb2+t0)*0.5))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cosTheta2*a2plusb2 + sinTheta2*sinTheta2
	t4 := t2 * sinTheta2
	rp := rs * (t3 - t4) / (t3 + t4)

	return 0.5 * (rp + rs)
}

// Reflector is the §4.F "FresnelReflector" contract: given cosThetaI it
// returns the (possibly per-channel) reflectance to weight a specular or
// microfacet lobe by.
type Reflector interface {
	Evaluate(cosThetaI rmath.Float) spectrum.RGB
}

// PerfectReflector always reflects fully, used for materials with no
// Fresnel falloff (e.g. a mirror not modelled as a dielectric).
type PerfectReflector struct{}

func (PerfectReflector) Evaluate(rmath.Float) spectrum.RGB { return spectrum.White }

// DielectricReflector wraps DielectricFresnel for a real-valued dielectric
// interface (glass, plastic's clear coat).
type DielectricReflector struct {
	EtaOutside, EtaInside rmath.Float
}

func NewDielectricReflector(etaOutside, etaInside rmath.Float) DielectricReflector {
	return DielectricReflector{EtaOutside: etaOutside, EtaInside: etaInside}
}

func (d DielectricReflector) Evaluate(cosThetaI rmath.Float) spectrum.RGB {
	return spectrum.Constant(DielectricFresnel(cosThetaI, d.EtaOutside, d.EtaInside))
}

// ConductiveReflector wraps ConductorFresnel for a metallic interface.
type ConductiveReflector struct {
	EtaOutside rmath.Float
	EtaInside  spectrum.RGB
	K          spectrum.RGB
}

func NewConductiveReflector(etaOutside rmath.Float, etaInside, k spectrum.RGB) ConductiveReflector {
	return ConductiveReflector{EtaOutside: etaOutside, EtaInside: etaInside, K: k}
}

func (c ConductiveReflector) Evaluate(cosThetaI rmath.Float) spectrum.RGB {
	return ConductorFresnel(cosThetaI, c.EtaOutside, c.EtaInside, c.K)
}
