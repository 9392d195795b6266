package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/sampling"
	"rayimpact/spectrum"
)

// LambertianBRDF is a perfectly diffuse reflector: f = ρ/π everywhere in the
// same hemisphere.
type LambertianBRDF struct {
	base
	Reflectance spectrum.RGB
}

func NewLambertianBRDF(reflectance spectrum.RGB) *LambertianBRDF {
	l := &LambertianBRDF{Reflectance: reflectance}
	l.base = base{self: l, typ: Reflection | Diffuse}
	return l
}

func (l *LambertianBRDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB {
	return l.Reflectance.Scale(rmath.InvPi)
}

func (l *LambertianBRDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	return l.base.defaultSample(wo, u)
}

func (l *LambertianBRDF) PDF(wo, wi rmath.Vec3) rmath.Float { return l.base.defaultPDF(wo, wi) }

func (l *LambertianBRDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return l.Reflectance
}

func (l *LambertianBRDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return l.Reflectance
}

// LambertianBTDF is a perfectly diffuse transmitter: f = τ/π, always
// sampled into the opposite hemisphere from wo.
type LambertianBTDF struct {
	base
	Transmittance spectrum.RGB
}

func NewLambertianBTDF(transmittance spectrum.RGB) *LambertianBTDF {
	l := &LambertianBTDF{Transmittance: transmittance}
	l.base = base{self: l, typ: Transmission | Diffuse}
	return l
}

func (l *LambertianBTDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB {
	return l.Transmittance.Scale(rmath.InvPi)
}

func (l *LambertianBTDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	wi := sampling.CosineWeightedHemisphereSample(u)
	if wo.Z > 0 {
		wi.Z = -wi.Z
	}
	return wi, l.Evaluate(wo, wi), l.PDF(wo, wi), false
}

func (l *LambertianBTDF) PDF(wo, wi rmath.Vec3) rmath.Float {
	if SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / rmath.Pi
}

func (l *LambertianBTDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return l.Transmittance
}

func (l *LambertianBTDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return l.Transmittance
}
