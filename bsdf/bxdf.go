package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/sampling"
	"rayimpact/spectrum"
)

// Type is a bitfield classifying a BXDF's scattering mode, used by the BSDF
// aggregate's component selector and by the integrator when it restricts
// recursive sampling to specular components only.
type Type int

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	All = Reflection | Transmission | Diffuse | Glossy | Specular
)

func (t Type) Has(want Type) bool { return t&want == want }

// BXDF is a single scattering term in local shading-frame coordinates
// (§4.F "BXDF contract"). Every method takes directions pointing away from
// the surface.
type BXDF interface {
	Type() Type

	// Evaluate returns f(wo, wi).
	Evaluate(wo, wi rmath.Vec3) spectrum.RGB

	// Sample importance-samples wi given wo and a [0,1)^2 sample, returning
	// the BSDF value, its density, and whether the sampled direction was
	// drawn from a specular (delta) lobe.
	Sample(wo rmath.Vec3, u rmath.Pt2) (wi rmath.Vec3, f spectrum.RGB, pdf rmath.Float, sampledSpecular bool)

	// PDF returns the density Sample would assign to wi given wo.
	PDF(wo, wi rmath.Vec3) rmath.Float

	// Reduced estimates the hemispherical-directional reflectance from wo
	// using the supplied stratified 2D samples.
	Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB

	// ReducedBoth estimates the hemispherical-hemispherical reflectance
	// from two independent sets of stratified samples.
	ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB
}

// base supplies the default cosine-weighted Sample/PDF/Reduced/ReducedBoth
// implementations spec.md describes for diffuse/glossy BXDFs; concrete
// types embed it and override Evaluate (and Sample/PDF when they need
// non-default behavior, e.g. the specular/microfacet families).
type base struct {
	self BXDF
	typ  Type
}

func (b base) Type() Type { return b.typ }

func (b base) defaultSample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	wi := sampling.CosineWeightedHemisphereSample(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := b.self.PDF(wo, wi)
	return wi, b.self.Evaluate(wo, wi), pdf, false
}

func (b base) defaultPDF(wo, wi rmath.Vec3) rmath.Float {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / rmath.Pi
}

func (b base) defaultReduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	sum := spectrum.Black
	for _, u := range samples {
		wi, f, pdf, _ := b.self.Sample(wo, u)
		if pdf > 0 {
			sum = sum.Add(f.Scale(AbsCosTheta(wi) / pdf))
		}
	}
	return sum.Scale(1 / rmath.Float(len(samples)))
}

func (b base) defaultReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	sum := spectrum.Black
	n := len(samples1)
	if len(samples2) < n {
		n = len(samples2)
	}
	for i := 0; i < n; i++ {
		wo := sampling.CosineWeightedHemisphereSample(samples1[i])
		wi, f, pdf, _ := b.self.Sample(wo, samples2[i])
		if pdf > 0 {
			sum = sum.Add(f.Scale(AbsCosTheta(wo) * AbsCosTheta(wi) / (pdf * rmath.Pi)))
		}
	}
	if n == 0 {
		return spectrum.Black
	}
	return sum.Scale(1 / rmath.Float(n))
}

// ScaledBXDF wraps another BXDF and scales its contribution, used by the
// Mixed material to blend two sub-materials' BSDFs by weight (§4.F "Material
// -> BSDF construction").
type ScaledBXDF struct {
	Inner  BXDF
	Weight spectrum.RGB
}

func NewScaledBXDF(inner BXDF, weight spectrum.RGB) *ScaledBXDF {
	return &ScaledBXDF{Inner: inner, Weight: weight}
}

func (s *ScaledBXDF) Type() Type { return s.Inner.Type() }

func (s *ScaledBXDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB {
	return s.Inner.Evaluate(wo, wi).Mul(s.Weight)
}

func (s *ScaledBXDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	wi, f, pdf, specular := s.Inner.Sample(wo, u)
	return wi, f.Mul(s.Weight), pdf, specular
}

func (s *ScaledBXDF) PDF(wo, wi rmath.Vec3) rmath.Float { return s.Inner.PDF(wo, wi) }

func (s *ScaledBXDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return s.Inner.Reduced(wo, samples).Mul(s.Weight)
}

func (s *ScaledBXDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return s.Inner.ReducedBoth(samples1, samples2).Mul(s.Weight)
}
