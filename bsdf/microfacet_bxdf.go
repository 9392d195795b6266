package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// MicrofacetBRDF is a rough reflector: a microfacet distribution D, a
// masking-shadowing term G, and a Fresnel reflectance F composited per
// spec.md §4.F's Cook-Torrance-style formula.
type MicrofacetBRDF struct {
	base
	Reflectance  spectrum.RGB
	Distribution Distribution
	Fresnel      Reflector
}

func NewMicrofacetBRDF(reflectance spectrum.RGB, dist Distribution, fresnel Reflector) *MicrofacetBRDF {
	m := &MicrofacetBRDF{Reflectance: reflectance, Distribution: dist, Fresnel: fresnel}
	m.base = base{self: m, typ: Reflection | Glossy}
	return m
}

func (m *MicrofacetBRDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB {
	cosThetaO, cosThetaI := AbsCosTheta(wo), AbsCosTheta(wi)
	wh := wo.Add(wi)
	if cosThetaI == 0 || cosThetaO == 0 || (wh.X == 0 && wh.Y == 0 && wh.Z == 0) {
		return spectrum.Black
	}
	wh = wh.Normalize()
	fr := m.Fresnel.Evaluate(wi.Dot(wh))
	d := m.Distribution.D(wh)
	g := G(m.Distribution, wo, wi)
	return m.Reflectance.Mul(fr).Scale(d * g / (4 * cosThetaO * cosThetaI))
}

func (m *MicrofacetBRDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	if wo.Z == 0 {
		return rmath.Vec3{}, spectrum.Black, 0, false
	}
	wh := m.Distribution.SampleWh(u)
	if wo.Dot(wh) < 0 {
		wh = wh.Negate()
	}
	wi := Reflect(wo, wh)
	if !SameHemisphere(wo, wi) {
		return wi, spectrum.Black, 0, false
	}
	return wi, m.Evaluate(wo, wi), m.PDF(wo, wi), false
}

func (m *MicrofacetBRDF) PDF(wo, wi rmath.Vec3) rmath.Float {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi).Normalize()
	return PDFWh(m.Distribution, wh) / (4 * wo.Dot(wh))
}

func (m *MicrofacetBRDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return m.base.defaultReduced(wo, samples)
}

func (m *MicrofacetBRDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return m.base.defaultReducedBoth(samples1, samples2)
}

// MicrofacetBTDF is a rough refractor between media of index EtaOutside
// (wo's side) and EtaInside.
type MicrofacetBTDF struct {
	base
	Transmittance         spectrum.RGB
	Distribution          Distribution
	EtaOutside, EtaInside rmath.Float
	fresnel               DielectricReflector
	Mode                  TransportMode
}

func NewMicrofacetBTDF(transmittance spectrum.RGB, dist Distribution, etaOutside, etaInside rmath.Float, mode TransportMode) *MicrofacetBTDF {
	m := &MicrofacetBTDF{
		Transmittance: transmittance,
		Distribution:  dist,
		EtaOutside:    etaOutside,
		EtaInside:     etaInside,
		fresnel:       NewDielectricReflector(etaOutside, etaInside),
		Mode:          mode,
	}
	m.base = base{self: m, typ: Transmission | Glossy}
	return m
}

func (m *MicrofacetBTDF) eta(wo rmath.Vec3) rmath.Float {
	if CosTheta(wo) > 0 {
		return m.EtaInside / m.EtaOutside
	}
	return m.EtaOutside / m.EtaInside
}

func (m *MicrofacetBTDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB {
	if SameHemisphere(wo, wi) {
		return spectrum.Black
	}
	cosThetaO, cosThetaI := CosTheta(wo), CosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return spectrum.Black
	}

	eta := m.eta(wo)
	wh := wo.Add(wi.Mul(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}

	fr := m.fresnel.Evaluate(wo.Dot(wh))
	d := m.Distribution.D(wh)
	g := G(m.Distribution, wo, wi)

	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	factor := rmath.Float(1)
	if m.Mode == Radiance {
		factor = 1 / eta
	}

	numerator := d * g * eta * eta * rmath.Abs(wi.Dot(wh)) * rmath.Abs(wo.Dot(wh)) * factor * factor
	denom := cosThetaI * cosThetaO * sqrtDenom * sqrtDenom

	return m.Transmittance.Scale((1 - fr.R) * rmath.Abs(numerator/denom))
}

func (m *MicrofacetBTDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	if wo.Z == 0 {
		return rmath.Vec3{}, spectrum.Black, 0, false
	}
	wh := m.Distribution.SampleWh(u)
	if wo.Dot(wh) < 0 {
		wh = wh.Negate()
	}

	eta := m.EtaOutside / m.EtaInside
	if CosTheta(wo) > 0 {
		eta = m.EtaInside / m.EtaOutside
	}
	wi, ok := Refract(wo, faceForwardNormal(wh, wo), 1/eta)
	if !ok {
		return rmath.Vec3{}, spectrum.Black, 0, false
	}
	return wi, m.Evaluate(wo, wi), m.PDF(wo, wi), false
}

func faceForwardNormal(n, v rmath.Vec3) rmath.Vec3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

func (m *MicrofacetBTDF) PDF(wo, wi rmath.Vec3) rmath.Float {
	if SameHemisphere(wo, wi) {
		return 0
	}
	eta := m.eta(wo)
	wh := wo.Add(wi.Mul(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	dwhDwi := rmath.Abs((eta * eta * wi.Dot(wh)) / (sqrtDenom * sqrtDenom))
	return PDFWh(m.Distribution, wh) * dwhDwi
}

func (m *MicrofacetBTDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return m.base.defaultReduced(wo, samples)
}

func (m *MicrofacetBTDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return m.base.defaultReducedBoth(samples1, samples2)
}
