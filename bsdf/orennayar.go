package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// OrenNayarBRDF models diffuse reflection off a rough surface via Oren and
// Nayar's microfacet-averaged approximation, parameterised by σ in radians
// (§4.F).
type OrenNayarBRDF struct {
	base
	Reflectance spectrum.RGB
	a, b        rmath.Float
}

func NewOrenNayarBRDF(reflectance spectrum.RGB, sigmaRadians rmath.Float) *OrenNayarBRDF {
	sigma2 := sigmaRadians * sigmaRadians
	o := &OrenNayarBRDF{
		Reflectance: reflectance,
		a:           1 - sigma2/(2*(sigma2+0.33)),
		b:           0.45 * sigma2 / (sigma2 + 0.09),
	}
	o.base = base{self: o, typ: Reflection | Diffuse}
	return o
}

func (o *OrenNayarBRDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB {
	sinThetaI := SinTheta(wi)
	sinThetaO := SinTheta(wo)

	var maxCos rmath.Float
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		sinPhiI, cosPhiI := SinPhi(wi), CosPhi(wi)
		sinPhiO, cosPhiO := SinPhi(wo), CosPhi(wo)
		dCos := cosPhiI*cosPhiO + sinPhiI*sinPhiO
		maxCos = rmath.Max(0, dCos)
	}

	var sinAlpha, tanBeta rmath.Float
	if AbsCosTheta(wi) > AbsCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / AbsCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / AbsCosTheta(wo)
	}

	return o.Reflectance.Scale(rmath.InvPi * (o.a + o.b*maxCos*sinAlpha*tanBeta))
}

func (o *OrenNayarBRDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	return o.base.defaultSample(wo, u)
}

func (o *OrenNayarBRDF) PDF(wo, wi rmath.Vec3) rmath.Float { return o.base.defaultPDF(wo, wi) }

func (o *OrenNayarBRDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return o.base.defaultReduced(wo, samples)
}

func (o *OrenNayarBRDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return o.base.defaultReducedBoth(samples1, samples2)
}
