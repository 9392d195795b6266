package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// SpecularBRDF is a perfect mirror weighted by a Fresnel reflectance.
// Evaluate/PDF return 0 everywhere since the lobe is a delta distribution;
// all of its contribution flows through Sample (§4.F "SpecularBRDF").
type SpecularBRDF struct {
	base
	Reflectance spectrum.RGB
	Fresnel     Reflector
}

func NewSpecularBRDF(reflectance spectrum.RGB, fresnel Reflector) *SpecularBRDF {
	s := &SpecularBRDF{Reflectance: reflectance, Fresnel: fresnel}
	s.base = base{self: s, typ: Reflection | Specular}
	return s
}

func (s *SpecularBRDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB { return spectrum.Black }
func (s *SpecularBRDF) PDF(wo, wi rmath.Vec3) rmath.Float       { return 0 }

func (s *SpecularBRDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	wi := rmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	fr := s.Fresnel.Evaluate(CosTheta(wi))
	f := s.Reflectance.Mul(fr).Scale(1 / AbsCosTheta(wi))
	return wi, f, 1, true
}

func (s *SpecularBRDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return spectrum.Black
}

func (s *SpecularBRDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return spectrum.Black
}

// TransportMode distinguishes importance transport (from the camera) from
// light transport, needed to apply the correct non-symmetric scaling factor
// for specular transmission (§4.F "SpecularBTDF").
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// SpecularBTDF is a perfect refractor between two dielectric media of index
// EtaOutside/EtaInside.
type SpecularBTDF struct {
	base
	Transmittance         spectrum.RGB
	EtaOutside, EtaInside rmath.Float
	fresnel               DielectricReflector
	Mode                  TransportMode
}

func NewSpecularBTDF(transmittance spectrum.RGB, etaOutside, etaInside rmath.Float, mode TransportMode) *SpecularBTDF {
	s := &SpecularBTDF{
		Transmittance: transmittance,
		EtaOutside:    etaOutside,
		EtaInside:     etaInside,
		fresnel:       NewDielectricReflector(etaOutside, etaInside),
		Mode:          mode,
	}
	s.base = base{self: s, typ: Transmission | Specular}
	return s
}

func (s *SpecularBTDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB { return spectrum.Black }
func (s *SpecularBTDF) PDF(wo, wi rmath.Vec3) rmath.Float       { return 0 }

func (s *SpecularBTDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaOutside, s.EtaInside
	if !entering {
		etaI, etaT = etaT, etaI
	}

	n := rmath.Vec3{X: 0, Y: 0, Z: 1}
	if !entering {
		n = n.Negate()
	}
	wi, ok := Refract(wo, n, etaI/etaT)
	if !ok {
		return rmath.Vec3{}, spectrum.Black, 0, true
	}

	ft := s.Transmittance.Scale(1 - s.fresnel.Evaluate(CosTheta(wi)).R)
	if s.Mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	f := ft.Scale(1 / AbsCosTheta(wi))
	return wi, f, 1, true
}

func (s *SpecularBTDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return spectrum.Black
}

func (s *SpecularBTDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return spectrum.Black
}

// SpecularBSDF combines reflection and transmission through one Fresnel
// term, choosing between them in Sample by comparing u.X against the
// Fresnel reflectance (§4.F "SpecularBSDF").
type SpecularBSDF struct {
	base
	Reflectance, Transmittance spectrum.RGB
	EtaOutside, EtaInside      rmath.Float
	Mode                       TransportMode
}

func NewSpecularBSDF(reflectance, transmittance spectrum.RGB, etaOutside, etaInside rmath.Float, mode TransportMode) *SpecularBSDF {
	s := &SpecularBSDF{
		Reflectance:   reflectance,
		Transmittance: transmittance,
		EtaOutside:    etaOutside,
		EtaInside:     etaInside,
		Mode:          mode,
	}
	s.base = base{self: s, typ: Reflection | Transmission | Specular}
	return s
}

func (s *SpecularBSDF) Evaluate(wo, wi rmath.Vec3) spectrum.RGB { return spectrum.Black }
func (s *SpecularBSDF) PDF(wo, wi rmath.Vec3) rmath.Float       { return 0 }

func (s *SpecularBSDF) Sample(wo rmath.Vec3, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, bool) {
	fr := DielectricFresnel(CosTheta(wo), s.EtaOutside, s.EtaInside)

	if u.X < fr {
		wi := rmath.Vec3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		f := s.Reflectance.Scale(fr / AbsCosTheta(wi))
		return wi, f, fr, true
	}

	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaOutside, s.EtaInside
	if !entering {
		etaI, etaT = etaT, etaI
	}
	n := rmath.Vec3{X: 0, Y: 0, Z: 1}
	if !entering {
		n = n.Negate()
	}
	wi, ok := Refract(wo, n, etaI/etaT)
	if !ok {
		return rmath.Vec3{}, spectrum.Black, 0, true
	}
	ft := s.Transmittance.Scale(1 - fr)
	if s.Mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	pdf := 1 - fr
	f := ft.Scale(1 / AbsCosTheta(wi))
	return wi, f, pdf, true
}

func (s *SpecularBSDF) Reduced(wo rmath.Vec3, samples []rmath.Pt2) spectrum.RGB {
	return spectrum.Black
}

func (s *SpecularBSDF) ReducedBoth(samples1, samples2 []rmath.Pt2) spectrum.RGB {
	return spectrum.Black
}
