// Package material builds a bsdf.BSDF from a surface-scattering event and a
// material's texture-bound parameters (§4.F "Material -> BSDF
// construction"). Grounded on the teacher's materials/material.go (a
// PBR-lite material struct with diffuse/roughness/metallic parameters and
// optional textures), generalized from a rasterizer-facing uniform-buffer
// layout into a BSDF factory.
package material

import (
	"rayimpact/bsdf"
	"rayimpact/rmath"
	"rayimpact/shape"
	"rayimpact/spectrum"
	"rayimpact/texture"
)

// Material is the contract every concrete material satisfies: given a hit
// event (whose shading frame may already be bump-perturbed), build and
// attach the BSDF describing local scattering there.
type Material interface {
	ComputeScatteringFunctions(event *shape.SurfaceScatteringEvent, allowMultipleLobes bool) *bsdf.BSDF
	BumpMap() texture.Texture[rmath.Float]
}

// base carries the optional bump map every concrete material shares, and
// applies it before BSDF construction (§4.F "Bump mapping").
type base struct {
	Bump texture.Texture[rmath.Float]
}

func (b base) BumpMap() texture.Texture[rmath.Float] { return b.Bump }

func applyBumpMap(bump texture.Texture[rmath.Float], event *shape.SurfaceScatteringEvent) {
	if bump == nil {
		return
	}

	duShift := *event
	duDisplace := rmath.Max(rmath.Abs(event.DUDX)+rmath.Abs(event.DUDY), 0.01) / 2
	duShift.Point = event.Point.Add(event.Shading.DPDU.Mul(duDisplace))
	duShift.UV = rmath.Pt2{X: event.UV.X + duDisplace, Y: event.UV.Y}
	uDisplace := bump.Evaluate(&duShift)

	dvShift := *event
	dvDisplace := rmath.Max(rmath.Abs(event.DVDX)+rmath.Abs(event.DVDY), 0.01) / 2
	dvShift.Point = event.Point.Add(event.Shading.DPDV.Mul(dvDisplace))
	dvShift.UV = rmath.Pt2{X: event.UV.X, Y: event.UV.Y + dvDisplace}
	vDisplace := bump.Evaluate(&dvShift)

	displace := bump.Evaluate(event)

	shadingNormal := rmath.Vec3{X: event.Shading.Normal.X, Y: event.Shading.Normal.Y, Z: event.Shading.Normal.Z}
	dpdu := event.Shading.DPDU.Add(shadingNormal.Mul((uDisplace - displace) / duDisplace)).
		Add(rmath.Vec3{X: event.Shading.DNDU.X, Y: event.Shading.DNDU.Y, Z: event.Shading.DNDU.Z}.Mul(displace))
	dpdv := event.Shading.DPDV.Add(shadingNormal.Mul((vDisplace - displace) / dvDisplace)).
		Add(rmath.Vec3{X: event.Shading.DNDV.X, Y: event.Shading.DNDV.Y, Z: event.Shading.DNDV.Z}.Mul(displace))

	n := rmath.NormalFromVector(dpdu.Cross(dpdv)).Normalize()
	if event.Shape != nil && event.Shape.ReverseOrientation() != event.Shape.TransformSwapsHandedness() {
		n = rmath.Norm3{X: -n.X, Y: -n.Y, Z: -n.Z}
	}
	event.Shading.Normal = n
	event.Shading.DPDU = dpdu
	event.Shading.DPDV = dpdv
}

// Matte is a pure-diffuse material (§4.F "Matte").
type Matte struct {
	base
	Reflectance texture.Texture[spectrum.RGB]
	Sigma       texture.Texture[rmath.Float]
}

func NewMatte(reflectance texture.Texture[spectrum.RGB], sigma texture.Texture[rmath.Float], bump texture.Texture[rmath.Float]) *Matte {
	return &Matte{base: base{Bump: bump}, Reflectance: reflectance, Sigma: sigma}
}

func (m *Matte) ComputeScatteringFunctions(event *shape.SurfaceScatteringEvent, allowMultipleLobes bool) *bsdf.BSDF {
	applyBumpMap(m.Bump, event)
	b := bsdf.New(event, 1)

	reflectance := m.Reflectance.Evaluate(event).ClampZero()
	if reflectance.IsBlack() {
		return b
	}

	sigma := rmath.Float(0)
	if m.Sigma != nil {
		sigma = rmath.Clamp(m.Sigma.Evaluate(event), 0, 90) * rmath.Pi / 180
	}
	if sigma == 0 {
		b.Add(bsdf.NewLambertianBRDF(reflectance))
	} else {
		b.Add(bsdf.NewOrenNayarBRDF(reflectance, sigma))
	}
	return b
}

// Plastic layers a diffuse base coat under a glossy dielectric-Fresnel
// microfacet highlight (§4.F "Plastic").
type Plastic struct {
	base
	Diffuse, Glossy texture.Texture[spectrum.RGB]
	Roughness       texture.Texture[rmath.Float]
	RemapRoughness  bool
}

func NewPlastic(diffuse, glossy texture.Texture[spectrum.RGB], roughness texture.Texture[rmath.Float], remapRoughness bool, bump texture.Texture[rmath.Float]) *Plastic {
	return &Plastic{base: base{Bump: bump}, Diffuse: diffuse, Glossy: glossy, Roughness: roughness, RemapRoughness: remapRoughness}
}

func (p *Plastic) ComputeScatteringFunctions(event *shape.SurfaceScatteringEvent, allowMultipleLobes bool) *bsdf.BSDF {
	applyBumpMap(p.Bump, event)
	b := bsdf.New(event, 1)

	kd := p.Diffuse.Evaluate(event).ClampZero()
	if !kd.IsBlack() {
		b.Add(bsdf.NewLambertianBRDF(kd))
	}

	ks := p.Glossy.Evaluate(event).ClampZero()
	if !ks.IsBlack() {
		rough := p.Roughness.Evaluate(event)
		if p.RemapRoughness {
			rough = bsdf.RoughnessToDeviation(rough)
		}
		dist := bsdf.NewTrowbridgeReitz(rough, rough)
		fresnel := bsdf.NewDielectricReflector(1, 1.5)
		b.Add(bsdf.NewMicrofacetBRDF(ks, dist, fresnel))
	}
	return b
}

// Glass is a dielectric that both reflects and transmits (§4.F "Glass").
type Glass struct {
	base
	Reflectance, Transmittance     texture.Texture[spectrum.RGB]
	RoughnessU, RoughnessV texture.Texture[rmath.Float]
	Eta                    texture.Texture[rmath.Float]
	RemapRoughness         bool
}

func NewGlass(reflectance, transmittance texture.Texture[spectrum.RGB], roughnessU, roughnessV texture.Texture[rmath.Float], eta texture.Texture[rmath.Float], remapRoughness bool, bump texture.Texture[rmath.Float]) *Glass {
	return &Glass{base: base{Bump: bump}, Reflectance: reflectance, Transmittance: transmittance, RoughnessU: roughnessU, RoughnessV: roughnessV, Eta: eta, RemapRoughness: remapRoughness}
}

func (g *Glass) ComputeScatteringFunctions(event *shape.SurfaceScatteringEvent, allowMultipleLobes bool) *bsdf.BSDF {
	applyBumpMap(g.Bump, event)
	eta := rmath.Float(1.5)
	if g.Eta != nil {
		eta = g.Eta.Evaluate(event)
	}
	b := bsdf.New(event, eta)

	reflectance := g.Reflectance.Evaluate(event).ClampZero()
	transmittance := g.Transmittance.Evaluate(event).ClampZero()
	if reflectance.IsBlack() && transmittance.IsBlack() {
		return b
	}

	uRough, vRough := rmath.Float(0), rmath.Float(0)
	if g.RoughnessU != nil {
		uRough = g.RoughnessU.Evaluate(event)
	}
	if g.RoughnessV != nil {
		vRough = g.RoughnessV.Evaluate(event)
	}
	isSpecular := uRough == 0 && vRough == 0

	if isSpecular && allowMultipleLobes && !reflectance.IsBlack() && !transmittance.IsBlack() {
		b.Add(bsdf.NewSpecularBSDF(reflectance, transmittance, 1, eta, bsdf.Radiance))
		return b
	}

	if g.RemapRoughness {
		uRough = bsdf.RoughnessToDeviation(uRough)
		vRough = bsdf.RoughnessToDeviation(vRough)
	}

	if !reflectance.IsBlack() {
		if isSpecular {
			b.Add(bsdf.NewSpecularBRDF(reflectance, bsdf.NewDielectricReflector(1, eta)))
		} else {
			dist := bsdf.NewTrowbridgeReitz(uRough, vRough)
			b.Add(bsdf.NewMicrofacetBRDF(reflectance, dist, bsdf.NewDielectricReflector(1, eta)))
		}
	}
	if !transmittance.IsBlack() {
		if isSpecular {
			b.Add(bsdf.NewSpecularBTDF(transmittance, 1, eta, bsdf.Radiance))
		} else {
			dist := bsdf.NewTrowbridgeReitz(uRough, vRough)
			b.Add(bsdf.NewMicrofacetBTDF(transmittance, dist, 1, eta, bsdf.Radiance))
		}
	}
	return b
}

// Mixed linearly blends two sub-materials' BSDFs by a texture-driven weight
// (§4.F "Mixed"): each sub-material builds against its own copy of the
// event (since bump mapping may perturb the shading frame differently per
// sub-material), and the resulting components are wrapped in ScaledBXDF by
// (1-w) and w respectively before being merged into one aggregate.
type Mixed struct {
	A, B   Material
	Amount texture.Texture[rmath.Float]
}

func NewMixed(a, b Material, amount texture.Texture[rmath.Float]) *Mixed {
	return &Mixed{A: a, B: b, Amount: amount}
}

func (m *Mixed) BumpMap() texture.Texture[rmath.Float] { return nil }

func (m *Mixed) ComputeScatteringFunctions(event *shape.SurfaceScatteringEvent, allowMultipleLobes bool) *bsdf.BSDF {
	w := rmath.Clamp(m.Amount.Evaluate(event), 0, 1)

	eventA := *event
	eventB := *event
	bsdfA := m.A.ComputeScatteringFunctions(&eventA, allowMultipleLobes)
	bsdfB := m.B.ComputeScatteringFunctions(&eventB, allowMultipleLobes)

	out := bsdf.New(event, bsdfA.Eta)
	appendScaled(out, bsdfA, spectrum.Constant(1-w))
	appendScaled(out, bsdfB, spectrum.Constant(w))
	return out
}

func appendScaled(dst *bsdf.BSDF, src *bsdf.BSDF, weight spectrum.RGB) {
	for _, x := range src.Components() {
		dst.Add(bsdf.NewScaledBXDF(x, weight))
	}
}
