package bsdf

import (
	"rayimpact/rmath"
	"rayimpact/shape"
	"rayimpact/spectrum"
)

const maxComponents = 8

// BSDF aggregates up to 8 BXDFs built against one surface-scattering event's
// shading frame and exposes world-space evaluate/sample/pdf operations
// (§4.F "BSDF aggregate").
type BSDF struct {
	GeometricNormal rmath.Norm3
	tangent         rmath.Vec3
	bitangent       rmath.Vec3
	shadingNormal   rmath.Norm3
	components    [maxComponents]BXDF
	numComponents int

	// Eta is the relative index of refraction across this surface,
	// recorded so the integrator can weight Russian-roulette/MIS
	// contributions that cross a dielectric boundary; 1 for opaque/diffuse
	// surfaces.
	Eta rmath.Float
}

// New builds an (initially empty) BSDF from the shading frame recorded at
// event. Components are added with Add after construction so the material
// layer can decide which BXDFs apply.
func New(event *shape.SurfaceScatteringEvent, eta rmath.Float) *BSDF {
	ns := rmath.Vec3{X: event.Shading.Normal.X, Y: event.Shading.Normal.Y, Z: event.Shading.Normal.Z}
	ss := event.Shading.DPDU.Normalize()
	ts := ns.Cross(ss)
	return &BSDF{
		GeometricNormal: event.Normal,
		shadingNormal:   event.Shading.Normal,
		tangent:         ss,
		bitangent:       ts,
		Eta:             eta,
	}
}

func (b *BSDF) Add(x BXDF) {
	if b.numComponents < maxComponents {
		b.components[b.numComponents] = x
		b.numComponents++
	}
}

// Components returns the BXDFs currently attached, in addition order.
func (b *BSDF) Components() []BXDF {
	return b.components[:b.numComponents]
}

func (b *BSDF) NumComponents(typ Type) int {
	n := 0
	for i := 0; i < b.numComponents; i++ {
		if b.components[i].Type().Has(typ) || typ == All {
			n++
		}
	}
	return n
}

func (b *BSDF) worldToLocal(v rmath.Vec3) rmath.Vec3 {
	return rmath.Vec3{X: v.Dot(b.tangent), Y: v.Dot(b.bitangent), Z: v.Dot(rmath.Vec3{X: b.shadingNormal.X, Y: b.shadingNormal.Y, Z: b.shadingNormal.Z})}
}

func (b *BSDF) localToWorld(v rmath.Vec3) rmath.Vec3 {
	n := rmath.Vec3{X: b.shadingNormal.X, Y: b.shadingNormal.Y, Z: b.shadingNormal.Z}
	return rmath.Vec3{
		X: b.tangent.X*v.X + b.bitangent.X*v.Y + n.X*v.Z,
		Y: b.tangent.Y*v.X + b.bitangent.Y*v.Y + n.Y*v.Z,
		Z: b.tangent.Z*v.X + b.bitangent.Z*v.Y + n.Z*v.Z,
	}
}

func (b *BSDF) matchesSide(woWorld, wiWorld rmath.Vec3, x BXDF) bool {
	reflect := woWorld.Dot(rmath.Vec3{X: b.GeometricNormal.X, Y: b.GeometricNormal.Y, Z: b.GeometricNormal.Z})*
		wiWorld.Dot(rmath.Vec3{X: b.GeometricNormal.X, Y: b.GeometricNormal.Y, Z: b.GeometricNormal.Z}) > 0
	if reflect {
		return x.Type().Has(Reflection)
	}
	return x.Type().Has(Transmission)
}

// Evaluate sums f(wo,wi) over every component matching typ whose
// reflect/transmit side (judged by the geometric normal, to avoid
// light-leak artifacts at grazing shading-normal angles) agrees with the
// wo/wi pair.
func (b *BSDF) Evaluate(woWorld, wiWorld rmath.Vec3, typ Type) spectrum.RGB {
	wo, wi := b.worldToLocal(woWorld), b.worldToLocal(wiWorld)
	if wo.Z == 0 {
		return spectrum.Black
	}
	sum := spectrum.Black
	for i := 0; i < b.numComponents; i++ {
		x := b.components[i]
		if !x.Type().Has(typ) && typ != All {
			continue
		}
		if !b.matchesSide(woWorld, wiWorld, x) {
			continue
		}
		sum = sum.Add(x.Evaluate(wo, wi))
	}
	return sum
}

// matchingIndices returns the indices of components matching typ.
func (b *BSDF) matchingIndices(typ Type) []int {
	idx := make([]int, 0, b.numComponents)
	for i := 0; i < b.numComponents; i++ {
		if b.components[i].Type().Has(typ) || typ == All {
			idx = append(idx, i)
		}
	}
	return idx
}

// Sample picks one matching component (by remapping u.X across the
// candidates), samples it, and if the chosen component is non-specular,
// folds in the evaluate-contributions of the other matching components on
// the correct side, averaging all their pdfs together (§4.F "sample(...)").
func (b *BSDF) Sample(woWorld rmath.Vec3, u rmath.Pt2, typ Type) (wiWorld rmath.Vec3, f spectrum.RGB, pdf rmath.Float, sampledType Type) {
	matching := b.matchingIndices(typ)
	if len(matching) == 0 {
		return rmath.Vec3{}, spectrum.Black, 0, 0
	}

	comp := rmath.Clamp(rmath.Float(len(matching))*u.X, 0, rmath.Float(len(matching))-1e-6)
	which := int(comp)
	remappedU := rmath.Pt2{X: comp - rmath.Float(which), Y: u.Y}
	chosen := b.components[matching[which]]

	wo := b.worldToLocal(woWorld)
	if wo.Z == 0 {
		return rmath.Vec3{}, spectrum.Black, 0, 0
	}

	wi, sampledF, samplePdf, specular := chosen.Sample(wo, remappedU)
	if samplePdf == 0 {
		return rmath.Vec3{}, spectrum.Black, 0, 0
	}
	wiWorld = b.localToWorld(wi)
	sampledType = chosen.Type()

	if specular || len(matching) == 1 {
		return wiWorld, sampledF, samplePdf / rmath.Float(len(matching)), sampledType
	}

	pdfSum := samplePdf
	fSum := sampledF
	for _, idx := range matching {
		if idx == matching[which] {
			continue
		}
		other := b.components[idx]
		if !b.matchesSide(woWorld, wiWorld, other) {
			continue
		}
		pdfSum += other.PDF(wo, wi)
		fSum = fSum.Add(other.Evaluate(wo, wi))
	}

	return wiWorld, fSum, pdfSum / rmath.Float(len(matching)), sampledType
}

// PDF averages the component densities restricted by typ.
func (b *BSDF) PDF(woWorld, wiWorld rmath.Vec3, typ Type) rmath.Float {
	matching := b.matchingIndices(typ)
	if len(matching) == 0 {
		return 0
	}
	wo, wi := b.worldToLocal(woWorld), b.worldToLocal(wiWorld)
	if wo.Z == 0 {
		return 0
	}
	sum := rmath.Float(0)
	for _, idx := range matching {
		sum += b.components[idx].PDF(wo, wi)
	}
	return sum / rmath.Float(len(matching))
}
