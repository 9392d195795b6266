package light

import (
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// AreaSampleableShape is the narrow surface-sampling contract a shape must
// satisfy to back a DiffuseAreaLight: a total object-space area and a
// uniform surface-point sampler returning a world-space point and outward
// normal. shape.Sphere and shape.Disk both implement it; light does not
// import shape directly so it stays independent of the intersection core
// (matching the Occluder pattern above).
type AreaSampleableShape interface {
	Area() rmath.Float
	SampleSurface(u rmath.Pt2) (rmath.Pt3, rmath.Norm3)
}

// AreaLight extends Light with the emission query the integrator issues
// when a traced ray lands directly on a light-carrying surface (§4.J
// "Accumulate emitted radiance from the hit surface (for area lights)").
type AreaLight interface {
	Light
	EmittedRadiance(point rmath.Pt3, normal rmath.Norm3, w rmath.Vec3) spectrum.RGB
}

// DiffuseAreaLight emits Lemit uniformly over its shape's surface, from one
// side (or both, if TwoSided) of the local normal (§4.G).
type DiffuseAreaLight struct {
	Shape    AreaSampleableShape
	Lemit    spectrum.RGB
	TwoSided bool
}

func NewDiffuseAreaLight(s AreaSampleableShape, lemit spectrum.RGB, twoSided bool) *DiffuseAreaLight {
	return &DiffuseAreaLight{Shape: s, Lemit: lemit, TwoSided: twoSided}
}

// EmittedRadiance returns Lemit when w leaves the emitting side of the
// surface, else black.
func (a *DiffuseAreaLight) EmittedRadiance(point rmath.Pt3, normal rmath.Norm3, w rmath.Vec3) spectrum.RGB {
	if a.TwoSided || normal.Dot(w) > 0 {
		return a.Lemit
	}
	return spectrum.Black
}

// SampleIncidentRadiance samples a uniformly random point on the light's
// surface and converts its area-measure density to the solid-angle measure
// the integrator's direct-lighting sum expects (§4.G).
func (a *DiffuseAreaLight) SampleIncidentRadiance(p rmath.Pt3, time rmath.Float, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, VisibilityTester) {
	pLight, nLight := a.Shape.SampleSurface(u)
	d := pLight.Sub(p)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return rmath.Vec3{}, spectrum.Black, 0, VisibilityTester{}
	}
	dist := rmath.Sqrt(dist2)
	wi := d.Div(dist)

	cosAtLight := nLight.Dot(wi.Negate())
	li := a.EmittedRadiance(pLight, nLight, wi.Negate())
	if cosAtLight <= 0 || li.IsBlack() {
		return wi, spectrum.Black, 0, VisibilityTester{}
	}

	area := a.Shape.Area()
	pdf := dist2 / (rmath.Abs(cosAtLight) * area)
	vis := VisibilityTester{From: p, To: pLight, Time: time}
	return wi, li, pdf, vis
}

// EmittedPower integrates Lemit*cos over the hemisphere and over the
// surface area, doubled when TwoSided (§4.G).
func (a *DiffuseAreaLight) EmittedPower() spectrum.RGB {
	k := rmath.Pi * a.Shape.Area()
	if a.TwoSided {
		k *= 2
	}
	return a.Lemit.Scale(k)
}
