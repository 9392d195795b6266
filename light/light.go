// Package light implements the core's δ-distribution light sources and the
// visibility-test contract the integrator uses to decide whether a sampled
// light direction is obstructed (§4.G). Grounded on the teacher's
// scene.Light (scene/scene.go: a single struct with a Type discriminant for
// directional/point/spot), generalized here into one interface with
// concrete PointLight and SpotLight types carrying their own sampling math
// instead of a switch over a type tag.
package light

import (
	"rayimpact/rmath"
	"rayimpact/spectrum"
)

// VisibilityTester checks whether a sampled light direction's shadow ray is
// unobstructed, the core's query surface into the acceleration structure
// (§4.G).
type VisibilityTester struct {
	From, To rmath.Pt3
	Time     rmath.Float
}

// Occluder abstracts the BVH's HasIntersection query so this package does
// not depend on accel (which in turn depends on shape); the integrator
// supplies the scene's BVH through this narrow interface.
type Occluder interface {
	HasIntersection(ray rmath.Ray) bool
}

// BeamIsUnobstructed issues a hasIntersection query along the segment
// between From and To, shortening the ray by a small epsilon at both ends
// to avoid self-intersection at the endpoints.
func (v VisibilityTester) BeamIsUnobstructed(scene Occluder) bool {
	d := v.To.Sub(v.From)
	dist := d.Length()
	if dist == 0 {
		return true
	}
	dir := d.Div(dist)
	ray := rmath.NewRay(v.From.Add(dir.Mul(dist*1e-3)), dir)
	ray.MaxDistance = dist * (1 - 2e-3)
	ray.Time = v.Time
	return !scene.HasIntersection(ray)
}

// Light is the contract every light source satisfies (§4.G).
type Light interface {
	// SampleIncidentRadiance samples an incident direction toward the light
	// from the point p, returning the direction, the radiance arriving
	// along it, its density, and a tester for whether it's obstructed.
	SampleIncidentRadiance(p rmath.Pt3, time rmath.Float, u rmath.Pt2) (wi rmath.Vec3, li spectrum.RGB, pdf rmath.Float, vis VisibilityTester)

	// EmittedPower is the light's total emitted power, used by light-
	// selection heuristics (not required by a uniform-selection integrator
	// but part of the contract per §4.G).
	EmittedPower() spectrum.RGB
}

// PointLight is an isotropic point emitter with intensity I (§4.G
// "PointLight").
type PointLight struct {
	Position  rmath.Pt3
	Intensity spectrum.RGB
}

func NewPointLight(position rmath.Pt3, intensity spectrum.RGB) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (p *PointLight) SampleIncidentRadiance(point rmath.Pt3, time rmath.Float, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, VisibilityTester) {
	d := p.Position.Sub(point)
	dist2 := d.LengthSquared()
	wi := d.Div(rmath.Sqrt(dist2))
	li := p.Intensity.Scale(1 / dist2)
	vis := VisibilityTester{From: point, To: p.Position, Time: time}
	return wi, li, 1, vis
}

func (p *PointLight) EmittedPower() spectrum.RGB {
	return p.Intensity.Scale(4 * rmath.Pi)
}

// SpotLight is a point emitter restricted to a cone, with a smooth falloff
// between the full-intensity inner cone and the zero-intensity outer cone
// (§4.G "SpotLight").
type SpotLight struct {
	Position        rmath.Pt3
	Direction       rmath.Vec3
	Intensity       spectrum.RGB
	cosTotalWidth   rmath.Float
	cosFalloffStart rmath.Float
}

func NewSpotLight(position rmath.Pt3, direction rmath.Vec3, intensity spectrum.RGB, totalWidthDegrees, falloffStartDegrees rmath.Float) *SpotLight {
	return &SpotLight{
		Position:        position,
		Direction:       direction.Normalize(),
		Intensity:       intensity,
		cosTotalWidth:   rmath.Cos(totalWidthDegrees * rmath.Pi / 180),
		cosFalloffStart: rmath.Cos(falloffStartDegrees * rmath.Pi / 180),
	}
}

func (s *SpotLight) falloff(w rmath.Vec3) rmath.Float {
	cosTheta := s.Direction.Dot(w.Negate())
	if cosTheta < s.cosTotalWidth {
		return 0
	}
	if cosTheta > s.cosFalloffStart {
		return 1
	}
	delta := (cosTheta - s.cosTotalWidth) / (s.cosFalloffStart - s.cosTotalWidth)
	return delta * delta * delta * delta
}

func (s *SpotLight) SampleIncidentRadiance(point rmath.Pt3, time rmath.Float, u rmath.Pt2) (rmath.Vec3, spectrum.RGB, rmath.Float, VisibilityTester) {
	d := s.Position.Sub(point)
	dist2 := d.LengthSquared()
	wi := d.Div(rmath.Sqrt(dist2))
	li := s.Intensity.Scale(s.falloff(wi) / dist2)
	vis := VisibilityTester{From: point, To: s.Position, Time: time}
	return wi, li, 1, vis
}

func (s *SpotLight) EmittedPower() spectrum.RGB {
	k := 2 * rmath.Pi * (1 - 0.5*(s.cosFalloffStart+s.cosTotalWidth))
	return s.Intensity.Scale(k)
}
